// Package ports defines interfaces for the collaborators posterkit depends on.
package ports

// FileSystem abstracts the file operations used to read uploads and
// deliver downloads.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to path, creating parent directories as needed.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parents.
	MkdirAll(path string) error

	// Exists reports whether path exists.
	Exists(path string) (bool, error)
}
