package mocks

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/user/posterkit/pkg/ports"
)

// FileSystem is an in-memory ports.FileSystem. Writing a file implicitly
// creates its parent directories, as the real adapter does.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// WriteFileFunc, when set, replaces the default write (for injecting
	// failures).
	WriteFileFunc func(path string, data []byte) error

	// WriteCalls records every written path in order.
	WriteCalls []string
}

// NewFileSystem creates an empty FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.PutFile(path, data)
	m.mu.Lock()
	m.WriteCalls = append(m.WriteCalls, path)
	m.mu.Unlock()
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirs(filepath.Clean(path))
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p := filepath.Clean(path)
	_, isFile := m.files[p]
	return isFile || m.dirs[p], nil
}

// PutFile stores data at path without recording a write.
func (m *FileSystem) PutFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := filepath.Clean(path)
	m.files[p] = append([]byte(nil), data...)
	m.addDirs(filepath.Dir(p))
}

// GetFile returns the contents stored at path.
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

// GetAllFiles returns a copy of every stored file keyed by path.
func (m *FileSystem) GetAllFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.files))
	for p, data := range m.files {
		out[p] = data
	}
	return out
}

// Paths returns the stored file paths, sorted.
func (m *FileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// addDirs marks dir and its ancestors as existing. Callers hold mu.
func (m *FileSystem) addDirs(dir string) {
	for dir != "." && dir != string(filepath.Separator) && !m.dirs[dir] {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

var _ ports.FileSystem = (*FileSystem)(nil)
