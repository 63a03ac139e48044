// Package filesink writes debug artefacts to a directory.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/posterkit/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new Sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSource saves the uploaded bytes under source/.
func (s *Sink) SaveSource(name string, data []byte) error {
	if name == "" {
		name = "upload"
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "source", filepath.Base(name)), data)
}

// SaveCropped saves the resolver output.
func (s *Sink) SaveCropped(img image.Image) error {
	return s.savePNG("cropped.png", img)
}

// SaveOverlay saves the overlay used for ratio.
func (s *Sink) SaveOverlay(ratio string, img image.Image) error {
	name := fmt.Sprintf("overlay-%s.png", strings.ReplaceAll(ratio, ":", "x"))
	return s.savePNG(name, img)
}

// SaveViewHTML saves the composition view document.
func (s *Sink) SaveViewHTML(html string) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "view.html"), []byte(html))
}

// SavePoster saves the flattened export.
func (s *Sink) SavePoster(img image.Image) error {
	return s.savePNG("poster.png", img)
}

func (s *Sink) savePNG(name string, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, name), data)
}

var _ ports.DebugSink = (*Sink)(nil)
