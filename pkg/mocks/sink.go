package mocks

import (
	"image"
	"sync"

	"github.com/user/posterkit/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	SourceName string
	Source     []byte
	Cropped    image.Image
	Overlays   map[string]image.Image
	ViewHTML   string
	Poster     image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:  enabled,
		Overlays: make(map[string]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSource(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceName = name
	m.Source = data
	return nil
}

func (m *DebugSink) SaveCropped(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cropped = img
	return nil
}

func (m *DebugSink) SaveOverlay(ratio string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Overlays[ratio] = img
	return nil
}

func (m *DebugSink) SaveViewHTML(html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ViewHTML = html
	return nil
}

func (m *DebugSink) SavePoster(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Poster = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
