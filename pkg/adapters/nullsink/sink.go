// Package nullsink provides a debug sink that discards everything.
package nullsink

import (
	"image"

	"github.com/user/posterkit/pkg/ports"
)

// Sink is a no-op ports.DebugSink.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false.
func (s *Sink) Enabled() bool { return false }

func (s *Sink) SaveSource(name string, data []byte) error       { return nil }
func (s *Sink) SaveCropped(img image.Image) error               { return nil }
func (s *Sink) SaveOverlay(ratio string, img image.Image) error { return nil }
func (s *Sink) SaveViewHTML(html string) error                  { return nil }
func (s *Sink) SavePoster(img image.Image) error                { return nil }

var _ ports.DebugSink = (*Sink)(nil)
