package ports

import (
	"image"
)

// DebugSink receives intermediate artefacts for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSource saves the uploaded bytes as they were received.
	SaveSource(name string, data []byte) error

	// SaveCropped saves the resolver output.
	SaveCropped(img image.Image) error

	// SaveOverlay saves the overlay template used for a composition.
	SaveOverlay(ratio string, img image.Image) error

	// SaveViewHTML saves the composition view document.
	SaveViewHTML(html string) error

	// SavePoster saves the flattened export.
	SavePoster(img image.Image) error
}
