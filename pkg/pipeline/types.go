package pipeline

import (
	"image"

	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/ports"
)

// =============================================================================
// Load Stage Types
// =============================================================================

// LoadInput is the file picked by the user: either a Path on disk or the
// uploaded Data with its Name. Neither set means nothing was selected.
type LoadInput struct {
	Path string
	Name string
	Data []byte
}

// SourceImage is the user-provided picture. It is replaced wholesale on a
// new upload and never mutated.
type SourceImage struct {
	ID       string // opaque identifier assigned at load time
	Name     string // base name of the uploaded file
	Data     []byte // encoded bytes, exactly as uploaded
	MIMEType string
	DataURI  string

	// Natural dimensions if the header could be read. Zero when unknown;
	// the resolver always decodes fully and does not trust these.
	Width  int
	Height int
}

// LoadResult is the output of the load stage. Loaded is false when no file
// was selected.
type LoadResult struct {
	Source SourceImage
	Loaded bool
}

// =============================================================================
// Crop Stage Types
// =============================================================================

// CropOffset is the crop widget's pan position, in percent of the media
// size, relative to the centred position.
type CropOffset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CropRegion is a rectangle in the crop widget's reporting space plus the
// zoom the widget was at when it reported it.
type CropRegion struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Zoom   float64 `json:"zoom"`

	// ReferenceWidth/ReferenceHeight are the image dimensions the widget
	// believed it was working against. Zero means native pixels.
	ReferenceWidth  float64 `json:"referenceWidth,omitempty"`
	ReferenceHeight float64 `json:"referenceHeight,omitempty"`
}

// CropInput pairs a source with the region to extract.
type CropInput struct {
	Source SourceImage
	Region CropRegion
}

// CroppedImage is the resolver output. Width and Height equal the native
// crop rectangle exactly.
type CroppedImage struct {
	Data    []byte // PNG
	DataURI string
	Image   image.Image
	Width   int
	Height  int
	Rect    image.Rectangle // window of the source that was copied
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// ComposeInput pairs the cropped photo with the overlay for the active ratio.
type ComposeInput struct {
	Cropped   CroppedImage
	Overlay   overlay.Template
	ViewWidth int // CSS pixels
}

// ComposedPoster is the rendering-time composite: photo below (cover-fit),
// overlay above (contain-fit).
type ComposedPoster struct {
	Ratio  string
	Target ports.RenderTarget
}

// =============================================================================
// Export Stage Types
// =============================================================================

// ExportInput contains the poster to flatten. A nil Poster means no
// composed view exists.
type ExportInput struct {
	Poster    *ComposedPoster
	Scale     float64
	OutputDir string
	Filename  string
}

// ExportResult describes the delivered file.
type ExportResult struct {
	Path     string
	Filename string
	Data     []byte
	Width    int
	Height   int
}
