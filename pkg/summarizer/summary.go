// Package summarizer provides summary generation for poster runs.
package summarizer

import (
	"image"
	"time"
)

// Summary contains the data collected while producing one poster.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	Elapsed     time.Duration

	Source   SourceInfo
	Crop     CropInfo
	Settings Settings
	Poster   PosterInfo
}

// SourceInfo describes the uploaded image.
type SourceInfo struct {
	Name     string
	MIMEType string
	Width    int
	Height   int
	FileSize int64
}

// CropInfo describes the selection that was cut out.
type CropInfo struct {
	Ratio string
	Rect  image.Rectangle // native pixels
	Zoom  float64
	Auto  bool // chosen by the suggester
}

// Settings contains the export configuration.
type Settings struct {
	ViewWidth  int
	Scale      float64
	Rasterizer string
}

// PosterInfo describes the delivered file.
type PosterInfo struct {
	Path       string
	Width      int
	Height     int
	ViewWidth  int
	ViewHeight int
	FileSize   int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets source image information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithCrop sets the crop selection.
func (b *Builder) WithCrop(ratio string, rect image.Rectangle, zoom float64, auto bool) *Builder {
	b.summary.Crop = CropInfo{
		Ratio: ratio,
		Rect:  rect,
		Zoom:  zoom,
		Auto:  auto,
	}
	return b
}

// WithSettings sets export settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithPoster sets output information.
func (b *Builder) WithPoster(poster PosterInfo) *Builder {
	b.summary.Poster = poster
	return b
}

// WithElapsed sets the wall time of the run.
func (b *Builder) WithElapsed(d time.Duration) *Builder {
	b.summary.Elapsed = d
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
