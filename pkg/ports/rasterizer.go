package ports

import (
	"context"
	"image"
)

// RenderTarget is a renderable region: an HTML document containing the
// element to capture, plus the layers it shows so that rasterizers without
// a browser engine can reproduce it.
type RenderTarget struct {
	HTML      string
	ElementID string
	Width     int // CSS pixels
	Height    int // CSS pixels
	Layers    []Layer
}

// Layer is one stacked image of a RenderTarget, bottom first.
type Layer struct {
	Image image.Image
	Fit   FitMode
}

// Rasterizer flattens a RenderTarget into pixels at the given scale. The
// returned image is Width*scale x Height*scale.
type Rasterizer interface {
	Rasterize(ctx context.Context, target RenderTarget, scale float64) (image.Image, error)
}
