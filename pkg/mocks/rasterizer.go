package mocks

import (
	"context"
	"image"

	"github.com/user/posterkit/pkg/ports"
)

// Rasterizer is a mock implementation of ports.Rasterizer. By default it
// returns a blank image of the requested scaled size.
type Rasterizer struct {
	RasterizeFunc func(ctx context.Context, target ports.RenderTarget, scale float64) (image.Image, error)

	Calls []RasterizeCall
}

// RasterizeCall records a call to Rasterize.
type RasterizeCall struct {
	ElementID string
	Width     int
	Height    int
	Scale     float64
}

func (m *Rasterizer) Rasterize(ctx context.Context, target ports.RenderTarget, scale float64) (image.Image, error) {
	m.Calls = append(m.Calls, RasterizeCall{
		ElementID: target.ElementID,
		Width:     target.Width,
		Height:    target.Height,
		Scale:     scale,
	})
	if m.RasterizeFunc != nil {
		return m.RasterizeFunc(ctx, target, scale)
	}
	w := int(float64(target.Width)*scale + 0.5)
	h := int(float64(target.Height)*scale + 0.5)
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

var _ ports.Rasterizer = (*Rasterizer)(nil)

// Suggester is a mock implementation of ports.Suggester.
type Suggester struct {
	SuggestFunc func(ctx context.Context, img image.Image, ratioW, ratioH int) (image.Rectangle, error)
}

func (m *Suggester) Suggest(ctx context.Context, img image.Image, ratioW, ratioH int) (image.Rectangle, error) {
	if m.SuggestFunc != nil {
		return m.SuggestFunc(ctx, img, ratioW, ratioH)
	}
	return img.Bounds(), nil
}

var _ ports.Suggester = (*Suggester)(nil)
