// Package softrasterizer flattens render targets without a browser.
//
// It reproduces the poster view from its layers: each layer is scaled into
// the full target box with its fit mode and stacked bottom first on a white
// background. Layers are prepared concurrently; drawing is sequential.
package softrasterizer

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/sync/errgroup"

	"github.com/user/posterkit/pkg/geometry"
	"github.com/user/posterkit/pkg/ports"
)

// Rasterizer implements ports.Rasterizer on top of a ports.Renderer.
type Rasterizer struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// New creates a new Rasterizer.
func New(renderer ports.Renderer, logger ports.Logger) *Rasterizer {
	return &Rasterizer{
		renderer: renderer,
		logger:   logger.WithComponent("softrasterizer"),
	}
}

type prepared struct {
	img image.Image
	at  image.Point
}

// Rasterize renders target at scale.
func (r *Rasterizer) Rasterize(ctx context.Context, target ports.RenderTarget, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %v", scale)
	}
	w := geometry.Scaled(target.Width, scale)
	h := geometry.Scaled(target.Height, scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", target.Width, target.Height)
	}
	box := image.Rect(0, 0, w, h)
	r.logger.Debug("Rasterizing %dx%d at %.1fx", target.Width, target.Height, scale)

	layers := make([]prepared, len(target.Layers))
	g, gctx := errgroup.WithContext(ctx)
	for i, layer := range target.Layers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if layer.Image == nil {
				return nil
			}
			b := layer.Image.Bounds()
			var dst image.Rectangle
			switch layer.Fit {
			case ports.FitContain:
				dst = geometry.ContainRect(b.Dx(), b.Dy(), box)
			default:
				dst = geometry.CoverRect(b.Dx(), b.Dy(), box)
			}
			if dst.Empty() {
				return nil
			}
			layers[i] = prepared{
				img: r.renderer.ResizeImage(layer.Image, dst.Dx(), dst.Dy()),
				at:  dst.Min,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	canvas := r.renderer.CreateCanvas(w, h, color.White)
	for _, l := range layers {
		if l.img == nil {
			continue
		}
		canvas.DrawImage(l.img, l.at.X, l.at.Y)
	}
	return canvas.ToImage(), nil
}

var _ ports.Rasterizer = (*Rasterizer)(nil)
