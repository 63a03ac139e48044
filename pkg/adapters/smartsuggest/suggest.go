// Package smartsuggest proposes crop rectangles with content-aware analysis.
package smartsuggest

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/user/posterkit/pkg/ports"
)

// Suggester implements ports.Suggester using smartcrop.
type Suggester struct {
	resampler imaging.ResampleFilter
}

// New creates a Suggester. Analysis runs on a downscaled copy, so a cheap
// filter is enough.
func New() *Suggester {
	return &Suggester{resampler: imaging.Linear}
}

// Suggest returns the most interesting rectangle of img with the aspect
// ratioW:ratioH, in img's coordinate space.
func (s *Suggester) Suggest(ctx context.Context, img image.Image, ratioW, ratioH int) (image.Rectangle, error) {
	if ratioW <= 0 || ratioH <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid ratio %d:%d", ratioW, ratioH)
	}
	if img == nil || img.Bounds().Empty() {
		return image.Rectangle{}, fmt.Errorf("empty image")
	}
	if err := ctx.Err(); err != nil {
		return image.Rectangle{}, err
	}

	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: s.resampler})

	type result struct {
		rect image.Rectangle
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		r, err := analyzer.FindBestCrop(img, ratioW, ratioH)
		ch <- result{rect: r, err: err}
	}()

	select {
	case <-ctx.Done():
		return image.Rectangle{}, ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return image.Rectangle{}, fmt.Errorf("find best crop: %w", res.err)
		}
		return res.rect.Intersect(img.Bounds()), nil
	}
}

// resizer satisfies smartcrop's resizer contract with imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

var _ ports.Suggester = (*Suggester)(nil)
