package ports

import (
	"context"
	"image"
)

// Suggester proposes an initial crop rectangle, in native pixels, with the
// given aspect ratio.
type Suggester interface {
	Suggest(ctx context.Context, img image.Image, ratioW, ratioH int) (image.Rectangle, error)
}
