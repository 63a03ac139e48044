package geometry

import (
	"image"
	"math"
)

// CoverRect returns where a srcW x srcH image lands when scaled to cover box
// while keeping its aspect ratio. The result is centred on box and may
// extend past it.
func CoverRect(srcW, srcH int, box image.Rectangle) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || box.Empty() {
		return image.Rectangle{}
	}
	scale := math.Max(float64(box.Dx())/float64(srcW), float64(box.Dy())/float64(srcH))
	return centred(srcW, srcH, scale, box)
}

// ContainRect returns where a srcW x srcH image lands when scaled to fit
// entirely inside box while keeping its aspect ratio, centred.
func ContainRect(srcW, srcH int, box image.Rectangle) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || box.Empty() {
		return image.Rectangle{}
	}
	scale := math.Min(float64(box.Dx())/float64(srcW), float64(box.Dy())/float64(srcH))
	return centred(srcW, srcH, scale, box)
}

func centred(srcW, srcH int, scale float64, box image.Rectangle) image.Rectangle {
	dw := int(math.Round(float64(srcW) * scale))
	dh := int(math.Round(float64(srcH) * scale))
	x := box.Min.X + (box.Dx()-dw)/2
	y := box.Min.Y + (box.Dy()-dh)/2
	return image.Rect(x, y, x+dw, y+dh)
}

// ViewSize returns the on-screen size of a view viewWidth wide with the
// given aspect ratio.
func ViewSize(viewWidth, ratioW, ratioH int) (int, int) {
	if viewWidth <= 0 || ratioW <= 0 || ratioH <= 0 {
		return 0, 0
	}
	return viewWidth, int(math.Round(float64(viewWidth) * float64(ratioH) / float64(ratioW)))
}

// Scaled multiplies a CSS pixel length by scale, rounding to whole pixels.
func Scaled(v int, scale float64) int {
	return int(math.Round(float64(v) * scale))
}
