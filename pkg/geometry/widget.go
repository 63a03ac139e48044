package geometry

import (
	"image"
	"math"

	"github.com/user/posterkit/pkg/pipeline"
)

const (
	// MinZoom and MaxZoom bound the crop widget's zoom factor.
	MinZoom = 1.0
	MaxZoom = 3.0
)

// WidgetArea reproduces what the interactive crop widget reports for a
// given pan offset and zoom: a rectangle of the requested aspect (w/h), in
// native pixels, never leaving the image.
//
// At zoom 1 the rectangle is the largest one of that aspect that fits; zoom
// z divides both sides by z. The offset moves the rectangle's centre away
// from the image centre by a percentage of the image size, positive values
// moving right and down.
func WidgetArea(nativeW, nativeH int, aspect float64, offset pipeline.CropOffset, zoom float64) pipeline.CropRegion {
	if nativeW <= 0 || nativeH <= 0 || aspect <= 0 {
		return pipeline.CropRegion{Zoom: ClampZoom(zoom)}
	}
	zoom = ClampZoom(zoom)
	w, h := float64(nativeW), float64(nativeH)

	cw, ch := w, w/aspect
	if ch > h {
		ch = h
		cw = h * aspect
	}
	cw /= zoom
	ch /= zoom

	cx := clampFloat(w/2+offset.X/100*w, cw/2, w-cw/2)
	cy := clampFloat(h/2+offset.Y/100*h, ch/2, h-ch/2)

	// Round like the widget does: sizes first, then origins kept inside.
	rw := math.Min(math.Round(cw), w)
	rh := math.Min(math.Round(ch), h)
	rx := clampFloat(math.Round(cx-cw/2), 0, w-rw)
	ry := clampFloat(math.Round(cy-ch/2), 0, h-rh)

	return pipeline.CropRegion{X: rx, Y: ry, Width: rw, Height: rh, Zoom: zoom}
}

// WidgetPosition is the inverse of WidgetArea: the offset and zoom that put
// the widget's rectangle over rect. Zoom is clamped, so a rect smaller than
// MaxZoom allows comes back larger.
func WidgetPosition(nativeW, nativeH int, aspect float64, rect image.Rectangle) (pipeline.CropOffset, float64) {
	if nativeW <= 0 || nativeH <= 0 || aspect <= 0 || rect.Empty() {
		return pipeline.CropOffset{}, MinZoom
	}
	w, h := float64(nativeW), float64(nativeH)

	base := w
	if w/aspect > h {
		base = h * aspect
	}
	zoom := ClampZoom(base / float64(rect.Dx()))

	cx := float64(rect.Min.X+rect.Max.X) / 2
	cy := float64(rect.Min.Y+rect.Max.Y) / 2
	return pipeline.CropOffset{X: (cx - w/2) / w * 100, Y: (cy - h/2) / h * 100}, zoom
}

// ClampZoom limits zoom to [MinZoom, MaxZoom]. Zero or invalid values mean 1.
func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
