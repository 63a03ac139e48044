// Package geometry maps crop selections between coordinate spaces and
// computes layer placement for the composition view.
package geometry

import (
	"fmt"
	"image"
	"math"

	"github.com/user/posterkit/pkg/pipeline"
)

// Resolve maps region, expressed in the crop widget's reporting space, onto
// the native pixel grid of a nativeW x nativeH image and clamps it inside.
//
// The scale between the two spaces is derived from region.ReferenceWidth
// and region.ReferenceHeight; when those are zero the widget is assumed to
// report native pixels already. Width and height are rounded to the nearest
// pixel. A rounded span that overshoots the image by less than one pixel is
// pulled back to the image edge; anything larger is an InvalidRegionError.
// Offsets are rounded and then clamped to [0, native-span].
func Resolve(nativeW, nativeH int, region pipeline.CropRegion) (image.Rectangle, error) {
	if nativeW <= 0 || nativeH <= 0 {
		return image.Rectangle{}, &pipeline.InvalidRegionError{
			Reason: fmt.Sprintf("source image has no pixels (%dx%d)", nativeW, nativeH),
		}
	}
	if !finite(region.X, region.Y, region.Width, region.Height) {
		return image.Rectangle{}, &pipeline.InvalidRegionError{Reason: "non-finite coordinates"}
	}
	if region.Width <= 0 || region.Height <= 0 {
		return image.Rectangle{}, &pipeline.InvalidRegionError{
			Reason: fmt.Sprintf("width and height must be positive, got %gx%g", region.Width, region.Height),
		}
	}

	sx := scaleFor(nativeW, region.ReferenceWidth)
	sy := scaleFor(nativeH, region.ReferenceHeight)

	width, err := fitSpan(region.Width*sx, nativeW, "width")
	if err != nil {
		return image.Rectangle{}, err
	}
	height, err := fitSpan(region.Height*sy, nativeH, "height")
	if err != nil {
		return image.Rectangle{}, err
	}

	x := clampOffset(region.X*sx, width, nativeW)
	y := clampOffset(region.Y*sy, height, nativeH)

	return image.Rect(x, y, x+width, y+height), nil
}

func scaleFor(native int, reference float64) float64 {
	if reference <= 0 || math.IsNaN(reference) || math.IsInf(reference, 0) {
		return 1
	}
	return float64(native) / reference
}

func fitSpan(v float64, limit int, name string) (int, error) {
	r := math.Round(v)
	if r < 1 {
		return 0, &pipeline.InvalidRegionError{
			Reason: fmt.Sprintf("%s %.3f rounds to zero pixels", name, v),
		}
	}
	if r > float64(limit) {
		if v-float64(limit) < 1 {
			return limit, nil
		}
		return 0, &pipeline.InvalidRegionError{
			Reason: fmt.Sprintf("%s %g exceeds image %s %d", name, r, name, limit),
		}
	}
	return int(r), nil
}

// clampOffset works in float64 so huge offsets clamp instead of
// overflowing the int conversion.
func clampOffset(v float64, span, limit int) int {
	o := math.Round(v)
	if hi := float64(limit - span); o > hi {
		o = hi
	}
	if o < 0 {
		o = 0
	}
	return int(o)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
