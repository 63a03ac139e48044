package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts pixel-level image work: decoding, encoding, scaling
// and drawing onto canvases.
type Renderer interface {
	// CreateCanvas creates a canvas filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes data in any registered format. EXIF orientation is
	// applied so the result matches what a browser would display.
	DecodeImage(data []byte) (image.Image, error)

	// EncodeImage encodes img. Quality is ignored for lossless formats.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage scales img to exactly width x height.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides drawing operations for compositing layers.
type Canvas interface {
	// DrawImage draws img with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y int)

	// DrawImageFit draws img scaled into dst using fit, clipping anything
	// outside dst.
	DrawImageFit(img image.Image, dst image.Rectangle, fit FitMode)

	// DrawRect fills a rectangle.
	DrawRect(x, y, w, h int, c color.Color)

	// DrawRectStroke outlines a rectangle.
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)

	// DrawText draws text centred vertically on y.
	DrawText(text string, x, y int, style TextStyle)

	// ToImage returns the canvas pixels.
	ToImage() image.Image
}

// FitMode selects how an image is scaled into a box.
type FitMode int

const (
	// FitCover fills the box, cropping overflow.
	FitCover FitMode = iota
	// FitContain fits entirely inside the box, centred, letterboxing as needed.
	FitContain
)

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies horizontal text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies an image encoding.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)

// MIMEType returns the media type of the format.
func (f ImageFormat) MIMEType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}
