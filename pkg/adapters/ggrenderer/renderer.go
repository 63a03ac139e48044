// Package ggrenderer implements ports.Renderer on top of the gg drawing
// library, with imaging for decoding and x/image for scaling.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/user/posterkit/pkg/geometry"
	"github.com/user/posterkit/pkg/ports"
)

// Renderer implements ports.Renderer.
type Renderer struct {
	logger ports.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger reports drawing problems, such as an unreadable font file.
func WithLogger(logger ports.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger.WithComponent("renderer")
	}
}

// New creates a new Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc, logger: r.logger}
}

// DecodeImage decodes JPEG, PNG, GIF, BMP, TIFF or WebP data, applying the
// EXIF orientation tag when present.
func (r *Renderer) DecodeImage(data []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if quality <= 0 || quality > 100 {
			quality = 100
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc     *gg.Context
	logger ports.Logger
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// DrawImageFit scales img into dst with cover or contain semantics. Pixels
// that fall outside dst are clipped.
func (c *Canvas) DrawImageFit(img image.Image, dst image.Rectangle, fit ports.FitMode) {
	b := img.Bounds()
	var placed image.Rectangle
	switch fit {
	case ports.FitContain:
		placed = geometry.ContainRect(b.Dx(), b.Dy(), dst)
	default:
		placed = geometry.CoverRect(b.Dx(), b.Dy(), dst)
	}
	if placed.Empty() {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, placed.Dx(), placed.Dy()))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)

	c.dc.Push()
	defer c.dc.Pop()
	c.dc.DrawRectangle(float64(dst.Min.X), float64(dst.Min.Y), float64(dst.Dx()), float64(dst.Dy()))
	c.dc.Clip()
	c.dc.DrawImage(scaled, placed.Min.X, placed.Min.Y)
	c.dc.ResetClip()
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawRectStroke draws a rectangle outline.
func (c *Canvas) DrawRectStroke(x, y, w, h int, col color.Color, strokeWidth float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(strokeWidth)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Stroke()
}

// DrawText draws text at the specified position.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.dc.SetColor(style.Color)

	if style.FontPath != "" {
		// Keep the current face if the font cannot be loaded.
		if err := c.dc.LoadFontFace(style.FontPath, style.FontSize); err != nil && c.logger != nil {
			c.logger.Debug("Failed to load font %s: %s", style.FontPath, err)
		}
	}

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	c.dc.DrawStringAnchored(text, float64(x), float64(y), ax, 0.5)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

var _ ports.Canvas = (*Canvas)(nil)
