package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
)

// templateLongSide is the long edge, in pixels, of built-in templates.
const templateLongSide = 1200

// Style sets the look of the built-in templates.
type Style struct {
	Caption string // text in the bottom band; empty omits the band
	Frame   color.Color
	Accent  color.Color
	Band    color.Color
}

// DefaultStyle returns the built-in palette with no caption.
func DefaultStyle() Style {
	return Style{
		Frame:  color.NRGBA{R: 250, G: 241, B: 222, A: 255},
		Accent: color.NRGBA{R: 196, G: 154, B: 84, A: 255},
		Band:   color.NRGBA{R: 20, G: 16, B: 12, A: 170},
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Frame == nil {
		s.Frame = d.Frame
	}
	if s.Accent == nil {
		s.Accent = d.Accent
	}
	if s.Band == nil {
		s.Band = d.Band
	}
	return s
}

// drawFrame renders a mostly transparent frame with a caption band at the
// bottom. Only the border and band are opaque so the photo shows through.
func drawFrame(c Choice, style Style) image.Image {
	style = style.withDefaults()
	w, h := templateLongSide, templateLongSide
	if c.W > c.H {
		h = int(math.Round(float64(templateLongSide) * float64(c.H) / float64(c.W)))
	} else if c.H > c.W {
		w = int(math.Round(float64(templateLongSide) * float64(c.W) / float64(c.H)))
	}

	dc := gg.NewContext(w, h)
	short := math.Min(float64(w), float64(h))
	border := short * 0.04

	// Outer frame as four bands, leaving the centre untouched.
	dc.SetColor(style.Frame)
	dc.DrawRectangle(0, 0, float64(w), border)
	dc.DrawRectangle(0, float64(h)-border, float64(w), border)
	dc.DrawRectangle(0, 0, border, float64(h))
	dc.DrawRectangle(float64(w)-border, 0, border, float64(h))
	dc.Fill()

	inset := border * 1.5
	dc.SetColor(style.Accent)
	dc.SetLineWidth(math.Max(2, short*0.004))
	dc.DrawRectangle(inset, inset, float64(w)-2*inset, float64(h)-2*inset)
	dc.Stroke()

	if style.Caption == "" {
		return dc.Image()
	}

	band := short * 0.12
	bandY := float64(h) - border - band
	dc.SetColor(style.Band)
	dc.DrawRectangle(border, bandY, float64(w)-2*border, band)
	dc.Fill()

	if f, err := truetype.Parse(gobold.TTF); err == nil {
		dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: band * 0.45}))
	}
	dc.SetColor(style.Frame)
	dc.DrawStringAnchored(style.Caption, float64(w)/2, bandY+band/2, 0.5, 0.35)

	return dc.Image()
}
