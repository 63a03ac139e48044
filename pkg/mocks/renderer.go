// Package mocks provides mock implementations for testing.
package mocks

import (
	"image"
	"image/color"

	"github.com/user/posterkit/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image

	// Recorded calls for verification
	Canvases     []*Canvas
	EncodeCalls  []EncodeCall
	DecodeCalled int
}

// EncodeCall records a call to EncodeImage.
type EncodeCall struct {
	Bounds image.Rectangle
	Format ports.ImageFormat
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{Width: width, Height: height}
	m.Canvases = append(m.Canvases, c)
	return c
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	m.DecodeCalled++
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	m.EncodeCalls = append(m.EncodeCalls, EncodeCall{Bounds: img.Bounds(), Format: format})
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that records fitted draws.
type Canvas struct {
	Width  int
	Height int

	FitCalls []FitCall
}

// FitCall records a call to DrawImageFit.
type FitCall struct {
	Dst image.Rectangle
	Fit ports.FitMode
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {}

func (m *Canvas) DrawImageFit(img image.Image, dst image.Rectangle, fit ports.FitMode) {
	m.FitCalls = append(m.FitCalls, FitCall{Dst: dst, Fit: fit})
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {}

func (m *Canvas) DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64) {}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
}

var _ ports.Canvas = (*Canvas)(nil)
