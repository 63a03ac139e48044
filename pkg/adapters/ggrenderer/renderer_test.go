package ggrenderer

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/posterkit/pkg/ports"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	img := r.CreateCanvas(100, 80, color.White).ToImage()
	bounds := img.Bounds()

	if bounds.Dx() != 100 || bounds.Dy() != 80 {
		t.Errorf("expected 100x80, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if got := color.RGBAModel.Convert(img.At(50, 40)).(color.RGBA); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, want white", got)
	}
}

func TestRenderer_EncodeDecodePNG_Lossless(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 12), B: 77, A: 255})
		}
	}

	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := r.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}

	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			want := img.RGBAAt(x, y)
			got := color.RGBAModel.Convert(decoded.At(x, y)).(color.RGBA)
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderer_EncodeDecodeJPEG(t *testing.T) {
	r := New()

	data, err := r.EncodeImage(solid(50, 40, color.RGBA{R: 255, A: 255}), ports.FormatJPEG, 90)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := r.DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 50 || b.Dy() != 40 {
		t.Errorf("expected 50x40, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderer_DecodeGarbage(t *testing.T) {
	if _, err := New().DecodeImage([]byte("not an image")); err == nil {
		t.Error("expected decode error")
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	resized := New().ResizeImage(solid(100, 100, color.Black), 40, 25)
	if b := resized.Bounds(); b.Dx() != 40 || b.Dy() != 25 {
		t.Errorf("expected 40x25, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestCanvas_DrawImageFit_Cover(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.White)

	// A wide red image covering a square box fills it completely.
	canvas.DrawImageFit(solid(200, 100, color.RGBA{R: 255, A: 255}), image.Rect(0, 0, 100, 100), ports.FitCover)

	img := canvas.ToImage()
	for _, p := range []image.Point{{1, 1}, {50, 50}, {98, 98}} {
		got := color.RGBAModel.Convert(img.At(p.X, p.Y)).(color.RGBA)
		if got.R != 255 || got.G != 0 {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
}

func TestCanvas_DrawImageFit_Contain(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(100, 100, color.White)

	// A wide blue image contained in a square box leaves white bars.
	canvas.DrawImageFit(solid(200, 100, color.RGBA{B: 255, A: 255}), image.Rect(0, 0, 100, 100), ports.FitContain)

	img := canvas.ToImage()
	top := color.RGBAModel.Convert(img.At(50, 5)).(color.RGBA)
	if top != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("letterbox pixel = %v, want white", top)
	}
	mid := color.RGBAModel.Convert(img.At(50, 50)).(color.RGBA)
	if mid.B != 255 || mid.R != 0 {
		t.Errorf("centre pixel = %v, want blue", mid)
	}
}

// recordingLogger keeps debug messages.
type recordingLogger struct {
	debug []string
}

func (l *recordingLogger) Debug(msg string, args ...interface{}) {
	l.debug = append(l.debug, fmt.Sprintf(msg, args...))
}
func (l *recordingLogger) Info(msg string, args ...interface{})  {}
func (l *recordingLogger) Warn(msg string, args ...interface{})  {}
func (l *recordingLogger) Error(msg string, args ...interface{}) {}
func (l *recordingLogger) WithComponent(string) ports.Logger     { return l }

func TestCanvas_DrawText_MissingFontIsLogged(t *testing.T) {
	log := &recordingLogger{}
	r := New(WithLogger(log))
	missing := filepath.Join(t.TempDir(), "nope.ttf")

	c := r.CreateCanvas(120, 40, color.White)
	c.DrawText("Hi", 60, 20, ports.TextStyle{FontPath: missing, FontSize: 12, Color: color.Black, Align: ports.AlignCenter})

	if len(log.debug) != 1 || !strings.Contains(log.debug[0], missing) {
		t.Errorf("debug log = %q, want one font failure naming %s", log.debug, missing)
	}
}
