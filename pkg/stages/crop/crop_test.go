package crop

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/user/posterkit/pkg/adapters/ggrenderer"
	"github.com/user/posterkit/pkg/adapters/logger"
	"github.com/user/posterkit/pkg/mocks"
	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
)

// gradient returns an image whose pixel at (x, y) encodes its coordinates,
// so any window can be checked exactly.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x % 256), uint8(y % 256), uint8((x/256)*16 + y/256), 255})
		}
	}
	return img
}

func source(t *testing.T, img image.Image) pipeline.SourceImage {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return pipeline.SourceImage{Name: "test.png", Data: buf.Bytes()}
}

func newStage(sink *mocks.DebugSink) *Stage {
	return NewStage(ggrenderer.New(), sink, logger.NewNoop())
}

func TestStage_Execute_ExactWindow(t *testing.T) {
	src := gradient(1200, 900)
	stage := newStage(mocks.NewDebugSink(false))

	result, err := stage.Execute(context.Background(), pipeline.CropInput{
		Source: source(t, src),
		Region: pipeline.CropRegion{X: 100, Y: 50, Width: 800, Height: 600, Zoom: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Width != 800 || result.Height != 600 {
		t.Fatalf("size = %dx%d, want 800x600", result.Width, result.Height)
	}

	decoded, err := png.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 800 || decoded.Bounds().Dy() != 600 {
		t.Fatalf("encoded size = %v, want 800x600", decoded.Bounds())
	}

	for _, p := range []image.Point{{0, 0}, {799, 0}, {0, 599}, {799, 599}, {400, 300}, {123, 457}} {
		got := color.NRGBAModel.Convert(decoded.At(p.X, p.Y)).(color.NRGBA)
		want := src.NRGBAAt(p.X+100, p.Y+50)
		if got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
}

func TestStage_Execute_ScaledReferenceSpace(t *testing.T) {
	src := gradient(1200, 900)
	stage := newStage(mocks.NewDebugSink(false))

	// The widget believed the image was 600x450 (half size).
	result, err := stage.Execute(context.Background(), pipeline.CropInput{
		Source: source(t, src),
		Region: pipeline.CropRegion{
			X: 50, Y: 25, Width: 400, Height: 300, Zoom: 1,
			ReferenceWidth: 600, ReferenceHeight: 450,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Rect != image.Rect(100, 50, 900, 650) {
		t.Errorf("Rect = %v, want (100,50)-(900,650)", result.Rect)
	}
}

func TestStage_Execute_OvershootClamped(t *testing.T) {
	stage := newStage(mocks.NewDebugSink(false))

	result, err := stage.Execute(context.Background(), pipeline.CropInput{
		Source: source(t, gradient(300, 200)),
		Region: pipeline.CropRegion{X: 250, Y: 150, Width: 100, Height: 100},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Rect.In(image.Rect(0, 0, 300, 200)) {
		t.Errorf("Rect %v escapes the image", result.Rect)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("size = %dx%d, want 100x100", result.Width, result.Height)
	}
}

func TestStage_Execute_InvalidRegion(t *testing.T) {
	stage := newStage(mocks.NewDebugSink(false))
	src := source(t, gradient(1200, 900))

	tests := []struct {
		name   string
		region pipeline.CropRegion
	}{
		{"wider than image", pipeline.CropRegion{Width: 1300, Height: 600}},
		{"zero width", pipeline.CropRegion{Width: 0, Height: 600}},
		{"negative height", pipeline.CropRegion{Width: 100, Height: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := stage.Execute(context.Background(), pipeline.CropInput{Source: src, Region: tt.region})
			var invalid *pipeline.InvalidRegionError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidRegionError, got %v", err)
			}
			if result.Data != nil || result.Image != nil {
				t.Error("no image should be produced on failure")
			}
		})
	}
}

func TestStage_Execute_DecodeError(t *testing.T) {
	stage := newStage(mocks.NewDebugSink(false))

	_, err := stage.Execute(context.Background(), pipeline.CropInput{
		Source: pipeline.SourceImage{Name: "broken.jpg", Data: []byte("not an image")},
		Region: pipeline.CropRegion{Width: 10, Height: 10},
	})
	var decodeErr *pipeline.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Source != "broken.jpg" {
		t.Errorf("Source = %q, want broken.jpg", decodeErr.Source)
	}
}

func TestStage_Execute_WithDebugSink(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	stage := newStage(sink)

	_, err := stage.Execute(context.Background(), pipeline.CropInput{
		Source: source(t, gradient(40, 30)),
		Region: pipeline.CropRegion{Width: 40, Height: 30},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Cropped == nil {
		t.Error("expected cropped image to be saved to debug sink")
	}
}

func TestStage_Execute_EncodesPNG(t *testing.T) {
	renderer := &mocks.Renderer{
		DecodeImageFunc: func(data []byte) (image.Image, error) {
			return gradient(50, 50), nil
		},
	}
	stage := NewStage(renderer, mocks.NewDebugSink(false), logger.NewNoop())

	if _, err := stage.Execute(context.Background(), pipeline.CropInput{
		Region: pipeline.CropRegion{X: 5, Y: 5, Width: 20, Height: 10},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(renderer.EncodeCalls) != 1 {
		t.Fatalf("expected 1 encode call, got %d", len(renderer.EncodeCalls))
	}
	call := renderer.EncodeCalls[0]
	if call.Format != ports.FormatPNG || call.Bounds.Dx() != 20 || call.Bounds.Dy() != 10 {
		t.Errorf("unexpected encode call %+v", call)
	}
}
