package smartsuggest

import (
	"context"
	"image"
	"image/color"
	"math"
	"testing"
)

func busyImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{40, 40, 40, 255})
		}
	}
	// High-contrast stripes near the right edge.
	for y := h / 4; y < 3*h/4; y++ {
		for x := 3 * w / 4; x < w-4; x++ {
			if (x/4)%2 == 0 {
				img.Set(x, y, color.RGBA{255, 220, 180, 255})
			}
		}
	}
	return img
}

func TestSuggest_AspectAndBounds(t *testing.T) {
	s := New()
	img := busyImage(400, 300)

	tests := []struct {
		name   string
		rw, rh int
	}{
		{"portrait", 3, 4},
		{"landscape", 4, 3},
		{"square", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, err := s.Suggest(context.Background(), img, tt.rw, tt.rh)
			if err != nil {
				t.Fatalf("Suggest failed: %v", err)
			}
			if rect.Empty() {
				t.Fatal("expected non-empty rectangle")
			}
			if !rect.In(img.Bounds()) {
				t.Errorf("rectangle %v outside image %v", rect, img.Bounds())
			}
			got := float64(rect.Dx()) / float64(rect.Dy())
			want := float64(tt.rw) / float64(tt.rh)
			if math.Abs(got-want) > 0.05 {
				t.Errorf("aspect = %.3f, want %.3f (%v)", got, want, rect)
			}
		})
	}
}

func TestSuggest_InvalidInput(t *testing.T) {
	s := New()

	if _, err := s.Suggest(context.Background(), busyImage(10, 10), 0, 4); err == nil {
		t.Error("expected error for zero ratio")
	}
	if _, err := s.Suggest(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0)), 3, 4); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestSuggest_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Suggest(ctx, busyImage(40, 30), 3, 4); err == nil {
		t.Error("expected error for cancelled context")
	}
}
