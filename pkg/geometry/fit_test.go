package geometry

import (
	"image"
	"testing"
)

func TestCoverRect(t *testing.T) {
	box := image.Rect(0, 0, 400, 400)

	got := CoverRect(800, 600, box)
	want := image.Rect(-66, 0, 467, 400)
	if got != want {
		t.Errorf("CoverRect(800x600) = %v, want %v", got, want)
	}
	if got.Dx() < box.Dx() || got.Dy() < box.Dy() {
		t.Errorf("cover result %v does not cover %v", got, box)
	}
}

func TestContainRect(t *testing.T) {
	box := image.Rect(0, 0, 400, 300)

	tests := []struct {
		name       string
		srcW, srcH int
		want       image.Rectangle
	}{
		{"same aspect fills", 1200, 900, image.Rect(0, 0, 400, 300)},
		{"square is pillarboxed", 1000, 1000, image.Rect(50, 0, 350, 300)},
		{"wide is letterboxed", 800, 200, image.Rect(0, 100, 400, 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainRect(tt.srcW, tt.srcH, box); got != tt.want {
				t.Errorf("ContainRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewSize(t *testing.T) {
	w, h := ViewSize(448, 3, 4)
	if w != 448 || h != 597 {
		t.Errorf("ViewSize(448, 3:4) = %dx%d, want 448x597", w, h)
	}
	if w, h := ViewSize(0, 1, 1); w != 0 || h != 0 {
		t.Errorf("ViewSize(0) = %dx%d, want 0x0", w, h)
	}
}
