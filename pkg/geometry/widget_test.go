package geometry

import (
	"image"
	"testing"

	"github.com/user/posterkit/pkg/pipeline"
)

func TestWidgetArea(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		aspect float64
		offset pipeline.CropOffset
		zoom   float64
		want   pipeline.CropRegion
	}{
		{
			name:   "square on landscape is centred full height",
			w:      1200,
			h:      900,
			aspect: 1,
			zoom:   1,
			want:   pipeline.CropRegion{X: 150, Y: 0, Width: 900, Height: 900, Zoom: 1},
		},
		{
			name:   "matching aspect covers the whole image",
			w:      1200,
			h:      900,
			aspect: 4.0 / 3.0,
			zoom:   1,
			want:   pipeline.CropRegion{X: 0, Y: 0, Width: 1200, Height: 900, Zoom: 1},
		},
		{
			name:   "zoom 2 halves the sides",
			w:      1200,
			h:      900,
			aspect: 4.0 / 3.0,
			zoom:   2,
			want:   pipeline.CropRegion{X: 300, Y: 225, Width: 600, Height: 450, Zoom: 2},
		},
		{
			name:   "offset beyond the edge is held inside",
			w:      1200,
			h:      900,
			aspect: 4.0 / 3.0,
			offset: pipeline.CropOffset{X: 90, Y: -90},
			zoom:   2,
			want:   pipeline.CropRegion{X: 600, Y: 0, Width: 600, Height: 450, Zoom: 2},
		},
		{
			name:   "zoom below one is treated as one",
			w:      900,
			h:      1200,
			aspect: 3.0 / 4.0,
			zoom:   0,
			want:   pipeline.CropRegion{X: 0, Y: 0, Width: 900, Height: 1200, Zoom: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WidgetArea(tt.w, tt.h, tt.aspect, tt.offset, tt.zoom)
			if got != tt.want {
				t.Errorf("WidgetArea() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClampZoom(t *testing.T) {
	if got := ClampZoom(10); got != MaxZoom {
		t.Errorf("ClampZoom(10) = %v, want %v", got, MaxZoom)
	}
	if got := ClampZoom(1.5); got != 1.5 {
		t.Errorf("ClampZoom(1.5) = %v", got)
	}
}

func TestWidgetPosition_RoundTrip(t *testing.T) {
	rects := []image.Rectangle{
		image.Rect(300, 0, 900, 600),
		image.Rect(150, 0, 1050, 900),
		image.Rect(0, 300, 600, 900),
	}

	for _, rect := range rects {
		offset, zoom := WidgetPosition(1200, 900, 1, rect)
		got := WidgetArea(1200, 900, 1, offset, zoom)
		want := pipeline.CropRegion{
			X: float64(rect.Min.X), Y: float64(rect.Min.Y),
			Width: float64(rect.Dx()), Height: float64(rect.Dy()),
			Zoom: zoom,
		}
		if got != want {
			t.Errorf("round trip of %v: got %+v, want %+v", rect, got, want)
		}
	}
}

func TestWidgetPosition_ClampsZoom(t *testing.T) {
	_, zoom := WidgetPosition(1200, 900, 1, image.Rect(0, 0, 100, 100))
	if zoom != MaxZoom {
		t.Errorf("zoom = %v, want %v", zoom, MaxZoom)
	}

	offset, zoom := WidgetPosition(0, 0, 1, image.Rect(0, 0, 10, 10))
	if zoom != MinZoom || offset != (pipeline.CropOffset{}) {
		t.Errorf("degenerate input: offset %+v zoom %v", offset, zoom)
	}
}
