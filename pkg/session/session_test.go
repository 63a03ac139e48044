package session

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/user/posterkit/pkg/adapters/logger"
	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
)

func loaded(w, h int) pipeline.LoadResult {
	return pipeline.LoadResult{
		Loaded: true,
		Source: pipeline.SourceImage{ID: "id", Name: "photo.jpg", Data: []byte{1, 2, 3}, Width: w, Height: h},
	}
}

func composedPoster() pipeline.ComposedPoster {
	return pipeline.ComposedPoster{
		Ratio:  "3:4",
		Target: ports.RenderTarget{ElementID: "final-poster", Width: 448, Height: 597},
	}
}

func cropped() pipeline.CroppedImage {
	return pipeline.CroppedImage{Width: 675, Height: 900, Image: image.NewRGBA(image.Rect(0, 0, 675, 900))}
}

func newLoaded(t *testing.T) *Session {
	t.Helper()
	s := New(overlay.Portrait, logger.NewNoop())
	if !s.CompleteLoad(s.BeginLoad(), loaded(1200, 900), nil) {
		t.Fatal("load should apply")
	}
	return s
}

func newComposed(t *testing.T) *Session {
	t.Helper()
	s := newLoaded(t)
	ticket, _, err := s.BeginCrop()
	if err != nil {
		t.Fatalf("BeginCrop failed: %v", err)
	}
	if !s.CompleteCrop(ticket, cropped(), composedPoster(), nil) {
		t.Fatal("crop should apply")
	}
	return s
}

func TestSession_Initial(t *testing.T) {
	s := New(overlay.Landscape, logger.NewNoop())

	if s.Phase() != PhaseEmpty {
		t.Errorf("phase = %v, want empty", s.Phase())
	}
	if s.Ratio() != overlay.Landscape {
		t.Errorf("ratio = %v", s.Ratio())
	}
	if s.Source() != nil || s.Cropped() != nil || s.Poster() != nil {
		t.Error("new session should hold nothing")
	}
}

func TestSession_SetRatioWithoutImage(t *testing.T) {
	s := New(overlay.Portrait, logger.NewNoop())

	if recrop := s.SetRatio(overlay.Square); recrop {
		t.Error("nothing to re-crop without an image")
	}
	if s.Ratio() != overlay.Square {
		t.Errorf("ratio = %v, want 1:1", s.Ratio())
	}
	if s.Phase() != PhaseEmpty {
		t.Errorf("phase = %v, want empty", s.Phase())
	}
}

func TestSession_LoadResetsToDefaultCrop(t *testing.T) {
	s := newLoaded(t)

	if s.Phase() != PhaseCropping {
		t.Fatalf("phase = %v, want cropping", s.Phase())
	}
	offset, zoom := s.Position()
	if offset != (pipeline.CropOffset{}) || zoom != 1 {
		t.Errorf("position = %+v zoom %v, want centred at zoom 1", offset, zoom)
	}
	region := s.Region()
	if region == nil {
		t.Fatal("expected default region")
	}
	if region.Width != 675 || region.Height != 900 {
		t.Errorf("default region = %+v, want 675x900", region)
	}

	// A second upload discards the derived image.
	ticket, _, _ := s.BeginCrop()
	s.CompleteCrop(ticket, cropped(), composedPoster(), nil)
	s.CompleteLoad(s.BeginLoad(), loaded(800, 600), nil)
	if s.Phase() != PhaseCropping || s.Cropped() != nil || s.Poster() != nil {
		t.Error("re-upload should return to cropping with no derived image")
	}
	if s.Source().Width != 800 {
		t.Error("re-upload should replace the source")
	}
}

func TestSession_LoadWithoutSelectionIsNoop(t *testing.T) {
	s := newComposed(t)

	if !s.CompleteLoad(s.BeginLoad(), pipeline.LoadResult{}, nil) {
		t.Error("current ticket should apply")
	}
	if s.Phase() != PhaseComposed || s.Cropped() == nil {
		t.Error("empty selection should leave state alone")
	}
}

func TestSession_LoadUnknownSizeHasNoRegion(t *testing.T) {
	s := New(overlay.Portrait, logger.NewNoop())
	s.CompleteLoad(s.BeginLoad(), loaded(0, 0), nil)

	if s.Region() != nil {
		t.Error("no default region without a natural size")
	}
	_, _, err := s.BeginCrop()
	var invalid *pipeline.InvalidRegionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRegionError, got %v", err)
	}
	if s.Err() == nil || s.Err().Code != "invalid_region" {
		t.Errorf("expected visible invalid_region error, got %+v", s.Err())
	}
}

func TestSession_CropInWrongPhaseIsVisible(t *testing.T) {
	s := New(overlay.Square, logger.NewNoop())

	_, _, err := s.BeginCrop()
	if !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
	if s.Err() == nil || s.Err().Code != "wrong_state" || s.Err().Action != KindCrop {
		t.Errorf("expected visible wrong_state crop error, got %+v", s.Err())
	}

	s = newComposed(t)
	if _, _, err := s.BeginCrop(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("crop while composed: expected ErrWrongPhase, got %v", err)
	}
	if s.Err() == nil || s.Err().Code != "wrong_state" {
		t.Errorf("expected visible wrong_state error, got %+v", s.Err())
	}
}

func TestSession_StaleLoadDiscarded(t *testing.T) {
	s := New(overlay.Portrait, logger.NewNoop())
	first := s.BeginLoad()
	second := s.BeginLoad()

	if !s.CompleteLoad(second, loaded(100, 100), nil) {
		t.Fatal("newest load should apply")
	}
	if s.CompleteLoad(first, loaded(999, 999), nil) {
		t.Error("superseded load should be discarded")
	}
	if s.Source().Width != 100 {
		t.Errorf("stale load overwrote source: %dx%d", s.Source().Width, s.Source().Height)
	}
}

func TestSession_StaleCropDiscardedAfterUpload(t *testing.T) {
	s := newLoaded(t)
	ticket, _, err := s.BeginCrop()
	if err != nil {
		t.Fatal(err)
	}

	s.CompleteLoad(s.BeginLoad(), loaded(640, 480), nil)

	if s.CompleteCrop(ticket, cropped(), composedPoster(), nil) {
		t.Error("crop issued before the upload should be discarded")
	}
	if s.Phase() != PhaseCropping || s.Cropped() != nil {
		t.Error("stale crop must not change state")
	}
}

func TestSession_StaleCropDiscardedAfterAdjust(t *testing.T) {
	s := newLoaded(t)
	ticket, _, _ := s.BeginCrop()

	if err := s.Adjust(pipeline.CropOffset{X: 5}, 2, pipeline.CropRegion{X: 10, Width: 100, Height: 100}); err != nil {
		t.Fatal(err)
	}
	if s.CompleteCrop(ticket, cropped(), composedPoster(), nil) {
		t.Error("crop of an outdated selection should be discarded")
	}
}

func TestSession_CropFailureKeepsCropping(t *testing.T) {
	s := newLoaded(t)
	ticket, input, _ := s.BeginCrop()
	if input.Source.ID != "id" {
		t.Errorf("crop input source = %+v", input.Source)
	}

	err := &pipeline.InvalidRegionError{Reason: "width 1300 exceeds image width 1200"}
	if !s.CompleteCrop(ticket, pipeline.CroppedImage{}, pipeline.ComposedPoster{}, err) {
		t.Fatal("current ticket should apply")
	}

	if s.Phase() != PhaseCropping {
		t.Errorf("phase = %v, want cropping", s.Phase())
	}
	if s.Cropped() != nil {
		t.Error("no cropped image on failure")
	}
	visible := s.Err()
	if visible == nil || visible.Code != "invalid_region" || visible.Action != KindCrop {
		t.Fatalf("expected visible crop error, got %+v", visible)
	}
	if !errors.Is(visible, err) {
		t.Error("visible error should wrap the cause")
	}

	s.Dismiss()
	if s.Err() != nil {
		t.Error("Dismiss should clear the error")
	}
}

func TestSession_CropSuccessComposes(t *testing.T) {
	s := newComposed(t)

	if s.Phase() != PhaseComposed {
		t.Fatalf("phase = %v, want composed", s.Phase())
	}
	if s.Poster() == nil || s.Cropped() == nil {
		t.Error("expected cropped image and poster")
	}
	if err := s.Adjust(pipeline.CropOffset{}, 1, pipeline.CropRegion{}); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("adjust while composed: got %v, want ErrWrongPhase", err)
	}
	if _, _, err := s.BeginCrop(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("crop while composed: got %v, want ErrWrongPhase", err)
	}
}

func TestSession_RatioChangeAfterCropForcesRecrop(t *testing.T) {
	s := newComposed(t)

	if !s.SetRatio(overlay.Landscape) {
		t.Error("expected re-crop to be required")
	}
	if s.Phase() != PhaseCropping {
		t.Errorf("phase = %v, want cropping", s.Phase())
	}
	if s.Cropped() != nil || s.Poster() != nil {
		t.Error("cropped image should be discarded")
	}
	if r := s.Region(); r == nil || r.Width != 1200 || r.Height != 900 {
		t.Errorf("region should follow the new ratio, got %+v", r)
	}

	if s.SetRatio(overlay.Landscape) {
		t.Error("same ratio is not a change")
	}
}

func TestSession_Recrop(t *testing.T) {
	s := newComposed(t)
	region := *s.Region()

	if err := s.Recrop(); err != nil {
		t.Fatalf("Recrop failed: %v", err)
	}
	if s.Phase() != PhaseCropping || s.Cropped() != nil {
		t.Error("recrop should return to cropping")
	}
	if *s.Region() != region {
		t.Error("recrop should keep the selection")
	}
	if err := s.Recrop(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("second recrop: got %v", err)
	}
}

func TestSession_ExportWithoutPoster(t *testing.T) {
	s := newLoaded(t)

	_, poster, err := s.BeginExport()
	var missing *pipeline.RenderTargetMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected RenderTargetMissingError, got %v", err)
	}
	if poster != nil {
		t.Error("no poster expected")
	}
	if s.Err() == nil || s.Err().Code != "render_target_missing" {
		t.Errorf("missing target should be visible, got %+v", s.Err())
	}
}

func TestSession_ExportLifecycle(t *testing.T) {
	s := newComposed(t)

	ticket, poster, err := s.BeginExport()
	if err != nil {
		t.Fatalf("BeginExport failed: %v", err)
	}
	if poster.Target.ElementID != "final-poster" {
		t.Errorf("unexpected poster %+v", poster)
	}

	result := pipeline.ExportResult{Filename: "poster.png", Width: 896, Height: 1194}
	if !s.CompleteExport(ticket, result, nil) {
		t.Fatal("export should apply")
	}
	snap := s.Snapshot()
	if snap.Export == nil || snap.Export.Filename != "poster.png" || snap.Export.Width != 896 {
		t.Errorf("unexpected export info %+v", snap.Export)
	}
	if s.Phase() != PhaseComposed {
		t.Error("export should not change the phase")
	}
}

func TestSession_StaleExportDiscarded(t *testing.T) {
	s := newComposed(t)
	ticket, _, _ := s.BeginExport()

	s.SetRatio(overlay.Square)

	if s.CompleteExport(ticket, pipeline.ExportResult{}, errors.New("late failure")) {
		t.Error("export of a superseded poster should be discarded")
	}
	if s.Err() != nil {
		t.Error("stale failure must not surface")
	}
}

func TestSession_Snapshot(t *testing.T) {
	s := newComposed(t)
	s.Fail(KindExport, errors.New("disk full"))

	snap := s.Snapshot()
	if snap.Phase != "composed" || snap.Ratio != "3:4" {
		t.Errorf("unexpected phase/ratio %q %q", snap.Phase, snap.Ratio)
	}
	if snap.Source == nil || snap.Source.Bytes != 3 || snap.Source.Name != "photo.jpg" {
		t.Errorf("unexpected source %+v", snap.Source)
	}
	if snap.Cropped == nil || snap.Cropped.Width != 675 {
		t.Errorf("unexpected cropped %+v", snap.Cropped)
	}
	if snap.View == nil || snap.View.Height != 597 {
		t.Errorf("unexpected view %+v", snap.View)
	}
	if snap.Error == nil || snap.Error.Code != "internal" || snap.Error.Action != "export" {
		t.Errorf("unexpected error %+v", snap.Error)
	}
	if snap.Generation != s.Generation() {
		t.Error("generation mismatch")
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&pipeline.DecodeError{Source: "x", Err: errors.New("bad")}, "decode"},
		{&pipeline.InvalidRegionError{}, "invalid_region"},
		{&pipeline.RenderTargetMissingError{}, "render_target_missing"},
		{ErrWrongPhase, "wrong_state"},
		{fmt.Errorf("set ratio: %w", overlay.ErrUnsupportedRatio), "unsupported_ratio"},
		{errors.New("other"), "internal"},
	}
	for _, tt := range tests {
		if got := Code(tt.err); got != tt.want {
			t.Errorf("Code(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
