package load

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/user/posterkit/pkg/adapters/ggrenderer"
	"github.com/user/posterkit/pkg/adapters/logger"
	"github.com/user/posterkit/pkg/mocks"
	"github.com/user/posterkit/pkg/pipeline"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestStage_Execute_NoSelection(t *testing.T) {
	stage := NewStage(mocks.NewFileSystem(), ggrenderer.New(), mocks.NewDebugSink(false), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.LoadInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Loaded {
		t.Error("expected Loaded=false when nothing is selected")
	}
}

func TestStage_Execute_FromPath(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.PutFile("/photos/cat.png", pngBytes(t, 120, 90))
	stage := NewStage(fs, ggrenderer.New(), mocks.NewDebugSink(false), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.LoadInput{Path: "/photos/cat.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Loaded {
		t.Fatal("expected Loaded=true")
	}

	src := result.Source
	if src.Name != "cat.png" {
		t.Errorf("Name = %q, want cat.png", src.Name)
	}
	if src.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q, want image/png", src.MIMEType)
	}
	if src.Width != 120 || src.Height != 90 {
		t.Errorf("size = %dx%d, want 120x90", src.Width, src.Height)
	}
	if !strings.HasPrefix(src.DataURI, "data:image/png;base64,") {
		t.Errorf("unexpected data URI prefix: %.40s", src.DataURI)
	}
	if src.ID == "" {
		t.Error("expected an ID")
	}
}

func TestStage_Execute_UploadedBytes(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	stage := NewStage(mocks.NewFileSystem(), ggrenderer.New(), sink, logger.NewNoop())
	data := pngBytes(t, 10, 20)

	first, err := stage.Execute(context.Background(), pipeline.LoadInput{Name: "camera.png", Data: data})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := stage.Execute(context.Background(), pipeline.LoadInput{Name: "camera.png", Data: data})

	if first.Source.ID == second.Source.ID {
		t.Error("each load should get a fresh ID")
	}
	if sink.SourceName != "camera.png" || !bytes.Equal(sink.Source, data) {
		t.Error("expected source to be saved to debug sink")
	}
}

func TestStage_Execute_NotAnImage(t *testing.T) {
	stage := NewStage(mocks.NewFileSystem(), ggrenderer.New(), mocks.NewDebugSink(false), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.LoadInput{Name: "notes.txt", Data: []byte("hello world")})
	if err != nil {
		t.Fatalf("loader should not validate, got %v", err)
	}
	if !result.Loaded {
		t.Fatal("expected Loaded=true")
	}
	if result.Source.Width != 0 || result.Source.Height != 0 {
		t.Errorf("expected unknown dimensions, got %dx%d", result.Source.Width, result.Source.Height)
	}
	if !strings.HasPrefix(result.Source.MIMEType, "text/plain") {
		t.Errorf("MIMEType = %q", result.Source.MIMEType)
	}
}

func TestStage_Execute_ReadError(t *testing.T) {
	stage := NewStage(mocks.NewFileSystem(), ggrenderer.New(), mocks.NewDebugSink(false), logger.NewNoop())

	if _, err := stage.Execute(context.Background(), pipeline.LoadInput{Path: "/missing.jpg"}); err == nil {
		t.Error("expected error for unreadable path")
	}
}
