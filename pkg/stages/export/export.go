// Package export implements the exporter stage.
package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/posterkit/pkg/geometry"
	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
)

const (
	// DefaultScale is the upscale factor applied to the on-screen view.
	DefaultScale = 2.0
	// DefaultFilename is the name offered for the download.
	DefaultFilename = "poster.png"
)

// Stage flattens a composed poster into a PNG.
type Stage struct {
	rasterizer ports.Rasterizer
	renderer   ports.Renderer
	fs         ports.FileSystem
	sink       ports.DebugSink
	logger     ports.Logger
}

// NewStage creates a new export stage.
func NewStage(rasterizer ports.Rasterizer, renderer ports.Renderer, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		rasterizer: rasterizer,
		renderer:   renderer,
		fs:         fs,
		sink:       sink,
		logger:     logger.WithComponent("export"),
	}
}

// Execute rasterizes the poster at input.Scale and encodes it. The file is
// written to OutputDir/Filename unless OutputDir is empty, in which case
// only the bytes are returned.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExportInput) (pipeline.ExportResult, error) {
	result := pipeline.ExportResult{}

	if input.Poster == nil {
		return result, &pipeline.RenderTargetMissingError{}
	}
	target := input.Poster.Target
	if target.ElementID == "" || target.Width <= 0 || target.Height <= 0 {
		return result, &pipeline.RenderTargetMissingError{ElementID: target.ElementID}
	}

	scale := input.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	filename := input.Filename
	if filename == "" {
		filename = DefaultFilename
	}

	img, err := s.rasterizer.Rasterize(ctx, target, scale)
	if err != nil {
		return result, fmt.Errorf("rasterize: %w", err)
	}

	// Browsers may round the element box differently; the output is pinned
	// to the view size times scale.
	wantW, wantH := geometry.Scaled(target.Width, scale), geometry.Scaled(target.Height, scale)
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		s.logger.Debug("Rasterized %dx%d, resampling to %dx%d", b.Dx(), b.Dy(), wantW, wantH)
		img = s.renderer.ResizeImage(img, wantW, wantH)
	}

	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return result, fmt.Errorf("encode poster: %w", err)
	}

	result = pipeline.ExportResult{
		Filename: filename,
		Data:     data,
		Width:    wantW,
		Height:   wantH,
	}

	if input.OutputDir != "" {
		result.Path = filepath.Join(input.OutputDir, filename)
		if err := s.fs.WriteFile(result.Path, data); err != nil {
			return pipeline.ExportResult{}, fmt.Errorf("write %s: %w", result.Path, err)
		}
	}

	if s.sink.Enabled() {
		s.sink.SavePoster(img)
	}

	return result, nil
}
