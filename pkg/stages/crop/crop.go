// Package crop implements the crop geometry resolver stage.
package crop

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/user/posterkit/pkg/geometry"
	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
	"github.com/user/posterkit/pkg/stages/load"
)

// Stage extracts the selected window of a source image at native
// resolution. It either fully succeeds or returns an error and no image.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new crop stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("crop"),
	}
}

// Execute decodes the source, maps the region onto native pixels and
// copies that window 1:1 into a new PNG.
func (s *Stage) Execute(ctx context.Context, input pipeline.CropInput) (pipeline.CroppedImage, error) {
	result := pipeline.CroppedImage{}

	// The header dimensions on SourceImage are not trusted; decode fully.
	img, err := s.renderer.DecodeImage(input.Source.Data)
	if err != nil {
		return result, &pipeline.DecodeError{Source: sourceLabel(input.Source), Err: err}
	}
	bounds := img.Bounds()
	s.logger.Debug("Decoded source %dx%d", bounds.Dx(), bounds.Dy())

	rect, err := geometry.Resolve(bounds.Dx(), bounds.Dy(), input.Region)
	if err != nil {
		return result, err
	}
	s.logger.Debug("Resolved native rectangle %v", rect)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	out := imaging.Crop(img, rect.Add(bounds.Min))
	if out.Bounds().Dx() != rect.Dx() || out.Bounds().Dy() != rect.Dy() {
		return result, fmt.Errorf("copied %v, expected %dx%d", out.Bounds(), rect.Dx(), rect.Dy())
	}

	data, err := s.renderer.EncodeImage(out, ports.FormatPNG, 0)
	if err != nil {
		return result, fmt.Errorf("encode crop: %w", err)
	}
	s.logger.Debug("Encoded crop: %d bytes", len(data))

	result = pipeline.CroppedImage{
		Data:    data,
		DataURI: load.DataURI(ports.FormatPNG.MIMEType(), data),
		Image:   out,
		Width:   rect.Dx(),
		Height:  rect.Dy(),
		Rect:    rect,
	}

	if s.sink.Enabled() {
		s.sink.SaveCropped(out)
	}

	return result, nil
}

func sourceLabel(src pipeline.SourceImage) string {
	if src.Name != "" {
		return src.Name
	}
	if src.ID != "" {
		return src.ID
	}
	return "source image"
}
