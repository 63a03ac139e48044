// Package orchestrator drives the pipeline stages against a session.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/user/posterkit/pkg/geometry"
	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
	"github.com/user/posterkit/pkg/session"
	"github.com/user/posterkit/pkg/stages/compose"
	"github.com/user/posterkit/pkg/stages/export"
)

// ErrSuperseded is returned when an action finished after a newer action
// replaced the state it was working on. Its result was discarded.
var ErrSuperseded = errors.New("result superseded by a newer action")

// Config contains the orchestrator settings.
type Config struct {
	ViewWidth int     // CSS pixels
	Scale     float64 // export upscale factor
	OutputDir string  // empty: export returns bytes only
	Filename  string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ViewWidth: compose.DefaultViewWidth,
		Scale:     export.DefaultScale,
		OutputDir: ".",
		Filename:  export.DefaultFilename,
	}
}

// Stages groups the pipeline stages.
type Stages struct {
	Load    pipeline.Stage[pipeline.LoadInput, pipeline.LoadResult]
	Crop    pipeline.Stage[pipeline.CropInput, pipeline.CroppedImage]
	Compose pipeline.Stage[pipeline.ComposeInput, pipeline.ComposedPoster]
	Export  pipeline.Stage[pipeline.ExportInput, pipeline.ExportResult]
}

// Templates resolves the overlay for a ratio.
type Templates interface {
	Template(c overlay.Choice) (overlay.Template, error)
}

// Orchestrator turns user actions into stage executions and session
// transitions. Every failure is logged and left visible on the session.
type Orchestrator struct {
	stages    Stages
	templates Templates
	renderer  ports.Renderer
	suggester ports.Suggester
	session   *session.Session
	config    Config
	logger    ports.Logger
}

// New creates a new Orchestrator. suggester may be nil.
func New(
	stages Stages,
	templates Templates,
	renderer ports.Renderer,
	suggester ports.Suggester,
	sess *session.Session,
	config Config,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		stages:    stages,
		templates: templates,
		renderer:  renderer,
		suggester: suggester,
		session:   sess,
		config:    config,
		logger:    logger,
	}
}

// Session returns the session being driven.
func (o *Orchestrator) Session() *session.Session {
	return o.session
}

// Load replaces the source image. An empty input is a no-op.
func (o *Orchestrator) Load(ctx context.Context, input pipeline.LoadInput) error {
	ticket := o.session.BeginLoad()
	result, err := o.stages.Load.Execute(ctx, input)
	if err != nil {
		o.logger.Error("Failed to load image: %s", err)
		err = fmt.Errorf("load stage: %w", err)
	}
	if !o.session.CompleteLoad(ticket, result, err) {
		return ErrSuperseded
	}
	if err != nil {
		return err
	}
	if !result.Loaded {
		o.logger.Info("No file selected")
		return nil
	}
	src := result.Source
	o.logger.Info("Loaded %s (%s, %d bytes)", src.Name, src.MIMEType, len(src.Data))
	return nil
}

// SetRatio switches the aspect ratio by name.
func (o *Orchestrator) SetRatio(name string) error {
	c, err := overlay.ParseChoice(name)
	if err != nil {
		o.session.Fail(session.KindCrop, err)
		return err
	}
	if _, err := o.templates.Template(c); err != nil {
		o.session.Fail(session.KindCrop, err)
		return err
	}
	o.session.SetRatio(c)
	o.logger.Info("Aspect ratio set to %s", c.Name)
	return nil
}

// Adjust moves the crop widget to offset and zoom and records the
// rectangle the widget reports for them.
func (o *Orchestrator) Adjust(ctx context.Context, offset pipeline.CropOffset, zoom float64) error {
	w, h, err := o.nativeSize()
	if err != nil {
		o.session.Fail(session.KindCrop, err)
		return err
	}
	region := geometry.WidgetArea(w, h, o.session.Ratio().Aspect(), offset, zoom)
	return o.Report(offset, zoom, region)
}

// Report records a rectangle reported by an external crop widget. The
// region may be in any reference space; the resolver maps it later.
func (o *Orchestrator) Report(offset pipeline.CropOffset, zoom float64, region pipeline.CropRegion) error {
	if err := o.session.Adjust(offset, zoom, region); err != nil {
		o.session.Fail(session.KindCrop, err)
		return err
	}
	o.logger.Debug("Crop adjusted: %.0fx%.0f at %.0f,%.0f (zoom %.2f)", region.Width, region.Height, region.X, region.Y, zoom)
	return nil
}

// Suggest positions the crop widget on the most interesting area of the
// source for the current ratio.
func (o *Orchestrator) Suggest(ctx context.Context) error {
	if o.suggester == nil {
		err := errors.New("crop suggestion is not available")
		o.session.Fail(session.KindCrop, err)
		return err
	}
	src := o.session.Source()
	if src == nil {
		err := fmt.Errorf("suggest crop: %w", session.ErrWrongPhase)
		o.session.Fail(session.KindCrop, err)
		return err
	}
	img, err := o.decode(*src)
	if err != nil {
		o.session.Fail(session.KindCrop, err)
		return err
	}

	ratio := o.session.Ratio()
	rect, err := o.suggester.Suggest(ctx, img, ratio.W, ratio.H)
	if err != nil {
		o.session.Fail(session.KindCrop, err)
		return fmt.Errorf("suggest crop: %w", err)
	}
	rect = rect.Sub(img.Bounds().Min)
	o.logger.Info("Suggested crop %dx%d at %d,%d", rect.Dx(), rect.Dy(), rect.Min.X, rect.Min.Y)

	b := img.Bounds()
	offset, zoom := geometry.WidgetPosition(b.Dx(), b.Dy(), ratio.Aspect(), rect)
	return o.Report(offset, zoom, geometry.WidgetArea(b.Dx(), b.Dy(), ratio.Aspect(), offset, zoom))
}

// Crop resolves the current selection and composes the poster view.
func (o *Orchestrator) Crop(ctx context.Context) error {
	if o.session.Phase() == session.PhaseCropping && o.session.Source() != nil && o.session.Region() == nil {
		// The loader could not size the image; decoding it now either
		// places the default crop or surfaces the decode failure.
		if err := o.Adjust(ctx, pipeline.CropOffset{}, 1); err != nil {
			o.logger.Error("Failed to crop image: %s", err)
			return err
		}
	}
	ticket, input, err := o.session.BeginCrop()
	if err != nil {
		o.logger.Error("Failed to crop image: %s", err)
		return err
	}
	ratio := o.session.Ratio()

	cropped, poster, err := o.cropAndCompose(ctx, input, ratio)
	if !o.session.CompleteCrop(ticket, cropped, poster, err) {
		return ErrSuperseded
	}
	if err != nil {
		return err
	}
	o.logger.Info("Cropped to %dx%d", cropped.Width, cropped.Height)
	return nil
}

func (o *Orchestrator) cropAndCompose(ctx context.Context, input pipeline.CropInput, ratio overlay.Choice) (pipeline.CroppedImage, pipeline.ComposedPoster, error) {
	cropped, err := o.stages.Crop.Execute(ctx, input)
	if err != nil {
		o.logger.Error("Failed to crop image: %s", err)
		return pipeline.CroppedImage{}, pipeline.ComposedPoster{}, fmt.Errorf("crop stage: %w", err)
	}

	tmpl, err := o.templates.Template(ratio)
	if err != nil {
		o.logger.Error("Failed to compose poster: %s", err)
		return pipeline.CroppedImage{}, pipeline.ComposedPoster{}, err
	}
	poster, err := o.stages.Compose.Execute(ctx, pipeline.ComposeInput{
		Cropped:   cropped,
		Overlay:   tmpl,
		ViewWidth: o.config.ViewWidth,
	})
	if err != nil {
		o.logger.Error("Failed to compose poster: %s", err)
		return pipeline.CroppedImage{}, pipeline.ComposedPoster{}, fmt.Errorf("compose stage: %w", err)
	}
	return cropped, poster, nil
}

// Recrop returns from the composed view to the crop widget.
func (o *Orchestrator) Recrop() error {
	if err := o.session.Recrop(); err != nil {
		o.session.Fail(session.KindCrop, err)
		return err
	}
	return nil
}

// Export flattens the composed view and delivers poster.png.
func (o *Orchestrator) Export(ctx context.Context) (pipeline.ExportResult, error) {
	ticket, poster, err := o.session.BeginExport()
	if err != nil {
		o.logger.Error("Failed to export poster: %s", err)
		return pipeline.ExportResult{}, err
	}

	result, err := o.stages.Export.Execute(ctx, pipeline.ExportInput{
		Poster:    poster,
		Scale:     o.config.Scale,
		OutputDir: o.config.OutputDir,
		Filename:  o.config.Filename,
	})
	if err != nil {
		o.logger.Error("Failed to export poster: %s", err)
		err = fmt.Errorf("export stage: %w", err)
	}
	if !o.session.CompleteExport(ticket, result, err) {
		return pipeline.ExportResult{}, ErrSuperseded
	}
	if err != nil {
		return pipeline.ExportResult{}, err
	}

	where := result.Path
	if where == "" {
		where = result.Filename
	}
	o.logger.Info("Poster saved to %s (%dx%d)", where, result.Width, result.Height)
	return result, nil
}

// Dismiss clears the visible error.
func (o *Orchestrator) Dismiss() {
	o.session.Dismiss()
}

// nativeSize returns the source's pixel size, decoding when the header
// could not be read at load time.
func (o *Orchestrator) nativeSize() (int, int, error) {
	src := o.session.Source()
	if src == nil {
		return 0, 0, fmt.Errorf("adjust crop: %w", session.ErrWrongPhase)
	}
	if src.Width > 0 && src.Height > 0 {
		return src.Width, src.Height, nil
	}
	img, err := o.decode(*src)
	if err != nil {
		return 0, 0, err
	}
	return img.Bounds().Dx(), img.Bounds().Dy(), nil
}

func (o *Orchestrator) decode(src pipeline.SourceImage) (image.Image, error) {
	img, err := o.renderer.DecodeImage(src.Data)
	if err != nil {
		return nil, &pipeline.DecodeError{Source: src.Name, Err: err}
	}
	return img, nil
}
