// Package compose implements the composition view stage.
package compose

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"

	"github.com/user/posterkit/pkg/geometry"
	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
	"github.com/user/posterkit/pkg/stages/load"
)

// DefaultViewWidth is the on-screen width of the view in CSS pixels.
const DefaultViewWidth = 448

// Stage stacks the cropped photo (cover-fit) beneath the overlay template
// (contain-fit) and renders the view document.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger

	mu       sync.Mutex
	overlays map[string]string // ratio -> data URI
}

// NewStage creates a new compose stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("compose"),
		overlays: make(map[string]string),
	}
}

// Execute builds the composed poster for input.
func (s *Stage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.ComposedPoster, error) {
	result := pipeline.ComposedPoster{}

	if input.Cropped.Image == nil || input.Cropped.DataURI == "" {
		return result, errors.New("nothing to compose: no cropped image")
	}
	if input.Overlay.Image == nil {
		return result, fmt.Errorf("no overlay template for %s", input.Overlay.Choice.Name)
	}

	viewWidth := input.ViewWidth
	if viewWidth <= 0 {
		viewWidth = DefaultViewWidth
	}
	choice := input.Overlay.Choice
	w, h := geometry.ViewSize(viewWidth, choice.W, choice.H)
	if w == 0 || h == 0 {
		return result, fmt.Errorf("invalid ratio %s", choice.Name)
	}
	s.logger.Debug("Composing %s view %dx%d", choice.Name, w, h)

	overlayURI, err := s.overlayURI(input.Overlay)
	if err != nil {
		return result, err
	}

	html, err := renderHTML(viewVars{
		ElementID:  ElementID,
		Ratio:      choice.Name,
		Width:      w,
		Height:     h,
		PhotoSrc:   template.URL(input.Cropped.DataURI),
		OverlaySrc: template.URL(overlayURI),
	})
	if err != nil {
		return result, fmt.Errorf("render view: %w", err)
	}

	result = pipeline.ComposedPoster{
		Ratio: choice.Name,
		Target: ports.RenderTarget{
			HTML:      html,
			ElementID: ElementID,
			Width:     w,
			Height:    h,
			Layers: []ports.Layer{
				{Image: input.Cropped.Image, Fit: ports.FitCover},
				{Image: input.Overlay.Image, Fit: ports.FitContain},
			},
		},
	}

	if s.sink.Enabled() {
		s.sink.SaveOverlay(choice.Name, input.Overlay.Image)
		s.sink.SaveViewHTML(html)
	}

	return result, nil
}

// overlayURI encodes each template once per origin.
func (s *Stage) overlayURI(t overlay.Template) (string, error) {
	key := t.Choice.Name + "|" + t.Origin
	s.mu.Lock()
	defer s.mu.Unlock()
	if uri, ok := s.overlays[key]; ok {
		return uri, nil
	}
	data, err := s.renderer.EncodeImage(t.Image, ports.FormatPNG, 0)
	if err != nil {
		return "", fmt.Errorf("encode overlay %s: %w", t.Choice.Name, err)
	}
	uri := load.DataURI(ports.FormatPNG.MIMEType(), data)
	s.overlays[key] = uri
	return uri, nil
}
