// Package session holds the state of one poster-making session as an
// explicit state machine.
//
// Every transition that supersedes earlier work advances the generation.
// Asynchronous work (load, crop, export) is started with a Ticket carrying
// the generation it was issued against; when the work completes, results
// from a superseded generation are discarded instead of overwriting newer
// state. Failures become the session's visible error until dismissed or
// superseded.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/user/posterkit/pkg/geometry"
	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/pipeline"
	"github.com/user/posterkit/pkg/ports"
)

// Phase is the coarse state of the session.
type Phase int

const (
	// PhaseEmpty means no image has been loaded.
	PhaseEmpty Phase = iota
	// PhaseCropping means an image is loaded and the crop widget is active.
	PhaseCropping
	// PhaseComposed means a cropped image is shown beneath the overlay.
	PhaseComposed
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseCropping:
		return "cropping"
	case PhaseComposed:
		return "composed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Kind names the asynchronous operation a Ticket belongs to.
type Kind string

const (
	KindLoad   Kind = "load"
	KindCrop   Kind = "crop"
	KindExport Kind = "export"
)

// Ticket identifies one asynchronous operation.
type Ticket struct {
	Kind       Kind
	Generation uint64
}

// ErrWrongPhase is returned when an action is not allowed in the current phase.
var ErrWrongPhase = errors.New("action not available in this state")

// Session is safe for concurrent use.
type Session struct {
	mu     sync.Mutex
	logger ports.Logger

	generation uint64
	phase      Phase
	ratio      overlay.Choice

	source *pipeline.SourceImage
	offset pipeline.CropOffset
	zoom   float64
	region *pipeline.CropRegion

	cropped *pipeline.CroppedImage
	poster  *pipeline.ComposedPoster
	export  *ExportInfo

	err *Error
}

// ExportInfo describes the last delivered poster.
type ExportInfo struct {
	Filename string    `json:"filename"`
	Path     string    `json:"path,omitempty"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	At       time.Time `json:"at"`
}

// New creates an empty session with the given initial ratio.
func New(ratio overlay.Choice, logger ports.Logger) *Session {
	return &Session{
		logger: logger.WithComponent("session"),
		ratio:  ratio,
		zoom:   geometry.MinZoom,
	}
}

// Generation returns the current generation.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Ratio returns the active aspect ratio.
func (s *Session) Ratio() overlay.Choice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratio
}

// Source returns the loaded image, or nil.
func (s *Session) Source() *pipeline.SourceImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Cropped returns the current cropped image, or nil.
func (s *Session) Cropped() *pipeline.CroppedImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cropped
}

// Poster returns the composed poster, or nil outside PhaseComposed.
func (s *Session) Poster() *pipeline.ComposedPoster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.poster
}

// advance must be called with mu held.
func (s *Session) advance() {
	s.generation++
}

// stale must be called with mu held.
func (s *Session) stale(t Ticket) bool {
	if t.Generation == s.generation {
		return false
	}
	s.logger.Warn("Discarded stale %s result from generation %d (current %d)", t.Kind, t.Generation, s.generation)
	return true
}

// BeginLoad starts an upload. Anything still pending is superseded from
// this point on, even if the new load turns out to be empty.
func (s *Session) BeginLoad() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advance()
	return Ticket{Kind: KindLoad, Generation: s.generation}
}

// CompleteLoad applies a load result. A successful load replaces the source
// and resets crop, zoom and any derived image; an empty selection changes
// nothing. It reports whether the result was applied.
func (s *Session) CompleteLoad(t Ticket, result pipeline.LoadResult, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(t) {
		return false
	}
	if err != nil {
		s.fail(KindLoad, err)
		return true
	}
	if !result.Loaded {
		return true
	}

	src := result.Source
	s.advance()
	s.phase = PhaseCropping
	s.source = &src
	s.offset = pipeline.CropOffset{}
	s.zoom = geometry.MinZoom
	s.cropped = nil
	s.poster = nil
	s.export = nil
	s.err = nil
	s.resetRegion()
	return true
}

// resetRegion sets the widget's default rectangle when the natural size is
// known. Must be called with mu held.
func (s *Session) resetRegion() {
	s.region = nil
	if s.source == nil || s.source.Width <= 0 || s.source.Height <= 0 {
		return
	}
	r := geometry.WidgetArea(s.source.Width, s.source.Height, s.ratio.Aspect(), s.offset, s.zoom)
	s.region = &r
}

// SetRatio switches the aspect ratio and therefore the overlay template. It
// is allowed in every phase. In PhaseComposed the cropped image no longer
// matches the ratio, so it is discarded and the session returns to
// PhaseCropping; the return value reports that.
func (s *Session) SetRatio(c overlay.Choice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c == s.ratio {
		return false
	}
	s.advance()
	s.ratio = c
	s.resetRegion()

	if s.phase != PhaseComposed {
		return false
	}
	s.phase = PhaseCropping
	s.cropped = nil
	s.poster = nil
	s.logger.Warn("Ratio changed after cropping; crop again")
	return true
}

// Adjust records the widget's pan offset and zoom and the rectangle it
// reports for them.
func (s *Session) Adjust(offset pipeline.CropOffset, zoom float64, region pipeline.CropRegion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseCropping {
		return fmt.Errorf("adjust crop in %s: %w", s.phase, ErrWrongPhase)
	}
	s.advance()
	s.offset = offset
	s.zoom = geometry.ClampZoom(zoom)
	s.region = &region
	return nil
}

// Position returns the widget offset and zoom.
func (s *Session) Position() (pipeline.CropOffset, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset, s.zoom
}

// Region returns the last reported crop rectangle, or nil.
func (s *Session) Region() *pipeline.CropRegion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region
}

// Recrop leaves PhaseComposed and returns to the crop widget with the
// previous selection.
func (s *Session) Recrop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseComposed {
		return fmt.Errorf("recrop in %s: %w", s.phase, ErrWrongPhase)
	}
	s.advance()
	s.phase = PhaseCropping
	s.cropped = nil
	s.poster = nil
	return nil
}

// BeginCrop issues a crop ticket together with the resolver input.
func (s *Session) BeginCrop() (Ticket, pipeline.CropInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseCropping || s.source == nil {
		err := fmt.Errorf("crop in %s: %w", s.phase, ErrWrongPhase)
		s.fail(KindCrop, err)
		return Ticket{}, pipeline.CropInput{}, err
	}
	if s.region == nil {
		err := &pipeline.InvalidRegionError{Reason: "no crop selection has been made"}
		s.fail(KindCrop, err)
		return Ticket{}, pipeline.CropInput{}, err
	}
	return Ticket{Kind: KindCrop, Generation: s.generation},
		pipeline.CropInput{Source: *s.source, Region: *s.region},
		nil
}

// CompleteCrop applies a crop result. On failure the session stays in
// PhaseCropping with the error visible; on success it moves to
// PhaseComposed. It reports whether the result was applied.
func (s *Session) CompleteCrop(t Ticket, cropped pipeline.CroppedImage, poster pipeline.ComposedPoster, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(t) {
		return false
	}
	if err != nil {
		s.fail(KindCrop, err)
		return true
	}
	s.advance()
	s.phase = PhaseComposed
	s.cropped = &cropped
	s.poster = &poster
	s.err = nil
	return true
}

// BeginExport issues an export ticket for the composed poster. Without one
// it fails with a RenderTargetMissingError, which also becomes the
// visible error.
func (s *Session) BeginExport() (Ticket, *pipeline.ComposedPoster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseComposed || s.poster == nil {
		err := &pipeline.RenderTargetMissingError{}
		s.fail(KindExport, err)
		return Ticket{}, nil, err
	}
	return Ticket{Kind: KindExport, Generation: s.generation}, s.poster, nil
}

// CompleteExport records an export outcome. Exports do not change the
// phase. It reports whether the result was applied.
func (s *Session) CompleteExport(t Ticket, result pipeline.ExportResult, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(t) {
		return false
	}
	if err != nil {
		s.fail(KindExport, err)
		return true
	}
	s.err = nil
	s.export = &ExportInfo{
		Filename: result.Filename,
		Path:     result.Path,
		Width:    result.Width,
		Height:   result.Height,
		At:       time.Now(),
	}
	return true
}

// Fail records err as the visible error for an action that never got a
// ticket, such as an invalid request.
func (s *Session) Fail(kind Kind, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail(kind, err)
}

// fail must be called with mu held.
func (s *Session) fail(kind Kind, err error) {
	s.err = &Error{Action: kind, Code: Code(err), Message: err.Error(), Err: err}
}

// Err returns the visible error, or nil.
func (s *Session) Err() *Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Dismiss clears the visible error.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
}
