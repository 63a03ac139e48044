package session

import (
	"errors"

	"github.com/user/posterkit/pkg/overlay"
	"github.com/user/posterkit/pkg/pipeline"
)

// Error is a failure shown to the user until dismissed.
type Error struct {
	Action  Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return string(e.Action) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Code classifies err for display.
func Code(err error) string {
	var (
		decodeErr  *pipeline.DecodeError
		regionErr  *pipeline.InvalidRegionError
		missingErr *pipeline.RenderTargetMissingError
	)
	switch {
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &regionErr):
		return "invalid_region"
	case errors.As(err, &missingErr):
		return "render_target_missing"
	case errors.Is(err, overlay.ErrUnsupportedRatio):
		return "unsupported_ratio"
	case errors.Is(err, ErrWrongPhase):
		return "wrong_state"
	}
	return "internal"
}
