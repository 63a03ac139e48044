package pipeline

import "fmt"

// DecodeError reports image bytes that could not be decoded.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidRegionError reports a degenerate crop rectangle or one that cannot
// fit inside the native image.
type InvalidRegionError struct {
	Reason string
}

func (e *InvalidRegionError) Error() string {
	return "invalid crop region: " + e.Reason
}

// RenderTargetMissingError reports an export requested before a composed
// view exists.
type RenderTargetMissingError struct {
	ElementID string
}

func (e *RenderTargetMissingError) Error() string {
	if e.ElementID == "" {
		return "render target missing: nothing has been composed yet"
	}
	return fmt.Sprintf("render target missing: element #%s not found", e.ElementID)
}
