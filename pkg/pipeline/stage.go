// Package pipeline holds the stage abstraction and the data passed between
// the load, crop, compose and export stages.
package pipeline

import "context"

// Stage is one step of the poster pipeline. Execute either fully succeeds
// or returns an error with no partial output.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}
