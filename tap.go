package scrollz

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Tap executes a side effect function for each item while passing items through unchanged.
// In a scroll pipeline it is where the renderer hooks in: the accumulated
// list is drawn as it flows past, and the stream continues to whoever needs
// it next.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Tap[T any] struct {
	name string
	fn   func(Result[T])
}

// NewTap creates a processor that executes a side effect function on each Result[T]
// while passing all items through unchanged. The side effect function receives
// the complete Result[T], allowing it to handle both success and error cases.
//
// When to use:
//   - Rendering the accumulated list
//   - Debug logging and tracing
//   - Metrics collection
//   - Testing and verification
//
// Example:
//
//	render := scrollz.NewTap(func(list scrollz.Result[[]Movie]) {
//		if list.IsError() {
//			view.ShowRetry()
//			return
//		}
//		view.Render(list.Value())
//	}).WithName("render")
//
//	for range render.Process(ctx, lists) {
//	}
//
// Parameters:
//   - fn: Side effect function that receives each Result[T]
//
// Returns a new Tap processor.
func NewTap[T any](fn func(Result[T])) *Tap[T] {
	return &Tap[T]{
		name: "tap",
		fn:   fn,
	}
}

// WithName sets a custom name for this processor.
// If not set, defaults to "tap".
func (t *Tap[T]) WithName(name string) *Tap[T] {
	t.name = name
	return t
}

// Process executes the side effect function on each item while passing all items
// through unchanged. Both successful values and errors are observed and forwarded.
// A panicking side effect is logged and does not stop the stream.
func (t *Tap[T]) Process(ctx context.Context, in <-chan Result[T]) <-chan Result[T] {
	out := make(chan Result[T])

	go func() {
		defer close(out)

		for item := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}

			t.observe(item)

			if !send(ctx, out, item) {
				return
			}
		}
	}()

	return out
}

func (t *Tap[T]) observe(item Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("processor", t.name).
				Interface("panic", r).
				Msg("tap side effect panicked")
		}
	}()
	t.fn(item)
}

// Name returns the processor name for debugging and monitoring.
func (t *Tap[T]) Name() string {
	return t.name
}
