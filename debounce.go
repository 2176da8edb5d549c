package scrollz

import (
	"context"
	"time"
)

// Debounce emits items only after a quiet period with no new items.
// It's useful for filtering out rapid successive events.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Debounce[T any] struct {
	name     string
	clock    Clock
	duration time.Duration
}

// NewDebounce creates a processor that delays and coalesces rapid events.
// Only the last item in a rapid sequence is emitted after the specified duration of inactivity.
//
// When to use:
//   - "Load more" buttons and scroll-to-bottom detection
//   - Search-as-you-type against a paged catalog
//   - Preventing excessive API calls from UI events
//
// Example:
//
//	// Only ask for the next page once the user stops hammering the button
//	debounce := scrollz.NewDebounce[scrollz.Signal](200*time.Millisecond, scrollz.RealClock)
//	settled := debounce.Process(ctx, loadMore)
//
// Parameters:
//   - duration: The quiet period before emitting an item
//   - clock: Clock interface for time operations
func NewDebounce[T any](duration time.Duration, clock Clock) *Debounce[T] {
	return &Debounce[T]{
		duration: duration,
		name:     "debounce",
		clock:    clock,
	}
}

// WithName sets a custom name for this processor.
// If not set, defaults to "debounce".
func (d *Debounce[T]) WithName(name string) *Debounce[T] {
	d.name = name
	return d
}

// Process debounces the input stream. A pending item is flushed when the
// input closes; errors pass through immediately and drop the pending item.
func (d *Debounce[T]) Process(ctx context.Context, in <-chan Result[T]) <-chan Result[T] {
	return NewCoalesce(After[T](d.duration, d.clock)).
		WithName(d.name).
		Process(ctx, in)
}

// Name returns the processor name for debugging and monitoring.
func (d *Debounce[T]) Name() string {
	return d.name
}
