package scrollz

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Coalesce forwards only the last value received while a settling window is
// open. Every value opens a fresh window, cancelling the previous one, so a
// burst of values produces a single emission once the burst settles.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Coalesce[T any] struct {
	name   string
	window WindowFunc[T]
}

// NewCoalesce creates a processor that collapses bursts of values.
// The window function is called once per value to derive that value's
// settling window; the value is emitted when its window closes, unless a
// newer value supersedes it first.
//
// When to use:
//   - Collapsing synchronous bursts into one emission (Immediate)
//   - Debouncing with a per-value quiet period (AfterEach)
//   - Aligning emissions to an external tick such as a render frame (Until)
//
// Example:
//
//	// Emit the latest scroll position once per frame
//	frames := renderer.Frames()
//	coalesce := scrollz.NewCoalesce(scrollz.Until[Position](frames))
//	positions := coalesce.Process(ctx, scrolls)
//
//	// Wait longer after "load more" than after a filter change
//	coalesce := scrollz.NewCoalesce(scrollz.AfterEach(func(e Event) time.Duration {
//		if e.Kind == LoadMore {
//			return 300 * time.Millisecond
//		}
//		return 50 * time.Millisecond
//	}, scrollz.RealClock))
//
// Behavior:
//   - Completion flushes the pending value, then closes the output
//   - Errors are forwarded at once; the pending value is discarded
//   - Context cancellation closes the output without flushing
//   - Emissions carry MetadataCoalesced with the number of values collapsed
func NewCoalesce[T any](window WindowFunc[T]) *Coalesce[T] {
	return &Coalesce[T]{
		name:   "coalesce",
		window: window,
	}
}

// WithName sets a custom name for this processor.
// If not set, defaults to "coalesce".
func (c *Coalesce[T]) WithName(name string) *Coalesce[T] {
	c.name = name
	return c
}

// settling is the window state of one Process run: at most one open
// window and the value waiting on it.
type settling[T any] struct {
	pending Result[T]
	window  <-chan struct{}
	cancel  context.CancelFunc
	count   int
	open    bool
}

// supersede makes item the pending value and opens its window.
// The previous window, if any, is cancelled first.
func (s *settling[T]) supersede(ctx context.Context, item Result[T], fn WindowFunc[T]) {
	s.cancelWindow()

	wctx, cancel := context.WithCancel(ctx)
	s.pending = item
	s.count++
	s.cancel = cancel
	s.open = true
	s.window = fn(wctx, item.Value())
}

// take closes the window and returns the pending value.
func (s *settling[T]) take() (Result[T], int) {
	r, n := s.pending, s.count
	s.reset()
	return r.WithMetadata(MetadataCoalesced, n), n
}

func (s *settling[T]) cancelWindow() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.window = nil
}

func (s *settling[T]) reset() {
	s.cancelWindow()
	s.pending = Result[T]{}
	s.count = 0
	s.open = false
}

// Process coalesces the input stream. See NewCoalesce for semantics.
func (c *Coalesce[T]) Process(ctx context.Context, in <-chan Result[T]) <-chan Result[T] {
	out := make(chan Result[T])

	go func() {
		defer close(out)

		var s settling[T]
		defer s.reset()

		for {
			// Values already queued upstream belong to the current burst,
			// even when the window has closed in the meantime.
			if s.open {
				select {
				case item, ok := <-in:
					if !c.receive(ctx, out, &s, item, ok) {
						return
					}
					continue
				default:
				}
			}

			select {
			case <-ctx.Done():
				return
			case item, ok := <-in:
				if !c.receive(ctx, out, &s, item, ok) {
					return
				}
			case <-s.window:
				if !c.flush(ctx, out, &s) {
					return
				}
			}
		}
	}()

	return out
}

// receive applies one input event and reports whether the run continues.
func (c *Coalesce[T]) receive(ctx context.Context, out chan<- Result[T], s *settling[T], item Result[T], ok bool) bool {
	if !ok {
		if s.open {
			c.flush(ctx, out, s)
		}
		return false
	}

	if item.IsError() {
		s.reset()
		return send(ctx, out, passError(item, item.Error().Item, c.name))
	}

	s.supersede(ctx, item, c.window)
	return true
}

func (c *Coalesce[T]) flush(ctx context.Context, out chan<- Result[T], s *settling[T]) bool {
	r, n := s.take()
	capitan.Emit(ctx, CoalesceFlushed,
		KeyProcessor.Field(c.name),
		KeyCoalesced.Field(n),
	)
	return send(ctx, out, r)
}

// Name returns the processor name for debugging and monitoring.
func (c *Coalesce[T]) Name() string {
	return c.name
}
