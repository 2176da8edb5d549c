package scrollz

import (
	"context"
	"time"
)

// WindowFunc opens a settling window for a value. The window closes on the
// first receive from the returned channel or when it is closed, whichever
// happens first. A nil channel never closes.
//
// ctx is cancelled as soon as the window is superseded or the stream stops.
// Implementations should release timers and goroutines when that happens;
// a superseded window's later close is ignored either way.
type WindowFunc[T any] func(ctx context.Context, value T) <-chan struct{}

var closedWindow = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Immediate returns a zero-duration window. Values that are already queued
// upstream when the window opens still collapse into one emission.
func Immediate[T any]() WindowFunc[T] {
	return func(context.Context, T) <-chan struct{} {
		return closedWindow
	}
}

// After returns a window that closes once d has elapsed on clock.
func After[T any](d time.Duration, clock Clock) WindowFunc[T] {
	return AfterEach(func(T) time.Duration { return d }, clock)
}

// AfterEach returns a window whose duration is derived from each value.
func AfterEach[T any](duration func(T) time.Duration, clock Clock) WindowFunc[T] {
	return func(ctx context.Context, value T) <-chan struct{} {
		d := duration(value)
		if d <= 0 {
			return closedWindow
		}

		done := make(chan struct{})
		timer := clock.AfterFunc(d, func() { close(done) })
		context.AfterFunc(ctx, func() { timer.Stop() })
		return done
	}
}

// Until returns a window gated by an external channel, such as a frame
// tick. Every open window shares the gate; one event closes one window.
func Until[T any](gate <-chan struct{}) WindowFunc[T] {
	return func(context.Context, T) <-chan struct{} {
		return gate
	}
}
