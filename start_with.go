package scrollz

import "context"

// StartWith emits a seed value before forwarding its input unchanged.
// Paired with a Paginator it supplies the "load first page" signal that a
// bare trigger source does not produce on its own.
type StartWith[T any] struct {
	name string
	seed T
}

// NewStartWith creates a processor that prepends seed to the stream.
//
// Example:
//
//	// Buttons only fire on click; the first page must load regardless.
//	triggers := scrollz.NewStartWith(scrollz.Signal{}).Process(ctx, clicks)
//	lists := paginator.Process(ctx, triggers)
func NewStartWith[T any](seed T) *StartWith[T] {
	return &StartWith[T]{
		name: "start-with",
		seed: seed,
	}
}

// WithName sets a custom name for this processor.
// If not set, defaults to "start-with".
func (s *StartWith[T]) WithName(name string) *StartWith[T] {
	s.name = name
	return s
}

// Process emits the seed, then every input Result, then closes.
func (s *StartWith[T]) Process(ctx context.Context, in <-chan Result[T]) <-chan Result[T] {
	out := make(chan Result[T])

	go func() {
		defer close(out)

		if !send(ctx, out, NewSuccess(s.seed)) {
			return
		}

		for {
			select {
			case item, ok := <-in:
				if !ok {
					return
				}
				if !send(ctx, out, item) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Name returns the processor name for debugging and monitoring.
func (s *StartWith[T]) Name() string {
	return s.name
}

// send delivers v unless ctx ends first. It reports whether v was sent.
func send[T any](ctx context.Context, out chan<- T, v T) bool {
	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
