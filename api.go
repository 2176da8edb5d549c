// Package scrollz provides the stream-coordination core behind an
// infinite-scroll catalog: operators that turn a noisy trigger source into
// a well-ordered, backpressure-safe, accumulating pull of paged data.
//
// Streams are plain Go channels of Result values. A closed channel means
// the stream completed, an error Result means something upstream failed,
// and cancelling the context handed to Process unsubscribes.
//
// Basic usage:
//
//	ctx := context.Background()
//
//	// The trigger starts with a "load first page" signal.
//	trigger := scrollz.NewTrigger()
//
//	// Collapse rapid "load more" requests.
//	debounce := scrollz.NewDebounce[scrollz.Signal](150*time.Millisecond, scrollz.RealClock)
//
//	// Fetch one page per settled trigger and accumulate the results.
//	paginator := scrollz.NewPaginator(func(ctx context.Context, page int) ([]Movie, error) {
//		return api.Popular(ctx, page)
//	})
//
//	lists := paginator.Process(ctx, debounce.Process(ctx, trigger.Signals()))
//	for list := range lists {
//		if list.IsError() {
//			log.Printf("page failed: %v", list.Error())
//			continue
//		}
//		render(list.Value()) // every movie loaded so far
//	}
//
// The package provides:
//   - Coalesce: last-value-wins per dynamically selected settling window
//   - Debounce: Coalesce with a quiet-period timer window
//   - Paginator: non-overlapping page fetches folded into one growing list
//   - Trigger and StartWith: sources of "load more" signals
//   - Tap: side effects such as rendering, without altering the stream
package scrollz

import "context"

// Processor is the core interface for stream processing components.
// It transforms an input channel of type In to an output channel of type Out.
// Processors should:
//   - Close the output channel when processing is complete
//   - Respect context cancellation
//   - Pass errors downstream as Results instead of stopping
//   - Own their state for the lifetime of one Process call
type Processor[In, Out any] interface {
	// Process transforms the input channel to an output channel.
	// It should close the output channel when processing is complete.
	Process(ctx context.Context, in <-chan In) <-chan Out

	// Name returns a descriptive name for the processor, useful for debugging.
	Name() string
}

// Signal is a payload-free event meaning "something happened",
// typically "the user wants more data".
type Signal struct{}
