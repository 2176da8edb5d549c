package scrollz

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zoobzio/capitan"
)

// Paginator turns a stream of signals into sequential page fetches and
// emits the accumulated list of every item loaded so far.
//
// Exactly one fetch is in flight at a time. Signals that arrive while a
// fetch is outstanding are dropped, not queued, so emissions are strictly
// ordered by page and a burst of signals costs one request.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Paginator[T any] struct {
	name      string
	fetch     PageFunc[T]
	firstPage int
	clock     Clock
	dropped   atomic.Uint64
	fetches   atomic.Uint64
}

// NewPaginator creates a processor that accumulates pages on demand.
//
// When to use:
//   - Infinite scroll over a paged API
//   - "Load more" buttons
//   - Any pull of paged data driven by user or timer events
//
// Example:
//
//	paginator := scrollz.NewPaginator(scrollz.ForCategory[Movie](tmdb, "popular"))
//
//	trigger := scrollz.NewTrigger() // queues the first-page signal
//	lists := paginator.Process(ctx, trigger.Signals())
//
//	go func() {
//		for range renderer.NearBottom() {
//			trigger.Fire()
//		}
//	}()
//
//	for list := range lists {
//		if list.IsError() {
//			// The failed page is retried on the next signal.
//			showRetry(list.Error())
//			continue
//		}
//		renderer.Show(list.Value())
//	}
//
// Behavior:
//   - Every success emits a copy of the full accumulated list
//   - A failed page leaves the list untouched and is retried on the next signal
//   - Empty pages are appended (as nothing) and advance the page index
//   - Closing the signal stream ends the run after the in-flight page settles
//   - Cancelling the context cancels the in-flight fetch and ignores its result
//
// Each call to Process has its own page index and list. A fetch that never
// returns keeps the run in flight until ctx ends; bound fetches with a
// deadline where that matters.
func NewPaginator[T any](fetch PageFunc[T]) *Paginator[T] {
	return &Paginator[T]{
		name:      "paginator",
		fetch:     fetch,
		firstPage: 1,
		clock:     RealClock,
	}
}

// WithName sets a custom name for this processor.
// If not set, defaults to "paginator".
func (p *Paginator[T]) WithName(name string) *Paginator[T] {
	p.name = name
	return p
}

// WithFirstPage sets the index passed to the first fetch, for data sources
// that count pages from something other than 1.
func (p *Paginator[T]) WithFirstPage(page int) *Paginator[T] {
	p.firstPage = page
	return p
}

// WithClock sets the clock used to time fetches.
func (p *Paginator[T]) WithClock(clock Clock) *Paginator[T] {
	p.clock = clock
	return p
}

// DroppedCount returns the number of signals ignored because a fetch was in
// flight, across all runs of this Paginator.
func (p *Paginator[T]) DroppedCount() uint64 {
	return p.dropped.Load()
}

// FetchCount returns the number of fetches issued across all runs.
func (p *Paginator[T]) FetchCount() uint64 {
	return p.fetches.Load()
}

// Name returns the processor name for debugging and monitoring.
func (p *Paginator[T]) Name() string {
	return p.name
}

type phase int

const (
	phaseIdle phase = iota
	phaseFetching
)

type outcome[T any] struct {
	items []T
	err   error
	took  time.Duration
}

// accumulation is the state of one Process run. Only the run's goroutine
// touches it.
type accumulation[T any] struct {
	buffer []T
	result <-chan outcome[T]
	cancel context.CancelFunc
	next   int
	phase  phase
}

func (a *accumulation[T]) snapshot() []T {
	list := make([]T, len(a.buffer))
	copy(list, a.buffer)
	return list
}

// release drops the in-flight fetch. A result it produces later lands in a
// channel nobody reads.
func (a *accumulation[T]) release() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.result = nil
}

// Process consumes signals and emits accumulated lists.
func (p *Paginator[T]) Process(ctx context.Context, in <-chan Result[Signal]) <-chan Result[[]T] {
	out := make(chan Result[[]T])

	go func() {
		defer close(out)

		acc := &accumulation[T]{next: p.firstPage}
		defer acc.release()

		capitan.Emit(ctx, PaginatorStarted,
			KeyProcessor.Field(p.name),
			KeyPage.Field(p.firstPage),
		)
		defer func() {
			capitan.Emit(context.WithoutCancel(ctx), PaginatorStopped,
				KeyProcessor.Field(p.name),
				KeyTotal.Field(len(acc.buffer)),
			)
		}()

		triggers := in
		for triggers != nil || acc.phase == phaseFetching {
			select {
			case <-ctx.Done():
				return

			case sig, ok := <-triggers:
				if !ok {
					triggers = nil
					continue
				}
				if sig.IsError() {
					if !send(ctx, out, passError(sig, acc.snapshot(), p.name)) {
						return
					}
					continue
				}
				if acc.phase == phaseFetching {
					p.drop(ctx, acc.next)
					continue
				}
				p.begin(ctx, acc)

			case res := <-acc.result:
				if !p.settle(ctx, out, acc, res, &triggers) {
					return
				}
			}
		}
	}()

	return out
}

func (p *Paginator[T]) begin(ctx context.Context, acc *accumulation[T]) {
	fctx, cancel := context.WithCancel(ctx)
	done := make(chan outcome[T], 1)
	page := acc.next

	acc.phase = phaseFetching
	acc.result = done
	acc.cancel = cancel

	p.fetches.Add(1)
	capitan.Emit(ctx, PageRequested,
		KeyProcessor.Field(p.name),
		KeyPage.Field(page),
	)

	start := p.clock.Now()
	go func() {
		items, err := p.call(fctx, page)
		done <- outcome[T]{items: items, err: err, took: p.clock.Now().Sub(start)}
	}()
}

// call runs the page function, turning a panic into a fetch failure.
func (p *Paginator[T]) call(ctx context.Context, page int) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("processor", p.name).
				Int("page", page).
				Interface("panic", r).
				Msg("page function panicked")
			items, err = nil, fmt.Errorf("%w: %v", ErrFetchPanic, r)
		}
	}()
	return p.fetch(ctx, page)
}

// settle applies a fetch outcome: Fetching+Result appends and advances,
// Fetching+Error leaves list and index alone. Either way the run is idle
// once the emission has been delivered.
func (p *Paginator[T]) settle(ctx context.Context, out chan<- Result[[]T], acc *accumulation[T], res outcome[T], triggers *<-chan Result[Signal]) bool {
	page := acc.next
	acc.release()
	if ctx.Err() != nil {
		return false
	}

	if res.err != nil {
		capitan.Emit(ctx, PageFailed,
			KeyProcessor.Field(p.name),
			KeyPage.Field(page),
			KeyDuration.Field(res.took),
			KeyError.Field(res.err.Error()),
		)
		r := NewError(acc.snapshot(), error(&PageError{Page: page, Err: res.err}), p.name).
			WithMetadata(MetadataPage, page)
		ok := p.deliver(ctx, out, r, acc, triggers)
		acc.phase = phaseIdle
		return ok
	}

	acc.buffer = append(acc.buffer, res.items...)
	capitan.Emit(ctx, PageLoaded,
		KeyProcessor.Field(p.name),
		KeyPage.Field(page),
		KeyItems.Field(len(res.items)),
		KeyTotal.Field(len(acc.buffer)),
		KeyDuration.Field(res.took),
	)

	r := NewSuccess(acc.snapshot()).
		WithMetadata(MetadataPage, page).
		WithMetadata(MetadataPageSize, len(res.items))
	ok := p.deliver(ctx, out, r, acc, triggers)
	acc.next++
	acc.phase = phaseIdle
	return ok
}

// deliver sends r downstream while the run is still in flight: signals that
// arrive before the consumer takes r are dropped like any other in-flight
// signal. Upstream errors seen meanwhile are forwarded right after r.
func (p *Paginator[T]) deliver(ctx context.Context, out chan<- Result[[]T], r Result[[]T], acc *accumulation[T], triggers *<-chan Result[Signal]) bool {
	var held []Result[[]T]

	for sent := false; !sent; {
		select {
		case out <- r:
			sent = true
		case <-ctx.Done():
			return false
		case sig, ok := <-*triggers:
			switch {
			case !ok:
				*triggers = nil
			case sig.IsError():
				held = append(held, passError(sig, acc.snapshot(), p.name))
			default:
				p.drop(ctx, acc.next)
			}
		}
	}

	for _, h := range held {
		if !send(ctx, out, h) {
			return false
		}
	}
	return true
}

func (p *Paginator[T]) drop(ctx context.Context, page int) {
	p.dropped.Add(1)
	capitan.Emit(ctx, TriggerDropped,
		KeyProcessor.Field(p.name),
		KeyPage.Field(page),
	)
}
