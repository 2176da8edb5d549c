package scrollz

import (
	"context"

	"github.com/rs/zerolog/log"
)

// PageFunc fetches one page of items. Pages are numbered from the
// Paginator's first page, 1 unless configured otherwise. An empty page is a
// valid result and signals no more data; it is not an error.
type PageFunc[T any] func(ctx context.Context, page int) ([]T, error)

// PageSource is a data source serving pages of items per category.
// It is expected to be stateless apart from the page number.
type PageSource[T any] interface {
	FetchPage(ctx context.Context, category string, page int) ([]T, error)
}

// PageSourceFunc is a function adapter that implements PageSource.
type PageSourceFunc[T any] func(ctx context.Context, category string, page int) ([]T, error)

// FetchPage implements PageSource.
func (f PageSourceFunc[T]) FetchPage(ctx context.Context, category string, page int) ([]T, error) {
	return f(ctx, category, page)
}

// ForCategory binds a source to one category. Switching categories means
// starting a new Paginator run so the accumulated list starts empty.
func ForCategory[T any](src PageSource[T], category string) PageFunc[T] {
	return func(ctx context.Context, page int) ([]T, error) {
		return src.FetchPage(ctx, category, page)
	}
}

// FromStream adapts a stream-shaped fetch to a PageFunc. The stream should
// emit exactly one Result and close. The first emission wins; anything after
// it is logged and discarded, and the stream's context is cancelled so a
// well-behaved producer stops. A stream that closes without emitting yields
// ErrEmptyPageStream.
func FromStream[T any](fn func(ctx context.Context, page int) <-chan Result[[]T]) PageFunc[T] {
	return func(ctx context.Context, page int) ([]T, error) {
		sctx, cancel := context.WithCancel(ctx)
		stream := fn(sctx, page)

		select {
		case <-ctx.Done():
			cancel()
			return nil, ctx.Err()
		case r, ok := <-stream:
			if !ok {
				cancel()
				return nil, ErrEmptyPageStream
			}

			cancel()
			go discardExtra(page, stream)

			if r.IsError() {
				return nil, r.Error().Err
			}
			return r.Value(), nil
		}
	}
}

func discardExtra[T any](page int, stream <-chan Result[[]T]) {
	for range stream {
		log.Warn().
			Int("page", page).
			Msg("page stream emitted more than once, extra result ignored")
	}
}
