package catalog

import (
	"context"

	"github.com/zoobzio/scrollz/internal/metrics"
)

const opFetchPage = "fetch_page"

// InstrumentedSource records the duration and outcome of every page fetch.
type InstrumentedSource struct {
	src  Source
	name string
}

func Instrument(src Source, name string) *InstrumentedSource {
	return &InstrumentedSource{src: src, name: name}
}

func (s *InstrumentedSource) Movies(ctx context.Context, q Query, page int) ([]Movie, error) {
	done := metrics.TrackNamedDuration(opFetchPage, s.name)
	defer done()

	movies, err := s.src.Movies(ctx, q, page)
	if err != nil {
		metrics.TrackStatus(opFetchPage, "error")
		return nil, err
	}
	if len(movies) == 0 {
		metrics.TrackStatus(opFetchPage, "empty")
	} else {
		metrics.TrackStatus(opFetchPage, "ok")
	}
	return movies, nil
}
