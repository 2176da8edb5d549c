package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/zoobzio/scrollz"
	"github.com/zoobzio/scrollz/internal/catalog"
	"github.com/zoobzio/scrollz/internal/config"
	"github.com/zoobzio/scrollz/internal/metrics"
)

// buildSource assembles the configured source chain:
// origin, then the optional Redis cache, then instrumentation.
func buildSource(cfg *config.Config) (catalog.Source, func(), error) {
	var src catalog.Source
	closer := func() {}

	switch cfg.Source.Kind {
	case config.SourceMemory:
		mem, err := loadMemory(cfg.Source.Fixture, cfg.Source.PageSize)
		if err != nil {
			return nil, nil, err
		}
		src = mem
	case config.SourceTMDB:
		src = catalog.NewTMDBClient(catalog.TMDBConfig{
			BaseURL:  cfg.Source.TMDB.BaseURL,
			Token:    cfg.Source.TMDB.Token,
			Language: cfg.Source.TMDB.Language,
			Timeout:  cfg.Source.TMDB.Timeout,
		})
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownSource, cfg.Source.Kind)
	}

	if cfg.Cache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		src = catalog.NewCachedSource(src, catalog.NewRedisStore(client), cfg.Cache.Prefix, cfg.Cache.TTL)
		closer = func() { _ = client.Close() }
	}

	return catalog.Instrument(src, cfg.Source.Kind), closer, nil
}

func loadMemory(fixture string, pageSize int) (*catalog.MemorySource, error) {
	if fixture == "" {
		return catalog.LoadDemoSource(pageSize)
	}

	f, err := os.Open(fixture)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	return catalog.LoadMemorySource(f, pageSize)
}

// run scrolls q until stdin ends or ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, q catalog.Query, src catalog.Source, stdin io.Reader, stdout io.Writer, reg prometheus.Registerer) error {
	paginator := scrollz.NewPaginator(catalog.Pages(src, q)).
		WithName("movies").
		WithFirstPage(cfg.Scroll.FirstPage)
	if reg != nil {
		if err := metrics.RegisterPaginator(reg, paginator); err != nil {
			return fmt.Errorf("failed to register paginator metrics: %w", err)
		}
	}

	presses := readTriggers(ctx, stdin)
	loadMore := scrollz.NewDebounce[scrollz.Signal](cfg.Scroll.Debounce, scrollz.RealClock).
		WithName("load-more").
		Process(ctx, presses)
	triggers := scrollz.NewStartWith(scrollz.Signal{}).Process(ctx, loadMore)

	r := &renderer{w: stdout}
	lists := paginator.Process(ctx, triggers)
	shown := scrollz.NewTap(r.render).WithName("render").Process(ctx, lists)

	for range shown {
	}
	return r.err
}

// readTriggers turns every line of r into a load-more signal.
func readTriggers(ctx context.Context, r io.Reader) <-chan scrollz.Result[scrollz.Signal] {
	out := make(chan scrollz.Result[scrollz.Signal])

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scrollz.NewSuccess(scrollz.Signal{}):
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case out <- scrollz.NewError(scrollz.Signal{}, err, "stdin"):
			case <-ctx.Done():
			}
		}
	}()

	return out
}

// renderer prints the movies each list adds over the previous one.
type renderer struct {
	w     io.Writer
	shown int
	err   error
}

func (r *renderer) render(res scrollz.Result[[]catalog.Movie]) {
	if r.err != nil {
		return
	}

	if res.IsError() {
		_, r.err = fmt.Fprintf(r.w, "! %v (press enter to retry)\n", res.Error().Err)
		return
	}

	movies := res.Value()
	page, _ := res.Page()
	if len(movies) == r.shown {
		_, r.err = fmt.Fprintf(r.w, "-- page %d: no more movies (%d total)\n", page, len(movies))
		return
	}

	if _, r.err = fmt.Fprintf(r.w, "-- page %d\n", page); r.err != nil {
		return
	}
	for i, m := range movies[r.shown:] {
		_, r.err = fmt.Fprintf(r.w, "%3d. %s (%s) %.1f\n", r.shown+i+1, m.Title, year(m.ReleaseDate), m.VoteAverage)
		if r.err != nil {
			return
		}
	}
	r.shown = len(movies)
}

func year(date string) string {
	if len(date) < 4 {
		return "----"
	}
	return date[:4]
}
