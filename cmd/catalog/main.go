// Command catalog scrolls through a movie catalog from the terminal. Every
// line read from stdin asks for one more page; the growing list is printed
// as pages arrive.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/zoobzio/capitan"

	"github.com/zoobzio/scrollz/internal/catalog"
	"github.com/zoobzio/scrollz/internal/config"
	"github.com/zoobzio/scrollz/internal/logging"
)

func main() {
	ctx := listenStopSignal(context.Background())

	var (
		configFile string
		category   string
		genre      int
		debug      bool
	)
	flag.StringVar(&configFile, "config", "", "path to a YAML config file")
	flag.StringVar(&category, "category", "", "movie list to scroll (popular, top_rated, upcoming, now_playing)")
	flag.IntVar(&genre, "genre", 0, "genre id to scroll instead of a category")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logger := logging.Setup(logging.Config{Level: "info", Pretty: true, Output: os.Stderr})
		logger.Fatal().Err(err).Msg("error loading config")
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	cfg.Log.Output = os.Stderr
	logger := logging.Setup(cfg.Log)

	q := catalog.Query{Category: cfg.Scroll.Category, GenreID: cfg.Scroll.GenreID}
	if category != "" {
		q = catalog.Query{Category: category}
	}
	if genre != 0 {
		q.GenreID = genre
	}
	if err := q.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid query")
	}

	setupMetrics(ctx, cfg.Metrics.Addr, logger)
	hookEvents(logger)
	defer capitan.Shutdown()

	src, closeSource, err := buildSource(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("error building source")
	}
	defer closeSource()

	logger.Info().
		Str("query", q.String()).
		Str("source", cfg.Source.Kind).
		Msg("press enter to load more, ctrl-d to finish")

	if err := run(ctx, cfg, q, src, os.Stdin, os.Stdout, prometheus.DefaultRegisterer); err != nil {
		logger.Error().Err(err).Msg("scroll failed")
		closeSource()
		capitan.Shutdown()
		os.Exit(1)
	}
}

func setupMetrics(ctx context.Context, addr string, logger zerolog.Logger) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

func listenStopSignal(parentCtx context.Context) context.Context {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(parentCtx)
	go func() {
		<-signalCh
		cancel()
	}()
	return ctx
}
