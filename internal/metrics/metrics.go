// Package metrics exposes Prometheus metrics for the catalog pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	promNamespace = "scrollz"
)

var (
	durationBuckets = []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1, 2, 5, 10}

	operationDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: promNamespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of catalog source operations",
		Buckets:   durationBuckets,
	}, []string{"op", "name"})

	operationStatusCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "operation_status_total",
		Help:      "Outcome of catalog source operations",
	}, []string{"op", "status"})

	// CacheHits counts page cache hits by layer.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "cache_hits_total",
		Help:      "Total number of page cache hits",
	}, []string{"layer"})

	// CacheMisses counts page cache misses.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "cache_misses_total",
		Help:      "Total number of page cache misses",
	})

	// CacheErrors counts cache failures by operation ("get", "set").
	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "cache_errors_total",
		Help:      "Total number of page cache errors",
	}, []string{"operation"})
)

func TrackDuration(operation string) func() {
	return TrackNamedDuration(operation, "")
}

func TrackNamedDuration(operation, name string) func() {
	start := time.Now()
	return func() {
		operationDurationHistogram.WithLabelValues(operation, name).Observe(time.Since(start).Seconds())
	}
}

func TrackStatus(operation, status string) {
	operationStatusCounter.WithLabelValues(operation, status).Inc()
}

// PaginatorStats is the part of a scrollz.Paginator the metrics read.
type PaginatorStats interface {
	Name() string
	FetchCount() uint64
	DroppedCount() uint64
}

// RegisterPaginator exports a paginator's fetch and dropped-signal counts.
func RegisterPaginator(reg prometheus.Registerer, p PaginatorStats) error {
	labels := prometheus.Labels{"paginator": p.Name()}

	fetches := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   promNamespace,
		Name:        "page_fetches_total",
		Help:        "Pages requested by the paginator",
		ConstLabels: labels,
	}, func() float64 { return float64(p.FetchCount()) })

	dropped := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   promNamespace,
		Name:        "triggers_dropped_total",
		Help:        "Signals ignored while a page was in flight",
		ConstLabels: labels,
	}, func() float64 { return float64(p.DroppedCount()) })

	if err := reg.Register(fetches); err != nil {
		return err
	}
	return reg.Register(dropped)
}
