package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// statusCount reads scrollz_operation_status_total for fetch_page.
func statusCount(t *testing.T, status string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "scrollz_operation_status_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var op, st string
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "op":
					op = l.GetValue()
				case "status":
					st = l.GetValue()
				}
			}
			if op == opFetchPage && st == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestInstrumentedSource(t *testing.T) {
	ctx := context.Background()
	src := Instrument(testSource(), "memory")
	q := Query{Category: "popular"}

	ok, empty := statusCount(t, "ok"), statusCount(t, "empty")

	if got, err := src.Movies(ctx, q, 1); err != nil || len(got) != 2 {
		t.Fatalf("unexpected page %v (%v)", ids(got), err)
	}
	if _, err := src.Movies(ctx, q, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d := statusCount(t, "ok") - ok; d != 1 {
		t.Errorf("expected 1 ok fetch, got %v", d)
	}
	if d := statusCount(t, "empty") - empty; d != 1 {
		t.Errorf("expected 1 empty fetch, got %v", d)
	}
	if n, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "scrollz_operation_duration_seconds"); err != nil || n == 0 {
		t.Errorf("expected duration samples, got %d (%v)", n, err)
	}
}

func TestInstrumentedSource_Error(t *testing.T) {
	boom := errors.New("boom")
	src := Instrument(&countingSource{err: boom}, "failing")

	before := statusCount(t, "error")
	if _, err := src.Movies(context.Background(), Query{Category: "popular"}, 1); !errors.Is(err, boom) {
		t.Fatalf("expected error to pass through, got %v", err)
	}
	if d := statusCount(t, "error") - before; d != 1 {
		t.Errorf("expected 1 error fetch, got %v", d)
	}
}
