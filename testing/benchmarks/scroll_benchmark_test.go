package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/scrollz"
)

// BenchmarkCoalesce_Burst measures collapsing a queued burst.
func BenchmarkCoalesce_Burst(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		in := make(chan scrollz.Result[int], 100)
		for j := 0; j < 100; j++ {
			in <- scrollz.NewSuccess(j)
		}
		close(in)
		b.StartTimer()

		for range scrollz.NewCoalesce(scrollz.Immediate[int]()).Process(ctx, in) {
		}
	}
}

// BenchmarkPaginator_Pages measures loading and accumulating 50 pages.
func BenchmarkPaginator_Pages(b *testing.B) {
	ctx := context.Background()
	page := make([]int, 20)
	fetch := func(_ context.Context, n int) ([]int, error) {
		if n > 50 {
			return []int{}, nil
		}
		return page, nil
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		trigger := scrollz.NewTrigger()
		lists := scrollz.NewPaginator(fetch).Process(ctx, trigger.Signals())

		for loaded := 0; loaded < 50; loaded++ {
			<-lists
			trigger.Fire()
		}
		trigger.Close()
		for range lists {
		}
	}
}
