package scrollz

import (
	"context"
	"testing"
	"time"
)

// recv reads one result or fails the test after a second.
func recv[T any](t *testing.T, out <-chan Result[T]) Result[T] {
	t.Helper()

	select {
	case r, ok := <-out:
		if !ok {
			t.Fatal("output closed, expected a result")
		}
		return r
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for result")
	}
	return Result[T]{}
}

// expectNone asserts nothing is emitted for a short while.
func expectNone[T any](t *testing.T, out <-chan Result[T]) {
	t.Helper()

	select {
	case r, ok := <-out:
		if ok {
			t.Fatalf("unexpected emission: %+v", r)
		}
		t.Fatal("output closed unexpectedly")
	case <-time.After(20 * time.Millisecond):
	}
}

// expectClosed asserts the output closes without further emissions.
func expectClosed[T any](t *testing.T, out <-chan Result[T]) {
	t.Helper()

	select {
	case r, ok := <-out:
		if ok {
			t.Fatalf("expected closed output, got %+v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("output did not close")
	}
}

// waitFor polls cond until it holds or a second passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// gate is a manually closed settling window.
type gate struct {
	ctx   context.Context
	ch    chan struct{}
	value int
}

// gatedWindows hands every opened window to the test.
func gatedWindows() (WindowFunc[int], <-chan gate) {
	gates := make(chan gate, 16)
	return func(ctx context.Context, v int) <-chan struct{} {
		g := gate{ctx: ctx, ch: make(chan struct{}), value: v}
		gates <- g
		return g.ch
	}, gates
}

func nextGate(t *testing.T, gates <-chan gate) gate {
	t.Helper()

	select {
	case g := <-gates:
		return g
	case <-time.After(time.Second):
		t.Fatal("no window opened")
	}
	return gate{}
}
