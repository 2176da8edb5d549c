// Package testing provides test utilities for scrollz pipelines.
package testing

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/scrollz"
)

// CollectResultsWithTimeout collects all results from a channel until it
// closes or the timeout passes.
func CollectResultsWithTimeout[T any](t *testing.T, ch <-chan scrollz.Result[T], timeout time.Duration) []scrollz.Result[T] {
	t.Helper()

	var results []scrollz.Result[T]
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case result, ok := <-ch:
			if !ok {
				return results
			}
			results = append(results, result)
		case <-timer.C:
			return results
		}
	}
}

// CollectValues collects the successful values from a Result channel.
func CollectValues[T any](t *testing.T, ch <-chan scrollz.Result[T], timeout time.Duration) []T {
	t.Helper()

	results := CollectResultsWithTimeout(t, ch, timeout)
	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.IsSuccess() {
			values = append(values, r.Value())
		}
	}
	return values
}

// CollectErrors collects the errors from a Result channel.
func CollectErrors[T any](t *testing.T, ch <-chan scrollz.Result[T], timeout time.Duration) []error {
	t.Helper()

	results := CollectResultsWithTimeout(t, ch, timeout)
	errs := make([]error, 0)
	for _, r := range results {
		if r.IsError() {
			errs = append(errs, r.Error())
		}
	}
	return errs
}

// SendValues returns a closed channel holding values as successful Results.
func SendValues[T any](t *testing.T, values []T) <-chan scrollz.Result[T] {
	t.Helper()

	ch := make(chan scrollz.Result[T], len(values))
	for _, v := range values {
		ch <- scrollz.NewSuccess(v)
	}
	close(ch)
	return ch
}

// Signals returns a closed channel holding n signals.
func Signals(t *testing.T, n int) <-chan scrollz.Result[scrollz.Signal] {
	t.Helper()

	return SendValues(t, make([]scrollz.Signal, n))
}

// StaticPages serves pages from memory, 1-based. Pages past the end are
// empty. It records every page number requested.
type StaticPages[T any] struct {
	mu       sync.Mutex
	pages    [][]T
	fail     map[int]error
	requests []int
}

func NewStaticPages[T any](pages ...[]T) *StaticPages[T] {
	return &StaticPages[T]{pages: pages, fail: map[int]error{}}
}

// FailOnce makes the next request for page return err.
func (s *StaticPages[T]) FailOnce(page int, err error) *StaticPages[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[page] = err
	return s
}

// Fetch is a scrollz.PageFunc.
func (s *StaticPages[T]) Fetch(ctx context.Context, page int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, page)
	if err, ok := s.fail[page]; ok {
		delete(s.fail, page)
		return nil, err
	}
	if page < 1 || page > len(s.pages) {
		return []T{}, nil
	}
	return append([]T(nil), s.pages[page-1]...), nil
}

// Requests returns the page numbers requested so far, in order.
func (s *StaticPages[T]) Requests() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.requests...)
}

// AssertResultCount verifies the expected number of results were received.
func AssertResultCount[T any](t *testing.T, results []scrollz.Result[T], expected int) {
	t.Helper()

	if len(results) != expected {
		t.Errorf("expected %d results, got %d", expected, len(results))
	}
}

// AssertAllSuccess verifies all results are successful.
func AssertAllSuccess[T any](t *testing.T, results []scrollz.Result[T]) {
	t.Helper()

	for i, r := range results {
		if r.IsError() {
			t.Errorf("result %d: expected success, got error: %v", i, r.Error())
		}
	}
}

// AssertGrowing verifies every list starts with the list before it.
func AssertGrowing[T any](t *testing.T, lists [][]T) {
	t.Helper()

	for i := 1; i < len(lists); i++ {
		prev, cur := lists[i-1], lists[i]
		if err := hasPrefix(cur, prev); err != nil {
			t.Errorf("list %d does not extend list %d: %v", i, i-1, err)
		}
	}
}

func hasPrefix[T any](list, prefix []T) error {
	if len(list) < len(prefix) {
		return fmt.Errorf("shrank from %d to %d items", len(prefix), len(list))
	}
	for i := range prefix {
		if !reflect.DeepEqual(list[i], prefix[i]) {
			return fmt.Errorf("item %d changed from %v to %v", i, prefix[i], list[i])
		}
	}
	return nil
}
