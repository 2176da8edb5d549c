package scrollz

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyPageStream is returned by a FromStream page function when the
// underlying stream completes without emitting a page.
var ErrEmptyPageStream = errors.New("page stream completed without a result")

// ErrFetchPanic wraps a panic recovered from a page function.
var ErrFetchPanic = errors.New("page fetch panicked")

// StreamError represents an error that occurred during stream processing.
// It captures both the item that caused the error and the error itself,
// enabling better debugging and error handling strategies.
//
//nolint:govet // fieldalignment: struct layout optimized for readability over memory
type StreamError[T any] struct {
	// Item is the item associated with the error. For the Paginator this
	// is the accumulated buffer as it stood when the fetch failed.
	Item T

	// Err is the underlying error that occurred during processing.
	Err error

	// ProcessorName identifies which processor generated the error.
	ProcessorName string

	// Timestamp records when the error occurred.
	Timestamp time.Time
}

// NewStreamError creates a new StreamError with the current timestamp.
func NewStreamError[T any](item T, err error, processorName string) *StreamError[T] {
	return &StreamError[T]{
		Item:          item,
		Err:           err,
		ProcessorName: processorName,
		Timestamp:     time.Now(),
	}
}

// String returns a human-readable representation of the error.
func (se *StreamError[T]) String() string {
	return fmt.Sprintf("StreamError[%s]: %v (item: %v, time: %s)",
		se.ProcessorName, se.Err, se.Item, se.Timestamp.Format(time.RFC3339))
}

// Unwrap returns the underlying error, enabling error wrapping chains.
func (se *StreamError[T]) Unwrap() error {
	return se.Err
}

// Error implements the error interface.
func (se *StreamError[T]) Error() string {
	return se.String()
}

// PageError reports a failed fetch for a specific page.
// The page was not consumed and will be requested again on the next signal.
type PageError struct {
	Err  error
	Page int
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
