package scrollz

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewStreamError(t *testing.T) {
	item := []string{"a", "b"}
	err := errors.New("test error")

	before := time.Now()
	streamErr := NewStreamError(item, err, "paginator")
	after := time.Now()

	if len(streamErr.Item) != 2 {
		t.Errorf("Expected Item to be %v, got %v", item, streamErr.Item)
	}
	if !errors.Is(streamErr.Err, err) {
		t.Errorf("Expected Err to be %v, got %v", err, streamErr.Err)
	}
	if streamErr.ProcessorName != "paginator" {
		t.Errorf("Expected ProcessorName to be %q, got %q", "paginator", streamErr.ProcessorName)
	}
	if streamErr.Timestamp.Before(before) || streamErr.Timestamp.After(after) {
		t.Errorf("Expected Timestamp to be between %v and %v, got %v", before, after, streamErr.Timestamp)
	}
}

func TestStreamError_Error(t *testing.T) {
	streamErr := &StreamError[int]{
		Item:          42,
		Err:           errors.New("division by zero"),
		ProcessorName: "divider",
		Timestamp:     time.Date(2023, 12, 25, 10, 30, 0, 0, time.UTC),
	}

	expected := "StreamError[divider]: division by zero (item: 42, time: 2023-12-25T10:30:00Z)"
	if result := streamErr.Error(); result != expected {
		t.Errorf("Expected Error() to return %q, got %q", expected, result)
	}
	if streamErr.String() != streamErr.Error() {
		t.Errorf("Expected String() and Error() to match")
	}
}

func TestStreamError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	streamErr := NewStreamError("test", originalErr, "test-processor")

	if !errors.Is(streamErr, originalErr) {
		t.Errorf("Expected errors.Is to find %v", originalErr)
	}

	nilErr := &StreamError[string]{Item: "test", ProcessorName: "p", Timestamp: time.Now()}
	if nilErr.Unwrap() != nil {
		t.Errorf("Expected Unwrap() to return nil, got %v", nilErr.Unwrap())
	}
}

func TestPageError(t *testing.T) {
	cause := errors.New("status 503")
	var err error = &PageError{Page: 3, Err: cause}

	if err.Error() != "page 3: status 503" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected PageError to unwrap to its cause")
	}

	wrapped := NewStreamError([]int{}, err, "paginator")
	var pageErr *PageError
	if !errors.As(wrapped, &pageErr) || pageErr.Page != 3 {
		t.Errorf("expected errors.As to recover page 3, got %v", pageErr)
	}
	if !strings.Contains(wrapped.Error(), "page 3") {
		t.Errorf("expected stream error to mention the page, got %q", wrapped.Error())
	}
}
