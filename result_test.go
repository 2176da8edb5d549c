package scrollz

import (
	"errors"
	"testing"
)

func TestResult_Success(t *testing.T) {
	r := NewSuccess(42)

	if !r.IsSuccess() || r.IsError() {
		t.Fatal("expected success")
	}
	if r.Value() != 42 {
		t.Errorf("expected 42, got %d", r.Value())
	}
	if r.Error() != nil {
		t.Errorf("expected nil error, got %v", r.Error())
	}
	if r.ValueOr(7) != 42 {
		t.Errorf("expected ValueOr to return the value")
	}
}

func TestResult_Error(t *testing.T) {
	r := NewError(13, errors.New("bad"), "proc")

	if !r.IsError() || r.IsSuccess() {
		t.Fatal("expected error")
	}
	if r.ValueOr(7) != 7 {
		t.Errorf("expected fallback 7, got %d", r.ValueOr(7))
	}
	if r.Error().Item != 13 || r.Error().ProcessorName != "proc" {
		t.Errorf("unexpected error contents: %+v", r.Error())
	}

	defer func() {
		if recover() == nil {
			t.Error("expected Value() on an error Result to panic")
		}
	}()
	_ = r.Value()
}

func TestResult_Metadata(t *testing.T) {
	base := NewSuccess("x")
	if base.HasMetadata() {
		t.Fatal("expected no metadata on a fresh Result")
	}

	r := base.WithMetadata(MetadataPage, 2).WithMetadata(MetadataProcessor, "paginator")
	if base.HasMetadata() {
		t.Error("WithMetadata must not modify the original Result")
	}

	page, found, err := r.GetIntMetadata(MetadataPage)
	if err != nil || !found || page != 2 {
		t.Errorf("expected page 2, got %d (found=%v, err=%v)", page, found, err)
	}

	name, found, err := r.GetStringMetadata(MetadataProcessor)
	if err != nil || !found || name != "paginator" {
		t.Errorf("expected processor 'paginator', got %q (found=%v, err=%v)", name, found, err)
	}

	if _, _, err := r.GetIntMetadata(MetadataProcessor); err == nil {
		t.Error("expected type error reading a string key as int")
	}
	if _, found, _ := r.GetIntMetadata("missing"); found {
		t.Error("expected missing key to be not found")
	}
	if same := r.WithMetadata("", 1); len(same.metadata) != len(r.metadata) {
		t.Error("expected empty key to be ignored")
	}
}

func TestResult_Page(t *testing.T) {
	if _, ok := NewSuccess(1).Page(); ok {
		t.Error("expected no page on a plain Result")
	}

	page, ok := NewSuccess(1).WithMetadata(MetadataPage, 5).Page()
	if !ok || page != 5 {
		t.Errorf("expected page 5, got %d (ok=%v)", page, ok)
	}

	if _, ok := NewSuccess(1).WithMetadata(MetadataPage, "five").Page(); ok {
		t.Error("expected mistyped page metadata to be ignored")
	}
}
