package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const testFixture = `
movies:
  - id: 1
    title: One
    genre_ids: [28]
    categories: [popular]
  - id: 2
    title: Two
    genre_ids: [18]
    categories: [popular, top_rated]
  - id: 3
    title: Three
    genre_ids: [28, 18]
    categories: [popular]
`

func ids(movies []Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMemorySource_Pages(t *testing.T) {
	src, err := LoadMemorySource(strings.NewReader(testFixture), 2)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	ctx := context.Background()
	q := Query{Category: "popular"}

	tests := []struct {
		page int
		want []int
	}{
		{1, []int{1, 2}},
		{2, []int{3}},
		{3, []int{}},
	}
	for _, tt := range tests {
		got, err := src.Movies(ctx, q, tt.page)
		if err != nil {
			t.Fatalf("page %d: %v", tt.page, err)
		}
		if got == nil || !equalIDs(ids(got), tt.want) {
			t.Errorf("page %d: expected %v, got %v", tt.page, tt.want, ids(got))
		}
	}
}

func TestMemorySource_Genre(t *testing.T) {
	src, err := LoadMemorySource(strings.NewReader(testFixture), 10)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	got, err := src.Movies(context.Background(), Query{GenreID: 18}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(ids(got), []int{2, 3}) {
		t.Errorf("expected drama ids [2 3], got %v", ids(got))
	}
}

func TestMemorySource_FieldsFromFixture(t *testing.T) {
	src, err := LoadMemorySource(strings.NewReader(testFixture), 10)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	got, _ := src.Movies(context.Background(), Query{Category: "top_rated"}, 1)
	if len(got) != 1 || got[0].Title != "Two" || !got[0].HasGenre(18) {
		t.Errorf("unexpected top rated page: %+v", got)
	}
}

func TestMemorySource_Errors(t *testing.T) {
	src := NewMemorySource(nil, 5)

	if _, err := src.Movies(context.Background(), Query{Category: "popular"}, 0); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := src.Movies(context.Background(), Query{Category: "bogus"}, 1); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Movies(ctx, Query{Category: "popular"}, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoadMemorySource_BadYAML(t *testing.T) {
	if _, err := LoadMemorySource(strings.NewReader("movies: [\n"), 5); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadDemoSource(t *testing.T) {
	src, err := LoadDemoSource(5)
	if err != nil {
		t.Fatalf("load demo: %v", err)
	}
	for _, c := range Categories {
		got, err := src.Movies(context.Background(), Query{Category: c}, 1)
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
		if len(got) == 0 {
			t.Errorf("demo catalog has no %s movies", c)
		}
	}
}
