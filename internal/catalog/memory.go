package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// MemorySource pages through a fixed set of movies.
type MemorySource struct {
	byCategory map[string][]Movie
	all        []Movie
	pageSize   int
}

type fixture struct {
	Movies []fixtureMovie `yaml:"movies"`
}

type fixtureMovie struct {
	Movie      `yaml:",inline"`
	Categories []string `yaml:"categories"`
}

// NewMemorySource builds a source from movies grouped by category.
func NewMemorySource(byCategory map[string][]Movie, pageSize int) *MemorySource {
	s := &MemorySource{
		byCategory: byCategory,
		pageSize:   pageSize,
	}

	seen := map[int]bool{}
	for _, c := range Categories {
		for _, m := range byCategory[c] {
			if !seen[m.ID] {
				seen[m.ID] = true
				s.all = append(s.all, m)
			}
		}
	}
	return s
}

// LoadMemorySource reads a YAML fixture:
//
//	movies:
//	  - id: 550
//	    title: Fight Club
//	    genre_ids: [18]
//	    categories: [popular, top_rated]
func LoadMemorySource(r io.Reader, pageSize int) (*MemorySource, error) {
	var f fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse movie fixture: %w", err)
	}

	byCategory := map[string][]Movie{}
	for _, fm := range f.Movies {
		for _, c := range fm.Categories {
			byCategory[c] = append(byCategory[c], fm.Movie)
		}
	}
	return NewMemorySource(byCategory, pageSize), nil
}

func (s *MemorySource) Movies(ctx context.Context, q Query, page int) ([]Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	list := s.byCategory[q.Category]
	if q.IsGenre() {
		list = nil
		for _, m := range s.all {
			if m.HasGenre(q.GenreID) {
				list = append(list, m)
			}
		}
	}

	start := (page - 1) * s.pageSize
	if start >= len(list) {
		return []Movie{}, nil
	}
	end := min(start+s.pageSize, len(list))

	out := make([]Movie, end-start)
	copy(out, list[start:end])
	return out, nil
}

//go:embed movies.yaml
var demoFixture []byte

// LoadDemoSource serves the built-in demo catalog.
func LoadDemoSource(pageSize int) (*MemorySource, error) {
	return LoadMemorySource(bytes.NewReader(demoFixture), pageSize)
}
