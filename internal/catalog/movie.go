// Package catalog is the movie data source behind the scroll pipeline:
// the movie model, the queries the catalog pages through, and the sources
// that serve pages (in-memory fixtures, the TMDB API, a Redis page cache).
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zoobzio/scrollz"
)

const (
	// ImageBaseURL serves poster and backdrop images.
	ImageBaseURL = "https://image.tmdb.org/t/p"

	// DefaultPosterSize is used when PosterURL gets no size.
	DefaultPosterSize = "w342"

	// DefaultVideoBaseURL is where trailer keys are embedded from.
	DefaultVideoBaseURL = "https://www.youtube.com/embed"
)

var (
	ErrInvalidPage  = errors.New("page must be 1 or greater")
	ErrInvalidQuery = errors.New("query needs a known category or a genre id")
)

// Categories are the named movie lists a Query can select.
var Categories = []string{"popular", "top_rated", "upcoming", "now_playing"}

type Movie struct {
	ID           int     `json:"id" yaml:"id"`
	Title        string  `json:"title" yaml:"title"`
	Overview     string  `json:"overview" yaml:"overview"`
	PosterPath   string  `json:"poster_path" yaml:"poster_path"`
	BackdropPath string  `json:"backdrop_path" yaml:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average" yaml:"vote_average"`
	ReleaseDate  string  `json:"release_date" yaml:"release_date"`
	GenreIDs     []int   `json:"genre_ids" yaml:"genre_ids"`
}

// PosterURL returns the poster image URL at the given size, or "" when the
// movie has no poster.
func (m Movie) PosterURL(size string) string {
	if m.PosterPath == "" {
		return ""
	}
	if size == "" {
		size = DefaultPosterSize
	}
	return ImageBaseURL + "/" + size + "/" + strings.TrimPrefix(m.PosterPath, "/")
}

// HasGenre reports whether the movie is tagged with genre id.
func (m Movie) HasGenre(id int) bool {
	for _, g := range m.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// EmbedURL builds a video embed URL for a trailer path. It reports false
// when there is no path. An empty baseURL means DefaultVideoBaseURL.
func EmbedURL(baseURL, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if baseURL == "" {
		baseURL = DefaultVideoBaseURL
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + path, true
}

// Query selects the list to page through: a named category, or a genre
// when GenreID is set.
type Query struct {
	Category string
	GenreID  int
}

func (q Query) IsGenre() bool {
	return q.GenreID != 0
}

func (q Query) String() string {
	if q.IsGenre() {
		return fmt.Sprintf("genre:%d", q.GenreID)
	}
	return "category:" + q.Category
}

func (q Query) Validate() error {
	if q.IsGenre() {
		if q.GenreID < 0 {
			return fmt.Errorf("%w: genre %d", ErrInvalidQuery, q.GenreID)
		}
		return nil
	}
	for _, c := range Categories {
		if c == q.Category {
			return nil
		}
	}
	return fmt.Errorf("%w: category %q", ErrInvalidQuery, q.Category)
}

// Source serves one page of movies for a query. Pages are 1-based and an
// empty page means the list is exhausted.
type Source interface {
	Movies(ctx context.Context, q Query, page int) ([]Movie, error)
}

// Pages binds a query to a source for a scrollz.Paginator. Opening another
// query means starting another paginator run with its own list.
func Pages(src Source, q Query) scrollz.PageFunc[Movie] {
	return func(ctx context.Context, page int) ([]Movie, error) {
		return src.Movies(ctx, q, page)
	}
}
