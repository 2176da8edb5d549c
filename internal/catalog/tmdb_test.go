package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestTMDB(t *testing.T, handler http.HandlerFunc) *TMDBClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTMDBClient(TMDBConfig{BaseURL: srv.URL + "/", Token: "secret", Language: "en-US"})
}

func TestTMDBClient_Category(t *testing.T) {
	client := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/popular" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("expected page=2, got %q", got)
		}
		if got := r.URL.Query().Get("language"); got != "en-US" {
			t.Errorf("expected language=en-US, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":2,"total_pages":3,"results":[{"id":7,"title":"Seven","genre_ids":[80]}]}`))
	})

	got, err := client.Movies(context.Background(), Query{Category: "popular"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 || got[0].Title != "Seven" || !got[0].HasGenre(80) {
		t.Errorf("unexpected movies: %+v", got)
	}
}

func TestTMDBClient_Genre(t *testing.T) {
	client := newTestTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/discover/movie" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("with_genres"); got != "28" {
			t.Errorf("expected with_genres=28, got %q", got)
		}
		_, _ = w.Write([]byte(`{"page":1,"total_pages":1,"results":[]}`))
	})

	got, err := client.Movies(context.Background(), Query{GenreID: 28}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil page, got %#v", got)
	}
}

func TestTMDBClient_PastLastPage(t *testing.T) {
	client := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"page":4,"total_pages":3,"results":[{"id":1}]}`))
	})

	got, err := client.Movies(context.Background(), Query{Category: "upcoming"}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty page past the end, got %d movies", len(got))
	}
}

func TestTMDBClient_HTTPError(t *testing.T) {
	client := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key"}`))
	})

	_, err := client.Movies(context.Background(), Query{Category: "popular"}, 1)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusUnauthorized || httpErr.Message != "Invalid API key" {
		t.Errorf("unexpected error %+v", httpErr)
	}
}

func TestTMDBClient_BadBody(t *testing.T) {
	client := newTestTMDB(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	if _, err := client.Movies(context.Background(), Query{Category: "popular"}, 1); err == nil {
		t.Error("expected decode error")
	}
}

func TestTMDBClient_InvalidArguments(t *testing.T) {
	client := NewTMDBClient(TMDBConfig{})

	if _, err := client.Movies(context.Background(), Query{Category: "popular"}, 0); !errors.Is(err, ErrInvalidPage) {
		t.Errorf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := client.Movies(context.Background(), Query{}, 1); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}
