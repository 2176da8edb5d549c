package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTMDBBaseURL = "https://api.themoviedb.org/3"
	DefaultTMDBTimeout = 10 * time.Second

	// maxResponseSize bounds a single page response body.
	maxResponseSize = 4 << 20
)

// HTTPError is a non-200 response from the movie API.
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s: %s", e.StatusCode, e.URL, e.Message)
}

type TMDBConfig struct {
	BaseURL  string
	Token    string
	Language string
	Timeout  time.Duration
}

// TMDBClient reads movie pages from the TMDB v3 API.
type TMDBClient struct {
	client   *http.Client
	baseURL  string
	token    string
	language string
}

func NewTMDBClient(cfg TMDBConfig) *TMDBClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTMDBBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTMDBTimeout
	}
	return &TMDBClient{
		client:   &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		token:    cfg.Token,
		language: cfg.Language,
	}
}

type pageResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Movies fetches one page. Pages past the last one come back empty.
func (c *TMDBClient) Movies(ctx context.Context, q Query, page int) ([]Movie, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	endpoint := c.endpoint(q, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        endpoint,
			Message:    statusMessage(body, resp.Status),
		}
	}

	var pr pageResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to decode page %d: %w", page, err)
	}
	if pr.TotalPages > 0 && page > pr.TotalPages {
		return []Movie{}, nil
	}
	if pr.Results == nil {
		pr.Results = []Movie{}
	}
	return pr.Results, nil
}

func (c *TMDBClient) endpoint(q Query, page int) string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if c.language != "" {
		params.Set("language", c.language)
	}

	path := "/movie/" + q.Category
	if q.IsGenre() {
		path = "/discover/movie"
		params.Set("with_genres", strconv.Itoa(q.GenreID))
	}
	return c.baseURL + path + "?" + params.Encode()
}

// statusMessage pulls status_message out of an API error body.
func statusMessage(body []byte, fallback string) string {
	var apiErr struct {
		StatusMessage string `json:"status_message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.StatusMessage != "" {
		return apiErr.StatusMessage
	}
	return fallback
}
