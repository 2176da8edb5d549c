package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/zoobzio/scrollz/internal/logging"
	"github.com/zoobzio/scrollz/internal/metrics"
)

// ErrCacheMiss indicates the requested page was not found in the store.
var ErrCacheMiss = errors.New("cache miss")

// PageStore holds encoded pages by key.
type PageStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// RedisStore is a PageStore backed by Redis.
type RedisStore struct {
	redis *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{redis: client}
}

// Get returns ErrCacheMiss if the key doesn't exist or has expired.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// CacheKey names a page in the store, e.g. "scrollz:movies:genre:28:page:3".
func CacheKey(prefix string, q Query, page int) string {
	key := "movies:" + q.String() + ":page:" + strconv.Itoa(page)
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}

// CachedSource serves pages from a PageStore and fills it from the wrapped
// source on a miss. Store failures fall through to the source; only
// successful pages are stored.
type CachedSource struct {
	src    Source
	store  PageStore
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCachedSource(src Source, store PageStore, prefix string, ttl time.Duration) *CachedSource {
	return &CachedSource{
		src:    src,
		store:  store,
		prefix: prefix,
		ttl:    ttl,
		log:    logging.NewLogger("page-cache"),
	}
}

func (c *CachedSource) Movies(ctx context.Context, q Query, page int) ([]Movie, error) {
	key := CacheKey(c.prefix, q, page)

	if movies, ok := c.lookup(ctx, key); ok {
		return movies, nil
	}

	movies, err := c.src.Movies(ctx, q, page)
	if err != nil {
		return nil, err
	}

	c.fill(ctx, key, movies)
	return movies, nil
}

func (c *CachedSource) lookup(ctx context.Context, key string) ([]Movie, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			metrics.CacheMisses.Inc()
		} else {
			metrics.CacheErrors.WithLabelValues("get").Inc()
			c.log.Warn().Err(err).Str("key", key).Msg("page cache read failed")
		}
		return nil, false
	}

	var movies []Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		metrics.CacheErrors.WithLabelValues("get").Inc()
		c.log.Warn().Err(err).Str("key", key).Msg("discarding corrupt page cache entry")
		return nil, false
	}
	if movies == nil {
		movies = []Movie{}
	}

	metrics.CacheHits.WithLabelValues("redis").Inc()
	return movies, true
}

func (c *CachedSource) fill(ctx context.Context, key string, movies []Movie) {
	if c.ttl <= 0 {
		return
	}

	data, err := json.Marshal(movies)
	if err != nil {
		metrics.CacheErrors.WithLabelValues("set").Inc()
		c.log.Warn().Err(err).Str("key", key).Msg("failed to encode page")
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		metrics.CacheErrors.WithLabelValues("set").Inc()
		c.log.Warn().Err(err).Str("key", key).Msg("page cache write failed")
	}
}
