// Package config loads the catalog command configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/scrollz/internal/logging"
)

//go:embed config.default.yaml
var defaultConfigYAML []byte

// Source kinds.
const (
	SourceMemory = "memory"
	SourceTMDB   = "tmdb"
)

// TokenEnv overrides the TMDB token so it need not live in the file.
const TokenEnv = "TMDB_TOKEN"

var (
	ErrUnknownSource = errors.New("unknown source kind")
	ErrMissingToken  = errors.New("tmdb source requires a token")
	ErrPageSize      = errors.New("page_size must be positive")
	ErrQuery         = errors.New("scroll needs a category or a genre_id")
)

type Config struct {
	Log     logging.Config `yaml:"log"`
	Source  Source         `yaml:"source"`
	Cache   Cache          `yaml:"cache"`
	Scroll  Scroll         `yaml:"scroll"`
	Metrics Metrics        `yaml:"metrics"`
}

type Source struct {
	Kind     string `yaml:"kind"`
	Fixture  string `yaml:"fixture"`
	PageSize int    `yaml:"page_size"`
	TMDB     TMDB   `yaml:"tmdb"`
}

type TMDB struct {
	BaseURL  string        `yaml:"base_url"`
	Token    string        `yaml:"token"`
	Language string        `yaml:"language"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Cache enables the Redis page cache when RedisAddr is set.
type Cache struct {
	RedisAddr string        `yaml:"redis_addr"`
	Prefix    string        `yaml:"prefix"`
	TTL       time.Duration `yaml:"ttl"`
}

// Scroll selects what to page through and how triggers are smoothed.
// A non-zero GenreID takes precedence over Category.
type Scroll struct {
	Category  string        `yaml:"category"`
	GenreID   int           `yaml:"genre_id"`
	FirstPage int           `yaml:"first_page"`
	Debounce  time.Duration `yaml:"debounce"`
}

type Metrics struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	cfg := defaultConfig()
	cfg.init()
	return cfg
}

// LoadConfig reads file over the defaults. An empty file name returns the
// defaults.
func LoadConfig(file string) (*Config, error) {
	cfg := defaultConfig()

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		if err = yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.init()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) init() {
	if token := os.Getenv(TokenEnv); token != "" {
		c.Source.TMDB.Token = token
	}
}

func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceMemory:
	case SourceTMDB:
		if c.Source.TMDB.Token == "" {
			return ErrMissingToken
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Source.Kind)
	}

	if c.Source.PageSize <= 0 {
		return ErrPageSize
	}
	if c.Scroll.Category == "" && c.Scroll.GenreID == 0 {
		return ErrQuery
	}
	return nil
}

func defaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		panic(fmt.Errorf("failed to load default config: %w", err))
	}
	return &cfg
}
