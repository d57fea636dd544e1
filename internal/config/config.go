// Package config loads movierec settings from defaults, an optional YAML
// file and MOVIEREC_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variable names:
// MOVIEREC_API_BASE_URL -> api.base_url.
const EnvPrefix = "MOVIEREC_"

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// Grid column bounds offered by both front ends.
const (
	MinColumns = 4
	MaxColumns = 8
)

// Config is the root of the configuration tree.
type Config struct {
	API APIConfig `koanf:"api"`
	UI  UIConfig  `koanf:"ui"`
	Web WebConfig `koanf:"web"`
	Log LogConfig `koanf:"log"`
}

// APIConfig describes the remote movie API.
type APIConfig struct {
	BaseURL      string        `koanf:"base_url" validate:"required,url"`
	ImageBaseURL string        `koanf:"image_base_url" validate:"required,url"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	CacheTTL     time.Duration `koanf:"cache_ttl" validate:"gte=0"`

	// Circuit breaker: open after BreakerMinRequests with a failure ratio of
	// at least BreakerFailureRatio, retry after BreakerCooldown. The
	// cooldown may not outlast CacheTTL, so a rejected render is retried no
	// later than a cached one would be refetched.
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests" validate:"gte=1"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio" validate:"gt=0,lte=1"`
	BreakerCooldown     time.Duration `koanf:"breaker_cooldown" validate:"gt=0"`
}

// UIConfig holds render defaults shared by the terminal and web shells.
type UIConfig struct {
	FeedLimit       int    `koanf:"feed_limit" validate:"gte=1,lte=100"`
	RecommendLimit  int    `koanf:"recommend_limit" validate:"gte=1,lte=100"`
	DefaultColumns  int    `koanf:"default_columns" validate:"gte=4,lte=8"`
	DefaultCategory string `koanf:"default_category" validate:"oneof=trending popular top_rated now_playing upcoming"`
}

// WebConfig configures cmd/movierec-web.
type WebConfig struct {
	Addr         string        `koanf:"addr" validate:"required"`
	RateLimit    int           `koanf:"rate_limit" validate:"gte=0"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	CookieName   string        `koanf:"cookie_name" validate:"required"`
	// SessionIdle drops browser sessions unused for this long; 0 keeps them.
	SessionIdle time.Duration `koanf:"session_idle" validate:"gte=0"`
}

// LogConfig configures internal/logging.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" validate:"oneof=json console"`
	// File is used by the terminal UI only.
	File string `koanf:"file"`
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:             "https://movie-recommendation-vzh6.onrender.com",
			ImageBaseURL:        "https://image.tmdb.org/t/p/w500",
			Timeout:             25 * time.Second,
			CacheTTL:            30 * time.Second,
			BreakerMinRequests:  5,
			BreakerFailureRatio: 0.8,
			BreakerCooldown:     10 * time.Second,
		},
		UI: UIConfig{
			FeedLimit:       24,
			RecommendLimit:  12,
			DefaultColumns:  6,
			DefaultCategory: "trending",
		},
		Web: WebConfig{
			Addr:         ":8501",
			RateLimit:    120,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // covers two sequential 25s API calls
			CookieName:   "movierec_session",
			SessionIdle:  2 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			File:   "movierec.log",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration: defaults, then the YAML file, then env.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps MOVIEREC_SECTION_SOME_KEY to section.some_key.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + rest
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks struct tags and the rules tags cannot express.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	for name, raw := range map[string]string{
		"api.base_url":       c.API.BaseURL,
		"api.image_base_url": c.API.ImageBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: scheme must be http or https, got %q", name, u.Scheme)
		}
	}

	if c.API.CacheTTL > 0 && c.API.BreakerCooldown > c.API.CacheTTL {
		return fmt.Errorf("api.breaker_cooldown (%s) must not exceed api.cache_ttl (%s)",
			c.API.BreakerCooldown, c.API.CacheTTL)
	}
	return nil
}

// TrimmedBaseURL returns base_url without a trailing slash so paths can be
// appended directly.
func (c APIConfig) TrimmedBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}
