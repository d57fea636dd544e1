package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.API.Timeout != 25*time.Second {
		t.Errorf("expected 25s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.API.CacheTTL != 30*time.Second {
		t.Errorf("expected 30s cache ttl, got %v", cfg.API.CacheTTL)
	}
	if cfg.UI.FeedLimit != 24 || cfg.UI.RecommendLimit != 12 {
		t.Errorf("unexpected limits: %+v", cfg.UI)
	}
	if cfg.UI.DefaultColumns != 6 {
		t.Errorf("expected 6 default columns, got %d", cfg.UI.DefaultColumns)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "BaseURL"},
		{"ftp base url", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, "scheme"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "Timeout"},
		{"too many columns", func(c *Config) { c.UI.DefaultColumns = 9 }, "DefaultColumns"},
		{"too few columns", func(c *Config) { c.UI.DefaultColumns = 3 }, "DefaultColumns"},
		{"unknown category", func(c *Config) { c.UI.DefaultCategory = "classics" }, "DefaultCategory"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "Format"},
		{"cooldown outlasts cache", func(c *Config) { c.API.BreakerCooldown = time.Minute }, "breaker_cooldown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"MOVIEREC_API_BASE_URL":       "api.base_url",
		"MOVIEREC_UI_DEFAULT_COLUMNS": "ui.default_columns",
		"MOVIEREC_WEB_ADDR":           "web.addr",
		"MOVIEREC_LOG":                "log",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movierec.yaml")
	yamlBody := "api:\n  base_url: http://file.example\n  cache_ttl: 5s\nui:\n  default_columns: 8\n"
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("MOVIEREC_API_BASE_URL", "http://env.example")
	t.Setenv("MOVIEREC_UI_FEED_LIMIT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://env.example" {
		t.Errorf("env should override file, got %q", cfg.API.BaseURL)
	}
	if cfg.API.CacheTTL != 5*time.Second {
		t.Errorf("file should override default ttl, got %v", cfg.API.CacheTTL)
	}
	if cfg.UI.DefaultColumns != 8 {
		t.Errorf("expected 8 columns from file, got %d", cfg.UI.DefaultColumns)
	}
	if cfg.UI.FeedLimit != 10 {
		t.Errorf("expected feed limit 10 from env, got %d", cfg.UI.FeedLimit)
	}
	if cfg.API.ImageBaseURL != "https://image.tmdb.org/t/p/w500" {
		t.Errorf("untouched keys keep defaults, got %q", cfg.API.ImageBaseURL)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("MOVIEREC_UI_DEFAULT_COLUMNS", "12")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation failure for 12 columns")
	}
}

func TestTrimmedBaseURL(t *testing.T) {
	c := APIConfig{BaseURL: "http://localhost:8000/"}
	if got := c.TrimmedBaseURL(); got != "http://localhost:8000" {
		t.Errorf("got %q", got)
	}
}
