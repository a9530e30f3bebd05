// Package config loads the runtime settings of the framecraft binaries from
// the environment, after merging an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the composer API configuration.
type Config struct {
	HTTPPort string

	LogLevel  string
	LogFormat string
	LogSource bool

	PexelsAPIKey  string
	PexelsBaseURL string

	// ShotstackHost is the render API root including the stage.
	ShotstackHost   string
	ShotstackAPIKey string
	// ShotstackStatusData requests the echoed edit on status lookups.
	ShotstackStatusData bool

	// StyleCatalog is an optional YAML file overriding style templates.
	StyleCatalog string

	// RedisAddr enables the search cache when set.
	RedisAddr      string
	SearchCacheTTL time.Duration

	RequestTimeout  time.Duration
	ProviderTimeout time.Duration

	AllowedOrigins []string
}

// PollerConfig is the poller CLI configuration.
type PollerConfig struct {
	ComposerURL  string
	PollInterval time.Duration
	LogLevel     string
	LogFormat    string
}

// LoadDotEnv merges .env and .env.local into the environment. Missing
// files are ignored and variables already set win.
func LoadDotEnv() {
	_ = godotenv.Load(".env", ".env.local")
}

// Load reads the composer configuration. Every missing required variable
// is reported in a single error.
func Load() (Config, error) {
	c := Config{
		HTTPPort:            Env("HTTP_PORT", "8080"),
		LogLevel:            Env("LOG_LEVEL", "info"),
		LogFormat:           Env("LOG_FORMAT", "json"),
		LogSource:           BoolEnv("LOG_SOURCE", false),
		PexelsAPIKey:        Env("PEXELS_API_KEY", ""),
		PexelsBaseURL:       Env("PEXELS_BASE_URL", "https://api.pexels.com/v1"),
		ShotstackHost:       Env("SHOTSTACK_HOST", ""),
		ShotstackAPIKey:     Env("SHOTSTACK_API_KEY", ""),
		ShotstackStatusData: BoolEnv("SHOTSTACK_STATUS_DATA", false),
		StyleCatalog:        Env("STYLE_CATALOG", ""),
		RedisAddr:           Env("REDIS_ADDR", ""),
		SearchCacheTTL:      DurationEnv("SEARCH_CACHE_TTL", 10*time.Minute),
		RequestTimeout:      DurationEnv("REQUEST_TIMEOUT", 30*time.Second),
		ProviderTimeout:     DurationEnv("PROVIDER_TIMEOUT", 20*time.Second),
		AllowedOrigins: CSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),
	}

	var missing []string
	for _, req := range []struct{ key, val string }{
		{"PEXELS_API_KEY", c.PexelsAPIKey},
		{"SHOTSTACK_HOST", c.ShotstackHost},
		{"SHOTSTACK_API_KEY", c.ShotstackAPIKey},
	} {
		if req.val == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return c, nil
}

// LoadPoller reads the poller CLI configuration.
func LoadPoller() PollerConfig {
	return PollerConfig{
		ComposerURL:  Env("COMPOSER_URL", "http://localhost:8080/shotstack"),
		PollInterval: DurationEnv("POLL_INTERVAL", 2*time.Second),
		LogLevel:     Env("LOG_LEVEL", "warn"),
		LogFormat:    Env("LOG_FORMAT", "text"),
	}
}
