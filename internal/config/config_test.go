package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PEXELS_API_KEY", "pexels-key")
	t.Setenv("SHOTSTACK_HOST", "https://api.shotstack.io/stage")
	t.Setenv("SHOTSTACK_API_KEY", "shot-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.HTTPPort != "8080" || c.LogLevel != "info" || c.LogFormat != "json" || c.LogSource {
		t.Errorf("server defaults: %+v", c)
	}
	if c.PexelsBaseURL != "https://api.pexels.com/v1" {
		t.Errorf("pexels base: %q", c.PexelsBaseURL)
	}
	if c.SearchCacheTTL != 10*time.Minute || c.RequestTimeout != 30*time.Second || c.ProviderTimeout != 20*time.Second {
		t.Errorf("durations: %+v", c)
	}
	if c.RedisAddr != "" || c.StyleCatalog != "" || c.ShotstackStatusData {
		t.Errorf("optional features should be off: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SHOTSTACK_STATUS_DATA", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SEARCH_CACHE_TTL", "1h")
	t.Setenv("PROVIDER_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.HTTPPort != "9000" || !c.ShotstackStatusData || c.RedisAddr != "localhost:6379" {
		t.Errorf("overrides: %+v", c)
	}
	if c.SearchCacheTTL != time.Hour {
		t.Errorf("ttl: %v", c.SearchCacheTTL)
	}
	if c.ProviderTimeout != 20*time.Second {
		t.Errorf("invalid duration should fall back, got %v", c.ProviderTimeout)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(c.AllowedOrigins, want) {
		t.Errorf("origins: %v", c.AllowedOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "")
	t.Setenv("SHOTSTACK_HOST", "")
	t.Setenv("SHOTSTACK_API_KEY", "k")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"PEXELS_API_KEY", "SHOTSTACK_HOST"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("expected %s in %q", key, err)
		}
	}
	if strings.Contains(err.Error(), "SHOTSTACK_API_KEY") {
		t.Errorf("set variable reported missing: %q", err)
	}
}

func TestLoadPoller(t *testing.T) {
	t.Setenv("COMPOSER_URL", "")
	t.Setenv("POLL_INTERVAL", "500ms")

	c := LoadPoller()
	if c.ComposerURL != "http://localhost:8080/shotstack" {
		t.Errorf("url: %q", c.ComposerURL)
	}
	if c.PollInterval != 500*time.Millisecond {
		t.Errorf("interval: %v", c.PollInterval)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FRAMECRAFT_TEST_VALUE=from-file\nFRAMECRAFT_TEST_SET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("FRAMECRAFT_TEST_SET", "from-env")
	t.Setenv("FRAMECRAFT_TEST_VALUE", "")
	os.Unsetenv("FRAMECRAFT_TEST_VALUE")

	LoadDotEnv()

	if got := os.Getenv("FRAMECRAFT_TEST_VALUE"); got != "from-file" {
		t.Errorf("value from .env: %q", got)
	}
	if got := os.Getenv("FRAMECRAFT_TEST_SET"); got != "from-env" {
		t.Errorf("environment must win over .env, got %q", got)
	}
}

func TestBoolEnv(t *testing.T) {
	tests := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"1", false, true},
		{"FALSE", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		t.Setenv("FRAMECRAFT_BOOL", tt.val)
		if got := BoolEnv("FRAMECRAFT_BOOL", tt.def); got != tt.want {
			t.Errorf("BoolEnv(%q, %v) = %v", tt.val, tt.def, got)
		}
	}
}
