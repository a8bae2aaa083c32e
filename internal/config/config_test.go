package config

import (
	"reflect"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != ":8000" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, DefaultAllowedOrigins) {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.OpenAIAPIKey != "" {
		t.Fatalf("expected empty api key, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"PORT":             "9090",
		"ALLOWED_ORIGINS":  "https://a.example.com, https://b.example.com/",
		"OPENAI_API_KEY":   " sk-test ",
		"OPENAI_BASE_URL":  "http://proxy.local/v1",
		"LOG_LEVEL":        "debug",
		"SHUTDOWN_TIMEOUT": "3s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.OpenAIAPIKey != "sk-test" {
		t.Fatalf("unexpected api key: %q", cfg.OpenAIAPIKey)
	}
	if cfg.OpenAIBaseURL != "http://proxy.local/v1" {
		t.Fatalf("unexpected base url: %q", cfg.OpenAIBaseURL)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
}

func TestFromEnvInvalidShutdownTimeout(t *testing.T) {
	if _, err := FromEnv(lookupFrom(map[string]string{"SHUTDOWN_TIMEOUT": "soon"})); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestFromEnvFallsBackWhenNoOriginUsable(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{"ALLOWED_ORIGINS": " , localhost:3000"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, DefaultAllowedOrigins) {
		t.Fatalf("expected default origins, got %v", cfg.AllowedOrigins)
	}
	if !reflect.DeepEqual(cfg.RejectedOrigins, []string{"localhost:3000"}) {
		t.Fatalf("unexpected rejected origins: %v", cfg.RejectedOrigins)
	}
}

func TestParseAllowedOrigins(t *testing.T) {
	allowed, rejected := ParseAllowedOrigins("http://localhost:3000,,  https://app.example.com ,ftp://files")
	if !reflect.DeepEqual(allowed, []string{"http://localhost:3000", "https://app.example.com"}) {
		t.Fatalf("unexpected allowed: %v", allowed)
	}
	if !reflect.DeepEqual(rejected, []string{"ftp://files"}) {
		t.Fatalf("unexpected rejected: %v", rejected)
	}
}

func TestFromEnvKeepsAnyOrigin(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{"ALLOWED_ORIGINS": "*"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{AnyOrigin}) {
		t.Fatalf("expected allow-all marker, got %v", cfg.AllowedOrigins)
	}
	if len(cfg.RejectedOrigins) != 0 {
		t.Fatalf("expected nothing rejected, got %v", cfg.RejectedOrigins)
	}
}
