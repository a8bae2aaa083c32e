package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAllowedOrigins is used when ALLOWED_ORIGINS is unset or yields no usable origin.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://macrocam-five.vercel.app",
}

// Config holds everything read from the environment at startup.
type Config struct {
	Port            string
	AllowedOrigins  []string
	RejectedOrigins []string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}

	shutdownTimeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", "15s"))
	if err != nil {
		return nil, err
	}

	rawOrigins, ok := lookup("ALLOWED_ORIGINS")
	if !ok {
		rawOrigins = strings.Join(DefaultAllowedOrigins, ",")
	}
	allowed, rejected := ParseAllowedOrigins(rawOrigins)
	if len(allowed) == 0 {
		allowed = append([]string(nil), DefaultAllowedOrigins...)
	}

	apiKey, _ := lookup("OPENAI_API_KEY")

	return &Config{
		Port:            get("PORT", "8000"),
		AllowedOrigins:  allowed,
		RejectedOrigins: rejected,
		OpenAIAPIKey:    strings.TrimSpace(apiKey),
		OpenAIBaseURL:   get("OPENAI_BASE_URL", ""),
		LogLevel:        get("LOG_LEVEL", "info"),
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

// AnyOrigin as an ALLOWED_ORIGINS entry admits every origin.
const AnyOrigin = "*"

// ParseAllowedOrigins splits a comma separated origin list. Blank entries are
// skipped, "*" is kept as the allow-all marker and other entries without an
// http or https scheme are returned as rejected.
func ParseAllowedOrigins(raw string) (allowed, rejected []string) {
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == AnyOrigin {
			allowed = append(allowed, origin)
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			rejected = append(rejected, origin)
			continue
		}
		allowed = append(allowed, strings.TrimSuffix(origin, "/"))
	}
	return allowed, rejected
}
