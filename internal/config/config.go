/*
Package config loads the process configuration from the environment.
A .env file in the working directory is picked up automatically.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

const (
	defaultPort           = 5000
	defaultPrimaryModel   = "gemini-2.5-flash"
	defaultSecondaryModel = "gemini-2.0-flash"
	defaultTimeout        = 30 * time.Second
	defaultInitTimeout    = 10 * time.Second
)

// ErrMissingAPIKey is returned by Load when GEMINI_API_KEY is unset or blank.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// Config holds every tunable the server reads at startup.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int

	// GeminiAPIKey is the credential for the generative-language API.
	GeminiAPIKey string

	// PrimaryModel is tried first; SecondaryModel is used when the primary
	// cannot be initialized. An empty SecondaryModel disables that tier.
	PrimaryModel   string
	SecondaryModel string

	// GeminiBaseURL overrides the SDK's default endpoint when set.
	GeminiBaseURL string

	// RequestTimeout bounds a single generateContent call.
	RequestTimeout time.Duration

	// InitTimeout bounds the startup model probe.
	InitTimeout time.Duration

	LogLevel  zerolog.Level
	LogFormat string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           defaultPort,
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		PrimaryModel:   envOr("GEMINI_PRIMARY_MODEL", defaultPrimaryModel),
		SecondaryModel: defaultSecondaryModel,
		GeminiBaseURL:  strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		RequestTimeout: defaultTimeout,
		InitTimeout:    defaultInitTimeout,
		LogLevel:       zerolog.DebugLevel,
		LogFormat:      envOr("LOG_FORMAT", "json"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	// Attempt to parse port from environment; fallback to the default if not set or invalid.
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
		cfg.Port = port
	}

	// An explicitly empty value switches the secondary tier off.
	if v, ok := os.LookupEnv("GEMINI_SECONDARY_MODEL"); ok {
		cfg.SecondaryModel = strings.TrimSpace(v)
	}

	var err error
	if cfg.RequestTimeout, err = durationEnv("GEMINI_TIMEOUT", defaultTimeout); err != nil {
		return nil, err
	}
	if cfg.InitTimeout, err = durationEnv("GEMINI_INIT_TIMEOUT", defaultInitTimeout); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = lvl
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be json or console", cfg.LogFormat)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}
