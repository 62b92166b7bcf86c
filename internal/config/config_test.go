package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so a developer's .env cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "PORT", "GEMINI_PRIMARY_MODEL", "GEMINI_BASE_URL",
		"GEMINI_TIMEOUT", "GEMINI_INIT_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.PrimaryModel)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.InitTimeout)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.GeminiBaseURL)
}

func TestLoadMissingAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "   ")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_PRIMARY_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_SECONDARY_MODEL", "gemini-1.5-flash")
	t.Setenv("GEMINI_BASE_URL", "http://127.0.0.1:9999/")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("GEMINI_INIT_TIMEOUT", "2s")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"port", cfg.Port, 9090},
		{"primary", cfg.PrimaryModel, "gemini-2.5-pro"},
		{"secondary", cfg.SecondaryModel, "gemini-1.5-flash"},
		{"base_url", cfg.GeminiBaseURL, "http://127.0.0.1:9999/"},
		{"timeout", cfg.RequestTimeout, 5 * time.Second},
		{"init_timeout", cfg.InitTimeout, 2 * time.Second},
		{"log_level", cfg.LogLevel, zerolog.WarnLevel},
		{"log_format", cfg.LogFormat, "console"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoadEmptySecondaryDisablesTier(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GEMINI_SECONDARY_MODEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.SecondaryModel)
}

func TestLoadInvalidPortFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unparsable timeout", "GEMINI_TIMEOUT", "soon"},
		{"zero timeout", "GEMINI_TIMEOUT", "0s"},
		{"negative init timeout", "GEMINI_INIT_TIMEOUT", "-1s"},
		{"unknown level", "LOG_LEVEL", "loud"},
		{"unknown format", "LOG_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("GEMINI_API_KEY", "k")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
