package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("EXTENSION_UUID", "ext-1234")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9100")
}

func TestLoad(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ext-1234", cfg.Extension.UUID)
	assert.Equal(t, "127.0.0.1", cfg.Extension.Host)
	assert.Equal(t, 9100, cfg.Extension.Port)

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadLoggingOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		omit string
	}{
		{name: "unset extension uuid", omit: "EXTENSION_UUID"},
		{name: "unset host", omit: "HOST"},
		{name: "unset port", omit: "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			// t.Setenv registered the restore; now make the variable
			// genuinely absent rather than empty.
			require.NoError(t, os.Unsetenv(tt.omit))

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// An empty value is as unusable as an absent one; envconfig alone would let
// it through.
func TestLoadEmptyRequired(t *testing.T) {
	tests := []struct {
		name  string
		empty string
	}{
		{name: "empty extension uuid", empty: "EXTENSION_UUID"},
		{name: "empty host", empty: "HOST"},
		{name: "empty port", empty: "PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.empty, "")

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadNonNumericPort(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestBaseURL(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9100", cfg.BaseURL())
}
