package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the bridge reads from the process environment.
// The host IDE sets EXTENSION_UUID, HOST, and PORT when it spawns the
// extension process.
type Config struct {
	Extension ExtensionConfig
	Logging   LogConfig
}

// ExtensionConfig identifies the extension session and locates the host.
type ExtensionConfig struct {
	UUID string `envconfig:"EXTENSION_UUID" required:"true"`
	Host string `envconfig:"HOST" required:"true"`
	Port int    `envconfig:"PORT" required:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables. A missing or empty
// required variable or a non-numeric PORT fails here, before any network
// traffic. envconfig only rejects unset variables, so empty values are
// checked explicitly: the host never sets a blank UUID or host.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Extension.UUID == "" {
		return nil, fmt.Errorf("failed to load config: EXTENSION_UUID must not be empty")
	}
	if cfg.Extension.Host == "" {
		return nil, fmt.Errorf("failed to load config: HOST must not be empty")
	}
	return &cfg, nil
}

// BaseURL returns the host endpoint root, e.g. "http://127.0.0.1:9100".
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Extension.Host, c.Extension.Port)
}
