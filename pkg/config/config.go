// Package config loads service configuration from a TOML file with
// defaults-first semantics: a missing file is not an error, and every
// field has a usable built-in value.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvAuthToken overrides [server].auth_token when set, so the secret can
// stay out of the config file.
const EnvAuthToken = "SEOCARD_AUTH_TOKEN"

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Fonts  FontsConfig  `toml:"fonts"`
	HTTP   HTTPConfig   `toml:"http"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Listen    string `toml:"listen"`
	AuthToken string `toml:"auth_token"` // empty disables bearer auth
}

// FontsConfig controls the font provider.
type FontsConfig struct {
	Endpoint string `toml:"endpoint"`
	TTLDays  int    `toml:"ttl_days"`
}

// HTTPConfig bounds outbound calls (font service, icon source).
type HTTPConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
	RetryMax       int `toml:"retry_max"`
}

// LogConfig controls log output. An empty File logs to stderr.
type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Listen: ":8080"},
		Fonts:  FontsConfig{Endpoint: "https://fonts.googleapis.com/css2", TTLDays: 7},
		HTTP:   HTTPConfig{TimeoutSeconds: 15, RetryMax: 2},
		Log:    LogConfig{Level: "info", MaxSizeMB: 10},
	}
}

// Load reads the file at path on top of the defaults. path may be empty
// and a missing file yields pure defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if tok := os.Getenv(EnvAuthToken); tok != "" {
		cfg.Server.AuthToken = tok
	}

	return cfg, nil
}

// FontTTL returns the font cache lifetime as a duration.
func (c Config) FontTTL() time.Duration {
	days := c.Fonts.TTLDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// HTTPTimeout returns the outbound request timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	secs := c.HTTP.TimeoutSeconds
	if secs <= 0 {
		secs = 15
	}
	return time.Duration(secs) * time.Second
}
