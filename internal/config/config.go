// Package config loads the server configuration from an optional YAML file
// with environment-variable overrides. The rate table itself is a separate
// document owned by package rates; this only locates it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "24h" decode.
type Duration time.Duration

// UnmarshalYAML decodes a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// AuthConfig controls the optional bearer-token auth on the RPC surface.
// Auth is enabled only when a secret is set.
type AuthConfig struct {
	JWTSecret string   `yaml:"jwt_secret"`
	TokenTTL  Duration `yaml:"token_ttl"`
}

// Config is the full server configuration.
type Config struct {
	// ListenAddr is the address the HTTP server binds, e.g. ":8080".
	ListenAddr string `yaml:"listen_addr"`

	// RatesPath locates the tax rate document. Empty uses the embedded
	// default for the current tax year.
	RatesPath string `yaml:"rates_path"`

	Auth AuthConfig `yaml:"auth"`
}

// Default returns the configuration used when no file or overrides exist.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		Auth: AuthConfig{
			TokenTTL: Duration(24 * time.Hour),
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then environment overrides (PORT, RATES_PATH, JWT_SECRET).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	if ratesPath := os.Getenv("RATES_PATH"); ratesPath != "" {
		cfg.RatesPath = ratesPath
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	if cfg.ListenAddr == "" {
		return Config{}, fmt.Errorf("listen_addr must not be empty")
	}
	return cfg, nil
}
