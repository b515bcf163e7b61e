package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. COSMIC_ADDR.
const EnvPrefix = "COSMIC_"

// FileEnv names the env var pointing at an optional YAML config file.
const FileEnv = EnvPrefix + "CONFIG"

// listKeys are flat keys whose env values are comma-separated lists.
var listKeys = map[string]bool{
	"cors_origins": true,
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if COSMIC_CONFIG is set
//  3. env (prefix COSMIC_)
//
// The endpoint chain is a list of objects and can only be set from the file.
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// COSMIC_ATTEMPT_TIMEOUT_MS -> attempt_timeout_ms (flat keys, underscores kept)
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if listKeys[key] {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	// Lists replace the defaults rather than merging element-wise.
	if k.Exists("endpoints") {
		cfg.Endpoints = nil
	}
	if k.Exists("cors_origins") {
		cfg.CORSOrigins = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the rest of the program relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case len(c.Endpoints) == 0:
		return fmt.Errorf("%w: at least one endpoint is required", ErrInvalidConfig)
	case c.AttemptTimeoutMS <= 0:
		return fmt.Errorf("%w: attempt_timeout_ms must be positive", ErrInvalidConfig)
	case c.MaxPayloadBytes <= 0:
		return fmt.Errorf("%w: max_payload_bytes must be positive", ErrInvalidConfig)
	case c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0:
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidConfig)
	case c.ChartMaxLimit <= 0:
		return fmt.Errorf("%w: chart_max_limit must be positive", ErrInvalidConfig)
	}
	for i, ep := range c.Endpoints {
		if strings.TrimSpace(ep.Name) == "" || strings.TrimSpace(ep.Location) == "" {
			return fmt.Errorf("%w: endpoint %d needs a name and a location", ErrInvalidConfig, i)
		}
	}
	return nil
}
