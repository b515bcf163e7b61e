// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and COSMIC_* env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

// Endpoint names one candidate location for the score payload.
// Location is an http(s) URL, a file:// URL or a plain file path.
type Endpoint struct {
	Name     string `koanf:"name"`
	Location string `koanf:"location"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Endpoints is the ordered fallback chain for the score payload.
	Endpoints []Endpoint `koanf:"endpoints"`

	// AttemptTimeoutMS bounds a single endpoint attempt.
	AttemptTimeoutMS int `koanf:"attempt_timeout_ms"`

	// MaxPayloadBytes caps how much of a response body is read.
	MaxPayloadBytes int64 `koanf:"max_payload_bytes"`

	// RateLimitRPS and RateLimitBurst configure the per-IP HTTP limiter.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// CORSOrigins lists origins allowed to call the JSON API.
	CORSOrigins []string `koanf:"cors_origins"`

	// ChartMaxLimit caps GET /chart.png?limit.
	ChartMaxLimit int `koanf:"chart_max_limit"`
}

// DefaultEndpoints is the chain used when none is configured.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Name: "github-raw", Location: "https://raw.githubusercontent.com/fabyan09/cosmic-defender-leaderboard/main/cosmic_defender_leaderboard.json"},
		{Name: "github-pages", Location: "https://fabyan09.github.io/cosmic-defender-leaderboard/cosmic_defender_leaderboard.json"},
		{Name: "local", Location: "./cosmic_defender_leaderboard.json"},
	}
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		Endpoints:        DefaultEndpoints(),
		AttemptTimeoutMS: 5000,
		MaxPayloadBytes:  8 << 20,
		RateLimitRPS:     10,
		RateLimitBurst:   20,
		CORSOrigins:      []string{"*"},
		ChartMaxLimit:    50,
	}
}
