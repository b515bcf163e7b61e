// Package cli implements the board command line: terminal views of the
// leaderboard, workbook export, payload generation and server verification.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/cosmicboard/internal/adapters/source"
	"github.com/okian/cosmicboard/internal/config"
	"github.com/okian/cosmicboard/pkg/logger"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

// NewApp builds the board CLI. Output goes to out, logs to errOut, and the
// interactive command reads from in.
func NewApp(in io.Reader, out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "board",
		Usage:     "Cosmic Defender leaderboard in the terminal",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "endpoint",
				Aliases: []string{"e"},
				Usage:   "score endpoint as name=location or location; repeat to build the chain",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-endpoint attempt timeout (overrides attempt_timeout_ms)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides log_level)",
			},
		},
		Metadata: map[string]interface{}{},
		Before:   before,
		Commands: []*cli.Command{
			showCommand(),
			interactiveCommand(),
			exportCommand(),
			generateCommand(),
			verifyCommand(),
		},
	}
}

// before loads configuration, applies flag overrides and configures logging.
func before(c *cli.Context) error {
	cfg, err := config.Load(c.Context)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if eps := c.StringSlice("endpoint"); len(eps) > 0 {
		cfg.Endpoints = parseEndpoints(eps)
	}
	if d := c.Duration("timeout"); d > 0 {
		cfg.AttemptTimeoutMS = int(d / time.Millisecond)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	if err := logger.Configure(cfg.LogFormat, c.App.ErrWriter); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	c.App.Metadata[configKey] = cfg
	return nil
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.New()
}

// parseEndpoints accepts "name=location" or a bare location.
func parseEndpoints(raw []string) []config.Endpoint {
	out := make([]config.Endpoint, 0, len(raw))
	for i, r := range raw {
		name, loc, ok := strings.Cut(r, "=")
		if !ok || strings.Contains(name, "/") || strings.Contains(name, ":") {
			name, loc = fmt.Sprintf("endpoint-%d", i+1), r
		}
		out = append(out, config.Endpoint{Name: name, Location: loc})
	}
	return out
}

// NewSource builds the configured endpoint chain.
func NewSource(cfg *config.Config) *source.Source {
	eps := make([]source.Endpoint, len(cfg.Endpoints))
	for i, ep := range cfg.Endpoints {
		eps[i] = source.Endpoint{Name: ep.Name, Location: ep.Location}
	}
	timeout := time.Duration(cfg.AttemptTimeoutMS) * time.Millisecond
	return source.New(eps,
		source.WithAttemptTimeout(timeout),
		source.WithFetcher(source.NewSchemeFetcher(&http.Client{}, cfg.MaxPayloadBytes)),
		source.WithLogger(logger.Named("source")),
	)
}
