package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/cosmicboard/internal/adapters/render"
	"github.com/okian/cosmicboard/internal/domain/filter"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/internal/domain/stats"
	"github.com/okian/cosmicboard/pkg/logger"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"
)

// seedNames is how many leading names seed search queries.
const seedNames = 3

// Request pacing stays under the server's default per-IP limit.
const (
	defaultVerifyRPS   = 8
	defaultVerifyBurst = 8
	defaultRetryAfter  = time.Second
	maxRetryAfter      = 30 * time.Second
)

// ErrInconsistent is returned when a server's views contradict its own full list.
var ErrInconsistent = errors.New("inconsistent board")

type scoresPayload struct {
	Mode   string       `json:"mode"`
	Search string       `json:"search"`
	Count  int          `json:"count"`
	Scores []render.Row `json:"scores"`
}

// Query is one (mode, search) query checked against the full list.
type Query struct {
	Mode   string
	Search string
}

// Verifier queries a running board server and cross-checks its answers.
type Verifier struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     logger.Logger
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithRequestRate paces requests to rps with the given burst. A non-positive
// rps removes pacing.
func WithRequestRate(rps float64, burst int) VerifierOption {
	return func(v *Verifier) {
		if rps <= 0 {
			v.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		v.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewVerifier creates a verifier for the server at baseURL.
func NewVerifier(baseURL string, timeout time.Duration, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(defaultVerifyRPS, defaultVerifyBurst),
		log:     logger.Named("verify"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// getJSON paces the request and retries once when the server answers 429.
func (v *Verifier) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := v.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	body, status, wait, err := v.get(ctx, path, u)
	if err != nil {
		return err
	}
	if status == http.StatusTooManyRequests {
		v.log.Warn(ctx, "rate limited, retrying", logger.String("path", path), logger.Duration("after", wait))
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		if body, status, _, err = v.get(ctx, path, u); err != nil {
			return err
		}
	}
	if status != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, status)
	}
	return json.Unmarshal(body, out)
}

func (v *Verifier) get(ctx context.Context, path, u string) ([]byte, int, time.Duration, error) {
	if err := v.limiter.Wait(ctx); err != nil {
		return nil, 0, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read %s: %w", path, err)
	}
	return body, resp.StatusCode, retryAfter(resp.Header.Get("Retry-After")), nil
}

// retryAfter reads a delay in seconds, capped at maxRetryAfter.
func retryAfter(h string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || secs < 1 {
		return defaultRetryAfter
	}
	if d := time.Duration(secs) * time.Second; d < maxRetryAfter {
		return d
	}
	return maxRetryAfter
}

// Run fetches the full list, then checks the default queries, extra and the aggregates.
// It returns the number of queries checked.
func (v *Verifier) Run(ctx context.Context, extra []Query) (int, error) {
	var full scoresPayload
	if err := v.getJSON(ctx, "/api/scores", nil, &full); err != nil {
		return 0, err
	}
	all := make(model.ScoreList, len(full.Scores))
	for i, r := range full.Scores {
		all[i] = model.ScoreEntry{Name: r.Name, Score: r.Score, Wave: r.Wave, Mode: r.Mode, Date: r.Date}
	}
	v.log.Info(ctx, "fetched full board", logger.Int("scores", len(all)))

	names := make([]string, 0, seedNames)
	for i := 0; i < len(all) && i < seedNames; i++ {
		names = append(names, all[i].Name)
	}
	queries := append(DefaultQueries(names), extra...)

	var problems []string
	for _, p := range queries {
		var got scoresPayload
		q := url.Values{"mode": {p.Mode}, "q": {p.Search}}
		if err := v.getJSON(ctx, "/api/scores", q, &got); err != nil {
			return 0, err
		}
		want := filter.Apply(all, filter.State{Mode: p.Mode, SearchTerm: p.Search})
		if msg := compareView(want, got); msg != "" {
			problems = append(problems, fmt.Sprintf("mode=%q q=%q: %s", p.Mode, p.Search, msg))
			continue
		}
		v.log.Debug(ctx, "query consistent", logger.String("mode", p.Mode), logger.String("search", p.Search), logger.Int("size", got.Count))
	}

	var gotStats stats.Summary
	if err := v.getJSON(ctx, "/api/stats", nil, &gotStats); err != nil {
		return 0, err
	}
	if want := stats.Compute(all); want != gotStats {
		problems = append(problems, fmt.Sprintf("stats: got %+v, want %+v", gotStats, want))
	}

	if len(problems) > 0 {
		for _, p := range problems {
			v.log.Warn(ctx, "inconsistency", logger.String("detail", p))
		}
		return len(queries), fmt.Errorf("%w: %s", ErrInconsistent, strings.Join(problems, "; "))
	}
	v.log.Info(ctx, "board verified", logger.Int("queries", len(queries)))
	return len(queries), nil
}

func compareView(want model.ScoreList, got scoresPayload) string {
	if got.Count != len(got.Scores) {
		return fmt.Sprintf("count %d but %d rows", got.Count, len(got.Scores))
	}
	if len(want) != len(got.Scores) {
		return fmt.Sprintf("got %d rows, want %d", len(got.Scores), len(want))
	}
	for i, r := range got.Scores {
		if r.Rank != i+1 {
			return fmt.Sprintf("row %d has rank %d", i, r.Rank)
		}
		if r.Name != want[i].Name || r.Score != want[i].Score || r.Mode != want[i].Mode {
			return fmt.Sprintf("row %d is %s/%d, want %s/%d", i, r.Name, r.Score, want[i].Name, want[i].Score)
		}
	}
	return ""
}

// DefaultQueries covers every mode button plus a few searches drawn from names.
func DefaultQueries(names []string) []Query {
	queries := []Query{
		{Mode: model.ModeAll}, {Mode: model.ModeNormal}, {Mode: model.ModeInfinite},
		{Mode: "no-such-mode"}, {Mode: model.ModeAll, Search: "zzzz-nobody"},
	}
	for _, n := range names {
		if r := []rune(n); len(r) >= 2 {
			term := strings.ToUpper(string(r[:2]))
			queries = append(queries, Query{Mode: model.ModeAll, Search: term}, Query{Mode: model.ModeNormal, Search: term})
		}
	}
	return queries
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "check a running board server's views against its own full list",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:9080", Usage: "base URL of the server"},
			&cli.DurationFlag{Name: "http-timeout", Value: 10 * time.Second, Usage: "per-request timeout"},
			&cli.StringSliceFlag{Name: "search", Usage: "extra search terms to check"},
			&cli.Float64Flag{Name: "rps", Value: defaultVerifyRPS, Usage: "request rate; 0 disables pacing"},
		},
		Action: func(c *cli.Context) error {
			rps := c.Float64("rps")
			v := NewVerifier(c.String("url"), c.Duration("http-timeout"), WithRequestRate(rps, int(rps)))
			var extra []Query
			for _, term := range c.StringSlice("search") {
				extra = append(extra, Query{Mode: model.ModeAll, Search: term})
			}
			n, err := v.Run(c.Context, extra)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			_, _ = fmt.Fprintf(c.App.Writer, "ok: %d queries consistent\n", n)
			return nil
		},
	}
}
