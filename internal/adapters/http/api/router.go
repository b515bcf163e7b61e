package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/okian/cosmicboard/internal/adapters/http/site"
	"github.com/okian/cosmicboard/internal/adapters/http/swagger"
	"github.com/okian/cosmicboard/internal/adapters/render"
)

// RouterConfig contains all dependencies needed to construct the HTTP router.
type RouterConfig struct {
	// Deps answers board queries (required).
	Deps Dependencies

	// Stats feeds GET /stats (required).
	Stats StatsProvider

	// Page renders the HTML board. If nil, one is built from the embedded template.
	Page *render.PageRenderer

	// RateLimiter is an optional pre-configured limiter.
	// If nil, one is created from RateLimitConfig or the defaults.
	RateLimiter     *IPRateLimiter
	RateLimitConfig *RateLimitConfig

	// CORSOrigins lists origins allowed to read the API. Nil allows any origin.
	CORSOrigins []string

	// ChartMaxLimit caps /chart.png?limit. Zero means 50.
	ChartMaxLimit int

	// DisableLogging drops the request logger middleware (tests, benchmarks).
	DisableLogging bool
}

// NewRouter builds the chi router with middleware and every route.
// It opens no listeners; a limiter it creates itself is stopped when ctx ends.
func NewRouter(ctx context.Context, cfg RouterConfig) (*chi.Mux, error) {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting before CORS so rejected requests do no extra work.
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rlCfg := DefaultRateLimitConfig()
		if cfg.RateLimitConfig != nil {
			rlCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rlCfg)
		go func() {
			<-ctx.Done()
			rateLimiter.Stop()
		}()
	}
	r.Use(rateLimiter.Middleware)

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	page := cfg.Page
	if page == nil {
		var err error
		if page, err = render.NewPageRenderer(); err != nil {
			return nil, err
		}
	}
	maxLimit := cfg.ChartMaxLimit
	if maxLimit <= 0 {
		maxLimit = 50
	}

	NewServer(cfg.Deps, limiterStats{StatsProvider: cfg.Stats, limiter: rateLimiter}, page, maxLimit).Register(r)
	site.Register(ctx, r)
	swagger.Register(ctx, r)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
	return r, nil
}
