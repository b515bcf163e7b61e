// Package site serves the board's embedded static assets.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/okian/cosmicboard/pkg/logger"
)

// Error constants
var (
	ErrServe = errors.New("static asset serve failed")
)

// Register attaches the embedded assets under /static/ to r.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		if err := serveAsset(w, req, chi.URLParam(req, "*")); err != nil {
			logger.Named("site").Debug(req.Context(), "asset not delivered",
				logger.String("path", req.URL.Path), logger.Error(err))
		}
	})
}

// serveAsset writes the embedded file name. Missing files answer 404; every
// failure wraps ErrServe.
func serveAsset(w http.ResponseWriter, r *http.Request, name string) error {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	data, err := fs.ReadFile(Assets(), name)
	if err != nil {
		http.NotFound(w, r)
		return fmt.Errorf("%w: %s: %w", ErrServe, name, err)
	}

	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrServe, name, err)
	}
	return nil
}
