package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/cosmicboard/internal/domain/filter"
	"github.com/okian/cosmicboard/internal/domain/model"
	"github.com/okian/cosmicboard/pkg/metrics"
)

// HTTP status code constants.
const (
	statusBadRequest      = 400
	statusNotFound        = 404
	statusTooManyRequests = 429
	statusInternalError   = 500
)

// Metrics records request count, latency and error metrics under route.
func Metrics(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			durationMs := float64(time.Since(start).Milliseconds())
			status := strconv.Itoa(wrapped.statusCode)
			metrics.RecordHTTPRequest(route, r.Method, status)
			metrics.RecordHTTPRequestDuration(route, r.Method, status, durationMs)

			if wrapped.statusCode >= statusBadRequest {
				kind := errorType(wrapped.statusCode)
				metrics.RecordErrorByEndpoint(route, r.Method, kind)
				metrics.RecordErrorByType(kind, errorSeverity(wrapped.statusCode))
				metrics.RecordErrorLatency("http", kind, durationMs)
			}
		})
	}
}

// ViewQuery counts a filtered view request by which filters its query string asks for.
func ViewQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.RecordViewQuery(requestState(r).Filters())
		next.ServeHTTP(w, r)
	})
}

// requestState is the filter state a view route will apply. An absent mode means all.
func requestState(r *http.Request) filter.State {
	mode, term := filterParams(r)
	if mode == "" {
		mode = model.ModeAll
	}
	return filter.State{Mode: mode, SearchTerm: term}
}

func errorType(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "server_error"
	case statusCode == statusTooManyRequests:
		return "rate_limit"
	case statusCode == statusNotFound:
		return "not_found"
	case statusCode >= statusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}

func errorSeverity(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "high"
	case statusCode >= statusBadRequest:
		return "medium"
	default:
		return "low"
	}
}

// statusRecorder keeps the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
