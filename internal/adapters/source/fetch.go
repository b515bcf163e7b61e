package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Fetcher reads the raw bytes behind a location.
// Failures to reach the location wrap ErrEndpointUnreachable.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, location string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, location string) ([]byte, error) {
	return f(ctx, location)
}

// DefaultMaxBytes caps a response body when no explicit limit is set.
const DefaultMaxBytes int64 = 8 << 20

// HTTPFetcher issues a single GET per call. There is no retry.
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher returns an HTTPFetcher reading at most maxBytes per body.
func NewHTTPFetcher(client *http.Client, maxBytes int64) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{Client: client, MaxBytes: maxBytes}
}

// Fetch performs the request. Transport errors and non-2xx statuses are unreachable.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEndpointUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEndpointUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrEndpointUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrEndpointUnreachable, err)
	}
	if int64(len(body)) > f.MaxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedPayload, f.MaxBytes)
	}
	return body, nil
}

// FileFetcher reads a local path. Both "file:///x" and "x" are accepted.
type FileFetcher struct {
	MaxBytes int64
}

// Fetch reads the file at location.
func (f FileFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEndpointUnreachable, err)
	}
	path := strings.TrimPrefix(location, "file://")

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEndpointUnreachable, err)
	}
	defer func() { _ = fh.Close() }()

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(fh, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEndpointUnreachable, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrMalformedPayload, limit)
	}
	return body, nil
}

// SchemeFetcher routes http(s) locations to HTTP and everything else to File.
type SchemeFetcher struct {
	HTTP Fetcher
	File Fetcher
}

// NewSchemeFetcher builds the default fetcher used by the service.
func NewSchemeFetcher(client *http.Client, maxBytes int64) *SchemeFetcher {
	return &SchemeFetcher{
		HTTP: NewHTTPFetcher(client, maxBytes),
		File: FileFetcher{MaxBytes: maxBytes},
	}
}

// Fetch dispatches on the location scheme.
func (f *SchemeFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return f.HTTP.Fetch(ctx, location)
	}
	return f.File.Fetch(ctx, location)
}
