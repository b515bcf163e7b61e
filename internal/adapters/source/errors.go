package source

import "errors"

// Sentinel kinds for endpoint attempts. Load recovers from both; they only
// surface through logs, metrics and the Fetcher/Decode return values.
var (
	ErrEndpointUnreachable = errors.New("endpoint unreachable")
	ErrMalformedPayload    = errors.New("malformed payload")
)
