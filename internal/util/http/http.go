// Package http fetches remote palette documents.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/internal/version"
)

const (
	// DefaultTimeout is the request timeout used when FetchOptions.Timeout is zero.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps response bodies; palettes are a few hundred bytes.
	DefaultMaxBytes = 1 << 20
)

// FetchOptions configures Fetch.
type FetchOptions struct {
	Timeout  time.Duration
	MaxBytes int64
	Headers  map[string]string
	// Policy is applied to the URL before any request is made.
	Policy security.URLPolicy
	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// Fetch GETs url and returns the body. Non-200 responses and bodies larger than
// MaxBytes are errors.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	if err := security.ValidateHTTPURL(url, opts.Policy); err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json")
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBytes)
	}
	return data, nil
}
