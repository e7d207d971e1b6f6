// Package fetcher downloads the upstream gitmoji registry.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/starford/gitmojis-list/internal/apperr"
)

// Fetcher issues a single GET per call. It never retries.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New creates a Fetcher. A nil client means http.DefaultClient.
func New(client *http.Client, userAgent string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch returns the full response body of url, accumulated in arrival order.
// Transport failures and non-2xx statuses are network failures.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNetwork, fmt.Errorf("build request: %w", err))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNetwork, fmt.Errorf("get %s: %w", url, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.Wrapf(apperr.KindNetwork, "get %s: unexpected status %s", url, resp.Status)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		return nil, apperr.Wrap(apperr.KindNetwork, fmt.Errorf("read body of %s: %w", url, err))
	}
	return body.Bytes(), nil
}
