// Package provider talks to the external news and weather services.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/logger"
)

const (
	userAgent     = "painel-proxy/1.0 (+dashboard aggregator)"
	maxBodyBytes  = 4 << 20
	detailsLength = 300
)

// RetryPolicy bounds every upstream fetch: Attempts tries, each limited by
// Timeout, with Pause between them.
type RetryPolicy struct {
	Attempts int
	Timeout  time.Duration
	Pause    time.Duration
}

// Fetcher performs GET requests with the policy's timeout and attempt count.
type Fetcher struct {
	client *http.Client
	policy RetryPolicy
	log    *logger.Logger
}

func NewFetcher(client *http.Client, policy RetryPolicy, log *logger.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if policy.Timeout <= 0 {
		policy.Timeout = 8 * time.Second
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Fetcher{client: client, policy: policy, log: log}
}

// Get returns the body of a 2xx response. When every attempt fails the last
// error is returned.
func (f *Fetcher) Get(ctx context.Context, url, accept string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= f.policy.Attempts; attempt++ {
		body, err := f.once(ctx, url, accept)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == f.policy.Attempts {
			break
		}

		f.log.Warn("upstream attempt failed", "url", redact(url), "attempt", attempt, "error", err)
		select {
		case <-time.After(f.policy.Pause):
		case <-ctx.Done():
			return nil, lastErr
		}
	}

	return nil, lastErr
}

// GetJSON fetches url and decodes the body into v.
func (f *Fetcher) GetJSON(ctx context.Context, url string, v any) error {
	body, err := f.Get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrParse, redact(url), err)
	}
	return nil
}

func (f *Fetcher) once(ctx context.Context, url, accept string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.policy.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w after %s: %s", domain.ErrUpstreamTimeout, f.policy.Timeout, redact(url))
		}
		return nil, fmt.Errorf("request to %s failed: %w", redact(url), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w reading body: %s", domain.ErrUpstreamTimeout, redact(url))
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamHTTPError{
			Status: resp.StatusCode,
			URL:    redact(url),
			Body:   Truncate(string(body), detailsLength),
		}
	}

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
