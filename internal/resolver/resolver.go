// Package resolver follows aggregator tracking links to the publisher's URL.
package resolver

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/logger"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout     = 4500 * time.Millisecond
	DefaultConcurrency = 3
	userAgent          = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Result is the publisher a link resolved to. Both fields are empty when
// resolution failed.
type Result struct {
	PublisherURL    string
	PublisherDomain string
}

type Resolver struct {
	client  *http.Client
	hosts   map[string]bool
	timeout time.Duration
	log     *logger.Logger
}

func New(client *http.Client, aggregatorHosts []string, timeout time.Duration, log *logger.Logger) *Resolver {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Discard()
	}
	hosts := make(map[string]bool, len(aggregatorHosts))
	for _, h := range aggregatorHosts {
		hosts[NormalizeHost(h)] = true
	}
	return &Resolver{client: client, hosts: hosts, timeout: timeout, log: log}
}

// NormalizeHost lowercases a host and drops a leading "www.".
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	return strings.TrimPrefix(host, "www.")
}

// IsAggregator reports whether rawURL points at a known redirect wrapper.
func (r *Resolver) IsAggregator(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return r.hosts[NormalizeHost(u.Hostname())]
}

// Resolve returns the publisher behind rawURL. Links that are not wrapped are
// returned as-is without a request. Every failure yields an empty Result.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) Result {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return Result{}
	}

	host := NormalizeHost(u.Hostname())
	if !r.hosts[host] {
		return Result{PublisherURL: rawURL, PublisherDomain: host}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return Result{}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Debug("redirect resolution failed", "url", rawURL, "error", err)
		return Result{}
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()

	final := resp.Request.URL
	finalHost := NormalizeHost(final.Hostname())
	if finalHost == "" || r.hosts[finalHost] {
		r.log.Debug("redirect stayed on aggregator", "url", rawURL, "final", final.String())
		return Result{}
	}

	return Result{PublisherURL: final.String(), PublisherDomain: finalHost}
}

// ResolveAll fills the publisher fields of every wrapped item, running at most
// concurrency lookups at a time. Items keep their positions.
func (r *Resolver) ResolveAll(ctx context.Context, items []domain.NewsItem, concurrency int) {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range items {
		if !r.IsAggregator(items[i].URL) {
			continue
		}
		g.Go(func() error {
			res := r.Resolve(ctx, items[i].URL)
			items[i].SetPublisher(res.PublisherURL, res.PublisherDomain)
			return nil
		})
	}
	g.Wait()
}
