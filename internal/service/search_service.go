package service

import (
	"context"
	"fmt"
	"strings"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/logger"
	"painel-proxy/pkg/feedtext"
)

// FeedSource returns the raw search feed for a composed query and the URL it used.
type FeedSource interface {
	Fetch(ctx context.Context, query string) ([]byte, string, error)
}

// LinkResolver fills publisher fields on items whose links are wrapped.
type LinkResolver interface {
	ResolveAll(ctx context.Context, items []domain.NewsItem, concurrency int)
}

type SearchService struct {
	feed        FeedSource
	resolver    LinkResolver
	maxItems    int
	concurrency int
	log         *logger.Logger
}

type SearchResult struct {
	Items  []domain.NewsItem
	RSSURL string
}

// NewSearchService wires the orchestrator. A nil resolver disables link resolution.
func NewSearchService(feed FeedSource, resolver LinkResolver, maxItems, concurrency int, log *logger.Logger) *SearchService {
	if log == nil {
		log = logger.Discard()
	}
	return &SearchService{
		feed:        feed,
		resolver:    resolver,
		maxItems:    maxItems,
		concurrency: concurrency,
		log:         log,
	}
}

func (s *SearchService) Search(ctx context.Context, q string, sites []string) (*SearchResult, error) {
	if strings.TrimSpace(q) == "" {
		return nil, domain.ErrInvalidQuery
	}

	query := BuildQuery(q, sites)
	body, rssURL, err := s.feed.Fetch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search feed: %w", err)
	}
	if !feedtext.LooksLikeFeed(body) {
		return nil, fmt.Errorf("%w: search feed is not RSS", domain.ErrParse)
	}

	items := feedtext.Collect(feedtext.Extract(body, s.maxItems))

	if s.resolver != nil && len(items) > 0 {
		s.resolver.ResolveAll(ctx, items, s.concurrency)
	}

	logger.FromContext(ctx, s.log).Info("search completed", "query", query, "items", len(items))
	return &SearchResult{Items: items, RSSURL: rssURL}, nil
}

// BuildQuery ANDs the user query with an OR of site: filters.
func BuildQuery(q string, sites []string) string {
	q = strings.TrimSpace(q)

	var filters []string
	seen := make(map[string]bool)
	for _, site := range sites {
		d := NormalizeDomain(site)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		filters = append(filters, "site:"+d)
	}

	if len(filters) == 0 {
		return q
	}
	return fmt.Sprintf("(%s) (%s)", q, strings.Join(filters, " OR "))
}

// NormalizeDomain reduces user input such as "https://www.G1.com/rio" to "g1.com".
func NormalizeDomain(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "site:")
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "www.")
}

// SplitSites parses the comma separated sites parameter.
func SplitSites(raw string) []string {
	var sites []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			sites = append(sites, part)
		}
	}
	return sites
}
