package provider

import (
	"context"
	"net/url"
)

// NewsFeed fetches search results as RSS from a Google News style endpoint.
type NewsFeed struct {
	fetcher  *Fetcher
	base     string
	language string
	region   string
	edition  string
}

type NewsFeedOptions struct {
	Base     string
	Language string
	Region   string
	Edition  string
}

func NewNewsFeed(fetcher *Fetcher, opts NewsFeedOptions) *NewsFeed {
	if opts.Base == "" {
		opts.Base = "https://news.google.com/rss/search"
	}
	return &NewsFeed{
		fetcher:  fetcher,
		base:     opts.Base,
		language: opts.Language,
		region:   opts.Region,
		edition:  opts.Edition,
	}
}

// URL builds the feed URL for an already composed search query.
func (n *NewsFeed) URL(query string) string {
	v := url.Values{}
	v.Set("q", query)
	if n.language != "" {
		v.Set("hl", n.language)
	}
	if n.region != "" {
		v.Set("gl", n.region)
	}
	if n.edition != "" {
		v.Set("ceid", n.edition)
	}
	return n.base + "?" + v.Encode()
}

// Fetch returns the raw feed body for query along with the URL requested.
func (n *NewsFeed) Fetch(ctx context.Context, query string) ([]byte, string, error) {
	feedURL := n.URL(query)
	body, err := n.fetcher.Get(ctx, feedURL, "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8")
	return body, feedURL, err
}
