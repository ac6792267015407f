package domain

import "time"

// NewsItem is one article discovered in the search feed.
type NewsItem struct {
	Title           string     `json:"title"`
	URL             string     `json:"url"`
	PublishedAt     *time.Time `json:"publishedAt"`
	Source          string     `json:"source"`
	SourceURL       string     `json:"sourceUrl,omitempty"`
	Snippet         string     `json:"snippet"`
	PublisherURL    string     `json:"publisherUrl"`
	PublisherDomain string     `json:"publisherDomain"`
}

func (n *NewsItem) Valid() bool {
	return n.Title != "" && n.URL != ""
}

// SetPublisher stores a resolved publisher. Both fields are cleared unless both are present.
func (n *NewsItem) SetPublisher(url, domain string) {
	if url == "" || domain == "" {
		n.PublisherURL, n.PublisherDomain = "", ""
		return
	}
	n.PublisherURL, n.PublisherDomain = url, domain
}
