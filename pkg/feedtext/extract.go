package feedtext

import (
	"bytes"
	"iter"
	"regexp"
	"strings"
	"time"

	"painel-proxy/internal/domain"
	"painel-proxy/pkg/datetime"

	"github.com/mmcdole/gofeed/rss"
)

// FallbackSource is shown when an item carries no <source> element.
const FallbackSource = "Google News"

var (
	itemPattern   = regexp.MustCompile(`(?is)<item\b[^>]*>(.*?)</item>`)
	sourcePattern = regexp.MustCompile(`(?is)<source\b([^>]*)>(.*?)</source>`)
	urlAttr       = regexp.MustCompile(`(?i)\burl\s*=\s*["']([^"']*)["']`)
	cdataPattern  = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	feedMarker    = regexp.MustCompile(`(?i)<(rss|channel|item|rdf:rdf)\b`)
	fieldPatterns = map[string]*regexp.Regexp{}
)

func init() {
	for _, name := range []string{"title", "link", "pubDate", "description"} {
		fieldPatterns[name] = regexp.MustCompile(`(?is)<` + name + `\b[^>]*>(.*?)</` + name + `>`)
	}
}

type rawItem struct {
	title       string
	link        string
	pubDate     string
	published   *time.Time
	description string
	sourceName  string
	sourceURL   string
}

// LooksLikeFeed reports whether body contains any RSS structure at all. Bodies
// that fail this check are treated as parse errors rather than empty feeds.
func LooksLikeFeed(body []byte) bool {
	return feedMarker.Match(body)
}

// Extract yields at most limit valid items from body, in feed order. The
// sequence is a pure function of body and can be ranged over more than once.
// Well-formed RSS goes through the gofeed RSS parser; anything it rejects is
// scanned item by item with regular expressions.
func Extract(body []byte, limit int) iter.Seq[domain.NewsItem] {
	return func(yield func(domain.NewsItem) bool) {
		raws, err := parseStructured(body)
		if err != nil || len(raws) == 0 {
			raws = scan(body)
		}

		n := 0
		for _, raw := range raws {
			if limit > 0 && n >= limit {
				return
			}
			item := raw.normalize()
			if !item.Valid() {
				continue
			}
			n++
			if !yield(item) {
				return
			}
		}
	}
}

// Collect materializes an item sequence.
func Collect(seq iter.Seq[domain.NewsItem]) []domain.NewsItem {
	items := []domain.NewsItem{}
	for item := range seq {
		items = append(items, item)
	}
	return items
}

func parseStructured(body []byte) ([]rawItem, error) {
	fp := &rss.Parser{}
	feed, err := fp.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	raws := make([]rawItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		raw := rawItem{
			title:       it.Title,
			link:        it.Link,
			pubDate:     it.PubDate,
			published:   it.PubDateParsed,
			description: it.Description,
		}
		if it.Source != nil {
			raw.sourceName = it.Source.Title
			raw.sourceURL = it.Source.URL
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func scan(body []byte) []rawItem {
	var raws []rawItem
	for _, m := range itemPattern.FindAllSubmatch(body, -1) {
		block := m[1]
		raw := rawItem{
			title:       field(block, "title"),
			link:        field(block, "link"),
			pubDate:     field(block, "pubDate"),
			description: field(block, "description"),
		}
		if sm := sourcePattern.FindSubmatch(block); sm != nil {
			raw.sourceName = unwrap(string(sm[2]))
			if am := urlAttr.FindSubmatch(sm[1]); am != nil {
				raw.sourceURL = DecodeEntities(string(am[1]))
			}
		}
		raws = append(raws, raw)
	}
	return raws
}

func field(block []byte, name string) string {
	m := fieldPatterns[name].FindSubmatch(block)
	if m == nil {
		return ""
	}
	return unwrap(string(m[1]))
}

func unwrap(s string) string {
	return strings.TrimSpace(cdataPattern.ReplaceAllString(s, "$1"))
}

func (r rawItem) normalize() domain.NewsItem {
	published := datetime.UTCPtr(r.published)
	if published == nil {
		published = datetime.ParseFeedDate(r.pubDate)
	}

	source := collapse(DecodeEntities(r.sourceName))
	if source == "" {
		source = FallbackSource
	}

	return domain.NewsItem{
		Title:       collapse(DecodeEntities(r.title)),
		URL:         strings.TrimSpace(DecodeEntities(r.link)),
		PublishedAt: published,
		Source:      source,
		SourceURL:   strings.TrimSpace(r.sourceURL),
		Snippet:     Snippet(r.description),
	}
}
