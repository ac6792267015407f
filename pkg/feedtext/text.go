// Package feedtext turns raw RSS text into normalized news items.
package feedtext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	urlPattern = regexp.MustCompile(`(?i)https?://\S*`)
)

// DecodeEntities resolves named, decimal and hexadecimal character references.
// Two passes cover feeds that escape already-escaped descriptions.
func DecodeEntities(s string) string {
	for range 2 {
		s = html.UnescapeString(s)
	}
	return s
}

// Snippet converts an HTML description into a single line of plain text
// without markup or links.
func Snippet(description string) string {
	s := DecodeEntities(description)
	if strings.TrimSpace(s) == "" {
		return ""
	}

	text := s
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		text = doc.Text()
	}

	text = tagPattern.ReplaceAllString(text, " ")
	text = urlPattern.ReplaceAllString(text, " ")
	return collapse(text)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
