// Package pages fetches page metadata used to prefill the in-page save
// dialog: title, site name, excerpt, and an estimated reading time.
package pages

import (
	"fmt"
	"net/http"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// browserHeaders sets browser-like request headers so sites that check
// Accept or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Readlater/1.0; +https://github.com/hoanghai1803/readlater)")
}

// Metadata holds the fields extracted from a web page.
type Metadata struct {
	Title      string `json:"title"`
	SiteName   string `json:"siteName"`
	Excerpt    string `json:"excerpt"`
	TimeToRead int    `json:"timeToRead"`
}

// Fetch retrieves the page at the given URL and extracts its metadata.
// TimeToRead is estimated from the readable text content; pages with no
// extractable text report 0 so callers can fall back to their default.
func Fetch(url string, timeout time.Duration) (*Metadata, error) {
	article, err := readability.FromURL(url, timeout, browserHeaders)
	if err != nil {
		return nil, fmt.Errorf("readability extraction: %w", err)
	}

	return &Metadata{
		Title:      article.Title,
		SiteName:   article.SiteName,
		Excerpt:    article.Excerpt,
		TimeToRead: EstimateReadTime(article.TextContent),
	}, nil
}
