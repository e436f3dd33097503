package article

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"xinwen/internal/fetch"
)

// DefaultTranslateURL points readers at a machine-translated rendering of the
// original page. The %s placeholder receives the percent-encoded source link.
const DefaultTranslateURL = "https://translate.google.com/translate?sl=en&tl=zh&u=%s"

// FromEntry normalizes one raw entry into an Article. It returns ok=false for
// entries that cannot become a valid article: empty title, or neither a GUID
// nor a link to serve as fingerprint. Entries without a parsed timestamp get
// now (UTC); that is an expected degrade, not an error.
func FromEntry(e fetch.Entry, sourceName, translateURL string, now time.Time) (Article, bool) {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return Article{}, false
	}

	fingerprint := e.GUID
	if fingerprint == "" {
		fingerprint = e.Link
	}
	if fingerprint == "" {
		return Article{}, false
	}

	published := now.UTC()
	if e.Published != nil {
		published = e.Published.UTC()
	}

	if translateURL == "" {
		translateURL = DefaultTranslateURL
	}

	return Article{
		Fingerprint:   fingerprint,
		Title:         title,
		Description:   StripHTML(e.Summary),
		Link:          e.Link,
		TranslateLink: fmt.Sprintf(translateURL, url.QueryEscape(e.Link)),
		PubDate:       published,
		SourceWebsite: sourceName,
	}, true
}

// StripHTML reduces feed markup to plain text with collapsed whitespace.
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
