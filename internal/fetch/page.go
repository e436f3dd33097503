package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Default selectors for page sources that do not configure their own.
var defaultSelectors = Selectors{
	Item:  "article",
	Title: "h1, h2, h3",
	Link:  "a",
	Time:  "time",
}

// Layouts tried when a timeline page carries a textual timestamp.
var pageTimeLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04",
	"2006-01-02",
	"2 Jan 2006",
}

// PageFetcher scrapes an HTML timeline page into raw entries.
type PageFetcher struct {
	client *http.Client
}

func NewPageFetcher(client *http.Client) *PageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &PageFetcher{client: client}
}

func (p *PageFetcher) Fetch(ctx context.Context, src Source) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "xinwen/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page %s: %w", src.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page %s returned %s", src.URL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", src.URL, err)
	}

	return p.extract(doc, src), nil
}

func (p *PageFetcher) extract(doc *goquery.Document, src Source) []Entry {
	sel := src.Selectors
	if sel.Item == "" {
		sel = defaultSelectors
	}

	base, _ := url.Parse(src.URL)

	var entries []Entry
	doc.Find(sel.Item).Each(func(_ int, item *goquery.Selection) {
		e := Entry{
			Title: strings.TrimSpace(item.Find(sel.Title).First().Text()),
		}

		if href, ok := item.Find(sel.Link).First().Attr("href"); ok {
			e.Link = resolveLink(base, href)
		}

		if sel.Summary != "" {
			e.Summary = strings.TrimSpace(item.Find(sel.Summary).First().Text())
		}

		if sel.Time != "" {
			e.Published = parsePageTime(item.Find(sel.Time).First())
		}

		entries = append(entries, e)
	})
	return entries
}

func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// parsePageTime tries the datetime attribute first, then the element text.
// Anything unparseable yields nil and normalization falls back to now.
func parsePageTime(sel *goquery.Selection) *time.Time {
	candidates := []string{
		strings.TrimSpace(sel.AttrOr("datetime", "")),
		strings.TrimSpace(sel.Text()),
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		for _, layout := range pageTimeLayouts {
			if t, err := time.Parse(layout, c); err == nil {
				utc := t.UTC()
				return &utc
			}
		}
	}
	return nil
}
