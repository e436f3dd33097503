package feedgen

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"xinwen/internal/article"
)

// ChannelInfo is the fixed feed metadata, constant per deployment.
type ChannelInfo struct {
	Title       string
	Link        string
	Description string
	Language    string
}

// RSS is the root element of the output feed.
type RSS struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel Channel  `xml:"channel"`
}

type Channel struct {
	XMLName       xml.Name `xml:"channel"`
	Title         string   `xml:"title"`
	Link          string   `xml:"link"`
	Description   string   `xml:"description"`
	Language      string   `xml:"language,omitempty"`
	LastBuildDate string   `xml:"lastBuildDate,omitempty"`
	Items         []Item   `xml:"item"`
}

type Item struct {
	XMLName     xml.Name `xml:"item"`
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description,omitempty"`
	Author      string   `xml:"author,omitempty"`
	GUID        string   `xml:"guid,omitempty"`
	PubDate     string   `xml:"pubDate,omitempty"`
}

// Build projects the merged state into the output feed: translated title,
// translate-redirect link, fingerprint as GUID, translated description with
// the title as fallback body.
func Build(info ChannelInfo, articles []article.Article, now time.Time) RSS {
	items := make([]Item, 0, len(articles))
	for _, art := range articles {
		title := art.TitleZh
		if title == "" {
			title = art.Title
		}
		body := art.DescriptionZh
		if body == "" {
			body = title
		}
		items = append(items, Item{
			Title:       title,
			Link:        art.TranslateLink,
			Description: body,
			Author:      authorOf(art.SourceWebsite),
			GUID:        art.Fingerprint,
			PubDate:     art.PubDate.UTC().Format(time.RFC1123Z),
		})
	}

	return RSS{
		Version: "2.0",
		Channel: Channel{
			Title:         info.Title,
			Link:          info.Link,
			Description:   info.Description,
			Language:      info.Language,
			LastBuildDate: now.UTC().Format(time.RFC1123Z),
			Items:         items,
		},
	}
}

// Write renders the document to disk with the XML header.
func Write(path string, doc RSS) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feed: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create feed dir: %w", err)
		}
	}

	out := append([]byte(xml.Header), data...)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write feed: %w", err)
	}
	return nil
}

// RSS item author is "email (name)"; the address is derived from the source
// name the same way the historical feed did it.
func authorOf(source string) string {
	if source == "" {
		return ""
	}
	return fmt.Sprintf("%s@%s.com (%s)", source, source, source)
}
