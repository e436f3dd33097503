package fetch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher pulls entries from an RSS or Atom feed.
type FeedFetcher struct {
	parser *gofeed.Parser
}

func NewFeedFetcher(client *http.Client) *FeedFetcher {
	parser := gofeed.NewParser()
	parser.Client = client
	return &FeedFetcher{parser: parser}
}

func (f *FeedFetcher) Fetch(ctx context.Context, src Source) ([]Entry, error) {
	feed, err := f.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.URL, err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		e := Entry{
			Title:     item.Title,
			Summary:   item.Description,
			Link:      item.Link,
			GUID:      item.GUID,
			Published: item.PublishedParsed,
		}
		if e.Summary == "" {
			e.Summary = item.Content
		}
		if e.Published == nil {
			e.Published = item.UpdatedParsed
		}
		entries = append(entries, e)
	}
	return entries, nil
}
