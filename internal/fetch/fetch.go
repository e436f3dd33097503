package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Source kinds. A feed source is parsed as RSS/Atom, a page source is scraped
// from an HTML timeline.
const (
	KindFeed = "feed"
	KindPage = "page"
)

// Entry is one raw upstream item. Every field is optional; normalization
// decides what survives.
type Entry struct {
	Title     string
	Summary   string
	Link      string
	GUID      string
	Published *time.Time
}

// Selectors describe how to walk an HTML timeline page. Empty fields fall back
// to generic defaults.
type Selectors struct {
	Item    string `yaml:"item"`
	Title   string `yaml:"title"`
	Link    string `yaml:"link"`
	Time    string `yaml:"time"`
	Summary string `yaml:"summary"`
}

// Source is one configured upstream.
type Source struct {
	Name         string    `yaml:"name"`
	URL          string    `yaml:"url"`
	Kind         string    `yaml:"kind"`
	TranslateURL string    `yaml:"translate_url"`
	Selectors    Selectors `yaml:"selectors"`
}

// Fetcher returns the raw entries of one source. Implementations must not
// panic past this boundary; network and parse errors come back as errors.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) ([]Entry, error)
}

// Client dispatches to the feed or page fetcher by source kind. Both share one
// timeout-bounded HTTP client.
type Client struct {
	feed *FeedFetcher
	page *PageFetcher
}

func NewClient(timeout time.Duration) *Client {
	hc := newHTTPClient(timeout)
	return &Client{
		feed: NewFeedFetcher(hc),
		page: NewPageFetcher(hc),
	}
}

func (c *Client) Fetch(ctx context.Context, src Source) ([]Entry, error) {
	switch src.Kind {
	case KindPage:
		return c.page.Fetch(ctx, src)
	case KindFeed, "":
		return c.feed.Fetch(ctx, src)
	default:
		return nil, fmt.Errorf("source %s: unknown kind %q", src.Name, src.Kind)
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("stopped after 5 redirects")
			}
			return nil
		},
	}
}
