// Package feed fetches RSS/Atom documents and maps them to raw entries.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/tesso57/briefing/internal/domain/news"
)

// DefaultTimeout bounds a single feed fetch.
const DefaultTimeout = 10 * time.Second

const (
	feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"
	userAgent        = "Briefing/1.0"
)

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc is exposed for testing.
// It allows mocking the feed parsing logic.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return fp.ParseURLWithContext(url, ctx)
}

// FetchWithTimeout parses a feed from the given URL with timeout.
func FetchWithTimeout(ctx context.Context, url string, timeout time.Duration) (*news.RawFeed, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return FetchWithContext(ctx, url)
}

// FetchWithContext parses a feed from the given URL with context.
func FetchWithContext(ctx context.Context, url string) (*news.RawFeed, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("feed url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	parsed, err := ParserFunc(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if parsed == nil {
		return nil, fmt.Errorf("fetch %s: parser returned no feed", url)
	}

	f := new(news.RawFeed{
		Title:   parsed.Title,
		URL:     url,
		Entries: make([]news.RawEntry, 0, len(parsed.Items)),
	})
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		f.Entries = append(f.Entries, news.RawEntry{
			Title:     item.Title,
			Link:      item.Link,
			Published: strings.TrimSpace(item.Published),
			Updated:   strings.TrimSpace(item.Updated),
		})
	}
	return f, nil
}

// Fetcher implements usecase.FeedFetcher with a per-feed timeout.
type Fetcher struct {
	Timeout time.Duration
}

// NewFetcher constructs a Fetcher. A non-positive timeout selects DefaultTimeout.
func NewFetcher(timeout time.Duration) Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return Fetcher{Timeout: timeout}
}

// Fetch fetches a single feed.
func (f Fetcher) Fetch(ctx context.Context, url string) (*news.RawFeed, error) {
	return FetchWithTimeout(ctx, url, f.Timeout)
}
