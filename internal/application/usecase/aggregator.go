package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tesso57/briefing/internal/domain/news"
	"go.uber.org/zap"
)

const (
	// EntriesPerSource bounds how many leading entries of each feed are examined.
	EntriesPerSource = 5
	// RecencyWindow is how far back an entry may be dated and still be included.
	RecencyWindow = 48 * time.Hour
	// MaxArticles caps the size of the briefing.
	MaxArticles = 15
)

// ErrEmptyTimestamp is reported for entries without published or updated text.
var ErrEmptyTimestamp = errors.New("entry has no timestamp")

// FeedFetcher retrieves and parses one feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*news.RawFeed, error)
}

// DateParser parses free-form feed timestamps.
type DateParser interface {
	Parse(text string) (time.Time, error)
}

// SourceReport describes what happened to one source during a collection.
type SourceReport struct {
	Source   string
	Err      error
	Examined int
	Accepted int
	Skipped  map[news.SkipReason]int
}

// CollectReport summarizes a collection run.
type CollectReport struct {
	Cutoff  time.Time
	Sources []SourceReport
}

// Failed returns the number of sources that could not be fetched.
func (r CollectReport) Failed() int {
	n := 0
	for _, src := range r.Sources {
		if src.Err != nil {
			n++
		}
	}
	return n
}

// Aggregator runs the fetch, filter and rank pipeline over a fixed catalog.
type Aggregator struct {
	Catalog news.Catalog
	Fetcher FeedFetcher
	Dates   DateParser
	Now     func() time.Time
	Logger  *zap.SugaredLogger
}

// NewAggregator constructs an Aggregator.
func NewAggregator(catalog news.Catalog, fetcher FeedFetcher, dates DateParser, logger *zap.SugaredLogger) *Aggregator {
	return new(Aggregator{
		Catalog: catalog,
		Fetcher: fetcher,
		Dates:   dates,
		Now:     time.Now,
		Logger:  logger,
	})
}

// CollectRecentArticles returns at most MaxArticles relevant articles from the
// last RecencyWindow, newest first. Failing sources and entries are skipped.
func (a *Aggregator) CollectRecentArticles(ctx context.Context) []news.Article {
	articles, _ := a.Collect(ctx)
	return articles
}

// Collect is CollectRecentArticles with a per-source report.
func (a *Aggregator) Collect(ctx context.Context) ([]news.Article, CollectReport) {
	cutoff := news.Naive(a.now()).Add(-RecencyWindow)
	report := CollectReport{Cutoff: cutoff}

	var articles []news.Article
	for _, src := range a.Catalog.Sources() {
		srcReport := SourceReport{Source: src.Name, Skipped: map[news.SkipReason]int{}}

		feed, err := a.fetch(ctx, src.URL)
		if err != nil {
			srcReport.Err = err
			report.Sources = append(report.Sources, srcReport)
			a.logger().Warnw("skipping source", "source", src.Name, "url", src.URL, "error", err)
			continue
		}

		entries := feed.Entries
		if len(entries) > EntriesPerSource {
			entries = entries[:EntriesPerSource]
		}
		for _, entry := range entries {
			srcReport.Examined++
			outcome := ClassifyEntry(entry, src.Name, a.Catalog, a.Dates, cutoff)
			if !outcome.Accepted() {
				srcReport.Skipped[outcome.Skip]++
				continue
			}
			srcReport.Accepted++
			articles = append(articles, outcome.Article)
		}

		a.logger().Debugw("source collected",
			"source", src.Name,
			"examined", srcReport.Examined,
			"accepted", srcReport.Accepted,
		)
		report.Sources = append(report.Sources, srcReport)
	}

	news.SortByDateDesc(articles)
	if len(articles) > MaxArticles {
		articles = articles[:MaxArticles]
	}
	return articles, report
}

// fetch retrieves one source. A panicking fetcher fails only that source.
func (a *Aggregator) fetch(ctx context.Context, url string) (feed *news.RawFeed, err error) {
	if a.Fetcher == nil {
		return nil, errors.New("feed fetcher is not configured")
	}
	defer func() {
		if r := recover(); r != nil {
			feed, err = nil, fmt.Errorf("fetch %s panicked: %v", url, r)
		}
	}()
	feed, err = a.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, fmt.Errorf("fetch %s: empty feed", url)
	}
	return feed, nil
}

// ClassifyEntry decides whether entry from source enters the briefing.
// Entries dated exactly at cutoff are kept.
func ClassifyEntry(entry news.RawEntry, source string, catalog news.Catalog, dates DateParser, cutoff time.Time) news.EntryOutcome {
	stamp := entry.Timestamp()
	if stamp == "" {
		return news.Skip(news.SkipMissingDate, ErrEmptyTimestamp)
	}
	if dates == nil {
		return news.Skip(news.SkipUnparsableDate, errors.New("date parser is not configured"))
	}
	parsed, err := parseDate(dates, stamp)
	if err != nil {
		return news.Skip(news.SkipUnparsableDate, fmt.Errorf("parse %q: %w", stamp, err))
	}

	date := news.Naive(parsed)
	if date.Before(cutoff) {
		return news.Skip(news.SkipStale, nil)
	}
	if !catalog.IsRelevant(source, entry.Title) {
		return news.Skip(news.SkipIrrelevant, nil)
	}

	link := entry.Link
	if link == "" {
		link = news.PlaceholderLink
	}
	return news.Accept(news.Article{
		Title:  entry.Title,
		Link:   link,
		Source: source,
		Date:   date,
	})
}

func parseDate(dates DateParser, text string) (t time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = time.Time{}, fmt.Errorf("date parser panicked: %v", r)
		}
	}()
	return dates.Parse(text)
}

func (a *Aggregator) now() time.Time {
	if a != nil && a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Aggregator) logger() *zap.SugaredLogger {
	if a != nil && a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop().Sugar()
}
