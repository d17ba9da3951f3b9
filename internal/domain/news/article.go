package news

import (
	"cmp"
	"slices"
	"time"
)

// PlaceholderLink is used for entries that carry no link.
const PlaceholderLink = "#"

// Article is one entry selected for the briefing.
type Article struct {
	Title  string    `json:"title"`
	Link   string    `json:"link"`
	Source string    `json:"source"`
	Date   time.Time `json:"date"`
}

// Naive drops the zone of t and keeps its wall clock, anchored in UTC.
//
// The offset is discarded, not converted: 10:00+09:00 and 10:00-05:00 both
// become 10:00. Recency windows are approximate for that reason.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// SortByDateDesc orders articles newest first, keeping insertion order for equal dates.
func SortByDateDesc(articles []Article) {
	slices.SortStableFunc(articles, func(a, b Article) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})
}
