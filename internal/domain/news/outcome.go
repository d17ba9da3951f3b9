package news

// RawEntry is a feed entry as read from the document. Empty fields are absent.
type RawEntry struct {
	Title     string
	Link      string
	Published string
	Updated   string
}

// Timestamp returns the published text, falling back to updated.
func (e RawEntry) Timestamp() string {
	if e.Published != "" {
		return e.Published
	}
	return e.Updated
}

// RawFeed is a parsed feed document.
type RawFeed struct {
	Title   string
	URL     string
	Entries []RawEntry
}

// SkipReason explains why an entry was left out of the briefing.
type SkipReason string

const (
	SkipMissingDate    SkipReason = "missing-date"
	SkipUnparsableDate SkipReason = "unparsable-date"
	SkipStale          SkipReason = "stale"
	SkipIrrelevant     SkipReason = "irrelevant"
)

// EntryOutcome is the result of classifying one entry: either an accepted
// Article or a skip with its reason.
type EntryOutcome struct {
	Article Article
	Skip    SkipReason
	Err     error
}

// Accepted reports whether the entry made it into the briefing.
func (o EntryOutcome) Accepted() bool {
	return o.Skip == ""
}

// Accept wraps an accepted article.
func Accept(a Article) EntryOutcome {
	return EntryOutcome{Article: a}
}

// Skip builds a skipped outcome.
func Skip(reason SkipReason, err error) EntryOutcome {
	return EntryOutcome{Skip: reason, Err: err}
}
