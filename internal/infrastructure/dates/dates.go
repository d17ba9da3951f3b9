// Package dates parses the free-form timestamps found in feeds.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("date text is empty")

// Parser implements usecase.DateParser on top of dateparse.
// Input without a zone is read as UTC wall-clock time.
type Parser struct{}

// Parse reads text in any of the RFC 822/1123/3339, ISO 8601 or common
// human layouts understood by dateparse.
func (Parser) Parse(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrEmpty
	}
	t, err := dateparse.ParseIn(text, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", text, err)
	}
	return t, nil
}
