// Package presenter builds view models for the TUI.
package presenter

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/briefing/internal/domain/news"
	"github.com/tesso57/briefing/internal/presentation/tui/textutil"
)

// Item is a view model for list items.
type Item struct {
	TitleText  string
	Link       string
	SourceText string
	Age        string
}

// FilterValue implements list.Item.
func (i *Item) FilterValue() string { return i.TitleText }

// Title returns the item title.
func (i *Item) Title() string { return i.TitleText }

// URL returns the item's URL.
func (i *Item) URL() string { return i.Link }

// HasLink reports whether the item points somewhere real.
func (i *Item) HasLink() bool { return i.Link != "" && i.Link != news.PlaceholderLink }

// Description returns a formatted description for list display.
func (i *Item) Description() string {
	if i.Age != "" {
		return fmt.Sprintf("%s - %s", i.SourceText, i.Age)
	}
	return i.SourceText
}

// BuildArticleListItems builds numbered list items in briefing order.
// now must be on the same naive clock as the article dates.
func BuildArticleListItems(articles []news.Article, now time.Time) []list.Item {
	result := make([]list.Item, len(articles))
	for i, a := range articles {
		result[i] = &Item{
			TitleText:  fmt.Sprintf("%d. %s", i+1, textutil.SingleLine(a.Title)),
			Link:       a.Link,
			SourceText: a.Source,
			Age:        textutil.Age(a.Date, now),
		}
	}
	return result
}

// ApplyArticleList updates the list model with the briefing articles.
func ApplyArticleList(model *list.Model, articles []news.Article, now time.Time) {
	model.SetItems(BuildArticleListItems(articles, now))
	model.Title = fmt.Sprintf("%d articles", len(articles))
}
