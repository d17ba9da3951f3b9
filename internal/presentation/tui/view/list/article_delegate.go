// Package listview provides list item delegates for the view layer.
package listview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ArticleItem interface for items that can be rendered by ArticleDelegate.
type ArticleItem interface {
	list.Item
	Title() string
	Description() string
	HasLink() bool
}

// ArticleDelegate handles rendering of article items.
type ArticleDelegate struct {
	Styles    list.DefaultItemStyles
	DescStyle lipgloss.Style
}

// NewArticleDelegate creates a new ArticleDelegate.
func NewArticleDelegate() *ArticleDelegate {
	return &ArticleDelegate{
		Styles:    withItemPadding(list.NewDefaultItemStyles()),
		DescStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// Height returns the height of the item.
func (d *ArticleDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between items.
func (d *ArticleDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate.
func (d *ArticleDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the title with a "source - age" line beneath it.
func (d *ArticleDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(ArticleItem)
	if !ok {
		return
	}

	style := itemStyle(d.Styles, m, index)
	title := truncateItemText(m, style, i.Title())
	desc := truncateItemText(m, style, i.Description())

	// Entries without a link cannot be opened.
	if !i.HasLink() {
		title = lipgloss.NewStyle().Faint(true).Render(title)
	}

	renderItemText(w, style, title+"\n"+d.DescStyle.Render(desc))
}
