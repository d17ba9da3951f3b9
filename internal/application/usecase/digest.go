package usecase

import (
	"fmt"
	"strings"

	"github.com/tesso57/briefing/internal/domain/news"
)

const (
	// NoNewsMessage is the digest used when no article survives filtering.
	NoNewsMessage = "No relevant news found in the last 48 hours."
	digestHeading = "# 📰 Tech News Briefing"
)

// RenderDigest renders articles as a Markdown briefing, numbered from 1.
func RenderDigest(articles []news.Article) string {
	if len(articles) == 0 {
		return NoNewsMessage
	}

	var b strings.Builder
	b.WriteString(digestHeading)
	b.WriteString("\n\n")
	for i, article := range articles {
		fmt.Fprintf(&b, "**%d. [%s](%s)**\n", i+1, article.Title, article.Link)
		fmt.Fprintf(&b, "*%s*\n\n", article.Source)
	}
	return b.String()
}
