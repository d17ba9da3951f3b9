// Package view orchestrates the composition of UI components.
package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/briefing/internal/presentation/tui/components/header"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(1, 0)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(1, 0)
	footerStyle = lipgloss.NewStyle().MarginTop(1)
)

// Props aggregates properties for all UI components.
type Props struct {
	Header header.Props
	Body   string
	Error  string
	Empty  string
	Footer string
}

// Render renders the complete UI view based on the provided props.
func Render(p Props) string {
	body := p.Body
	switch {
	case p.Error != "":
		body = errorStyle.Render(p.Error)
	case p.Empty != "":
		body = emptyStyle.Render(p.Empty)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header.Render(p.Header),
		body,
		footerStyle.Render(p.Footer),
	)
}
