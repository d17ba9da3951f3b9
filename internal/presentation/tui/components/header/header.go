// Package header provides the briefing header component.
package header

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the header component.
type Props struct {
	Title   string
	Status  string
	Spinner string
	Loading bool
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render renders the header component.
func Render(p Props) string {
	status := p.Status
	if p.Loading && p.Spinner != "" {
		status = fmt.Sprintf("%s %s", p.Spinner, status)
	}
	return titleStyle.Render(p.Title) + "\n" + statusStyle.Render(status)
}
