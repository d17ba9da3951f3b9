package view

import (
	"strings"
	"testing"

	"github.com/tesso57/briefing/internal/presentation/tui/components/header"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  string
		skip  string
	}{
		{
			name:  "Body",
			props: Props{Header: header.Props{Title: "T"}, Body: "list body", Footer: "q quit"},
			want:  "list body",
		},
		{
			name:  "Error replaces body",
			props: Props{Body: "list body", Error: "Error: boom"},
			want:  "Error: boom",
			skip:  "list body",
		},
		{
			name:  "Empty replaces body",
			props: Props{Body: "list body", Empty: "No relevant news"},
			want:  "No relevant news",
			skip:  "list body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.props)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render() = %q, want to contain %q", got, tt.want)
			}
			if tt.skip != "" && strings.Contains(got, tt.skip) {
				t.Errorf("Render() = %q, should not contain %q", got, tt.skip)
			}
		})
	}
}
