// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	HeaderLines = 2
	FooterLines = 2

	ItemRightPadding  = 1
	ItemSafetyPadding = 1
)
