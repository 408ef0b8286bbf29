// Package ui provides shared TUI styling, layout helpers, and theme definitions.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceCentre centres content both horizontally and vertically within the given dimensions.
func PlaceCentre(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Truncate cuts s to at most width terminal cells, ending with "…" when
// anything was dropped. Escape sequences are preserved.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// PadRight pads s with spaces to the given width.
func PadRight(s string, width int) string {
	n := ansi.StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Fit truncates or pads s to exactly width cells.
func Fit(s string, width int) string {
	return PadRight(Truncate(s, width), width)
}

// ExpandTabs replaces tabs with spaces up to the next multiple of width.
func ExpandTabs(s string, width int) string {
	if width < 1 || !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += ansi.StringWidth(string(r))
	}
	return b.String()
}
