package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sbsdiff/sbs/internal/ui"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Range     string // revision range being shown
	Mode      string // view mode name
	FilePos   int    // 1-based position of the current file, 0 if none
	FileTotal int
	Message   string // transient info/error message
	IsError   bool
	Spinner   string // rendered spinner while a reload is running
	Help      string // rendered short help
}

// RenderStatusBar renders the bottom status bar with sections separated by
// dim vertical bars. The message replaces the short help when present.
//
//	 main │ both │ file 2/7 ⣾          j/k scroll • n/p file • h help
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme
	sep := lipgloss.NewStyle().Foreground(t.Border).Faint(true).Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	sections := []string{lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(data.Range)}
	if width >= 40 {
		sections = append(sections, data.Mode)
	}
	if data.FileTotal > 0 {
		sections = append(sections, fmt.Sprintf("file %d/%d", data.FilePos, data.FileTotal))
	}
	left := " " + strings.Join(sections, sep)
	if data.Spinner != "" {
		left += " " + data.Spinner
	}

	// ── Right section ────────────────────────────────────────────

	var right string
	switch {
	case data.Message != "" && data.IsError:
		right = styles.StatusErr.Render(data.Message) + " "
	case data.Message != "":
		right = styles.StatusMsg.Render(data.Message) + " "
	case width >= 60:
		right = data.Help + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
		if data.Message == "" {
			right = "" // drop help if no room
		}
	}

	content := ui.Fit(left+strings.Repeat(" ", gap)+right, width)
	return styles.StatusBar.Width(width).Render(content)
}
