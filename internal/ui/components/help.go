package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sbsdiff/sbs/internal/ui"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// RenderHelp renders the keyboard shortcut overlay centred in a
// width x height area.
func RenderHelp(styles ui.Styles, entries []HelpEntry, width, height int) string {
	keyW := 0
	for _, e := range entries {
		keyW = max(keyW, lipgloss.Width(e.Key))
	}
	keyStyle := styles.KeyBind.Width(keyW + 3)

	var body strings.Builder
	body.WriteString(styles.Title.Render("Keyboard Shortcuts") + "\n\n")
	for i, e := range entries {
		if i > 0 {
			body.WriteByte('\n')
		}
		body.WriteString(keyStyle.Render(e.Key) + styles.KeyDesc.Render(e.Desc))
	}

	overlay := styles.HelpBox.
		Padding(1, 2).
		MaxHeight(max(height, 3)).
		Render(body.String())

	return ui.PlaceCentre(width, height, overlay)
}
