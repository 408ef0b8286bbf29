package components

import (
	"fmt"

	"github.com/sbsdiff/sbs/internal/diff"
	"github.com/sbsdiff/sbs/internal/ui"
)

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// RenderSummary renders the first row of the diff:
//
//	Side-by-Side (sbs v1.0.0) q - quit, h - help  3 files with 10 additions and 2 deletions
func RenderSummary(styles ui.Styles, version string, s diff.Summary, width int) string {
	t := styles.Theme
	line := styles.Bold.Render(fmt.Sprintf("Side-by-Side (sbs %s) ", version)) +
		styles.Muted.Render("q - quit, h - help  ") +
		styles.Bold.Render(plural(s.Files, "file")+" with ") +
		styles.Bold.Foreground(t.Added).Render(plural(s.Additions, "addition")) +
		styles.Bold.Render(" and ") +
		styles.Bold.Foreground(t.Deleted).Render(plural(s.Deletions, "deletion"))
	return ui.Fit(line, width)
}
