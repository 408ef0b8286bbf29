package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/sbsdiff/sbs/internal/diff"
	"github.com/sbsdiff/sbs/internal/ui"
)

// Each file is drawn as a rounded box spanning the full width:
//
//	╭─ ▼ path/to/file.go ─────────────── +12 -3 ─╮
//	│ @@ -1,4 +1,5 @@                             │
//	│    1   package main   │    1   package main │
//	╰────────────────────────────────────────────╯
const (
	boxVertical = "│"
	boxLine     = "─"
)

// BoxInterior returns the cell width available between the box's borders.
func BoxInterior(width int) int { return max(width-2, 0) }

// RenderFileTop renders the top border of a file box with its name and
// change counts. ▶ marks a collapsed file, ▼ an expanded one.
func RenderFileTop(styles ui.Styles, f *diff.File, collapsed bool, width int) string {
	icon := "▼"
	if collapsed {
		icon = "▶"
	}
	prefix := "╭─ " + icon + " "
	stats := fmt.Sprintf(" +%d -%d ", f.Additions, f.Deletions)
	if f.Binary {
		stats = " binary "
	}
	suffix := boxLine + "╮"

	border := styles.FileBorder
	nameStyle := styles.FileName
	if !f.IsNew() && !f.IsDeleted() && f.From != f.To {
		nameStyle = styles.FileRename
	}

	fixed := ansi.StringWidth(prefix) + ansi.StringWidth(stats) + ansi.StringWidth(suffix) + 1
	name := ui.Truncate(f.DisplayName(), max(width-fixed, 1))
	fill := max(width-fixed-ansi.StringWidth(name), 0)

	return border.Render(prefix) +
		nameStyle.Render(name) +
		border.Render(" "+strings.Repeat(boxLine, fill)) +
		renderStats(styles, f, stats) +
		border.Render(suffix)
}

func renderStats(styles ui.Styles, f *diff.File, stats string) string {
	if f.Binary {
		return styles.Muted.Render(stats)
	}
	t := styles.Theme
	added, deleted, _ := strings.Cut(stats, " -")
	return styles.Bold.Foreground(t.Added).Render(added) +
		styles.Bold.Foreground(t.Deleted).Render(" -"+deleted)
}

// RenderFileBottom renders the bottom border of a file box.
func RenderFileBottom(styles ui.Styles, width int) string {
	return styles.FileBorder.Render("╰" + strings.Repeat(boxLine, BoxInterior(width)) + "╯")
}

// RenderBoxRow wraps interior content in the box's side borders. content must
// already be BoxInterior(width) cells wide.
func RenderBoxRow(styles ui.Styles, content string, width int) string {
	side := styles.FileBorder.Render(boxVertical)
	return side + ui.Fit(content, BoxInterior(width)) + side
}

// RenderHunkHeader renders a hunk's @@ line as box interior content.
func RenderHunkHeader(styles ui.Styles, header string, tabWidth, width int) string {
	return styles.DiffHunkHeader.Render(ui.Fit(ui.ExpandTabs(header, tabWidth), width))
}
