// Package views composes components into full screens.
package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sbsdiff/sbs/internal/diff"
	"github.com/sbsdiff/sbs/internal/nav"
	"github.com/sbsdiff/sbs/internal/ui"
	"github.com/sbsdiff/sbs/internal/ui/components"
)

// DiffView paints the visible window of the flattened rows.
type DiffView struct {
	styles   ui.Styles
	version  string
	tabWidth int
	width    int
	height   int
}

// NewDiffView creates a new DiffView.
func NewDiffView(styles ui.Styles, version string, tabWidth int) *DiffView {
	return &DiffView{styles: styles, version: version, tabWidth: tabWidth}
}

// SetSize sets the area the view draws into.
func (v *DiffView) SetSize(w, h int) {
	v.width = w
	v.height = h
}

// Render draws rows [offset, offset+height) of n, with a scrollbar in the
// rightmost column when the content does not fit.
func (v *DiffView) Render(n *nav.Navigator) string {
	if v.width < 1 || v.height < 1 {
		return ""
	}
	rows := n.Rows()
	bar := components.RenderScrollbar(v.styles, v.height, len(rows), n.Offset(), nav.MaxOffset(rows, v.height))
	contentW := v.width
	if bar != "" {
		contentW--
	}

	lines := make([]string, v.height)
	for i := range lines {
		idx := n.Offset() + i
		if idx < len(rows) {
			lines[i] = ui.Fit(v.renderRow(n, rows[idx], contentW), contentW)
		} else {
			lines[i] = strings.Repeat(" ", contentW)
		}
	}
	body := strings.Join(lines, "\n")
	if bar == "" {
		return body
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
}

func (v *DiffView) renderRow(n *nav.Navigator, row diff.Row, width int) string {
	interior := components.BoxInterior(width)
	switch row.Kind {
	case diff.RowSummary:
		return components.RenderSummary(v.styles, v.version, row.Summary, width)
	case diff.RowFileTop:
		return components.RenderFileTop(v.styles, row.File, n.IsCollapsed(row.FileIndex), width)
	case diff.RowFileBottom:
		return components.RenderFileBottom(v.styles, width)
	case diff.RowHunkHeader:
		return components.RenderBoxRow(v.styles,
			components.RenderHunkHeader(v.styles, row.Header, v.tabWidth, interior), width)
	case diff.RowLinePair:
		return components.RenderBoxRow(v.styles,
			components.RenderLinePair(v.styles, row.Pair, n.Mode(), v.tabWidth, interior), width)
	default:
		return ""
	}
}
