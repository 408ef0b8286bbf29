package components

import (
	"fmt"
	"strings"

	"github.com/sbsdiff/sbs/internal/diff"
	"github.com/sbsdiff/sbs/internal/nav"
	"github.com/sbsdiff/sbs/internal/ui"
)

// SplitWidths divides interior width between the two sides and the
// separator column.
func SplitWidths(width int) (left, right int) {
	left = max((width-1)/2, 0)
	right = max(width-1-left, 0)
	return left, right
}

// RenderLinePair renders one aligned row as box interior content of exactly
// width cells. In ViewLeft and ViewRight only that side is drawn, using the
// whole width.
func RenderLinePair(styles ui.Styles, pair diff.AlignedRow, mode nav.ViewMode, tabWidth, width int) string {
	switch mode {
	case nav.ViewLeft:
		return renderSide(styles, pair.Left, pair.Kind, "-", tabWidth, width)
	case nav.ViewRight:
		return renderSide(styles, pair.Right, pair.Kind, "+", tabWidth, width)
	}
	lw, rw := SplitWidths(width)
	return renderSide(styles, pair.Left, pair.Kind, "-", tabWidth, lw) +
		styles.DiffSeparator.Render(boxVertical) +
		renderSide(styles, pair.Right, pair.Kind, "+", tabWidth, rw)
}

// renderSide draws one half. sign is used for change rows; context rows get
// a blank sign column.
func renderSide(styles ui.Styles, side *diff.Side, kind diff.PairKind, sign string, tabWidth, width int) string {
	if width <= 0 {
		return ""
	}
	if side == nil {
		return styles.DiffFiller.Render(strings.Repeat(" ", width))
	}

	style := styles.DiffContext
	if kind == diff.PairChange {
		if sign == "-" {
			style = styles.DiffRemoved
		} else {
			style = styles.DiffAdded
		}
	} else {
		sign = " "
	}

	text := side.Content
	if text != "" {
		text = text[1:]
	}
	text = ui.ExpandTabs(text, tabWidth)

	num := fmt.Sprintf("%4d", side.LineNum)
	if width <= len(num) {
		return styles.DiffLineNum.Render(ui.Fit(num, width))
	}
	return styles.DiffLineNum.Render(num) + style.Render(ui.Fit(" "+sign+" "+text, width-len(num)))
}
