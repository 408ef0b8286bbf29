package components

import (
	"strings"

	"github.com/sbsdiff/sbs/internal/ui"
)

// RenderScrollbar returns a vertical scrollbar track of the given height, one
// cell per line. The thumb is proportional to the visible share of the rows
// and positioned by offset within [0, maxOffset].
//
// Returns an empty string if all content fits (no scrolling needed).
func RenderScrollbar(styles ui.Styles, height, total, offset, maxOffset int) string {
	if maxOffset <= 0 || total <= 0 || height < 1 {
		return ""
	}

	// Thumb size: proportional to visible/total, min 1 row.
	thumbSize := min(max(height*height/max(total, height), 1), height)

	// Thumb position.
	track := height - thumbSize
	thumbStart := min(max(offset*track/maxOffset, 0), track)

	var b strings.Builder
	b.Grow(height * 4)
	for i := range height {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(styles.ScrollbarThumb.Render("█"))
		} else {
			b.WriteString(styles.Scrollbar.Render("░"))
		}
	}
	return b.String()
}
