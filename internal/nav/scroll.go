// Package nav implements scrolling and file navigation over the flattened
// row sequence. Everything here is a state transition; nothing draws.
package nav

import "github.com/sbsdiff/sbs/internal/diff"

// MaxOffset returns the largest valid scroll offset for a viewport of the
// given height. The last file header is always reachable, even when the rows
// would otherwise fit on screen.
func MaxOffset(rows []diff.Row, height int) int {
	return max(0, len(rows)-height, lastFileRow(rows))
}

// Clamp bounds offset to [0, MaxOffset(rows, height)].
func Clamp(offset int, rows []diff.Row, height int) int {
	return min(max(offset, 0), MaxOffset(rows, height))
}

func lastFileRow(rows []diff.Row) int {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Kind == diff.RowFileTop {
			return i
		}
	}
	return -1
}

// CurrentFile resolves the file the viewport is in: the nearest file header
// at or above offset, or failing that (offset on the summary row) the first
// one below it.
func CurrentFile(rows []diff.Row, offset int) (int, bool) {
	start := min(offset, len(rows)-1)
	for i := start; i >= 0; i-- {
		if rows[i].Kind == diff.RowFileTop {
			return rows[i].FileIndex, true
		}
	}
	for i := max(offset+1, 0); i < len(rows); i++ {
		if rows[i].Kind == diff.RowFileTop {
			return rows[i].FileIndex, true
		}
	}
	return -1, false
}

// FileRow returns the row position of a file's header.
func FileRow(rows []diff.Row, fileIndex int) (int, bool) {
	for i, r := range rows {
		if r.Kind == diff.RowFileTop && r.FileIndex == fileIndex {
			return i, true
		}
	}
	return 0, false
}

// NextFile returns the index of the visible file following fileIndex.
func NextFile(rows []diff.Row, fileIndex int) (int, bool) {
	found := false
	for _, r := range rows {
		if r.Kind != diff.RowFileTop {
			continue
		}
		if found {
			return r.FileIndex, true
		}
		found = r.FileIndex == fileIndex
	}
	return -1, false
}

// PrevFile returns the index of the visible file preceding fileIndex.
func PrevFile(rows []diff.Row, fileIndex int) (int, bool) {
	prev, ok := -1, false
	for _, r := range rows {
		if r.Kind != diff.RowFileTop {
			continue
		}
		if r.FileIndex == fileIndex {
			return prev, ok
		}
		prev, ok = r.FileIndex, true
	}
	return -1, false
}
