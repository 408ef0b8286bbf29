package nav

import "github.com/sbsdiff/sbs/internal/diff"

// Navigator owns the viewport state over one loaded diff: the files, which of
// them are collapsed or closed, the scroll offset and the view mode. Rows are
// recomputed from scratch whenever files or visibility change.
type Navigator struct {
	files     []diff.File
	collapsed diff.IndexSet
	closed    diff.IndexSet
	saved     map[int]int

	rows   []diff.Row
	offset int
	height int
	mode   ViewMode
}

// New returns a Navigator at the top of files.
func New(files []diff.File, mode ViewMode) *Navigator {
	n := &Navigator{
		files:     files,
		collapsed: diff.NewIndexSet(),
		closed:    diff.NewIndexSet(),
		saved:     make(map[int]int),
		height:    1,
		mode:      mode,
	}
	n.rebuild()
	return n
}

func (n *Navigator) rebuild() {
	n.rows = diff.Flatten(n.files, n.collapsed, n.closed)
	n.offset = Clamp(n.offset, n.rows, n.height)
}

// Rows returns the current flattened row sequence. Callers must not modify it.
func (n *Navigator) Rows() []diff.Row { return n.rows }

// Files returns the loaded files.
func (n *Navigator) Files() []diff.File { return n.files }

// Offset returns the index of the first visible row.
func (n *Navigator) Offset() int { return n.offset }

// Height returns the viewport height in rows.
func (n *Navigator) Height() int { return n.height }

// Mode returns the current view mode.
func (n *Navigator) Mode() ViewMode { return n.mode }

// Summary returns the aggregate over visible files.
func (n *Navigator) Summary() diff.Summary { return diff.SummaryOf(n.rows) }

// IsCollapsed reports whether file i is collapsed.
func (n *Navigator) IsCollapsed(i int) bool { return n.collapsed.Has(i) }

// IsClosed reports whether file i is closed.
func (n *Navigator) IsClosed(i int) bool { return n.closed.Has(i) }

// SetHeight resizes the viewport. Heights below one are treated as one.
func (n *Navigator) SetHeight(h int) {
	n.height = max(h, 1)
	n.offset = Clamp(n.offset, n.rows, n.height)
}

// ScrollBy moves the offset by delta rows.
func (n *Navigator) ScrollBy(delta int) {
	n.offset = Clamp(n.offset+delta, n.rows, n.height)
}

// HalfPageDown scrolls down by half the viewport.
func (n *Navigator) HalfPageDown() { n.ScrollBy(n.height / 2) }

// HalfPageUp scrolls up by half the viewport.
func (n *Navigator) HalfPageUp() { n.ScrollBy(-(n.height / 2)) }

// Top scrolls to the summary row.
func (n *Navigator) Top() { n.offset = 0 }

// Bottom scrolls to the largest valid offset.
func (n *Navigator) Bottom() { n.offset = MaxOffset(n.rows, n.height) }

// CurrentFile returns the index of the file under the viewport.
func (n *Navigator) CurrentFile() (int, bool) { return CurrentFile(n.rows, n.offset) }

// NextFile scrolls to the header of the file after the current one.
func (n *Navigator) NextFile() bool {
	cur, ok := n.CurrentFile()
	if !ok {
		return false
	}
	next, ok := NextFile(n.rows, cur)
	if !ok {
		return false
	}
	return n.JumpToFile(next)
}

// PrevFile scrolls to the header of the file before the current one.
func (n *Navigator) PrevFile() bool {
	cur, ok := n.CurrentFile()
	if !ok {
		return false
	}
	prev, ok := PrevFile(n.rows, cur)
	if !ok {
		return false
	}
	return n.JumpToFile(prev)
}

// JumpToFile scrolls to the header of file i. It reports false and leaves the
// offset alone when i has no header row, which is the case for closed files
// and indices outside the file list.
func (n *Navigator) JumpToFile(i int) bool {
	row, ok := FileRow(n.rows, i)
	if !ok {
		return false
	}
	n.offset = Clamp(row, n.rows, n.height)
	return true
}

// ToggleCollapse collapses or expands the current file. Collapsing remembers
// the offset and moves to the file header; expanding returns to the
// remembered offset if there is one.
func (n *Navigator) ToggleCollapse() bool {
	i, ok := n.CurrentFile()
	if !ok {
		return false
	}
	if n.collapsed.Toggle(i) {
		n.saved[i] = n.offset
		n.rebuild()
		n.JumpToFile(i)
		return true
	}
	n.rebuild()
	if off, ok := n.saved[i]; ok {
		delete(n.saved, i)
		n.offset = Clamp(off, n.rows, n.height)
	}
	return true
}

// CloseFile hides the current file for the rest of the session.
func (n *Navigator) CloseFile() bool {
	i, ok := n.CurrentFile()
	if !ok {
		return false
	}
	n.closed.Add(i)
	n.collapsed.Remove(i)
	delete(n.saved, i)
	n.rebuild()
	return true
}

// ShiftViewRight steps the view mode towards right.
func (n *Navigator) ShiftViewRight() { n.mode = n.mode.ShiftRight() }

// ShiftViewLeft steps the view mode towards left.
func (n *Navigator) ShiftViewLeft() { n.mode = n.mode.ShiftLeft() }

// SetFiles swaps in a freshly loaded file list. Collapsed, closed and saved
// scroll state follow files by path; state for files that disappeared is
// dropped. The offset is kept and re-clamped.
func (n *Navigator) SetFiles(files []diff.File) {
	index := make(map[string]int, len(files))
	for i, f := range files {
		if _, dup := index[f.Key()]; !dup {
			index[f.Key()] = i
		}
	}
	remap := func(old int) (int, bool) {
		if old < 0 || old >= len(n.files) {
			return 0, false
		}
		i, ok := index[n.files[old].Key()]
		return i, ok
	}

	collapsed, closed := diff.NewIndexSet(), diff.NewIndexSet()
	saved := make(map[int]int)
	for old := range n.collapsed {
		if i, ok := remap(old); ok {
			collapsed.Add(i)
		}
	}
	for old := range n.closed {
		if i, ok := remap(old); ok {
			closed.Add(i)
		}
	}
	for old, off := range n.saved {
		if i, ok := remap(old); ok {
			saved[i] = off
		}
	}

	n.files = files
	n.collapsed, n.closed, n.saved = collapsed, closed, saved
	n.rebuild()
}

// Position returns the 1-based position of the current file among visible
// files and the number of visible files. Position is 0 when no file is
// visible.
func (n *Navigator) Position() (int, int) {
	cur, ok := n.CurrentFile()
	pos, total := 0, 0
	for _, r := range n.rows {
		if r.Kind != diff.RowFileTop {
			continue
		}
		total++
		if ok && r.FileIndex == cur {
			pos = total
		}
	}
	return pos, total
}
