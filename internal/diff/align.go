package diff

// PairKind tags an aligned row.
type PairKind int

const (
	PairContext PairKind = iota
	PairChange
)

// Side is one half of an aligned row.
type Side struct {
	LineNum int
	Content string
}

// AlignedRow is one side-by-side row. Context rows carry the same content on
// both sides; change rows have at least one non-nil side.
type AlignedRow struct {
	Kind  PairKind
	Left  *Side
	Right *Side
}

// Align converts a hunk's lines into side-by-side rows.
//
// Context lines map to both sides. Runs of deletions and additions are
// collected into change blocks and paired off by position; the shorter side
// is padded with nil slots. A deletion arriving after additions closes the
// current block.
func Align(h Hunk) []AlignedRow {
	rows := make([]AlignedRow, 0, len(h.Lines))
	var dels, adds []ChangeLine

	flush := func() {
		n := max(len(dels), len(adds))
		for i := 0; i < n; i++ {
			row := AlignedRow{Kind: PairChange}
			if i < len(dels) {
				row.Left = &Side{LineNum: dels[i].OldLine, Content: dels[i].Content}
			}
			if i < len(adds) {
				row.Right = &Side{LineNum: adds[i].NewLine, Content: adds[i].Content}
			}
			rows = append(rows, row)
		}
		dels = dels[:0]
		adds = adds[:0]
	}

	for _, line := range h.Lines {
		switch line.Kind {
		case LineContext:
			flush()
			rows = append(rows, AlignedRow{
				Kind:  PairContext,
				Left:  &Side{LineNum: line.OldLine, Content: line.Content},
				Right: &Side{LineNum: line.NewLine, Content: line.Content},
			})
		case LineDeleted:
			if len(adds) > 0 {
				flush()
			}
			dels = append(dels, line)
		case LineAdded:
			adds = append(adds, line)
		}
	}
	flush()

	return rows
}
