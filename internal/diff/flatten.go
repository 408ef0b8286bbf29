package diff

// RowKind tags an entry of the flattened row sequence.
type RowKind int

const (
	RowSummary RowKind = iota
	RowFileTop
	RowFileBottom
	RowHunkHeader
	RowLinePair
)

// String returns a short name for the kind.
func (k RowKind) String() string {
	switch k {
	case RowSummary:
		return "summary"
	case RowFileTop:
		return "file-top"
	case RowFileBottom:
		return "file-bottom"
	case RowHunkHeader:
		return "hunk-header"
	case RowLinePair:
		return "line-pair"
	default:
		return "unknown"
	}
}

// Summary aggregates the visible files.
type Summary struct {
	Files     int
	Additions int
	Deletions int
}

// Row is one display row. Which fields are meaningful depends on Kind:
//
//	RowSummary     Summary
//	RowFileTop     FileIndex, File
//	RowFileBottom  FileIndex
//	RowHunkHeader  FileIndex, Header
//	RowLinePair    FileIndex, Pair
type Row struct {
	Kind      RowKind
	FileIndex int
	File      *File
	Header    string
	Pair      AlignedRow
	Summary   Summary
}

// Flatten projects files into the row sequence consumed by the viewport:
// a summary row, then per visible file its header, hunks and footer.
// Closed files are skipped entirely and excluded from the summary; collapsed
// and binary files keep only their header and footer. File indices always
// refer to positions in files.
func Flatten(files []File, collapsed, closed IndexSet) []Row {
	var sum Summary
	for i := range files {
		if closed.Has(i) {
			continue
		}
		sum.Files++
		sum.Additions += files[i].Additions
		sum.Deletions += files[i].Deletions
	}

	rows := make([]Row, 0, 1+2*sum.Files)
	rows = append(rows, Row{Kind: RowSummary, FileIndex: -1, Summary: sum})

	for i := range files {
		if closed.Has(i) {
			continue
		}
		f := &files[i]
		rows = append(rows, Row{Kind: RowFileTop, FileIndex: i, File: f})

		if !collapsed.Has(i) && !f.Binary {
			for _, h := range f.Hunks {
				rows = append(rows, Row{Kind: RowHunkHeader, FileIndex: i, Header: h.Header})
				for _, pair := range Align(h) {
					rows = append(rows, Row{Kind: RowLinePair, FileIndex: i, Pair: pair})
				}
			}
		}

		rows = append(rows, Row{Kind: RowFileBottom, FileIndex: i})
	}

	return rows
}

// SummaryOf returns the aggregate carried by the leading summary row.
func SummaryOf(rows []Row) Summary {
	if len(rows) == 0 || rows[0].Kind != RowSummary {
		return Summary{}
	}
	return rows[0].Summary
}
