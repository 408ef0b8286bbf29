// Package diff holds the parsed diff model and the pure pipeline that turns
// it into side-by-side display rows: the row aligner and the view flattener.
package diff

// DevNull is the path git reports for the missing side of a created or
// deleted file.
const DevNull = "/dev/null"

// LineKind classifies a single line inside a hunk.
type LineKind int

const (
	LineContext LineKind = iota
	LineDeleted
	LineAdded
)

// String returns the unified-diff marker for the kind.
func (k LineKind) String() string {
	switch k {
	case LineDeleted:
		return "-"
	case LineAdded:
		return "+"
	default:
		return " "
	}
}

// ChangeLine is one line of a hunk. Content keeps its leading marker.
// OldLine is set for context and deleted lines, NewLine for context and
// added lines; zero means the side has no number.
type ChangeLine struct {
	Kind    LineKind
	Content string
	OldLine int
	NewLine int
}

// Hunk is a contiguous region of a diff introduced by an @@ header.
type Hunk struct {
	Header   string
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []ChangeLine
}

// File is one file section of a diff. Files are never mutated after parsing;
// UI state about them is keyed by their index in the parsed slice.
type File struct {
	From      string
	To        string
	Additions int
	Deletions int
	Binary    bool
	Hunks     []Hunk
}

// IsNew reports whether the file was created.
func (f File) IsNew() bool { return f.From == DevNull }

// IsDeleted reports whether the file was removed.
func (f File) IsDeleted() bool { return f.To == DevNull }

// DisplayName returns the label shown in the file header.
func (f File) DisplayName() string {
	switch {
	case f.IsNew(), f.From == f.To:
		return f.To
	case f.IsDeleted():
		return f.From
	default:
		return f.From + " → " + f.To
	}
}

// Key identifies a file across reloads.
func (f File) Key() string { return f.From + "\x00" + f.To }
