package git

import "strings"

// DiffOptions tunes the diff produced by a Source.
type DiffOptions struct {
	// ExcludeUntracked leaves untracked files out of working-tree diffs.
	ExcludeUntracked bool
	// ContextLines is passed as -U<n> when positive; otherwise git's
	// default applies.
	ContextLines int
}

// ComparesCommits reports whether rng names two revisions (a..b or a...b),
// in which case the working tree, and with it untracked files, is not part
// of the diff.
func ComparesCommits(rng string) bool {
	return strings.Contains(rng, "..")
}
