package git

import (
	"context"
	"fmt"

	"github.com/sbsdiff/sbs/internal/diff"
)

// Source produces unified diff text for a repository.
// The UI depends on this interface, never on exec.Command directly, so tests
// can substitute a scripted implementation.
type Source interface {
	RepoRoot() string
	GitDir() string

	// DefaultBranch names the branch an empty range diffs against.
	DefaultBranch(ctx context.Context) (string, error)

	// Diff returns the raw diff for rng. An empty rng diffs the working
	// tree against DefaultBranch.
	Diff(ctx context.Context, rng string, opts DiffOptions) (string, error)
}

// Load runs the diff for rng and parses it.
func Load(ctx context.Context, src Source, rng string, opts DiffOptions) ([]diff.File, error) {
	raw, err := src.Diff(ctx, rng, opts)
	if err != nil {
		return nil, err
	}
	files, err := ParseDiff(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}
	return files, nil
}
