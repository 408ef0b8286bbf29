package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotARepo is returned when the path is not inside a Git repository.
var ErrNotARepo = errors.New("not a git repository")

// lookupTimeout bounds the short metadata commands (repo discovery, default
// branch). Diffs themselves are bounded only by the caller's context.
const lookupTimeout = 30 * time.Second

// CLIService implements Source by shelling out to the git CLI.
//   - GIT_OPTIONAL_LOCKS=0 on every command (no lock contention)
//   - stdout and stderr separated so stderr noise doesn't corrupt the diff
//   - external diff drivers and colour disabled so the parser sees plain text
type CLIService struct {
	root   string // Absolute path to the repo root.
	gitDir string // Path to the .git directory.
}

// Compile-time check that CLIService implements Source.
var _ Source = (*CLIService)(nil)

// NewCLIService opens the Git repository containing path.
func NewCLIService(path string) (*CLIService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	topLevel, err := runGit(ctx, abs, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, ErrNotARepo
	}
	gitDir, err := runGit(ctx, abs, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("finding .git directory: %w", err)
	}
	gd := strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gd) {
		gd = filepath.Join(abs, gd)
	}
	return &CLIService{
		root:   strings.TrimSpace(topLevel),
		gitDir: gd,
	}, nil
}

// RepoRoot returns the repository root path.
func (s *CLIService) RepoRoot() string { return s.root }

// GitDir returns the path to the .git directory.
func (s *CLIService) GitDir() string { return s.gitDir }

// ── helpers ─────────────────────────────────────────────────────────────────

// readEnv is added to the environment of every git command.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

// runGit executes git in dir. On failure the returned string still holds
// whatever git wrote to stdout, since several commands (diff --no-index in
// particular) report differences through a non-zero exit status.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), readEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return stdout.String(), fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), errMsg, err)
	}
	return stdout.String(), nil
}

func (s *CLIService) run(ctx context.Context, args ...string) (string, error) {
	return runGit(ctx, s.root, args...)
}

// ── Default branch ──────────────────────────────────────────────────────────

// DefaultBranch returns the branch origin/HEAD points at, falling back to
// main when it exists locally and to master otherwise.
func (s *CLIService) DefaultBranch(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	if ref, err := s.run(ctx, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		if name := strings.TrimPrefix(strings.TrimSpace(ref), "refs/remotes/origin/"); name != "" {
			return name, nil
		}
	}
	if _, err := s.run(ctx, "rev-parse", "--verify", "--quiet", "main"); err == nil {
		return "main", nil
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("resolving default branch: %w", err)
	}
	return "master", nil
}

// ── Diff ────────────────────────────────────────────────────────────────────

// DiffArgs builds the git arguments for diffing rng, which must already be
// resolved (non-empty).
func DiffArgs(rng string, opts DiffOptions) []string {
	args := []string{"diff", "--no-color", "--no-ext-diff"}
	if opts.ContextLines > 0 {
		args = append(args, fmt.Sprintf("-U%d", opts.ContextLines))
	}
	return append(args, rng)
}

// Diff returns the unified diff for rng, with untracked files appended as
// new-file diffs unless excluded or rng compares two commits.
func (s *CLIService) Diff(ctx context.Context, rng string, opts DiffOptions) (string, error) {
	if rng == "" {
		base, err := s.DefaultBranch(ctx)
		if err != nil {
			return "", err
		}
		rng = base
	}

	out, err := s.run(ctx, DiffArgs(rng, opts)...)
	if err != nil && out == "" {
		return "", err
	}
	if err != nil {
		log.Printf("git diff exited with an error, using its output: %v", err)
	}

	if opts.ExcludeUntracked || ComparesCommits(rng) {
		return out, nil
	}
	untracked, err := s.untrackedDiff(ctx, opts)
	if err != nil {
		return "", err
	}
	return out + untracked, nil
}

// untrackedDiff renders every untracked, non-ignored file as a creation.
func (s *CLIService) untrackedDiff(ctx context.Context, opts DiffOptions) (string, error) {
	out, err := s.run(ctx, "ls-files", "--others", "--exclude-standard", "-z")
	if err != nil {
		return "", fmt.Errorf("listing untracked files: %w", err)
	}

	var b strings.Builder
	for _, path := range strings.Split(out, "\x00") {
		if path == "" {
			continue
		}
		args := []string{"diff", "--no-color", "--no-ext-diff", "--no-index"}
		if opts.ContextLines > 0 {
			args = append(args, fmt.Sprintf("-U%d", opts.ContextLines))
		}
		args = append(args, "--", "/dev/null", path)

		// --no-index exits 1 whenever the files differ, which they always do.
		d, err := s.run(ctx, args...)
		if err != nil && d == "" {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			log.Printf("skipping untracked %s: %v", path, err)
			continue
		}
		b.WriteString(d)
	}
	return b.String(), nil
}
