package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffArgs(t *testing.T) {
	for _, tc := range []struct {
		name string
		rng  string
		opts DiffOptions
		want []string
	}{
		{
			name: "simple ref",
			rng:  "main",
			want: []string{"diff", "--no-color", "--no-ext-diff", "main"},
		},
		{
			name: "range passes through",
			rng:  "HEAD~2..HEAD~1",
			want: []string{"diff", "--no-color", "--no-ext-diff", "HEAD~2..HEAD~1"},
		},
		{
			name: "context lines",
			rng:  "HEAD",
			opts: DiffOptions{ContextLines: 10},
			want: []string{"diff", "--no-color", "--no-ext-diff", "-U10", "HEAD"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DiffArgs(tc.rng, tc.opts))
		})
	}
}

func TestComparesCommits(t *testing.T) {
	require.True(t, ComparesCommits("a..b"))
	require.True(t, ComparesCommits("main...feature"))
	require.False(t, ComparesCommits("main"))
	require.False(t, ComparesCommits(""))
}

// gitRepo creates a repository with one commit on main and returns its path.
// Tests using it are skipped when git is not installed.
func gitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	dir := t.TempDir()
	gitCmd(t, dir, "init", "-q")
	gitCmd(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	writeFile(t, dir, "a.txt", "one\ntwo\nthree\n")
	gitCmd(t, dir, "add", "a.txt")
	gitCmd(t, dir, "-c", "user.name=test", "-c", "user.email=test@example.com", "commit", "-q", "-m", "init")
	return dir
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestCLIService_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())

	_, err := NewCLIService(t.TempDir())
	require.True(t, errors.Is(err, ErrNotARepo))
}

func TestCLIService_DiffAgainstDefaultBranch(t *testing.T) {
	dir := gitRepo(t)
	writeFile(t, dir, "a.txt", "one\nTWO\nthree\n")
	writeFile(t, dir, "b.txt", "fresh\n")

	svc, err := NewCLIService(dir)
	require.NoError(t, err)
	ctx := context.Background()

	branch, err := svc.DefaultBranch(ctx)
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	files, err := Load(ctx, svc, "", DiffOptions{})
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "a.txt", files[0].To)
	require.Equal(t, 1, files[0].Additions)
	require.Equal(t, 1, files[0].Deletions)
	require.True(t, files[1].IsNew())
	require.Equal(t, "b.txt", files[1].To)

	files, err = Load(ctx, svc, "", DiffOptions{ExcludeUntracked: true})
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestCLIService_CommitRangeSkipsUntracked(t *testing.T) {
	dir := gitRepo(t)
	writeFile(t, dir, "b.txt", "fresh\n")

	svc, err := NewCLIService(dir)
	require.NoError(t, err)

	raw, err := svc.Diff(context.Background(), "HEAD..HEAD", DiffOptions{})
	require.NoError(t, err)
	require.Empty(t, raw)
}

func TestCLIService_BadRevision(t *testing.T) {
	dir := gitRepo(t)
	svc, err := NewCLIService(dir)
	require.NoError(t, err)

	_, err = svc.Diff(context.Background(), "no-such-ref", DiffOptions{ExcludeUntracked: true})
	require.Error(t, err)
	require.Contains(t, err.Error(), "git diff")
}
