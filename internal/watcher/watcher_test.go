package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/repo/.git/index.lock", true},
		{"/repo/.git/index", false},
		{"/repo/.git/HEAD", false},
		{"/repo/main.go.swp", true},
		{"/repo/main.go~", true},
		{"/repo/.#main.go", true},
		{"/repo/4913", true},
		{"/repo/.git/COMMIT_EDITMSG", true},
		{"/repo/.git/fsmonitor--daemon.ipc", true},
		{"/repo/main.go", false},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			require.Equal(t, tt.want, shouldIgnore(tt.path))
		})
	}
}

func TestGitTargets(t *testing.T) {
	gitDir := filepath.Join(t.TempDir(), ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs", "remotes", "origin"), 0o755))

	require.ElementsMatch(t, []string{
		gitDir,
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "remotes"),
		filepath.Join(gitDir, "refs", "remotes", "origin"),
	}, gitTargets(gitDir))
}

func TestIsTreeDir(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "objects"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "f.txt"), []byte("x"), 0o644))

	require.True(t, isTreeDir(filepath.Join(root, "src"), gitDir))
	require.False(t, isTreeDir(filepath.Join(gitDir, "objects"), gitDir))
	require.False(t, isTreeDir(filepath.Join(root, "node_modules"), gitDir))
	require.False(t, isTreeDir(filepath.Join(root, "f.txt"), gitDir))
}

func TestWatch_WorkingTreeEdit(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs", "heads"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))

	events, stop, err := Watch(root, gitDir, 10*time.Millisecond)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "a.go"), []byte("package pkg\n"), 0o644))

	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("no event after editing a tracked directory")
	}
}

func TestWatch_IgnoresLockFiles(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))

	events, stop, err := Watch("", gitDir, 10*time.Millisecond)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "index.lock"), nil, 0o644))

	select {
	case <-events:
		t.Fatal("lock file triggered a refresh")
	case <-time.After(200 * time.Millisecond):
	}
}
