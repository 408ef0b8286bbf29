package git

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSource records calls and answers from canned values.
type fakeSource struct {
	branch     string
	branchErr  error
	branchHits int
	diffRanges []string
}

func (f *fakeSource) RepoRoot() string { return "/repo" }
func (f *fakeSource) GitDir() string   { return "/repo/.git" }

func (f *fakeSource) DefaultBranch(context.Context) (string, error) {
	f.branchHits++
	return f.branch, f.branchErr
}

func (f *fakeSource) Diff(_ context.Context, rng string, _ DiffOptions) (string, error) {
	f.diffRanges = append(f.diffRanges, rng)
	return "", nil
}

func TestCachedService_CachesDefaultBranch(t *testing.T) {
	inner := &fakeSource{branch: "main"}
	c := NewCachedService(inner, time.Minute)
	ctx := context.Background()

	for range 3 {
		b, err := c.DefaultBranch(ctx)
		require.NoError(t, err)
		require.Equal(t, "main", b)
	}
	require.Equal(t, 1, inner.branchHits)

	c.Invalidate()
	_, _ = c.DefaultBranch(ctx)
	require.Equal(t, 2, inner.branchHits)
}

func TestCachedService_Expires(t *testing.T) {
	inner := &fakeSource{branch: "main"}
	c := NewCachedService(inner, time.Second)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = c.DefaultBranch(ctx)
	now = now.Add(500 * time.Millisecond)
	_, _ = c.DefaultBranch(ctx)
	require.Equal(t, 1, inner.branchHits)

	now = now.Add(time.Second)
	_, _ = c.DefaultBranch(ctx)
	require.Equal(t, 2, inner.branchHits)
}

func TestCachedService_DoesNotCacheFailures(t *testing.T) {
	inner := &fakeSource{branchErr: errors.New("boom")}
	c := NewCachedService(inner, time.Minute)
	ctx := context.Background()

	_, err := c.DefaultBranch(ctx)
	require.Error(t, err)
	_, err = c.Diff(ctx, "", DiffOptions{})
	require.Error(t, err)
	require.Equal(t, 2, inner.branchHits)
	require.Empty(t, inner.diffRanges)
}

func TestCachedService_DiffResolvesEmptyRange(t *testing.T) {
	inner := &fakeSource{branch: "trunk"}
	c := NewCachedService(inner, time.Minute)
	ctx := context.Background()

	_, err := c.Diff(ctx, "", DiffOptions{})
	require.NoError(t, err)
	_, err = c.Diff(ctx, "", DiffOptions{})
	require.NoError(t, err)
	_, err = c.Diff(ctx, "v1..v2", DiffOptions{})
	require.NoError(t, err)

	require.Equal(t, []string{"trunk", "trunk", "v1..v2"}, inner.diffRanges)
	require.Equal(t, 1, inner.branchHits)
	require.Equal(t, "/repo", c.RepoRoot())
}
