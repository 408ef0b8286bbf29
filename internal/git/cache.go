package git

import (
	"context"
	"sync"
	"time"
)

// CachedService wraps a Source and remembers the default branch for a TTL.
// Resolving it costs up to two git subprocesses, and watch mode can trigger
// a reload every few hundred milliseconds. Diffs are never cached: every
// reload must observe the working tree as it is now.
type CachedService struct {
	inner Source
	ttl   time.Duration
	now   func() time.Time

	mu     sync.Mutex
	branch string
	expiry time.Time
}

// Compile-time check.
var _ Source = (*CachedService)(nil)

// NewCachedService wraps inner with a default-branch cache.
func NewCachedService(inner Source, ttl time.Duration) *CachedService {
	return &CachedService{inner: inner, ttl: ttl, now: time.Now}
}

// Invalidate forgets the cached branch.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.branch = ""
	c.expiry = time.Time{}
	c.mu.Unlock()
}

// RepoRoot delegates to the inner source.
func (c *CachedService) RepoRoot() string { return c.inner.RepoRoot() }

// GitDir delegates to the inner source.
func (c *CachedService) GitDir() string { return c.inner.GitDir() }

// DefaultBranch returns the cached branch, asking the inner source once the
// entry has expired. Failures are not cached.
func (c *CachedService) DefaultBranch(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.branch != "" && c.now().Before(c.expiry) {
		b := c.branch
		c.mu.Unlock()
		return b, nil
	}
	c.mu.Unlock()

	b, err := c.inner.DefaultBranch(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.branch = b
	c.expiry = c.now().Add(c.ttl)
	c.mu.Unlock()
	return b, nil
}

// Diff resolves an empty range through the cache, then delegates.
func (c *CachedService) Diff(ctx context.Context, rng string, opts DiffOptions) (string, error) {
	if rng == "" {
		b, err := c.DefaultBranch(ctx)
		if err != nil {
			return "", err
		}
		rng = b
	}
	return c.inner.Diff(ctx, rng, opts)
}
