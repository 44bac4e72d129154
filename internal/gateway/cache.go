package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saveenstha/repopulse/internal/domain"
)

type cacheEntry struct {
	snap     *domain.RepoSnapshot
	storedAt time.Time
}

// SnapshotCache holds fetched snapshots for a fixed TTL. Expiry is
// checked on read, so a stale entry is never served, only replaced.
type SnapshotCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewSnapshotCache creates a cache with the given TTL. A TTL of zero or
// less disables caching entirely.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached snapshot for the repository if it is still
// fresh. Callers share the returned snapshot and must treat it as
// read-only.
func (c *SnapshotCache) Get(owner, repo string) (*domain.RepoSnapshot, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	key := owner + "/" + repo

	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.snap, true
}

// Put stores a snapshot, restarting its TTL.
func (c *SnapshotCache) Put(owner, repo string, snap *domain.RepoSnapshot) {
	if c.ttl <= 0 || snap == nil {
		return
	}
	key := owner + "/" + repo

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{snap: snap, storedAt: c.now()}
}

// CachedFetcher decorates a Fetcher with a SnapshotCache. Successful
// fetches are cached, including "repository not found" snapshots, so a
// missing repository is not re-fetched on every request. Errors are
// never cached.
type CachedFetcher struct {
	fetcher Fetcher
	cache   *SnapshotCache
	logger  logrus.FieldLogger
}

// NewCachedFetcher wraps fetcher with cache.
func NewCachedFetcher(fetcher Fetcher, cache *SnapshotCache, logger logrus.FieldLogger) *CachedFetcher {
	return &CachedFetcher{fetcher: fetcher, cache: cache, logger: logger}
}

// FetchSnapshot serves from the cache when possible and delegates to
// the wrapped fetcher otherwise.
func (f *CachedFetcher) FetchSnapshot(ctx context.Context, owner, repo string) (*domain.RepoSnapshot, error) {
	if snap, ok := f.cache.Get(owner, repo); ok {
		f.logger.WithField("repo", owner+"/"+repo).Debug("serving snapshot from cache")
		return snap, nil
	}
	snap, err := f.fetcher.FetchSnapshot(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	f.cache.Put(owner, repo, snap)
	return snap, nil
}
