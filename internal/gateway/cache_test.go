package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saveenstha/repopulse/internal/domain"
)

// MockFetcher is a testify mock implementation of the Fetcher interface.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchSnapshot(ctx context.Context, owner, repo string) (*domain.RepoSnapshot, error) {
	args := m.Called(ctx, owner, repo)
	if snap := args.Get(0); snap != nil {
		return snap.(*domain.RepoSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSnapshotCacheExpiry(t *testing.T) {
	start := time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)
	current := start
	cache := NewSnapshotCache(10 * time.Minute)
	cache.now = func() time.Time { return current }

	snap := &domain.RepoSnapshot{FullName: "acme/widget"}
	cache.Put("acme", "widget", snap)

	got, ok := cache.Get("acme", "widget")
	require.True(t, ok)
	assert.Same(t, snap, got)

	current = start.Add(9*time.Minute + 59*time.Second)
	_, ok = cache.Get("acme", "widget")
	assert.True(t, ok, "entry must stay fresh inside the TTL")

	current = start.Add(10 * time.Minute)
	_, ok = cache.Get("acme", "widget")
	assert.False(t, ok, "entry must expire once the TTL has fully elapsed")
}

func TestSnapshotCacheDisabled(t *testing.T) {
	cache := NewSnapshotCache(0)
	cache.Put("acme", "widget", &domain.RepoSnapshot{FullName: "acme/widget"})

	_, ok := cache.Get("acme", "widget")
	assert.False(t, ok)
}

func TestSnapshotCacheKeyedPerRepository(t *testing.T) {
	cache := NewSnapshotCache(10 * time.Minute)
	cache.Put("acme", "widget", &domain.RepoSnapshot{FullName: "acme/widget"})

	_, ok := cache.Get("acme", "other")
	assert.False(t, ok)
	_, ok = cache.Get("other", "widget")
	assert.False(t, ok)
	_, ok = cache.Get("acme", "widget")
	assert.True(t, ok)
}

func TestCachedFetcherServesFromCache(t *testing.T) {
	snap := &domain.RepoSnapshot{FullName: "acme/widget"}
	mockFetcher := new(MockFetcher)
	mockFetcher.On("FetchSnapshot", mock.Anything, "acme", "widget").Return(snap, nil)

	cached := NewCachedFetcher(mockFetcher, NewSnapshotCache(10*time.Minute), discardLogger())

	first, err := cached.FetchSnapshot(context.Background(), "acme", "widget")
	require.NoError(t, err)
	second, err := cached.FetchSnapshot(context.Background(), "acme", "widget")
	require.NoError(t, err)

	assert.Same(t, first, second)
	mockFetcher.AssertNumberOfCalls(t, "FetchSnapshot", 1)
}

func TestCachedFetcherDoesNotCacheErrors(t *testing.T) {
	mockFetcher := new(MockFetcher)
	mockFetcher.On("FetchSnapshot", mock.Anything, "acme", "widget").Return(nil, errors.New("boom"))

	cached := NewCachedFetcher(mockFetcher, NewSnapshotCache(10*time.Minute), discardLogger())

	_, err := cached.FetchSnapshot(context.Background(), "acme", "widget")
	require.Error(t, err)
	_, err = cached.FetchSnapshot(context.Background(), "acme", "widget")
	require.Error(t, err)

	mockFetcher.AssertNumberOfCalls(t, "FetchSnapshot", 2)
}

func TestCachedFetcherRefetchesAfterExpiry(t *testing.T) {
	start := time.Date(2026, time.August, 10, 12, 0, 0, 0, time.UTC)
	current := start
	cache := NewSnapshotCache(10 * time.Minute)
	cache.now = func() time.Time { return current }

	snap := &domain.RepoSnapshot{FullName: "acme/widget"}
	mockFetcher := new(MockFetcher)
	mockFetcher.On("FetchSnapshot", mock.Anything, "acme", "widget").Return(snap, nil)

	cached := NewCachedFetcher(mockFetcher, cache, discardLogger())

	_, err := cached.FetchSnapshot(context.Background(), "acme", "widget")
	require.NoError(t, err)

	current = start.Add(11 * time.Minute)
	_, err = cached.FetchSnapshot(context.Background(), "acme", "widget")
	require.NoError(t, err)

	mockFetcher.AssertNumberOfCalls(t, "FetchSnapshot", 2)
}
