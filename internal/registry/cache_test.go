package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatusCacheRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "status.json")

	cache, err := NewStatusCache(path)
	require.NoError(t, err)

	cost := 7.0
	cache.Set("billing-infra", CachedStatus{
		Status:         StatusValid,
		CheckedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		CatalogVersion: "2025.08.1",
		DocumentCount:  2,
		WarningCount:   1,
		MonthlyCostUSD: &cost,
	})
	require.NoError(t, cache.Save())

	reloaded, err := NewStatusCache(path)
	require.NoError(t, err)

	status, ok := reloaded.Get("billing-infra")
	require.True(t, ok)
	require.Equal(t, StatusValid, status.Status)
	require.Equal(t, 2, status.DocumentCount)
	require.NotNil(t, status.MonthlyCostUSD)
	require.InDelta(t, 7.0, *status.MonthlyCostUSD, 1e-9)
}

func TestStatusCacheMissingEntry(t *testing.T) {
	t.Parallel()

	cache, err := NewStatusCache(filepath.Join(t.TempDir(), "status.json"))
	require.NoError(t, err)

	_, ok := cache.Get("never-checked")
	require.False(t, ok)
}

func TestStatusCacheInvalidate(t *testing.T) {
	t.Parallel()

	cache, err := NewStatusCache(filepath.Join(t.TempDir(), "status.json"))
	require.NoError(t, err)

	cache.Set("a", CachedStatus{Status: StatusValid})
	cache.Set("b", CachedStatus{Status: StatusInvalid})

	cache.Invalidate("a")
	_, ok := cache.Get("a")
	require.False(t, ok)

	cache.InvalidateAll()
	_, ok = cache.Get("b")
	require.False(t, ok)
}

func TestStatusCacheUnknownCostStaysNil(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "status.json")

	cache, err := NewStatusCache(path)
	require.NoError(t, err)
	cache.Set("destroy-only", CachedStatus{Status: StatusValid})
	require.NoError(t, cache.Save())

	reloaded, err := NewStatusCache(path)
	require.NoError(t, err)

	status, ok := reloaded.Get("destroy-only")
	require.True(t, ok)
	require.Nil(t, status.MonthlyCostUSD)
}
