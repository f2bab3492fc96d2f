package storage

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/cashheal/internal/kvstore"
	"github.com/Veraticus/cashheal/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable clock for deterministic createdAt values.
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// createTestStorage returns a migrated but unseeded SQLite store.
func createTestStorage(t *testing.T, opts ...Option) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type backend struct {
	store service.Storage
	name  string
}

// backends returns an unseeded store of each implementation sharing clock.
func backends(t *testing.T, clock *fakeClock) []backend {
	t.Helper()
	return []backend{
		{name: "sqlite", store: createTestStorage(t, WithClock(clock.Now))},
		{name: "kv", store: NewKVStorage(kvstore.NewMemory(), WithClock(clock.Now))},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func strPtr(s string) *string {
	return &s
}
