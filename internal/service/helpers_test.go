package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"agrotoken/internal/repository"

	"go.uber.org/zap"
)

// wednesday noon UTC; receipts a few hours earlier fall on a weekday
var testNow = time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testNow}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var errStoreDown = errors.New("store unavailable")

// failingStore fails writes while failWrites is set.
type failingStore struct {
	*repository.MemoryStore
	failWrites atomic.Bool
}

func newFailingStore() *failingStore {
	return &failingStore{MemoryStore: repository.NewMemoryStore()}
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failWrites.Load() {
		return errStoreDown
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *failingStore) SetMany(ctx context.Context, entries []repository.Entry) error {
	if s.failWrites.Load() {
		return errStoreDown
	}
	return s.MemoryStore.SetMany(ctx, entries)
}

func newTestRegistry(t *testing.T, store repository.KVStore) *Registry {
	t.Helper()
	ids, err := NewSnowflakeIDs(1)
	if err != nil {
		t.Fatalf("failed to create id generator: %v", err)
	}
	repo := repository.NewTokenRepository(store, 64, time.Minute, zap.NewNop())
	return NewRegistry(repo, ids, NoLatency{}, newTestClock().Now, zap.NewNop())
}

func newStaticConverter(clock Clock) *Converter {
	return NewConverter(zap.NewNop(), WithRateSource(StaticSource{}), WithConverterClock(clock))
}
