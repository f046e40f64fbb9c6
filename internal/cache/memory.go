package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-process LRU cache bounded to maxEntries. Entries live at
// most maxTTL; a shorter ttl passed to Set is honoured per entry.
type Memory struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

// NewMemory builds a Memory cache. A zero maxTTL keeps entries until they
// are evicted or their own ttl passes.
func NewMemory(maxEntries int, maxTTL time.Duration) *Memory {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &Memory{
		lru: expirable.NewLRU[string, entry](maxEntries, nil, maxTTL),
		now: time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if e.expired(m.now()) {
		m.lru.Remove(key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores a copy of value. A zero ttl falls back to the cache's maxTTL.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.lru.Add(key, e)
	return nil
}

func (m *Memory) Len() int {
	return m.lru.Len()
}

func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}
