package cache

import (
	"btc-rate-monitor/internal/domain/apperr"
	"btc-rate-monitor/internal/domain/interfaces"
	"context"
	"fmt"
	"sync"
	"time"
)

var _ interfaces.Store = (*MemoryStore)(nil)

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store with per-key expiration
type MemoryStore struct {
	items map[string]memoryItem
	mu    sync.RWMutex
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

// Get returns the value under key, treating expired entries as absent
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return "", false, nil
	}

	if !m.now().Before(item.expiresAt) {
		m.mu.Lock()
		if cur, still := m.items[key]; still && cur.expiresAt.Equal(item.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return "", false, nil
	}

	return item.value, true, nil
}

// Set stores value until ttl elapses, pruning expired entries on the way
func (m *MemoryStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return apperr.Store("cache.Set", fmt.Errorf("ttl must be positive, got %v", ttl))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, item := range m.items {
		if !now.Before(item.expiresAt) {
			delete(m.items, k)
		}
	}

	m.items[key] = memoryItem{value: value, expiresAt: now.Add(ttl)}
	return nil
}

// Ping always succeeds
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Close drops every entry
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]memoryItem)
	return nil
}

// Len reports how many entries are held, expired ones included
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
