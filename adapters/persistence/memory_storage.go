package persistence

import (
	"context"
	"sync"
)

// MemorySlotStorage keeps slots in process memory. Everything is lost on
// restart; it backs tests and throwaway demo runs.
type MemorySlotStorage struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemorySlotStorage() *MemorySlotStorage {
	return &MemorySlotStorage{slots: make(map[string]string)}
}

func (m *MemorySlotStorage) Read(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *MemorySlotStorage) Write(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}

func (m *MemorySlotStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}
