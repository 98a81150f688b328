package credstore

import (
	"context"
	"sync"
)

// MemoryStore keeps credentials in process memory. Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[Slot]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[Slot]string, len(Slots))}
}

func (m *MemoryStore) Get(_ context.Context, slot Slot) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[slot]
	return v, ok
}

func (m *MemoryStore) Set(_ context.Context, slot Slot, value string) error {
	if !slot.valid() {
		return ErrUnknownSlot
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[slot] = value
	return nil
}

func (m *MemoryStore) ClearAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.values)
	return nil
}
