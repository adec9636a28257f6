package storage

import (
	"context"
	"sync"
)

// MemoryLinks keeps linked accounts in process memory. It is used when neither a
// database nor a redis URL is configured, links are lost on restart.
type MemoryLinks struct {
	mu    sync.RWMutex
	links map[string]string
}

// NewMemoryLinks creates an empty in-memory store.
func NewMemoryLinks() *MemoryLinks {
	return &MemoryLinks{links: make(map[string]string)}
}

// LinkedName returns the caller's linked name.
func (m *MemoryLinks) LinkedName(_ context.Context, callerID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name, ok := m.links[callerID]
	return name, ok, nil
}

// SaveLinkedName stores the caller's linked name.
func (m *MemoryLinks) SaveLinkedName(_ context.Context, callerID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links[callerID] = name
	return nil
}

// DeleteLinkedName forgets the caller's link.
func (m *MemoryLinks) DeleteLinkedName(_ context.Context, callerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.links, callerID)
	return nil
}
