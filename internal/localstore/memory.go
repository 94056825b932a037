package localstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store, used in tests and as the default
// backend when no data directory is configured.
type Memory struct {
	mu   sync.Mutex
	data map[Collection][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[Collection][]byte)}
}

func (m *Memory) Get(_ context.Context, c Collection) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[c]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (m *Memory) Put(_ context.Context, c Collection, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(raw))
	copy(stored, raw)
	m.data[c] = stored
	return nil
}
