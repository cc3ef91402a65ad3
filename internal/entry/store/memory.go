package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
)

// Memory keeps entries in process, in insertion order.
type Memory struct {
	mu      sync.RWMutex
	order   []uuid.UUID
	entries map[uuid.UUID]entry.Entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[uuid.UUID]entry.Entry)}
}

func (m *Memory) CreateEntry(_ context.Context, e *entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.ID = uuid.New()
	m.entries[e.ID] = *e
	m.order = append(m.order, e.ID)

	return nil
}

func (m *Memory) SaveEntry(_ context.Context, e *entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[e.ID]; !ok {
		return entry.ErrNotFound
	}

	m.entries[e.ID] = *e

	return nil
}

func (m *Memory) DeleteEntry(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return nil
	}

	delete(m.entries, id)

	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	return nil
}

func (m *Memory) GetEntry(_ context.Context, id uuid.UUID) (*entry.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, entry.ErrNotFound
	}

	return &e, nil
}

func (m *Memory) ListEntries(_ context.Context, filter entry.Filter) ([]*entry.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []*entry.Entry

	for _, id := range m.order {
		e := m.entries[id]
		if filter.Matches(&e) {
			entries = append(entries, &e)
		}
	}

	return entries, nil
}
