// Package store persists the reconciled publication set. The reconcile
// engine only depends on the Store interface; concrete stores are passed in
// explicitly, no package level connection state.
package store

import (
	"github.com/miku/vitakit/schema/vita"
)

// Store is the persistence contract for the canonical publication set. Each
// Upsert is independently atomic and idempotent; there are no multi-record
// transactional guarantees.
type Store interface {
	// GetAll returns the committed set in insertion order.
	GetAll() ([]*vita.Publication, error)
	// Upsert inserts or replaces by canonical key.
	Upsert(key string, pub *vita.Publication) error
	// Exists reports whether a key is committed.
	Exists(key string) (bool, error)
	Close() error
}

// Memory is an in-memory store, used in tests and dry runs.
type Memory struct {
	pubs  map[string]*vita.Publication
	order []string
}

func NewMemory() *Memory {
	return &Memory{pubs: make(map[string]*vita.Publication)}
}

func (m *Memory) GetAll() ([]*vita.Publication, error) {
	var out []*vita.Publication
	for _, key := range m.order {
		out = append(out, m.pubs[key].Clone())
	}
	return out, nil
}

func (m *Memory) Upsert(key string, pub *vita.Publication) error {
	if _, ok := m.pubs[key]; !ok {
		m.order = append(m.order, key)
	}
	m.pubs[key] = pub.Clone()
	return nil
}

func (m *Memory) Exists(key string) (bool, error) {
	_, ok := m.pubs[key]
	return ok, nil
}

func (m *Memory) Close() error { return nil }
