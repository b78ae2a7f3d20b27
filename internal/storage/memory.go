// internal/storage/memory.go
package storage

import (
	"context"
	"sync"

	"uniautomarket/internal/models"
)

// Memory is an in-process adapter. It backs the default configuration and
// every store test; failure injection and manual push delivery stand in
// for a flaky or eventually-consistent remote.
type Memory struct {
	mu          sync.Mutex
	tree        models.Tree
	seeded      bool
	fetchErr    error
	persistErr  error
	persists    int
	subscribers map[int]func(models.Tree)
	nextSub     int
}

func NewMemory() *Memory {
	return &Memory{subscribers: make(map[int]func(models.Tree))}
}

func (m *Memory) FetchAll(ctx context.Context) (models.Tree, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if !m.seeded {
		return nil, nil
	}
	return m.tree.Clone(), nil
}

func (m *Memory) Persist(ctx context.Context, tree models.Tree) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.persistErr != nil {
		return m.persistErr
	}
	m.tree = tree.Clone()
	m.seeded = true
	m.persists++
	return nil
}

func (m *Memory) Subscribe(onChange func(models.Tree)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = onChange
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

func (m *Memory) Close() error { return nil }

// Push delivers a tree to every subscriber, simulating a remote change
// made by another writer.
func (m *Memory) Push(tree models.Tree) {
	m.mu.Lock()
	subs := make([]func(models.Tree), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.tree = tree.Clone()
	m.seeded = true
	m.mu.Unlock()

	for _, fn := range subs {
		fn(tree.Clone())
	}
}

// FailFetch makes subsequent FetchAll calls return err (nil to restore).
func (m *Memory) FailFetch(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

// FailPersist makes subsequent Persist calls return err (nil to restore).
func (m *Memory) FailPersist(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistErr = err
}

// PersistCount reports how many persists succeeded.
func (m *Memory) PersistCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persists
}

// Stored returns the last persisted tree.
func (m *Memory) Stored() models.Tree {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tree.Clone()
}
