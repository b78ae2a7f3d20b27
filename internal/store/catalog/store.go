// Package catalog owns the canonical in-memory tree of categories,
// businesses, products and services, and keeps it reconciled with the
// remote store adapter.
//
// Consistency model: every mutation copies only the path it touches,
// swaps the local tree synchronously, then persists the whole snapshot
// asynchronously. Remote pushes replace the local tree wholesale
// (last-writer-wins at tree granularity, no field-level merge). Callers
// must always re-derive the next mutation from the freshest tree, never
// from an older snapshot.
package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/common/metrics"
	"uniautomarket/internal/models"
	"uniautomarket/internal/storage"

	apperrors "uniautomarket/internal/common/errors"
)

type Store struct {
	mu      sync.RWMutex
	tree    models.Tree
	adapter storage.RemoteStore
	log     logger.Logger

	// offline is set after a fetch/persist failure: the store keeps
	// serving the last-known tree and skips further persists until a
	// manual SyncData succeeds.
	offline atomic.Bool

	obsMu     sync.Mutex
	observers map[int]func(models.Tree)
	nextObs   int

	persists sync.WaitGroup
}

func New(adapter storage.RemoteStore, log logger.Logger) *Store {
	return &Store{
		adapter:   adapter,
		log:       log.WithFields(map[string]interface{}{"store": "catalog"}),
		observers: make(map[int]func(models.Tree)),
	}
}

// Load performs the cold start: fetch from the adapter, and when the
// remote store has never been seeded, write the default tree back so it
// is never left empty after first run. Fetch errors are non-fatal; the
// store starts in local-only mode on the seed data.
func (s *Store) Load(ctx context.Context) models.Tree {
	tree, err := s.adapter.FetchAll(ctx)
	if err != nil {
		s.log.Error("initial fetch failed, starting local-only on seed data",
			map[string]interface{}{"error": err.Error()})
		s.offline.Store(true)
		tree = DefaultCategories()
		s.replace(tree)
		return tree.Clone()
	}

	if len(tree) == 0 {
		tree = DefaultCategories()
		if err := s.adapter.Persist(ctx, tree); err != nil {
			s.log.Error("persisting seed data failed",
				map[string]interface{}{"error": err.Error()})
			metrics.CatalogPersistFailures.Inc()
			s.offline.Store(true)
		}
	}

	s.replace(tree)
	return tree.Clone()
}

// Tree returns a detached snapshot of the current tree.
func (s *Store) Tree() models.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Clone()
}

// SubscribeRemote registers with the adapter's push channel. Every push
// replaces the local tree entirely, including over unpersisted local
// mutations; that race is the accepted trade-off of whole-tree
// persistence.
func (s *Store) SubscribeRemote() (unsubscribe func()) {
	return s.adapter.Subscribe(func(tree models.Tree) {
		s.mu.Lock()
		s.tree = tree.Clone()
		s.mu.Unlock()
		metrics.CatalogRemotePushes.Inc()
		s.notifyObservers()
	})
}

// Subscribe registers a local observer invoked after every successful
// mutation and every applied remote push. The callback receives a
// detached snapshot.
func (s *Store) Subscribe(fn func(models.Tree)) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

// SyncData forces a fresh fetch and replaces local state; the manual
// reconciliation path after a suspected conflict or a persist failure.
func (s *Store) SyncData(ctx context.Context) error {
	start := time.Now()
	tree, err := s.adapter.FetchAll(ctx)
	if err != nil {
		metrics.CatalogSyncs.WithLabelValues("error").Inc()
		s.log.Error("manual sync failed", map[string]interface{}{
			"error":    err.Error(),
			"duration": time.Since(start).String(),
		})
		return apperrors.NewFetchFailedError(err)
	}
	if tree == nil {
		tree = models.Tree{}
	}

	s.replace(tree)
	s.offline.Store(false)
	metrics.CatalogSyncs.WithLabelValues("ok").Inc()
	s.notifyObservers()
	return nil
}

// Offline reports whether the store is in local-only mode.
func (s *Store) Offline() bool {
	return s.offline.Load()
}

// Flush waits for in-flight persists; called on shutdown and by tests.
func (s *Store) Flush() {
	s.persists.Wait()
}

func (s *Store) replace(tree models.Tree) {
	s.mu.Lock()
	s.tree = tree.Clone()
	s.mu.Unlock()
}

// mutate applies fn to the current tree under the lock, swaps in the
// result, then notifies observers and persists asynchronously. fn must
// copy-on-write: the tree it receives is the canonical slice.
func (s *Store) mutate(op string, fn func(tree models.Tree) (models.Tree, error)) error {
	s.mu.Lock()
	next, err := fn(s.tree)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.tree = next
	s.mu.Unlock()

	metrics.CatalogMutations.WithLabelValues(op).Inc()
	s.notifyObservers()
	s.persistAsync(op)
	return nil
}

// persistAsync writes the freshest snapshot to the adapter without
// blocking the caller. Failures are logged and not retried; local state
// is kept (no rollback) until a manual SyncData reconciles.
func (s *Store) persistAsync(op string) {
	if s.offline.Load() {
		s.log.Debug("skipping persist in local-only mode", map[string]interface{}{"op": op})
		return
	}

	snapshot := s.Tree()
	s.persists.Add(1)
	go func() {
		defer s.persists.Done()
		if err := s.adapter.Persist(context.Background(), snapshot); err != nil {
			metrics.CatalogPersistFailures.Inc()
			s.offline.Store(true)
			s.log.Error("persist failed, keeping optimistic local state", map[string]interface{}{
				"op":    op,
				"error": err.Error(),
			})
		}
	}()
}

func (s *Store) notifyObservers() {
	s.obsMu.Lock()
	fns := make([]func(models.Tree), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	if len(fns) == 0 {
		return
	}
	snapshot := s.Tree()
	for _, fn := range fns {
		fn(snapshot)
	}
}
