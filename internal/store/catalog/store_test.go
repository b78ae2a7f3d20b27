// internal/store/catalog/store_test.go
package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/models"
	"uniautomarket/internal/storage"

	apperrors "uniautomarket/internal/common/errors"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestTree() models.Tree {
	return models.Tree{
		{
			ID:   "cat-1",
			Name: "Desarmadurías",
			Businesses: []models.Business{
				{
					ID:         "biz-1",
					CategoryID: "cat-1",
					Name:       "Desarmaduría El Rápido",
					Address:    "Av. Principal 123",
					Rating:     4.5,
					Products: []models.Product{
						{ID: "prod-1", Name: "Alternador", Price: 45000, Available: true},
					},
					Services: []models.Service{
						{ID: "svc-1", Name: "Retiro a domicilio", PriceFrom: 10000},
					},
				},
			},
		},
		{
			ID:   "cat-2",
			Name: "Talleres Mecánicos",
		},
	}
}

func createTestStore(t *testing.T) (*Store, *storage.Memory) {
	adapter := storage.NewMemory()
	require.NoError(t, adapter.Persist(context.Background(), createTestTree()))

	store := New(adapter, logger.NewTestLogger(t))
	store.Load(context.Background())
	return store, adapter
}

// ==========================
// Cold Start
// ==========================

func TestStore_Load_SeedsEmptyRemote(t *testing.T) {
	adapter := storage.NewMemory()
	store := New(adapter, logger.NewTestLogger(t))

	tree := store.Load(context.Background())

	assert.Len(t, tree, 9)
	assert.False(t, store.Offline())
	// The seed must have been written back so the remote is never empty
	// after first run.
	assert.Equal(t, 1, adapter.PersistCount())
	assert.Len(t, adapter.Stored(), 9)
}

func TestStore_Load_KeepsExistingRemoteData(t *testing.T) {
	store, adapter := createTestStore(t)

	tree := store.Tree()

	assert.Len(t, tree, 2)
	assert.Equal(t, "Desarmadurías", tree[0].Name)
	// Load must not rewrite a remote that already has data.
	assert.Equal(t, 1, adapter.PersistCount())
}

func TestStore_Load_FetchFailureStartsLocalOnly(t *testing.T) {
	adapter := storage.NewMemory()
	adapter.FailFetch(errors.New("network unreachable"))
	store := New(adapter, logger.NewTestLogger(t))

	tree := store.Load(context.Background())

	assert.Len(t, tree, 9)
	assert.True(t, store.Offline())
	assert.Equal(t, 0, adapter.PersistCount())
}

// ==========================
// Mutation / Persistence
// ==========================

func TestStore_Mutation_VisibleBeforePersistCompletes(t *testing.T) {
	store, _ := createTestStore(t)

	err := store.AddCategory(models.Category{ID: "cat-3", Name: "Grúas"})

	require.NoError(t, err)
	// The new category is readable immediately, persistence runs behind.
	tree := store.Tree()
	assert.Len(t, tree, 3)
}

func TestStore_Mutation_PersistsWholeTree(t *testing.T) {
	store, adapter := createTestStore(t)

	require.NoError(t, store.AddCategory(models.Category{ID: "cat-3", Name: "Grúas"}))
	store.Flush()

	assert.Len(t, adapter.Stored(), 3)
}

func TestStore_Mutation_PersistFailureKeepsLocalState(t *testing.T) {
	store, adapter := createTestStore(t)
	adapter.FailPersist(errors.New("write refused"))

	require.NoError(t, store.AddCategory(models.Category{ID: "cat-3", Name: "Grúas"}))
	store.Flush()

	// No rollback: local state keeps the optimistic write, the store
	// drops to local-only mode.
	assert.Len(t, store.Tree(), 3)
	assert.True(t, store.Offline())
	assert.Len(t, adapter.Stored(), 2)
}

func TestStore_Mutation_FailedValidationDoesNotPersist(t *testing.T) {
	store, adapter := createTestStore(t)

	err := store.AddCategory(models.Category{ID: "", Name: ""})
	store.Flush()

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
	assert.Len(t, adapter.Stored(), 2)
}

func TestStore_Mutation_SkipsPersistWhileOffline(t *testing.T) {
	store, adapter := createTestStore(t)
	adapter.FailPersist(errors.New("write refused"))

	require.NoError(t, store.AddCategory(models.Category{ID: "cat-3", Name: "Grúas"}))
	store.Flush()
	require.True(t, store.Offline())

	adapter.FailPersist(nil)
	persisted := adapter.PersistCount()
	require.NoError(t, store.AddCategory(models.Category{ID: "cat-4", Name: "Pintura"}))
	store.Flush()

	// Still local-only until a manual sync; nothing new reached the
	// adapter even though it recovered.
	assert.Equal(t, persisted, adapter.PersistCount())
	assert.Len(t, store.Tree(), 4)
}

// ==========================
// Snapshot Isolation
// ==========================

func TestStore_Tree_ReturnsDetachedSnapshot(t *testing.T) {
	store, _ := createTestStore(t)

	snapshot := store.Tree()
	snapshot[0].Name = "mutated"
	snapshot[0].Businesses[0].Products[0].Name = "mutated"

	fresh := store.Tree()
	assert.Equal(t, "Desarmadurías", fresh[0].Name)
	assert.Equal(t, "Alternador", fresh[0].Businesses[0].Products[0].Name)
}

// ==========================
// Remote Pushes / Sync
// ==========================

func TestStore_SubscribeRemote_ReplacesTreeWholesale(t *testing.T) {
	store, adapter := createTestStore(t)
	unsubscribe := store.SubscribeRemote()
	defer unsubscribe()

	remote := models.Tree{{ID: "cat-9", Name: "Reprogramación ECU"}}
	adapter.Push(remote)

	tree := store.Tree()
	require.Len(t, tree, 1)
	assert.Equal(t, "cat-9", tree[0].ID)
}

func TestStore_SubscribeRemote_LastWriterWinsOverLocalEdits(t *testing.T) {
	store, adapter := createTestStore(t)
	unsubscribe := store.SubscribeRemote()
	defer unsubscribe()

	require.NoError(t, store.AddCategory(models.Category{ID: "cat-3", Name: "Grúas"}))
	adapter.Push(models.Tree{{ID: "cat-9", Name: "Reprogramación ECU"}})

	// The push overwrites the concurrent local addition entirely.
	tree := store.Tree()
	require.Len(t, tree, 1)
	assert.Equal(t, "cat-9", tree[0].ID)
}

func TestStore_SyncData_RecoversFromOffline(t *testing.T) {
	store, adapter := createTestStore(t)
	adapter.FailPersist(errors.New("write refused"))
	require.NoError(t, store.AddCategory(models.Category{ID: "cat-3", Name: "Grúas"}))
	store.Flush()
	require.True(t, store.Offline())

	adapter.FailPersist(nil)
	err := store.SyncData(context.Background())

	require.NoError(t, err)
	assert.False(t, store.Offline())
	// Sync replaces local state with the remote truth, discarding the
	// never-persisted local category.
	assert.Len(t, store.Tree(), 2)
}

func TestStore_SyncData_FetchFailure(t *testing.T) {
	store, adapter := createTestStore(t)
	adapter.FailFetch(errors.New("network unreachable"))

	err := store.SyncData(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeFetchFailed, apperrors.CodeOf(err))
}

// ==========================
// Observers
// ==========================

func TestStore_Subscribe_NotifiedOnMutation(t *testing.T) {
	store, _ := createTestStore(t)

	var snapshots []models.Tree
	unsubscribe := store.Subscribe(func(tree models.Tree) {
		snapshots = append(snapshots, tree)
	})
	defer unsubscribe()

	require.NoError(t, store.AddCategory(models.Category{ID: "cat-3", Name: "Grúas"}))

	require.Len(t, snapshots, 1)
	assert.Len(t, snapshots[0], 3)
}

func TestStore_Subscribe_UnsubscribeStopsDelivery(t *testing.T) {
	store, _ := createTestStore(t)

	calls := 0
	unsubscribe := store.Subscribe(func(models.Tree) { calls++ })
	unsubscribe()

	require.NoError(t, store.AddCategory(models.Category{ID: "cat-3", Name: "Grúas"}))

	assert.Equal(t, 0, calls)
}

func TestStore_Subscribe_NotNotifiedOnFailedMutation(t *testing.T) {
	store, _ := createTestStore(t)

	calls := 0
	unsubscribe := store.Subscribe(func(models.Tree) { calls++ })
	defer unsubscribe()

	err := store.DeleteCategory("missing")

	require.Error(t, err)
	assert.Equal(t, 0, calls)
}
