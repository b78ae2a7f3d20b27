// internal/storage/adapter_test.go
package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniautomarket/internal/models"
)

func testTree() models.Tree {
	return models.Tree{
		{
			ID:   "1",
			Name: "Desarmadurías",
			Icon: "Car",
			Businesses: []models.Business{
				{
					ID:         "biz-1",
					CategoryID: "1",
					Name:       "Desarmaduría El Rápido",
					Rating:     4.5,
					Visits:     12,
					Products: []models.Product{
						{ID: "prod-1", Name: "Alternador", Price: 45000, Available: true},
					},
					Services: []models.Service{
						{ID: "svc-1", Name: "Retiro a domicilio", PriceFrom: 10000},
					},
				},
			},
		},
	}
}

func TestEncodeDecodeTree_RoundTrip(t *testing.T) {
	tree := testTree()

	raw, err := EncodeTree(tree)
	require.NoError(t, err)
	decoded, err := DecodeTree(raw)
	require.NoError(t, err)

	assert.Equal(t, tree, decoded)
}

func TestDecodeTree_Malformed(t *testing.T) {
	_, err := DecodeTree([]byte("{not json"))

	assert.Error(t, err)
}

func TestMemory_FetchBeforeSeedSignalsUnseeded(t *testing.T) {
	m := NewMemory()

	tree, err := m.FetchAll(context.Background())

	require.NoError(t, err)
	assert.Nil(t, tree)
}

func TestMemory_PersistThenFetch(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Persist(context.Background(), testTree()))

	tree, err := m.FetchAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testTree(), tree)
}

func TestMemory_PushReachesSubscribers(t *testing.T) {
	m := NewMemory()
	var received models.Tree
	unsubscribe := m.Subscribe(func(tree models.Tree) { received = tree })

	m.Push(testTree())
	assert.Equal(t, testTree(), received)

	unsubscribe()
	received = nil
	m.Push(testTree())
	assert.Nil(t, received)
}
