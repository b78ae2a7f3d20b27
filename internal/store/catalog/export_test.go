// internal/store/catalog/export_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/storage"

	apperrors "uniautomarket/internal/common/errors"
)

func TestStore_ExportImport_RoundTrip(t *testing.T) {
	source, _ := createTestStore(t)
	doc, err := source.ExportDocument()
	require.NoError(t, err)

	target := New(storage.NewMemory(), logger.NewTestLogger(t))
	require.NoError(t, target.ImportDocument(doc))
	target.Flush()

	assert.Equal(t, source.Tree(), target.Tree())
}

func TestStore_ImportDocument_RejectsMalformedDocument(t *testing.T) {
	store, _ := createTestStore(t)
	before := store.Tree()

	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "not json", raw: []byte("{nope")},
		{name: "missing categories key", raw: []byte(`{"items": []}`)},
		{name: "category without id", raw: []byte(`{"categories": [{"name": "Grúas"}]}`)},
		{name: "rating out of range", raw: []byte(`{"categories": [{"id": "1", "name": "Grúas", "businesses": [{"id": "b1", "name": "X", "rating": 9}]}]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.ImportDocument(tt.raw)

			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
			// A rejected import never touches the tree.
			assert.Equal(t, before, store.Tree())
		})
	}
}

func TestDefaultCategories(t *testing.T) {
	tree := DefaultCategories()

	require.Len(t, tree, 9)
	names := make([]string, 0, len(tree))
	for _, c := range tree {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Icon)
		assert.Empty(t, c.Businesses)
	}
	assert.Contains(t, names, "Desarmadurías")
	assert.Contains(t, names, "Talleres Mecánicos")
	assert.Contains(t, names, "Reprogramación ECU")
}
