// internal/store/catalog/export.go
package catalog

import (
	"uniautomarket/internal/common/metrics"
	"uniautomarket/internal/common/validation"
	"uniautomarket/internal/models"
	"uniautomarket/internal/storage"

	apperrors "uniautomarket/internal/common/errors"
)

// ExportDocument renders the current tree as an indented catalog
// document, suitable for backup or manual transfer between deployments.
func (s *Store) ExportDocument() ([]byte, error) {
	return storage.EncodeTreeIndented(s.Tree())
}

// ImportDocument replaces the whole tree with a previously exported
// document. The document is schema-validated before anything is touched;
// a malformed import leaves the current tree unchanged.
func (s *Store) ImportDocument(raw []byte) error {
	if err := validation.ValidateCatalogDocument(raw); err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}

	tree, err := storage.DecodeTree(raw)
	if err != nil {
		return apperrors.NewInvalidInputError(err.Error())
	}
	if tree == nil {
		tree = models.Tree{}
	}

	s.replace(tree)
	metrics.CatalogMutations.WithLabelValues("import").Inc()
	s.notifyObservers()
	s.persistAsync("import")
	return nil
}
