// Package storage defines the remote store adapter contract and the
// adapters that satisfy it. The catalog store only depends on the
// RemoteStore interface; which technology backs it is a deployment
// decision.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"uniautomarket/internal/models"
)

// RemoteStore is the system-of-record boundary. FetchAll returning a nil
// tree with a nil error signals "not yet seeded". Persist always writes
// the whole tree snapshot; there are no partial-document remote writes.
type RemoteStore interface {
	FetchAll(ctx context.Context) (models.Tree, error)
	Persist(ctx context.Context, tree models.Tree) error

	// Subscribe registers a push callback and returns an unsubscribe
	// closure. Adapters without a push channel return a no-op.
	Subscribe(onChange func(models.Tree)) (unsubscribe func())

	Close() error
}

// document is the whole-tree wire format shared by every adapter. It must
// round-trip every model field losslessly, including nested sequences.
type document struct {
	Categories models.Tree `json:"categories"`
}

// EncodeTree serializes a tree into the shared document format.
func EncodeTree(tree models.Tree) ([]byte, error) {
	raw, err := json.Marshal(document{Categories: tree})
	if err != nil {
		return nil, fmt.Errorf("encode catalog document: %w", err)
	}
	return raw, nil
}

// EncodeTreeIndented is EncodeTree for human-readable exports.
func EncodeTreeIndented(tree models.Tree) ([]byte, error) {
	raw, err := json.MarshalIndent(document{Categories: tree}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog document: %w", err)
	}
	return raw, nil
}

// DecodeTree parses the shared document format.
func DecodeTree(raw []byte) (models.Tree, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog document: %w", err)
	}
	return doc.Categories, nil
}
