// internal/storage/file.go
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"uniautomarket/internal/models"
)

// File stores the catalog document as a JSON file on disk. It is the
// offline fallback: no push channel, single writer assumed.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) FetchAll(ctx context.Context) (models.Tree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return DecodeTree(raw)
}

func (f *File) Persist(ctx context.Context, tree models.Tree) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := EncodeTreeIndented(tree)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}

	// Write-then-rename so a crash never leaves a torn document.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}
	return nil
}

func (f *File) Subscribe(onChange func(models.Tree)) func() {
	return func() {}
}

func (f *File) Close() error { return nil }
