// Package store persists output settings on disk, one JSON file per
// layout fingerprint.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/frudas24/swayrestore/internal/layout"
)

// ErrNotFound reports that no layout has been saved under a key.
var ErrNotFound = errors.New("no saved layout")

// Repository reads and writes output collections under a root
// directory. Files are not locked; concurrent invocations race
// (last writer wins on save, and a save racing a load can expose a
// partial write).
type Repository struct {
	root string
}

// New returns a repository rooted at the given directory.
func New(root string) Repository {
	return Repository{root: root}
}

// Save writes the outputs under the key, creating the root directory
// as needed.
func (r Repository) Save(key string, outputs []layout.Output) error {
	if err := os.MkdirAll(r.root, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(r.path(key), data, 0o600); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}

// Load reads the outputs saved under the key. A missing file returns
// ErrNotFound.
func (r Repository) Load(key string) ([]layout.Output, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w for %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var outputs []layout.Output
	if err := json.Unmarshal(data, &outputs); err != nil {
		return nil, fmt.Errorf("decode saved layout: %w", err)
	}
	return outputs, nil
}

// path returns the file backing a key.
func (r Repository) path(key string) string {
	return filepath.Join(r.root, key)
}
