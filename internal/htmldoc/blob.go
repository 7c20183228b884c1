// This file implements the external byte store used by binary
// write-through. Link hrefs that are not fragment references resolve to
// files relative to the store document's directory.
package htmldoc

import (
	"fmt"
	"os"
	"path/filepath"
)

// blobStore fetches and writes externally stored binary payloads.
type blobStore struct {
	root string // Directory of the backing document.
}

func newBlobStore(root string) *blobStore {
	return &blobStore{root: root}
}

// resolve maps a link reference to a path under the store directory.
// Absolute references and references escaping the store directory are
// rejected.
func (b *blobStore) resolve(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty binary reference")
	}
	rel := filepath.FromSlash(ref)
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("binary reference %q escapes the store directory", ref)
	}
	return filepath.Join(b.root, rel), nil
}

// fetch reads the bytes behind a link reference.
func (b *blobStore) fetch(ref string) ([]byte, error) {
	path, err := b.resolve(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fetching binary %q: %w", ref, err)
	}
	return data, nil
}

// store writes bytes through to a link reference's location.
func (b *blobStore) store(ref string, data []byte) error {
	path, err := b.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storing binary %q: %w", ref, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storing binary %q: %w", ref, err)
	}
	return nil
}
