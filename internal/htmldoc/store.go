// This file implements the Store lifecycle and public surface: attach,
// detach, load, save, delete, identifier minting, metadata access, and
// atomic commit of the whole document.
package htmldoc

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/beevik/etree"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Store is one open store instance over a single backing document. All
// mutable state — the document tree, the identity map, the per-table
// identifier counters — is scoped to the instance; the mutex serializes
// the public surface, but the store assumes one logical writer.
type Store struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	schema   types.Schema
	logger   *slog.Logger

	doc     *etree.Document
	cache   *recordCache
	blobs   *blobStore
	pending map[string]bool // Identifiers minted via ReferenceID without a row yet.
}

// NewStore creates a store for the given schema. The store is not
// attached; call Attach with a Config to open a backing document. A nil
// logger discards warnings.
func NewStore(schema types.Schema, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{schema: schema, logger: logger}
}

// Attach opens the backing document. A nonexistent file is not an error;
// it means start empty. Any other read failure propagates.
func (s *Store) Attach(cfg types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.Path)
	switch {
	case err == nil:
		doc, perr := parseDocument(data)
		if perr != nil {
			return perr
		}
		s.doc = doc
	case os.IsNotExist(err):
		s.doc = newSkeleton()
	default:
		return fmt.Errorf("reading store document: %w", err)
	}

	s.config = cfg
	s.cache = newRecordCache()
	s.blobs = newBlobStore(filepath.Dir(cfg.Path))
	s.pending = make(map[string]bool)
	s.attached = true
	return nil
}

// Detach discards the in-memory document and identity map. Detach is
// idempotent; it does not commit pending changes.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attached = false
	s.doc = nil
	s.cache = nil
	s.blobs = nil
	s.pending = nil
	return nil
}

// Load reconstructs the full record graph and the metadata dictionary
// from the document. Records converge through the identity map: repeated
// loads on one attached store return the same instances.
func (s *Store) Load() ([]*types.Record, types.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, nil, types.ErrDetached
	}
	return s.load()
}

// Save writes the given new or changed records into the document. New
// instances get rows and identifiers; link targets not yet persisted get
// rows too, so every link resolves on the next load.
func (s *Store) Save(records ...*types.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrDetached
	}
	for _, rec := range records {
		if rec == nil {
			return types.ErrInvalidData
		}
		if err := s.saveRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the row for id from its table. Returns ErrNotFound for
// an unknown identifier.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrDetached
	}
	if id == "" {
		return types.ErrInvalidID
	}
	return s.deleteRecord(id)
}

// ReferenceID mints the permanent reference identifier for a new
// instance, reserving it against the table's counter. The row itself is
// created on the next Save that reaches the record. Returns the existing
// identifier unchanged for an already-identified record.
func (s *Store) ReferenceID(rec *types.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return "", types.ErrDetached
	}
	if rec.ID != "" {
		return rec.ID, nil
	}
	ent := s.schema.Entity(rec.Entity)
	if ent == nil {
		return "", fmt.Errorf("%w: %q", types.ErrUnknownEntity, rec.Entity)
	}
	id, err := s.nextIdentifier(ent, s.tableFor(ent))
	if err != nil {
		return "", err
	}
	rec.ID = id
	s.pending[id] = true
	s.cache.put(rec)
	return id, nil
}

// Metadata returns the store-level metadata dictionary.
func (s *Store) Metadata() (types.Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, types.ErrDetached
	}
	return s.readMetadata(), nil
}

// SetMetadata writes one metadata key into the document's head section.
// A nil value removes the key.
func (s *Store) SetMetadata(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrDetached
	}
	if value == nil {
		s.removeMetadataTag(key)
		return nil
	}
	return s.writeMetadataTag(key, value)
}

// Commit serializes the whole document and atomically replaces the
// backing file (temp file, then rename), so a crash mid-write never
// leaves a half-written document behind.
func (s *Store) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrDetached
	}

	s.doc.Indent(2)
	data, err := s.doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializing store document: %w", err)
	}

	dir := filepath.Dir(s.config.Path)
	tmp, err := os.CreateTemp(dir, ".larder-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing store document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing store document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing store document: %w", err)
	}
	if err := os.Rename(tmpName, s.config.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing store document: %w", err)
	}
	return nil
}
