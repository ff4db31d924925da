// Package store owns the single durable document backing all three
// collections. Every mutation is a whole-document read-modify-write
// transaction serialized through one writer lock.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alfurqan/prayertrack-backend/internal/model"
)

// ErrNoChange may be returned by an Update callback to commit nothing:
// the document is left as-is on disk and Update returns nil.
var ErrNoChange = errors.New("store: no change")

// Store persists the document as one JSON file. Saves go through a temp
// file in the same directory followed by a rename, so a failed save
// never leaves a torn document behind.
type Store struct {
	path string
	mu   sync.RWMutex
	log  zerolog.Logger
}

// New creates a Store backed by the file at path. The file is created
// lazily on first load.
func New(path string, log zerolog.Logger) *Store {
	return &Store{
		path: path,
		log:  log.With().Str("component", "store").Logger(),
	}
}

// Load returns the current durable document. A missing file is
// initialized to the empty document and persisted before returning, so
// "missing" is never observable as distinct from "empty".
func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Snapshot returns a freshly loaded read-only view without taking the
// writer lock. It may be slightly stale relative to an in-flight Update.
func (s *Store) Snapshot(ctx context.Context) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		// Not yet initialized; reads see the empty document.
		return model.NewDocument(), nil
	}
	return doc, err
}

// Update runs one load→mutate→save transaction under the writer lock.
// If fn returns an error the document is not saved and the error is
// returned; ErrNoChange skips the save and returns nil.
func (s *Store) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		if errors.Is(err, ErrNoChange) {
			return nil
		}
		return err
	}
	return s.save(doc)
}

// load reads the document, initializing the file when absent.
// Callers must hold the writer lock.
func (s *Store) load() (*model.Document, error) {
	doc, err := s.read()
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	doc = model.NewDocument()
	if err := s.save(doc); err != nil {
		return nil, err
	}
	s.log.Info().Str("path", s.path).Msg("Initialized empty document")
	return doc, nil
}

func (s *Store) read() (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("read document: %w", err)
	}

	doc := model.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// save writes doc to a sibling temp file and renames it over the
// target. Rename is atomic on POSIX filesystems, so a concurrent read
// sees either the old or the new document, never a mix.
func (s *Store) save(doc *model.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".document-*.json")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
