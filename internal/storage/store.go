package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"github.com/google/uuid"
)

// Store is the publication store used by the importer: the SQLite index
// answers lookups and takes writes, Flush persists them to JSONL.
type Store struct {
	*DB
	jsonlPath string
	now       func() time.Time
	newID     func() string

	mu    sync.Mutex
	dirty bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source for created_at and modified_at.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the generator for new publication identifiers.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		s.newID = gen
	}
}

// OpenStore opens the index at dbPath. A newly created index is populated
// from jsonlPath; an existing one is used as is.
func OpenStore(jsonlPath, dbPath string, opts ...StoreOption) (*Store, error) {
	_, statErr := os.Stat(dbPath)
	fresh := os.IsNotExist(statErr)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	db, err := OpenDB(dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{
		DB:        db,
		jsonlPath: jsonlPath,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	if fresh {
		if _, err := db.RebuildFromJSONL(jsonlPath); err != nil {
			db.Close()
			return nil, fmt.Errorf("populating index: %w", err)
		}
	}
	return s, nil
}

// Rebuild discards the index and reloads it from the JSONL file.
func (s *Store) Rebuild() (int, error) {
	return s.RebuildFromJSONL(s.jsonlPath)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// Create stores a new publication. A missing identifier is assigned, a
// missing status defaults to DRAFT and a missing creation time is set to
// now. The stored publication is returned.
func (s *Store) Create(ctx context.Context, pub publication.Publication) (publication.Publication, error) {
	if pub.Identifier == "" {
		pub.Identifier = s.newID()
	}
	if pub.Status == "" {
		pub.Status = publication.StatusDraft
	}
	ts := s.timestamp()
	if pub.CreatedAt == "" {
		pub.CreatedAt = ts
	}
	pub.ModifiedAt = ts

	if err := s.Insert(ctx, pub); err != nil {
		return publication.Publication{}, err
	}
	s.markDirty()
	return pub, nil
}

// Update writes back a merged publication.
func (s *Store) Update(ctx context.Context, pub publication.Publication) (publication.Publication, error) {
	pub.ModifiedAt = s.timestamp()
	if err := s.Replace(ctx, pub); err != nil {
		return publication.Publication{}, err
	}
	s.markDirty()
	return pub, nil
}

func (s *Store) markDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Flush writes the index back to the JSONL file if anything changed.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	pubs, err := s.ListAll(ctx)
	if err != nil {
		return err
	}
	if err := WriteAll(s.jsonlPath, pubs); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
