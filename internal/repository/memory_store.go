package repository

import (
	"context"
	"sync"

	"codebind/internal/model"
)

// MemoryStore is an in-memory DocumentStore. It keeps its own copy of the
// document so callers cannot mutate stored state by accident.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *model.Document
}

// NewMemoryStore creates a memory store holding doc. A nil doc behaves like
// an absent document until the first Save.
func NewMemoryStore(doc *model.Document) *MemoryStore {
	s := &MemoryStore{}
	if doc != nil {
		s.doc = doc.Clone()
		s.doc.EnsureDefaults()
	}
	return s
}

// Load returns a copy of the stored document.
func (s *MemoryStore) Load(ctx context.Context) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil, ErrDocumentNotFound
	}
	return s.doc.Clone(), nil
}

// Save replaces the stored document with a copy of doc.
func (s *MemoryStore) Save(ctx context.Context, doc *model.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc.Clone()
	s.doc.EnsureDefaults()
	return nil
}

// Snapshot returns a copy of the stored document, or nil when nothing is stored.
func (s *MemoryStore) Snapshot() *model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil
	}
	return s.doc.Clone()
}
