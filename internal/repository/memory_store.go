package repository

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

// MemoryStore is the in-memory DocumentStore used by tests and as the
// dev fallback when the configured backend is unreachable. Documents are
// deep-copied on both writes and reads so callers never share state with
// the store.
type MemoryStore struct {
	mu    sync.RWMutex
	colls map[string][]domain.Document // collection -> documents in insertion order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		colls: map[string][]domain.Document{},
	}
}

func (s *MemoryStore) FindAll(_ context.Context, collection string) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.colls[collection]
	out := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Clone())
	}
	return out, nil
}

func (s *MemoryStore) FindOne(_ context.Context, collection string, filter domain.Document) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.colls[collection] {
		if matches(doc, filter) {
			return doc.Clone(), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) InsertOne(_ context.Context, collection string, doc domain.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := doc.Clone()
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
		stored["_id"] = id
	}
	s.colls[collection] = append(s.colls[collection], stored)
	return id, nil
}

func (s *MemoryStore) DeleteAll(_ context.Context, collection string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.colls[collection]))
	delete(s.colls, collection)
	return n, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }

// matches reports whether every filter field is present in doc with an
// equal value. Filters are tiny untyped maps, so DeepEqual keeps this
// honest for non-string values too.
func matches(doc, filter domain.Document) bool {
	for k, want := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
