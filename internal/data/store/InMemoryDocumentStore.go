package store

import (
	"context"
	"sort"
	"sync"

	"chatknowledge/internal/domain/model"
	"chatknowledge/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem Store")

// InMemoryDocumentStore is the fallback when Redis is offline.
type InMemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]model.Document
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		docs: make(map[string]model.Document),
	}
}

func (s *InMemoryDocumentStore) SaveDocument(ctx context.Context, doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Id] = doc
	inMemLogger.Debug("Saved document to store", "document Id", doc.Id)
	return nil
}

func (s *InMemoryDocumentStore) GetDocument(ctx context.Context, id string) (model.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, found := s.docs[id]
	return doc, found
}

func (s *InMemoryDocumentStore) ListDocuments(ctx context.Context) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]model.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *InMemoryDocumentStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	return nil
}
