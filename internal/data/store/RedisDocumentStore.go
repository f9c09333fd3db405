package store

import (
	"context"
	"encoding/json"

	"chatknowledge/internal/data/redisStore"
	"chatknowledge/internal/domain/model"
	"chatknowledge/pkg/logger_i"
)

const documentIndexKey = "documents"

func documentKey(id string) string { return "doc:" + id }

type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func NewRedisDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) SaveDocument(ctx context.Context, doc model.Document) error {
	log := s.logger.With("traceId", ctx.Value("traceId"), "document Id", doc.Id)
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, documentKey(doc.Id), data); err != nil {
		log.Error("error saving document", "error:", err)
		return err
	}
	// scored by creation time so listing stays stable across status updates
	err = s.store.SortedAdd(ctx, documentIndexKey, float64(doc.CreatedAt.UnixNano()), doc.Id)
	if err != nil {
		log.Error("error indexing document", "error:", err)
	}
	return err
}

func (s *RedisDocumentStore) GetDocument(ctx context.Context, id string) (model.Document, bool) {
	var doc model.Document
	val, err := s.store.Get(ctx, documentKey(id))
	if s.store.IsNil(err) {
		return doc, false
	} else if err != nil {
		s.logger.Error("error reading document", "document Id", id, "error:", err)
		return doc, false
	}
	if err = json.Unmarshal([]byte(val), &doc); err != nil {
		s.logger.Error("corrupt document record", "document Id", id, "error:", err)
		return doc, false
	}
	return doc, true
}

func (s *RedisDocumentStore) ListDocuments(ctx context.Context) ([]model.Document, error) {
	ids, err := s.store.SortedRangeDesc(ctx, documentIndexKey)
	if err != nil {
		return nil, err
	}
	docs := make([]model.Document, 0, len(ids))
	for _, id := range ids {
		if doc, found := s.GetDocument(ctx, id); found {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *RedisDocumentStore) DeleteDocument(ctx context.Context, id string) error {
	if err := s.store.Del(ctx, documentKey(id)); err != nil {
		return err
	}
	return s.store.SortedRemove(ctx, documentIndexKey, id)
}
