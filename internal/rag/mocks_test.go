package rag_test

import (
	"context"
	"fmt"
	"io"
	"strings"

	"chatknowledge/internal/domain/model"
	"chatknowledge/internal/rag/vectorDB"
)

// MockIndex implements vectorDB.Index
type MockIndex struct {
	// Control fields to simulate different behaviors
	OnUpsertBatch      func(ctx context.Context, chunks []vectorDB.Chunk, vectors [][]float32) error
	OnSearch           func(ctx context.Context, vector []float32, topK int, documentScope string) ([]model.RetrievedChunk, error)
	OnDeleteByDocument func(ctx context.Context, documentId string) error
	OnCountByDocument  func(ctx context.Context, documentId string) (uint64, error)

	Upserted []vectorDB.Chunk
	Deleted  []string
}

func (m *MockIndex) EnsureCollection(ctx context.Context) error { return nil }

func (m *MockIndex) UpsertBatch(ctx context.Context, chunks []vectorDB.Chunk, vectors [][]float32) error {
	if m.OnUpsertBatch != nil {
		return m.OnUpsertBatch(ctx, chunks, vectors)
	}
	m.Upserted = append(m.Upserted, chunks...)
	return nil
}

func (m *MockIndex) Search(ctx context.Context, vector []float32, topK int, documentScope string) ([]model.RetrievedChunk, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, vector, topK, documentScope)
	}
	return []model.RetrievedChunk{{DocumentId: "doc", ChunkIndex: 0, Text: "default context", Score: 0.9}}, nil
}

func (m *MockIndex) DeleteByDocument(ctx context.Context, documentId string) error {
	m.Deleted = append(m.Deleted, documentId)
	if m.OnDeleteByDocument != nil {
		return m.OnDeleteByDocument(ctx, documentId)
	}
	return nil
}

func (m *MockIndex) CountByDocument(ctx context.Context, documentId string) (uint64, error) {
	if m.OnCountByDocument != nil {
		return m.OnCountByDocument(ctx, documentId)
	}
	return uint64(len(m.Upserted)), nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1, 0.2}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2}
	}
	return vectors, nil
}

type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "generated answer", nil
}

// MockDocumentStore is a map-backed store with overridable saves.
type MockDocumentStore struct {
	OnSaveDocument func(ctx context.Context, doc model.Document) error

	docs map[string]model.Document
}

func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{docs: map[string]model.Document{}}
}

func (m *MockDocumentStore) SaveDocument(ctx context.Context, doc model.Document) error {
	if m.OnSaveDocument != nil {
		return m.OnSaveDocument(ctx, doc)
	}
	m.docs[doc.Id] = doc
	return nil
}

func (m *MockDocumentStore) GetDocument(ctx context.Context, id string) (model.Document, bool) {
	doc, found := m.docs[id]
	return doc, found
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context) ([]model.Document, error) {
	docs := make([]model.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (m *MockDocumentStore) DeleteDocument(ctx context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

// MockBlobs keeps uploads in memory and records deletions.
type MockBlobs struct {
	OnSave func(name string, src io.Reader) (string, error)

	Files   map[string]string
	Deleted []string
}

func NewMockBlobs() *MockBlobs {
	return &MockBlobs{Files: map[string]string{}}
}

func (m *MockBlobs) Accepts(mediaType string) bool {
	return mediaType == "text/plain" || mediaType == "application/pdf"
}

func (m *MockBlobs) Save(name string, src io.Reader) (string, error) {
	if m.OnSave != nil {
		return m.OnSave(name, src)
	}
	var b strings.Builder
	if _, err := io.Copy(&b, src); err != nil {
		return "", err
	}
	path := fmt.Sprintf("mem://%s", name)
	m.Files[path] = b.String()
	return path, nil
}

func (m *MockBlobs) Delete(path string) error {
	m.Deleted = append(m.Deleted, path)
	delete(m.Files, path)
	return nil
}
