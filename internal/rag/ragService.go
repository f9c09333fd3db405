package rag

import (
	"context"
	"io"

	"chatknowledge/internal/domain/model"
	"chatknowledge/internal/rag/chunker"
	"chatknowledge/internal/rag/embedding"
	"chatknowledge/internal/rag/extract"
	"chatknowledge/internal/rag/llm"
	"chatknowledge/internal/rag/vectorDB"
	"chatknowledge/internal/syncutil"
	"chatknowledge/pkg/logger_i"
)

// BlobStorage is the narrow contract the pipeline needs from upload storage.
type BlobStorage interface {
	Accepts(mediaType string) bool
	Save(name string, src io.Reader) (string, error)
	Delete(path string) error
}

// Service is the public contract of the ingestion and retrieval core.
// Handlers and the MCP surface only ever see this interface; the private
// struct below keeps the vector index, embedder and LLM handles hidden.
type Service interface {
	CreateDocument(ctx context.Context, filename string, mediaType string, src io.Reader) (model.Document, error)
	ExtractDocument(ctx context.Context, documentId string) (model.Document, error)
	// EmbedDocument clears any prior vectors for the document, then chunks,
	// embeds and indexes its text. Covers both first embed and re-embed.
	EmbedDocument(ctx context.Context, documentId string) (model.Document, int, error)
	DeleteDocument(ctx context.Context, documentId string) error
	ListDocuments(ctx context.Context) ([]model.Document, error)
	InspectDocument(ctx context.Context, documentId string) (model.Document, uint64, error)

	// Search embeds the query with the index's own provider and returns up
	// to topK hits. Zero matches is a success with an empty list.
	Search(ctx context.Context, queryText string, topK int, documentScope string) ([]model.RetrievedChunk, error)

	// Generate proxies the configured language-model backend.
	Generate(ctx context.Context, prompt string) (string, error)
}

type service struct {
	documents model.DocumentStore
	blobs     BlobStorage
	extractor *extract.Extractor
	chunks    *chunker.Chunker
	embedder  embedding.Embedder
	index     vectorDB.Index
	provider  llm.Provider
	docLocks  *syncutil.KeyedMutex
	logger    *logger_i.Logger
}

func NewService(
	documents model.DocumentStore,
	blobs BlobStorage,
	extractor *extract.Extractor,
	chunks *chunker.Chunker,
	embedder embedding.Embedder,
	index vectorDB.Index,
	provider llm.Provider,
) Service {
	return &service{
		documents: documents,
		blobs:     blobs,
		extractor: extractor,
		chunks:    chunks,
		embedder:  embedder,
		index:     index,
		provider:  provider,
		docLocks:  syncutil.NewKeyedMutex(),
		logger:    logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) Generate(ctx context.Context, prompt string) (string, error) {
	return s.provider.Generate(ctx, prompt)
}
