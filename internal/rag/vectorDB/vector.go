package vectorDB

import (
	"context"
	"fmt"

	"chatknowledge/internal/domain/model"
)

// Chunk is what gets indexed: a word window of one document's text.
type Chunk struct {
	DocumentId string
	Index      int
	Text       string
}

// Key is the external identity of an indexed chunk.
func (c Chunk) Key() string {
	return fmt.Sprintf("%s_%d", c.DocumentId, c.Index)
}

type Index interface {
	EnsureCollection(ctx context.Context) error
	// UpsertBatch writes chunk vectors, text and metadata as one logical
	// batch; a partial failure must surface as an error.
	UpsertBatch(ctx context.Context, chunks []Chunk, vectors [][]float32) error
	// Search returns up to topK hits in the index's similarity order.
	// documentScope, when non-empty, restricts hits to one document.
	Search(ctx context.Context, vector []float32, topK int, documentScope string) ([]model.RetrievedChunk, error)
	// DeleteByDocument removes every chunk owned by the document.
	DeleteByDocument(ctx context.Context, documentId string) error
	CountByDocument(ctx context.Context, documentId string) (uint64, error)
}
