package embedding

import "context"

// Embedder maps text to fixed-dimension vectors. The provider is chosen once
// at startup and fixed for the life of the index: vectors from different
// providers live in different spaces and must never be mixed.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}
