package rag

import (
	"context"
	"fmt"
	"time"

	"chatknowledge/internal/config"
	"chatknowledge/internal/domain/model"
	"chatknowledge/internal/metrics"
)

// Search validation failures are caller errors: the engine itself holds no
// state and never invents defaults for them.
func (s *service) Search(ctx context.Context, queryText string, topK int, documentScope string) ([]model.RetrievedChunk, error) {
	if queryText == "" {
		return nil, fmt.Errorf("query text is required")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("top_k must be positive, got %d", topK)
	}

	embedCtx, cancelEmbed := context.WithTimeout(ctx, config.EmbeddingCallTimeout)
	defer cancelEmbed()
	start := time.Now()
	queryVector, err := s.embedder.GetEmbedding(embedCtx, queryText)
	metrics.CaptureExecutionMetrics("query_embedding", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	searchCtx, cancelSearch := context.WithTimeout(ctx, config.VectorCallTimeout)
	defer cancelSearch()
	start = time.Now()
	hits, err := s.index.Search(searchCtx, queryVector, topK, documentScope)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return hits, nil
}
