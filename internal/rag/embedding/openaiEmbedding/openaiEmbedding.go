package openaiEmbedding

import (
	"context"
	"fmt"

	"chatknowledge/internal/rag/embedding"
	"chatknowledge/pkg/logger_i"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type client struct {
	api       openai.Client
	model     string
	dimension int32
	logger    *logger_i.Logger
}

// NewClient builds the one long-lived OpenAI embedding handle shared by all
// requests.
func NewClient(apikey string, modelName string, dimension int32) (embedding.Embedder, error) {
	if apikey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	logger := logger_i.NewLogger("openai_embedding")
	logger.Info("OpenAI Embedding client created", "model", modelName)
	return &client{
		api:       openai.NewClient(option.WithAPIKey(apikey)),
		model:     modelName,
		dimension: dimension,
		logger:    logger,
	}, nil
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	return c.embed(ctx, chunks)
}

func (c *client) embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:      openai.EmbeddingModel(c.model),
		Dimensions: openai.Int(int64(c.dimension)),
	})
	if err != nil {
		c.logger.Error("Error getting embeddings from OpenAI", "error", err.Error())
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// the API reports which input each vector belongs to; place by that
	// index rather than trusting slice order
	vectors := make([][]float32, len(resp.Data))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= int64(len(vectors)) {
			return nil, fmt.Errorf("embedding index %d out of range for %d inputs", d.Index, len(texts))
		}
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}
