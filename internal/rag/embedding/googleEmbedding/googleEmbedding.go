package googleEmbedding

import (
	"context"
	"fmt"
	"time"

	"chatknowledge/internal/rag/embedding"
	"chatknowledge/pkg/logger_i"

	"google.golang.org/genai"
)

type client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	logger    *logger_i.Logger
}

// NewClient builds the one long-lived Gemini embedding handle shared by all
// requests. Read-only after construction.
func NewClient(ctx context.Context, modelName string, apikey string, dimension int32) (embedding.Embedder, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	logger := logger_i.NewLogger("google_embedding")
	logger.Info("Google Embedding client created", "model", modelName)
	return &client{
		genAi:     c,
		model:     modelName,
		dimension: dimension,
		logger:    logger,
	}, nil
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(query),
		&genai.EmbedContentConfig{OutputDimensionality: &c.dimension, TaskType: "RETRIEVAL_QUERY"})
	if err != nil {
		c.logger.Error("Error getting query embedding from Google", "error", err.Error())
		return nil, err
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	res, err := c.doCall(ctx, getContent(chunks))
	if err != nil || res == nil {
		if doRetry(err) {
			c.logger.Debug("Rate limited, retrying in 5 seconds")
			time.Sleep(5 * time.Second)
			res, err = c.doCall(ctx, getContent(chunks))
		}
		if err != nil {
			c.logger.Error("Error getting embeddings from Google", "error", err.Error())
			return nil, err
		}
	}

	embeddingResults := make([][]float32, 0, len(res.Embeddings))
	for _, r := range res.Embeddings {
		embeddingResults = append(embeddingResults, r.Values)
	}
	return embeddingResults, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content,
		&genai.EmbedContentConfig{OutputDimensionality: &c.dimension, TaskType: "RETRIEVAL_DOCUMENT"})
}
