package ollamaLLM

import (
	"context"
	"fmt"
	"strings"

	"chatknowledge/internal/rag/ragerr"
	"chatknowledge/pkg/logger_i"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Client is the local-model variant of the gateway: a single user-role
// message against a locally reachable Ollama server.
type Client struct {
	llm    *ollama.LLM
	logger *logger_i.Logger
}

func New(serverURL string, modelName string) (*Client, error) {
	opts := []ollama.Option{ollama.WithModel(modelName)}
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}
	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	logger := logger_i.NewLogger("llm_ollama")
	logger.Info("Ollama client created", "model", modelName)
	return &Client{llm: llm, logger: logger}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: ollama: %v", ragerr.ErrGenerationFailure, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%w: ollama returned empty text", ragerr.ErrGenerationFailure)
	}
	return answer, nil
}
