package openaiLLM

import (
	"context"
	"fmt"
	"strings"

	"chatknowledge/internal/rag/ragerr"
	"chatknowledge/pkg/logger_i"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemInstruction = "You are an AI assistant that answers strictly from the provided document context."

// Client is the hosted-API variant of the gateway.
type Client struct {
	api    openai.Client
	model  string
	logger *logger_i.Logger
}

func New(apikey string, modelName string) (*Client, error) {
	if apikey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	logger := logger_i.NewLogger("llm_openai")
	logger.Info("OpenAI client created", "model", modelName)
	return &Client{
		api:    openai.NewClient(option.WithAPIKey(apikey)),
		model:  modelName,
		logger: logger,
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemInstruction),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", ragerr.ErrGenerationFailure, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ragerr.ErrGenerationFailure)
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("%w: openai returned empty text", ragerr.ErrGenerationFailure)
	}
	return answer, nil
}
