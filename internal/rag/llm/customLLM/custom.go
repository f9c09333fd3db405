// Package customLLM posts to a bespoke OpenAI-shaped endpoint behind a
// bearer token. The custom-endpoint variant of the gateway.
package customLLM

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chatknowledge/internal/rag/ragerr"
	"chatknowledge/pkg/logger_i"
)

const developerInstruction = "You are an AI assistant that follows instructions extremely well."

// Fixed seed keeps sampling deterministic across identical prompts.
const samplingSeed = 42

type Config struct {
	Endpoint string
	Token    string
	Model    string
	Timeout  time.Duration
	Client   *http.Client
}

type Client struct {
	cfg    Config
	logger *logger_i.Logger
}

func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("custom llm endpoint is required")
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
	logger := logger_i.NewLogger("llm_custom")
	logger.Info("Custom LLM client created", "model", cfg.Model)
	return &Client{cfg: cfg, logger: logger}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Seed     int       `json:"seed"`
	N        int       `json:"n"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := request{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "developer", Content: developerInstruction},
			{Role: "user", Content: prompt},
		},
		Seed: samplingSeed,
		N:    1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", ragerr.ErrGenerationFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ragerr.ErrGenerationFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.cfg.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: custom endpoint: %v", ragerr.ErrGenerationFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: custom endpoint returned %d", ragerr.ErrGenerationFailure, resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ragerr.ErrGenerationFailure, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: custom endpoint returned no choices", ragerr.ErrGenerationFailure)
	}
	answer := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("%w: custom endpoint returned empty text", ragerr.ErrGenerationFailure)
	}
	return answer, nil
}
