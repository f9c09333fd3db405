package llm

import (
	"context"
	"fmt"

	"chatknowledge/internal/config"
	"chatknowledge/internal/customHttpClient"
	"chatknowledge/internal/rag/llm/customLLM"
	"chatknowledge/internal/rag/llm/ollamaLLM"
	"chatknowledge/internal/rag/llm/openaiLLM"
)

// Provider is the single capability every backend offers. Generate returns
// non-empty text or an error wrapping ragerr.ErrGenerationFailure; callers
// never see an empty string as success.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New selects the backend once at startup. Nothing downstream ever branches
// on the provider name again.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.LLMProvider {
	case config.LLMProviderOpenAI:
		return openaiLLM.New(cfg.LLMAPIKey, cfg.LLMModel)
	case config.LLMProviderOllama:
		return ollamaLLM.New(cfg.LLMEndpoint, cfg.LLMModel)
	case config.LLMProviderCustom:
		return customLLM.New(customLLM.Config{
			Endpoint: cfg.LLMEndpoint,
			Token:    cfg.LLMToken,
			Model:    cfg.LLMModel,
			Timeout:  cfg.LLMTimeout,
			Client:   customHttpClient.New(cfg.LLMTimeout),
		})
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
}
