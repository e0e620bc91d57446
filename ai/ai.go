// Package ai provides LLM chat clients for the place-ranking collaborator.
// Two providers are supported: local inference (Ollama or any
// OpenAI-compatible server) and OpenRouter.ai.
package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/config"
)

// ChatRequest is a high-level request to the LLM
type ChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // Override default temperature
	MaxTokens    *int     // Override default max tokens
	Model        string   // Override default model
}

// ChatResponse is the LLM response
type ChatResponse struct {
	Content string
	Model   string
}

// Client is the interface all LLM providers implement
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// NewClientFromConfig selects a provider based on configuration.
// Priority: local inference (if enabled) → OpenRouter.
func NewClientFromConfig(cfg *config.Config, logger *zap.SugaredLogger) Client {
	if cfg.LocalInference.Enabled {
		return NewLocalClient(LocalConfig{
			BaseURL:        cfg.LocalInference.BaseURL,
			Model:          cfg.LocalInference.Model,
			TimeoutSeconds: cfg.LocalInference.TimeoutSeconds,
			Logger:         logger,
		})
	}
	return NewOpenRouterClient(OpenRouterConfig{
		APIKey:      cfg.OpenRouter.APIKey,
		Model:       cfg.OpenRouter.Model,
		Temperature: cfg.OpenRouter.Temperature,
		MaxTokens:   cfg.OpenRouter.MaxTokens,
		Logger:      logger,
	})
}

// Verify interfaces are implemented
var _ Client = (*LocalClient)(nil)
var _ Client = (*OpenRouterClient)(nil)
