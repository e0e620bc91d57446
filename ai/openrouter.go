package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/internal/httpclient"
)

const (
	// DefaultOpenRouterModel is the fallback model when none is configured.
	// Should match the default in config/defaults.go for consistency.
	DefaultOpenRouterModel = "openai/gpt-4o-mini"

	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// OpenRouterClient is an OpenRouter.ai API client
type OpenRouterClient struct {
	apiKey     string
	baseURL    string
	httpClient *httpclient.SaferClient
	config     OpenRouterConfig
	logger     *zap.SugaredLogger
}

// OpenRouterConfig configures an OpenRouterClient
type OpenRouterConfig struct {
	APIKey      string
	Model       string
	Temperature *float64 // nil = use default (0.2)
	MaxTokens   *int     // nil = use default (1000)
	Logger      *zap.SugaredLogger
}

// NewOpenRouterClient creates a new OpenRouter.ai client with defaults applied
func NewOpenRouterClient(cfg OpenRouterConfig) *OpenRouterClient {
	if cfg.Model == "" {
		cfg.Model = DefaultOpenRouterModel
	}
	if cfg.Temperature == nil {
		defaultTemp := 0.2
		cfg.Temperature = &defaultTemp
	}
	if cfg.MaxTokens == nil {
		defaultTokens := 1000
		cfg.MaxTokens = &defaultTokens
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &OpenRouterClient{
		apiKey:     cfg.APIKey,
		baseURL:    openRouterBaseURL,
		httpClient: httpclient.New(120 * time.Second),
		config:     cfg,
		logger:     logger,
	}
}

// IsConfigured reports whether an API key is present
func (c *OpenRouterClient) IsConfigured() bool {
	return c.apiKey != ""
}

// wireRequest is the chat completions payload
type wireRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// wireResponse is the chat completions response
type wireResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int         `json:"index"`
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// Chat sends a chat completion request to OpenRouter
func (c *OpenRouterClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if !c.IsConfigured() {
		return nil, errors.Wrap(errors.ErrServiceUnavailable, "OpenRouter API key not configured")
	}

	model := req.Model
	if model == "" {
		model = c.config.Model
	}
	temperature := *c.config.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := *c.config.MaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	messages := make([]chatMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.UserPrompt})

	body, err := json.Marshal(wireRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "OpenRouter request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, errors.Newf("OpenRouter returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}
	if wire.Error != nil {
		return nil, errors.Newf("OpenRouter error %d: %s", wire.Error.Code, wire.Error.Message)
	}
	if len(wire.Choices) == 0 {
		return nil, errors.New("no completion choices returned")
	}

	return &ChatResponse{
		Content: wire.Choices[0].Message.Content,
		Model:   wire.Model,
	}, nil
}
