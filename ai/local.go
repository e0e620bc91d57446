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

// LocalClient talks to a local inference server (Ollama, LocalAI, or any
// OpenAI-compatible endpoint)
type LocalClient struct {
	baseURL    string
	model      string
	httpClient *httpclient.SaferClient
	logger     *zap.SugaredLogger
}

// LocalConfig configures a LocalClient
type LocalConfig struct {
	BaseURL        string
	Model          string
	TimeoutSeconds int
	Logger         *zap.SugaredLogger
}

// NewLocalClient creates a client for local inference
func NewLocalClient(cfg LocalConfig) *LocalClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	// Local inference lives on localhost, so private-IP blocking is off here
	blockPrivateIP := false
	return &LocalClient{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		httpClient: httpclient.NewWithOptions(timeout, httpclient.Options{
			BlockPrivateIP: &blockPrivateIP,
		}),
		logger: logger,
	}
}

// chatCompletionRequest matches the OpenAI API format (Ollama is compatible)
type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse matches the OpenAI API format
type chatCompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Chat sends a prompt to the local inference server
func (c *LocalClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	messages := make([]chatMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.UserPrompt})

	body, err := json.Marshal(chatCompletionRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	// OpenAI-compatible endpoint, works for Ollama and LocalAI
	endpoint := c.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "local inference request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, errors.Newf("local inference returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no completion choices returned")
	}

	return &ChatResponse{
		Content: completion.Choices[0].Message.Content,
		Model:   completion.Model,
	}, nil
}
