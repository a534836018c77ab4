package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kodask_bank/internal/model"
)

const (
	DefaultBaseURL = "https://router.huggingface.co/v1"
	DefaultModel   = "Qwen/Qwen2.5-7B-Instruct:together"
)

// Completer sends a conversation to a chat-completion provider and returns
// the assistant's reply. Services depend on this interface so tests can
// substitute a stub for the remote API.
type Completer interface {
	Complete(ctx context.Context, messages []model.ChatMessage) (model.ChatMessage, error)
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

// NewClient creates a Client for the given endpoint, credential and model id.
// Empty baseURL or modelID fall back to the defaults above.
func NewClient(baseURL, apiKey, modelID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if modelID == "" {
		modelID = DefaultModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   modelID,
		httpc:   &http.Client{Timeout: 120 * time.Second},
	}
}

type chatCompletionRequest struct {
	Model    string              `json:"model"`
	Messages []model.ChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message model.ChatMessage `json:"message"`
	} `json:"choices"`
}

// Complete posts the conversation and returns the first completion choice.
func (c *Client) Complete(ctx context.Context, messages []model.ChatMessage) (model.ChatMessage, error) {
	payload, err := json.Marshal(chatCompletionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ChatMessage{}, fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return model.ChatMessage{}, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.ChatMessage{}, fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return model.ChatMessage{}, fmt.Errorf("provider returned no choices")
	}

	return parsed.Choices[0].Message, nil
}
