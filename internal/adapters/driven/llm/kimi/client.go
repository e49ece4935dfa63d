// Package kimi provides the chat service adapter for the Moonshot Kimi API,
// an OpenAI-compatible chat-completions endpoint.
package kimi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
	"github.com/custodia-labs/kimi-advisor/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ChatService = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.moonshot.ai/v1"
	DefaultModel   = "kimi-k2.5"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Kimi chat service.
type Config struct {
	// APIKey is the Moonshot API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.moonshot.ai/v1).
	// Can be changed for compatible endpoints or tests.
	BaseURL string

	// Model is the model identifier (default: kimi-k2.5).
	Model string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration
}

// Client sends chat-completion requests to the Kimi API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a new Kimi chat client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("kimi: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}, nil
}

// CreateCompletion sends one chat-completion call: the system instruction
// plus a single user turn. Provider errors carrying an HTTP status are
// mapped to *domain.APIError for the caller's retry policy.
func (c *Client) CreateCompletion(ctx context.Context, req driven.ChatRequest) (*driven.ChatResponse, error) {
	userMsg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if req.Content.IsMultiPart() {
		userMsg.MultiContent = toMessageParts(req.Content.Parts)
	} else {
		userMsg.Content = req.Content.Text
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			userMsg,
		},
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, mapError(err)
	}

	choices := make([]driven.ChatChoice, len(resp.Choices))
	for i, choice := range resp.Choices {
		choices[i] = driven.ChatChoice{
			Reasoning: choice.Message.ReasoningContent,
			Answer:    choice.Message.Content,
		}
	}
	return &driven.ChatResponse{Choices: choices}, nil
}

// ModelName returns the model identifier being used.
func (c *Client) ModelName() string {
	return c.model
}

// toMessageParts converts content parts to the wire format.
func toMessageParts(parts []domain.ContentPart) []openai.ChatMessagePart {
	wire := make([]openai.ChatMessagePart, 0, len(parts))
	for _, part := range parts {
		switch part.Type {
		case domain.ContentPartImageURL:
			wire = append(wire, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: part.ImageURL,
				},
			})
		default:
			wire = append(wire, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: part.Text,
			})
		}
	}
	return wire
}

// mapError translates SDK errors into domain errors. API and transport
// errors with a known HTTP status become *domain.APIError; anything else
// passes through untouched.
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.APIError{
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &domain.APIError{
			StatusCode: reqErr.HTTPStatusCode,
			Message:    fmt.Sprintf("request failed: %v", reqErr.Err),
		}
	}

	return err
}
