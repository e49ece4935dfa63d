package driven

import (
	"context"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
)

// ChatService sends chat-completion requests to the remote model API.
//
// Implementations map provider errors carrying an HTTP status into
// *domain.APIError so the caller's retry policy can classify them.
// The service is stateless: each call is one independent request.
type ChatService interface {
	// CreateCompletion sends a single chat-completion request.
	// It performs no retries; retry policy belongs to the caller.
	CreateCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest is one chat-completion call: a fixed system instruction and
// a single user turn.
type ChatRequest struct {
	// SystemPrompt is the mode's system instruction text.
	SystemPrompt string

	// Content is the user message, bare text or multi-part.
	Content domain.RequestContent

	// Temperature controls sampling randomness.
	Temperature float64

	// MaxTokens caps the generated output length.
	MaxTokens int
}

// ChatResponse is the provider's reply: zero or more choices.
// Zero choices is a malformed response the caller must reject.
type ChatResponse struct {
	Choices []ChatChoice
}

// ChatChoice is one returned completion.
type ChatChoice struct {
	// Reasoning is the optional reasoning trace. Empty when the provider
	// returned none; never a null stand-in.
	Reasoning string

	// Answer is the message text. Empty when the provider returned null.
	Answer string
}
