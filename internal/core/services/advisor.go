package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
	"github.com/custodia-labs/kimi-advisor/internal/core/ports/driven"
	"github.com/custodia-labs/kimi-advisor/internal/logger"
)

// maxAttempts bounds the whole query invocation, not each error type.
const maxAttempts = 3

// queryTemperature is the fixed sampling temperature for all modes.
const queryTemperature = 1.0

// retryClass is the closed classification of a chat API error,
// derived once from the raised status.
type retryClass int

const (
	// classFatal: any other status, or an error without a status.
	classFatal retryClass = iota

	// classAuth: HTTP 401. The key is wrong; retrying cannot fix it.
	classAuth

	// classTransient: HTTP 429 or 5xx. Worth retrying with backoff.
	classTransient
)

// AdvisorService answers one-shot advisory queries: it loads attachments,
// builds the user message, and drives the chat call through a bounded
// retry loop.
//
// Each Query invocation owns its own retry state; the service holds no
// mutable state across invocations.
type AdvisorService struct {
	chat    driven.ChatService
	loader  driven.AttachmentLoader
	prompts map[domain.Mode]string

	// sleep is swapped out in tests to observe backoff without waiting.
	sleep func(time.Duration)
}

// NewAdvisorService creates the advisor and eagerly loads the system
// instructions for all three modes, so a missing prompt fails the process
// immediately rather than mid-session.
func NewAdvisorService(
	chat driven.ChatService,
	prompts driven.PromptStore,
	loader driven.AttachmentLoader,
) (*AdvisorService, error) {
	if chat == nil {
		return nil, errors.New("advisor: chat service is required")
	}
	if loader == nil {
		return nil, errors.New("advisor: attachment loader is required")
	}

	instructions := make(map[domain.Mode]string, len(domain.Modes))
	for _, mode := range domain.Modes {
		text, err := prompts.Load(mode.String())
		if err != nil {
			return nil, fmt.Errorf("load system instruction for %s: %w", mode, err)
		}
		instructions[mode] = text
	}

	return &AdvisorService{
		chat:    chat,
		loader:  loader,
		prompts: instructions,
		sleep:   time.Sleep,
	}, nil
}

// Query sends one advisory request and returns the model's reasoning and
// answer. Transient API failures (429, 5xx) are retried up to maxAttempts
// total calls with exponential backoff (1s, 2s); authentication failures,
// unexpected statuses, and empty responses are terminal on the first attempt.
func (s *AdvisorService) Query(
	ctx context.Context,
	mode domain.Mode,
	prompt string,
	maxTokens int,
	files []string,
) (*domain.QueryResult, error) {
	instruction, ok := s.prompts[mode]
	if !ok {
		// Caller contract violation: modes are validated and loaded at startup.
		return nil, fmt.Errorf("%w: no system instruction for mode %q", domain.ErrPromptNotFound, mode)
	}

	attachments, err := s.loader.Load(files)
	if err != nil {
		return nil, err
	}

	req := driven.ChatRequest{
		SystemPrompt: instruction,
		Content:      BuildUserContent(prompt, attachments),
		Temperature:  queryTemperature,
		MaxTokens:    maxTokens,
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := s.chat.CreateCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return nil, fmt.Errorf("%w: API returned empty response. Please try again", domain.ErrEmptyResponse)
			}
			choice := resp.Choices[0]
			return &domain.QueryResult{
				Reasoning: choice.Reasoning,
				Answer:    choice.Answer,
			}, nil
		}

		lastErr = err
		switch classify(err) {
		case classAuth:
			return nil, fmt.Errorf("%w: check your KIMI_API_KEY", domain.ErrAuthenticationFailed)
		case classTransient:
			if attempt < maxAttempts-1 {
				wait := time.Duration(1<<attempt) * time.Second
				logger.Warn("retrying in %s (%s)", wait, transientKind(err))
				s.sleep(wait)
			}
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrUnhandled, err)
		}
	}

	return nil, fmt.Errorf("%w: failed after %d attempts: %v", domain.ErrRetriesExhausted, maxAttempts, lastErr)
}

// classify derives the retry class from an error's HTTP status, if any.
func classify(err error) retryClass {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		return classFatal
	}
	switch {
	case apiErr.StatusCode == 401:
		return classAuth
	case apiErr.StatusCode == 429 || apiErr.StatusCode >= 500:
		return classTransient
	default:
		return classFatal
	}
}

// transientKind names the transient error class for the retry notice.
func transientKind(err error) string {
	if domain.IsRateLimited(err) {
		return "rate limited"
	}
	return "server error"
}
