package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// Attachment validation errors.

	// ErrFileNotFound indicates an attachment path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotAFile indicates an attachment path points at a directory.
	ErrNotAFile = errors.New("not a file")

	// ErrPermissionDenied indicates an attachment could not be read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrEmptyFile indicates an attachment has zero bytes.
	ErrEmptyFile = errors.New("file is empty")

	// ErrFileTooLarge indicates an attachment exceeds the per-file ceiling.
	ErrFileTooLarge = errors.New("file too large")

	// ErrTotalSizeExceeded indicates the combined attachment size exceeds
	// the total ceiling. Remaining files are not read.
	ErrTotalSizeExceeded = errors.New("total attachment size exceeded")

	// Query errors.

	// ErrAuthenticationFailed indicates the API rejected the key (HTTP 401).
	// Never retried.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrEmptyResponse indicates the API returned zero choices.
	// A malformed response, not a transient condition; never retried.
	ErrEmptyResponse = errors.New("empty response")

	// ErrRetriesExhausted indicates a transient error persisted through the
	// final allowed attempt.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrUnhandled indicates an error the retry policy has no rule for.
	ErrUnhandled = errors.New("unhandled error")

	// ErrPromptNotFound indicates no system instruction exists for a mode.
	// Fatal at startup, before any network call.
	ErrPromptNotFound = errors.New("prompt not found")

	// ErrNoInput indicates neither an argument nor piped stdin supplied a prompt.
	ErrNoInput = errors.New("no input provided")
)

// APIError represents a chat API failure tagged with an HTTP status code.
// Adapters map provider-specific errors into this type so the retry policy
// can classify them without knowing the provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// IsAuthFailure checks if the error indicates an authentication failure.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return errors.Is(err, ErrAuthenticationFailed)
}

// IsRetryable checks if the error indicates a transient condition
// worth retrying: rate limiting (429) or a server-side failure (5xx).
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
