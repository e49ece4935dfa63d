package kimi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kimi-advisor/internal/core/domain"
	"github.com/custodia-labs/kimi-advisor/internal/core/ports/driven"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "kimi-k2.5",
	})
	require.NoError(t, err)
	return client
}

func completionJSON(reasoning, answer string) string {
	return `{
		"id": "cmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "kimi-k2.5",
		"choices": [{
			"index": 0,
			"message": {"role": "assistant", "content": ` + mustJSON(answer) + `, "reasoning_content": ` + mustJSON(reasoning) + `},
			"finish_reason": "stop"
		}]
	}`
}

func mustJSON(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, client.ModelName())
}

func TestCreateCompletion_MapsReasoningAndAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionJSON("because...", "the answer")))
	})

	resp, err := client.CreateCompletion(context.Background(), driven.ChatRequest{
		SystemPrompt: "sys",
		Content:      domain.RequestContent{Text: "hello"},
		Temperature:  1.0,
		MaxTokens:    128,
	})

	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "because...", resp.Choices[0].Reasoning)
	assert.Equal(t, "the answer", resp.Choices[0].Answer)
}

func TestCreateCompletion_SendsSystemAndUserTurn(t *testing.T) {
	var body struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionJSON("", "ok")))
	})

	_, err := client.CreateCompletion(context.Background(), driven.ChatRequest{
		SystemPrompt: "You give advice.",
		Content:      domain.RequestContent{Text: "Redis vs Memcached?"},
		Temperature:  1.0,
		MaxTokens:    8192,
	})

	require.NoError(t, err)
	assert.Equal(t, "kimi-k2.5", body.Model)
	assert.InDelta(t, 1.0, body.Temperature, 0.0001)
	assert.Equal(t, 8192, body.MaxTokens)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.JSONEq(t, `"You give advice."`, string(body.Messages[0].Content))
	assert.Equal(t, "user", body.Messages[1].Role)
	assert.JSONEq(t, `"Redis vs Memcached?"`, string(body.Messages[1].Content))
}

func TestCreateCompletion_MultiPartWireShape(t *testing.T) {
	var body struct {
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionJSON("", "ok")))
	})

	_, err := client.CreateCompletion(context.Background(), driven.ChatRequest{
		SystemPrompt: "sys",
		Content: domain.RequestContent{Parts: []domain.ContentPart{
			{Type: domain.ContentPartText, Text: "compare"},
			{Type: domain.ContentPartText, Text: "**File: a.py**\n```\nx = 1\n```"},
			{Type: domain.ContentPartImageURL, ImageURL: "data:image/png;base64,AAA"},
		}},
		Temperature: 1.0,
		MaxTokens:   100,
	})

	require.NoError(t, err)
	require.Len(t, body.Messages, 2)
	var parts []struct {
		Type     string `json:"type"`
		Text     string `json:"text"`
		ImageURL *struct {
			URL string `json:"url"`
		} `json:"image_url"`
	}
	require.NoError(t, json.Unmarshal(body.Messages[1].Content, &parts))
	require.Len(t, parts, 3)
	assert.Equal(t, "text", parts[0].Type)
	assert.Equal(t, "compare", parts[0].Text)
	assert.Equal(t, "text", parts[1].Type)
	assert.Equal(t, "image_url", parts[2].Type)
	require.NotNil(t, parts[2].ImageURL)
	assert.Equal(t, "data:image/png;base64,AAA", parts[2].ImageURL.URL)
}

func TestCreateCompletion_ZeroChoicesPassedThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cmpl-1", "object": "chat.completion", "choices": []}`))
	})

	resp, err := client.CreateCompletion(context.Background(), driven.ChatRequest{
		Content: domain.RequestContent{Text: "q"},
	})

	// Not the adapter's call to make: the retry policy owns this decision
	require.NoError(t, err)
	assert.Empty(t, resp.Choices)
}

func errorStatusTest(t *testing.T, status int, message string) *domain.APIError {
	t.Helper()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error": {"message": ` + mustJSON(message) + `, "type": "api_error"}}`))
	})

	_, err := client.CreateCompletion(context.Background(), driven.ChatRequest{
		Content: domain.RequestContent{Text: "q"},
	})

	require.Error(t, err)
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr
}

func TestCreateCompletion_MapsAuthenticationError(t *testing.T) {
	apiErr := errorStatusTest(t, http.StatusUnauthorized, "invalid api key")
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "invalid api key", apiErr.Message)
	assert.True(t, domain.IsAuthFailure(apiErr))
}

func TestCreateCompletion_MapsRateLimitError(t *testing.T) {
	apiErr := errorStatusTest(t, http.StatusTooManyRequests, "rate limit reached")
	assert.Equal(t, 429, apiErr.StatusCode)
	assert.True(t, domain.IsRetryable(apiErr))
}

func TestCreateCompletion_MapsServerError(t *testing.T) {
	apiErr := errorStatusTest(t, http.StatusInternalServerError, "upstream broke")
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.True(t, domain.IsRetryable(apiErr))
}

func TestCreateCompletion_MapsClientError(t *testing.T) {
	apiErr := errorStatusTest(t, http.StatusBadRequest, "context too long")
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.False(t, domain.IsRetryable(apiErr))
	assert.False(t, domain.IsAuthFailure(apiErr))
}
