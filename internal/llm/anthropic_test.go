package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/abhisek/quizforge/internal/quiz"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
	)
	return &AnthropicProvider{
		client: &client,
		model:  "claude-haiku-4-5-20251001",
	}
}

func anthropicMessage(text, stopReason string) map[string]any {
	return map[string]any{
		"id":   "msg_test",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stopReason,
		"usage": map[string]any{
			"input_tokens":  120,
			"output_tokens": 80,
		},
	}
}

func TestAnthropic_Complete(t *testing.T) {
	batch := `{"questions":[{"text":"Which river flows through Cairo?"}]}`
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(batch, "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	out, err := p.Complete(context.Background(), Prompt{
		System:    "You are a quiz author.",
		User:      "Generate one geography question.",
		MaxTokens: 512,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out.JSON) != batch {
		t.Fatalf("wrong output: %s", out.JSON)
	}
	if out.Tokens.Prompt != 120 || out.Tokens.Completion != 80 {
		t.Fatalf("tokens = %+v, want 120/80", out.Tokens)
	}
}

func TestAnthropic_TokenLimitHit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"questions":[{"te`, "max_tokens"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Complete(context.Background(), Prompt{User: "go", MaxTokens: 8})
	var trunc *TruncatedError
	if !errors.As(err, &trunc) {
		t.Fatalf("expected TruncatedError, got %T (%v)", err, err)
	}
	if !errors.Is(err, quiz.ErrInvalidInput) {
		t.Errorf("truncation should read as invalid input, got %v", err)
	}
}

func TestAnthropic_RateLimited(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "rate_limit_error", "message": "Rate limit exceeded"},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Complete(context.Background(), Prompt{User: "go", MaxTokens: 100})
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitError, got %T (%v)", err, err)
	}
	if !errors.Is(err, quiz.ErrUnavailable) {
		t.Errorf("rate limit should read as unavailable, got %v", err)
	}
}

func TestAnthropic_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "api_error", "message": "Internal server error"},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Complete(context.Background(), Prompt{User: "go", MaxTokens: 100})
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T (%v)", err, err)
	}
	if !errors.Is(err, quiz.ErrUnavailable) {
		t.Errorf("server error should read as unavailable, got %v", err)
	}
}

func TestAnthropic_SchemaRejectsBadOutput(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"wrong":"shape"}`, "end_turn"))
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Complete(context.Background(), Prompt{
		User:      "go",
		MaxTokens: 512,
		Schema: &OutputSchema{
			Name: "test-anthropic-shape",
			Definition: map[string]any{
				"type":       "object",
				"properties": map[string]any{"questions": map[string]any{"type": "array"}},
				"required":   []any{"questions"},
			},
		},
	})
	var bad *BadOutputError
	if !errors.As(err, &bad) {
		t.Fatalf("expected BadOutputError, got %T (%v)", err, err)
	}
}

func TestAnthropic_ModelAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4-20250514"}, // pass-through
	}
	for _, tt := range tests {
		if got := modelFor(tt.input, anthropicAliases); got != tt.expected {
			t.Errorf("modelFor(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
