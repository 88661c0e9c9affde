package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	mock := NewMockProvider(MockReply{JSON: json.RawMessage(`{"questions":[]}`)})
	p := WithRetry(mock, retryConfig())

	out, err := p.Complete(context.Background(), Prompt{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out.JSON) != `{"questions":[]}` {
		t.Fatalf("unexpected output: %s", out.JSON)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &TransportError{Err: errors.New("down")}},
		MockReply{JSON: json.RawMessage(`{"questions":[]}`)},
	)
	p := WithRetry(mock, retryConfig())

	if _, err := p.Complete(context.Background(), Prompt{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ExhaustionSurfacesUnavailable(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &TransportError{Err: errors.New("down")}},
		MockReply{Err: &TransportError{Err: errors.New("down")}},
		MockReply{Err: &TransportError{Err: errors.New("down")}},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Complete(context.Background(), Prompt{})
	if !errors.Is(err, quiz.ErrUnavailable) {
		t.Fatalf("expected unavailable after exhaustion, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_TruncationNotRetried(t *testing.T) {
	mock := NewMockProvider(MockReply{Err: &TruncatedError{}})
	p := WithRetry(mock, retryConfig())

	_, err := p.Complete(context.Background(), Prompt{})
	var trunc *TruncatedError
	if !errors.As(err, &trunc) {
		t.Fatalf("expected TruncatedError, got %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.CallCount())
	}
}

func TestRetry_BadOutputRetriedExactlyOnce(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &BadOutputError{Err: errors.New("bad")}},
		MockReply{Err: &BadOutputError{Err: errors.New("bad")}},
		MockReply{JSON: json.RawMessage(`{"questions":[]}`)}, // never reached
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Complete(context.Background(), Prompt{})
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls (one second chance), got %d", mock.CallCount())
	}
}

func TestRetry_CancelledContextStops(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &TransportError{Err: errors.New("down")}},
		MockReply{JSON: json.RawMessage(`{"questions":[]}`)},
	)
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Complete(ctx, Prompt{}); err == nil {
		t.Fatal("expected error after cancellation")
	}
}

func TestRetry_RateLimitHonoursRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Err: &RateLimitError{RetryAfter: 1 * time.Millisecond, Err: errors.New("429")}},
		MockReply{JSON: json.RawMessage(`{"questions":[]}`)},
	)
	p := WithRetry(mock, retryConfig())

	if _, err := p.Complete(context.Background(), Prompt{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), retryConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID = %q, want mock", p.ModelID())
	}
}
