package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
)

// RetryConfig bounds the retry loop around a source fetch.
type RetryConfig struct {
	MaxAttempts int
	BaseWait    time.Duration
	MaxWait     time.Duration
}

// DefaultRetryConfig retries transient failures up to 3 times with
// exponential backoff capped at 10s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseWait:    time.Second,
		MaxWait:     10 * time.Second,
	}
}

// backoff returns the wait before the given zero-based retry attempt:
// base*2^attempt, capped at MaxWait.
func (c RetryConfig) backoff(attempt int) time.Duration {
	wait := c.BaseWait << attempt
	if wait > c.MaxWait || wait <= 0 {
		return c.MaxWait
	}
	return wait
}

// retryable reports whether err is worth another attempt. Validation
// errors and context cancellation are final.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, quiz.ErrInvalidInput) || errors.Is(err, quiz.ErrNotFound) {
		return false
	}
	return true
}

// fetchWithRetry runs the source fetch with bounded backoff on transient
// failures.
func fetchWithRetry(ctx context.Context, src Source, req Request, cfg RetryConfig) ([]quiz.Question, error) {
	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		qs, err := src.Fetch(ctx, req)
		if err == nil {
			return qs, nil
		}
		lastErr = err

		if !retryable(err) || attempt == cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.backoff(attempt)):
		}
	}
	if retryable(lastErr) && !errors.Is(lastErr, quiz.ErrUnavailable) {
		return nil, quiz.Unavailablef("fetch failed after %d attempts: %v", cfg.MaxAttempts, lastErr)
	}
	return nil, lastErr
}
