package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retryProvider re-issues prompts that failed transiently, with
// exponential backoff. Bad output gets exactly one second chance; a
// truncated completion or a cancelled context gets none.
type retryProvider struct {
	next Provider
	cfg  RetryConfig
}

// WithRetry wraps a Provider with bounded retry.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{next: p, cfg: cfg}
}

func (r *retryProvider) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	var last error
	badOutputSeen := false

	for attempt := range r.cfg.MaxAttempts {
		out, err := r.next.Complete(ctx, p)
		if err == nil {
			return out, nil
		}
		last = err

		if !retryable(err, &badOutputSeen) {
			return nil, err
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}

	return nil, last
}

func (r *retryProvider) ModelID() string {
	return r.next.ModelID()
}

func retryable(err error, badOutputSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var trunc *TruncatedError
	if errors.As(err, &trunc) {
		return false
	}

	var bad *BadOutputError
	if errors.As(err, &bad) {
		if *badOutputSeen {
			return false
		}
		*badOutputSeen = true
		return true
	}

	// Rate limits, transport failures and anything unclassified are
	// treated as transient.
	return true
}

// wait computes the backoff before the next attempt. A provider-supplied
// RetryAfter wins; otherwise exponential growth with half-jitter.
func (r *retryProvider) wait(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := r.cfg.InitialWait
	for range attempt {
		d = time.Duration(float64(d) * r.cfg.Multiplier)
		if d >= r.cfg.MaxWait {
			d = r.cfg.MaxWait
			break
		}
	}
	if d <= 0 {
		return 0
	}
	return d/2 + rand.N(d/2+1)
}
