package llm

import (
	"context"
	"time"

	"github.com/abhisek/quizforge/internal/logging"
)

// loggingProvider records latency and token usage for every completion.
type loggingProvider struct {
	next Provider
}

// WithLogging wraps a Provider with call logging.
func WithLogging(p Provider) Provider {
	return &loggingProvider{next: p}
}

func (l *loggingProvider) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()

	out, err := l.next.Complete(ctx, p)

	latency := time.Since(start).Round(time.Millisecond)
	if err != nil {
		logging.Error("llm call to %s failed after %s: %v", l.next.ModelID(), latency, err)
		return nil, err
	}

	logging.Debug("llm call to %s took %s (prompt=%d completion=%d tokens)",
		out.Model, latency, out.Tokens.Prompt, out.Tokens.Completion)
	return out, nil
}

func (l *loggingProvider) ModelID() string {
	return l.next.ModelID()
}
