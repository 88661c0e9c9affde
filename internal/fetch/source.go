// Package fetch coordinates question loading through the cache tiers,
// deduplicating concurrent requests and retrying transient failures.
package fetch

import (
	"context"
	"errors"

	"github.com/abhisek/quizforge/internal/quiz"
)

// Request describes one question batch to fetch.
type Request struct {
	CategoryID string
	UserID     string
	Count      int

	// Difficulty pins the batch to one level; nil means mixed, letting
	// an adaptive source decide.
	Difficulty *quiz.Difficulty

	// Adaptive is false on the worst network tier, where the source
	// should degrade to its simplest fetch.
	Adaptive bool
}

// Source produces question batches. Implementations: the adaptive
// selector, the LLM generator, or a chain of both.
type Source interface {
	Fetch(ctx context.Context, req Request) ([]quiz.Question, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, req Request) ([]quiz.Question, error)

func (f SourceFunc) Fetch(ctx context.Context, req Request) ([]quiz.Question, error) {
	return f(ctx, req)
}

// Chain returns a Source that falls through to next when primary returns
// no questions or a NotFound error. Other errors stop the chain.
func Chain(primary, next Source) Source {
	return SourceFunc(func(ctx context.Context, req Request) ([]quiz.Question, error) {
		qs, err := primary.Fetch(ctx, req)
		if err == nil && len(qs) > 0 {
			return qs, nil
		}
		if err != nil && !isEmptyPool(err) {
			return nil, err
		}
		return next.Fetch(ctx, req)
	})
}

func isEmptyPool(err error) bool {
	return errors.Is(err, quiz.ErrNotFound)
}
