// Package selection picks non-repeating question batches at a target
// difficulty.
package selection

import (
	"context"
	"fmt"

	"github.com/abhisek/quizforge/internal/logging"
	"github.com/abhisek/quizforge/internal/quiz"
	"github.com/abhisek/quizforge/internal/recommend"
)

const (
	// poolFactor oversizes the candidate pool relative to the requested
	// count so the exclusion filter has room to drop repeats.
	poolFactor = 2

	// historyWindow is how far back the recently-seen filter looks.
	historyWindow = 20
)

// Selector returns adaptive question batches.
type Selector struct {
	questions   quiz.QuestionRepository
	attempts    quiz.AttemptRepository
	recommender *recommend.Recommender
}

// New creates a Selector.
func New(questions quiz.QuestionRepository, attempts quiz.AttemptRepository, rec *recommend.Recommender) *Selector {
	return &Selector{questions: questions, attempts: attempts, recommender: rec}
}

// Select returns up to count questions for the user at the target
// difficulty. forced bypasses the recommender when non-nil. When the
// recently-seen filter starves the pool, the unfiltered pool is used
// instead; starvation must never leave the user short of questions.
func (s *Selector) Select(ctx context.Context, userID, categoryID string, count int, forced *quiz.Difficulty) ([]quiz.Question, error) {
	if count <= 0 {
		return nil, quiz.Invalidf("count must be positive, got %d", count)
	}

	difficulty, err := s.resolveDifficulty(ctx, userID, categoryID, forced)
	if err != nil {
		return nil, err
	}

	pool, err := s.questions.ListByCategoryDifficulty(ctx, categoryID, difficulty, count*poolFactor, nil)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	seen, err := s.recentQuestionIDs(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	fresh := make([]quiz.Question, 0, len(pool))
	for _, q := range pool {
		if !seen[q.ID] {
			fresh = append(fresh, q)
		}
	}

	picked := fresh
	if len(fresh) < count {
		// Repetition beats starvation.
		logging.Debug("selection: exclusion left %d of %d wanted for user %s, falling back to full pool", len(fresh), count, userID)
		picked = pool
	}
	if len(picked) > count {
		picked = picked[:count]
	}
	return picked, nil
}

func (s *Selector) resolveDifficulty(ctx context.Context, userID, categoryID string, forced *quiz.Difficulty) (quiz.Difficulty, error) {
	if forced != nil {
		if !forced.Valid() {
			return "", quiz.Invalidf("unknown difficulty %q", *forced)
		}
		return *forced, nil
	}
	rec, err := s.recommender.Recommend(ctx, userID, categoryID, nil)
	if err != nil {
		return "", fmt.Errorf("recommend difficulty: %w", err)
	}
	return rec.Difficulty, nil
}

func (s *Selector) recentQuestionIDs(ctx context.Context, userID, categoryID string) (map[string]bool, error) {
	recent, err := s.attempts.ListRecent(ctx, userID, categoryID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("list recent attempts: %w", err)
	}
	seen := make(map[string]bool, len(recent))
	for _, rec := range recent {
		seen[rec.QuestionID] = true
	}
	return seen, nil
}
