package questiongen

import (
	"context"

	"github.com/abhisek/quizforge/internal/fetch"
	"github.com/abhisek/quizforge/internal/quiz"
)

// Source adapts the Generator to the fetch.Source interface so it can
// back-fill behind the stored question pool via fetch.Chain.
type Source struct {
	gen  *Generator
	pool quiz.QuestionRepository
}

// NewSource wraps gen as a fetch.Source. pool supplies prior questions
// for deduplication; it may be nil.
func NewSource(gen *Generator, pool quiz.QuestionRepository) *Source {
	return &Source{gen: gen, pool: pool}
}

func (s *Source) Fetch(ctx context.Context, req fetch.Request) ([]quiz.Question, error) {
	difficulty := quiz.Beginner
	if req.Difficulty != nil {
		difficulty = *req.Difficulty
	}

	input := GenerateInput{
		CategoryID: req.CategoryID,
		Difficulty: difficulty,
		Count:      req.Count,
	}

	if s.pool != nil {
		prior, err := s.pool.ListByCategoryDifficulty(ctx, req.CategoryID, difficulty, s.gen.config.MaxPriorQuestions, nil)
		if err == nil {
			input.PriorQuestions = prior
		}
	}

	return s.gen.Generate(ctx, input)
}
