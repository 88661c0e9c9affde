// Package questiongen produces quiz questions through an LLM provider,
// validated before they reach the question pool.
package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/quizforge/internal/llm"
	"github.com/abhisek/quizforge/internal/logging"
	"github.com/abhisek/quizforge/internal/quiz"
)

// GenerateInput describes one batch to generate.
type GenerateInput struct {
	CategoryID string
	Difficulty quiz.Difficulty
	Count      int

	// PriorQuestions are existing questions in the category, fed to the
	// prompt so the model does not repeat them.
	PriorQuestions []quiz.Question
}

// Generator produces question batches using the LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Text       string         `json:"text"`
	Type       string         `json:"type"`
	Difficulty string         `json:"difficulty"`
	Answers    []answerOutput `json:"answers"`
	Points     int            `json:"points"`
}

type answerOutput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Generate produces up to input.Count validated questions. Questions
// failing validation are dropped and logged rather than failing the
// whole batch; an error is returned only when the provider fails or
// the entire batch is unusable.
func (g *Generator) Generate(ctx context.Context, input GenerateInput) ([]quiz.Question, error) {
	if input.Count <= 0 {
		return nil, quiz.Invalidf("question count must be positive, got %d", input.Count)
	}
	if !input.Difficulty.Valid() {
		return nil, quiz.Invalidf("unknown difficulty %q", input.Difficulty)
	}

	p := llm.Prompt{
		System:      systemPrompt,
		User:        buildUserMessage(input, g.config),
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	res, err := g.provider.Complete(ctx, p)
	if err != nil {
		// Provider errors already carry a quiz sentinel; keep it.
		if errors.Is(err, quiz.ErrUnavailable) || errors.Is(err, quiz.ErrInvalidInput) {
			return nil, fmt.Errorf("question generation: %w", err)
		}
		return nil, quiz.Unavailablef("question generation: %v", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(res.JSON, &raw); err != nil {
		return nil, quiz.Unavailablef("parse generated batch: %v", err)
	}

	questions := make([]quiz.Question, 0, len(raw.Questions))
	for _, out := range raw.Questions {
		q := g.build(input.CategoryID, out)
		if verr := g.validate(&q); verr != nil {
			logging.Error("dropping generated question: %v", verr)
			continue
		}
		questions = append(questions, q)
		if len(questions) == input.Count {
			break
		}
	}

	if len(questions) == 0 {
		return nil, quiz.Unavailablef("no generated question passed validation")
	}
	return questions, nil
}

func (g *Generator) build(categoryID string, out questionOutput) quiz.Question {
	q := quiz.Question{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Type:       quiz.QuestionType(out.Type),
		Text:       out.Text,
		Difficulty: quiz.Difficulty(out.Difficulty),
		Points:     out.Points,
		Active:     true,
	}
	for _, a := range out.Answers {
		q.Answers = append(q.Answers, quiz.Answer{
			ID:        uuid.NewString(),
			Text:      a.Text,
			IsCorrect: a.IsCorrect,
		})
	}
	return q
}

func (g *Generator) validate(q *quiz.Question) error {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return fmt.Errorf("question %q: %w", q.Text, verr)
		}
	}
	return nil
}
