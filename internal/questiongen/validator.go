package questiongen

import (
	"fmt"

	"github.com/abhisek/quizforge/internal/quiz"
)

// Validator checks a generated question for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "structural", "answer-key".
	Name() string

	// Validate checks the question and returns nil if it passes.
	Validate(q *quiz.Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Question) *ValidationError {
	if q.Text == "" {
		return v.fail("text is empty")
	}
	if len(q.Text) > 500 {
		return v.fail("text exceeds 500 characters")
	}
	if !q.Difficulty.Valid() {
		return v.fail(fmt.Sprintf("unknown difficulty %q", q.Difficulty))
	}
	if q.Points <= 0 {
		return v.fail("points must be positive")
	}
	switch q.Type {
	case quiz.MultipleChoice:
		if len(q.Answers) != 4 {
			return v.fail(fmt.Sprintf("multiple_choice needs 4 answers, got %d", len(q.Answers)))
		}
	case quiz.TrueFalse:
		if len(q.Answers) != 2 {
			return v.fail(fmt.Sprintf("true_false needs 2 answers, got %d", len(q.Answers)))
		}
	case quiz.OpenText:
		if len(q.Answers) != 1 {
			return v.fail(fmt.Sprintf("open_text needs 1 answer, got %d", len(q.Answers)))
		}
	default:
		return v.fail(fmt.Sprintf("unknown question type %q", q.Type))
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg}
}

// AnswerKeyValidator checks that exactly one answer is marked correct.
type AnswerKeyValidator struct{}

func (v *AnswerKeyValidator) Name() string { return "answer-key" }

func (v *AnswerKeyValidator) Validate(q *quiz.Question) *ValidationError {
	correct := 0
	for _, a := range q.Answers {
		if a.Text == "" {
			return &ValidationError{Validator: v.Name(), Message: "answer text is empty"}
		}
		if a.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("need exactly 1 correct answer, got %d", correct),
		}
	}
	return nil
}
