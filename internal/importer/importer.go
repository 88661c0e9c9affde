// Package importer loads question seed files into the question store.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/quizforge/internal/logging"
	"github.com/abhisek/quizforge/internal/questiongen"
	"github.com/abhisek/quizforge/internal/quiz"
)

// Inserter is the destination of imported questions.
type Inserter interface {
	Insert(ctx context.Context, q quiz.Question) error
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// Importer validates and stores question seed files.
type Importer struct {
	dest       Inserter
	compiled   *jsonschema.Schema
	validators []questiongen.Validator
}

// New creates an Importer writing to dest.
func New(dest Inserter) (*Importer, error) {
	compiled, err := compileSeedSchema()
	if err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}
	return &Importer{
		dest:     dest,
		compiled: compiled,
		validators: []questiongen.Validator{
			&questiongen.StructuralValidator{},
			&questiongen.AnswerKeyValidator{},
		},
	}, nil
}

// ImportFile reads a JSON seed file and stores its questions. Questions
// failing semantic validation are skipped and logged; a file failing
// schema validation is rejected whole.
func (i *Importer) ImportFile(ctx context.Context, path string) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read seed file: %w", err)
	}
	return i.Import(ctx, raw)
}

// Import validates and stores a raw JSON seed document.
func (i *Importer) Import(ctx context.Context, raw []byte) (Result, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result{}, quiz.Invalidf("seed is not valid JSON: %v", err)
	}
	if err := i.compiled.Validate(parsed); err != nil {
		return Result{}, quiz.Invalidf("seed rejected by schema: %v", err)
	}

	var doc seedDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Result{}, quiz.Invalidf("decode seed: %v", err)
	}

	var res Result
	for _, sq := range doc.Questions {
		q := sq.toQuestion()
		if err := i.validate(&q); err != nil {
			logging.Error("import: skipping question %q: %v", q.Text, err)
			res.Skipped++
			continue
		}
		if err := i.dest.Insert(ctx, q); err != nil {
			return res, fmt.Errorf("insert question %q: %w", q.Text, err)
		}
		res.Imported++
	}
	logging.Info("import: %d question(s) added, %d skipped", res.Imported, res.Skipped)
	return res, nil
}

func (i *Importer) validate(q *quiz.Question) error {
	for _, v := range i.validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

type seedDoc struct {
	Questions []seedQuestion `json:"questions"`
}

type seedQuestion struct {
	ID         string       `json:"id"`
	CategoryID string       `json:"category_id"`
	Type       string       `json:"type"`
	Text       string       `json:"text"`
	Difficulty string       `json:"difficulty"`
	Answers    []seedAnswer `json:"answers"`
	Points     int          `json:"points"`
}

type seedAnswer struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// toQuestion converts a seed entry, generating ids where the file left
// them blank.
func (sq seedQuestion) toQuestion() quiz.Question {
	q := quiz.Question{
		ID:         sq.ID,
		CategoryID: sq.CategoryID,
		Type:       quiz.QuestionType(sq.Type),
		Text:       sq.Text,
		Difficulty: quiz.Difficulty(sq.Difficulty),
		Points:     sq.Points,
		Active:     true,
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	for _, a := range sq.Answers {
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		q.Answers = append(q.Answers, quiz.Answer{ID: id, Text: a.Text, IsCorrect: a.IsCorrect})
	}
	return q
}
