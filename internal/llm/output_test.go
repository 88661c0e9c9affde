package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/quizforge/internal/quiz"
)

func questionSchema() *OutputSchema {
	return &OutputSchema{
		Name: "test-question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text":       map[string]any{"type": "string"},
				"points":     map[string]any{"type": "integer", "minimum": 5},
				"difficulty": map[string]any{"type": "string", "enum": []any{"beginner", "intermediate", "advanced"}},
			},
			"required": []any{"text", "points"},
		},
	}
}

func TestCheckOutput_Conforming(t *testing.T) {
	out := json.RawMessage(`{"text":"What is the capital of Japan?","points":10,"difficulty":"beginner"}`)
	if err := checkOutput(questionSchema(), out); err != nil {
		t.Fatalf("conforming output rejected: %v", err)
	}
}

func TestCheckOutput_OptionalFieldOmitted(t *testing.T) {
	out := json.RawMessage(`{"text":"Name the longest river in Africa.","points":15}`)
	if err := checkOutput(questionSchema(), out); err != nil {
		t.Fatalf("output without optional field rejected: %v", err)
	}
}

func TestCheckOutput_Violations(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{"missing required", `{"text":"incomplete"}`},
		{"wrong type", `{"text":"q","points":"ten"}`},
		{"enum violation", `{"text":"q","points":10,"difficulty":"expert"}`},
		{"below minimum", `{"text":"q","points":1}`},
		{"not json", `{broken`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkOutput(questionSchema(), json.RawMessage(tt.out))
			if err == nil {
				t.Fatal("expected rejection")
			}
			var bad *BadOutputError
			if !errors.As(err, &bad) {
				t.Fatalf("expected BadOutputError, got %T", err)
			}
			if !errors.Is(err, quiz.ErrUnavailable) {
				t.Errorf("rejection should carry the unavailable sentinel, got %v", err)
			}
		})
	}
}

func TestCheckOutput_NilSchemaAcceptsAnything(t *testing.T) {
	if err := checkOutput(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema must accept anything, got %v", err)
	}
}

func TestCheckOutput_NestedBatch(t *testing.T) {
	schema := &OutputSchema{
		Name: "test-batch",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"text": map[string]any{"type": "string"},
						},
						"required": []any{"text"},
					},
				},
			},
			"required": []any{"questions"},
		},
	}

	good := json.RawMessage(`{"questions":[{"text":"Which ocean borders Chile?"}]}`)
	if err := checkOutput(schema, good); err != nil {
		t.Fatalf("conforming batch rejected: %v", err)
	}

	bad := json.RawMessage(`{"questions":[{"points":10}]}`)
	if err := checkOutput(schema, bad); err == nil {
		t.Fatal("expected rejection for item missing text")
	}
}
