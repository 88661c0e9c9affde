package questiongen

import "github.com/abhisek/quizforge/internal/llm"

// BatchSchema is the JSON schema for generated question batches. One
// completion carries a whole batch.
var BatchSchema = &llm.OutputSchema{
	Name: "question-batch",
	Definition: map[string]any{
		"type":        "object",
		"description": "A batch of quiz questions with answer keys and explanations",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the user, plain text",
						},
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"multiple_choice", "true_false", "open_text"},
							"description": "How the question is answered",
						},
						"difficulty": map[string]any{
							"type":        "string",
							"enum":        []any{"beginner", "intermediate", "advanced"},
							"description": "Difficulty level of the question",
						},
						"answers": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"text": map[string]any{
										"type": "string",
									},
									"is_correct": map[string]any{
										"type": "boolean",
									},
								},
								"required":             []any{"text", "is_correct"},
								"additionalProperties": false,
							},
							"description": "4 options for multiple_choice, 2 for true_false, exactly 1 (the accepted answer) for open_text",
						},
						"points": map[string]any{
							"type":        "integer",
							"minimum":     5,
							"maximum":     30,
							"description": "Base point value of the question",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Short explanation of the correct answer",
						},
					},
					"required":             []any{"text", "type", "difficulty", "answers", "points", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
