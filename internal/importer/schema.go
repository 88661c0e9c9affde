package importer

import "github.com/santhosh-tekuri/jsonschema/v6"

// seedSchema is the JSON schema every seed file must satisfy before any
// question is considered.
var seedSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string"},
					"category_id": map[string]any{"type": "string", "minLength": 1},
					"type": map[string]any{
						"type": "string",
						"enum": []any{"multiple_choice", "true_false", "open_text"},
					},
					"text": map[string]any{"type": "string", "minLength": 1},
					"difficulty": map[string]any{
						"type": "string",
						"enum": []any{"beginner", "intermediate", "advanced"},
					},
					"answers": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":         map[string]any{"type": "string"},
								"text":       map[string]any{"type": "string", "minLength": 1},
								"is_correct": map[string]any{"type": "boolean"},
							},
							"required":             []any{"text"},
							"additionalProperties": false,
						},
					},
					"points": map[string]any{"type": "integer", "minimum": 1},
				},
				"required":             []any{"category_id", "type", "text", "difficulty", "answers", "points"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"questions"},
	"additionalProperties": false,
}

func compileSeedSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://question-seed.json", seedSchema); err != nil {
		return nil, err
	}
	return c.Compile("schema://question-seed.json")
}
