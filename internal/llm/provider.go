// Package llm turns a prompt into schema-checked JSON through a hosted
// model. Question generation is single-turn, so the surface is one
// prompt in, one completion out; there is no conversation state.
package llm

import (
	"context"
	"encoding/json"
)

// Provider produces one completion per prompt.
type Provider interface {
	// Complete sends the prompt and returns the model output. When the
	// prompt carries an OutputSchema the returned JSON has already been
	// checked against it.
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// ModelID returns the model identifier this provider is configured
	// to use.
	ModelID() string
}

// Prompt is a single-turn generation request.
type Prompt struct {
	// System sets the model's role and authoring rules.
	System string

	// User is the concrete ask: category, difficulty, count and the
	// dedup list.
	User string

	// Schema, when set, makes the provider request structured output
	// and check the result before returning it.
	Schema *OutputSchema

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature in [0,1]. Zero means deterministic.
	Temperature float64
}

// OutputSchema is the JSON Schema a completion must satisfy.
type OutputSchema struct {
	// Name identifies the schema to the provider and keys the compiled
	// cache. Kebab-case, e.g. "question-batch".
	Name string

	// Definition is the schema document as generic JSON values.
	Definition map[string]any
}

// Completion is the model output for one prompt.
type Completion struct {
	// JSON is the generated document. Schema-checked when the prompt
	// carried an OutputSchema.
	JSON json.RawMessage

	// Tokens reports consumption for this call.
	Tokens TokenUsage

	// Model is the model that actually served the call.
	Model string
}

// TokenUsage counts tokens for one completion.
type TokenUsage struct {
	Prompt     int
	Completion int
}
