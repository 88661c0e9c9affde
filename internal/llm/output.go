package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas by OutputSchema.Name. Schemas
// are process-wide constants, so the cache never invalidates.
var compiledSchemas sync.Map

// checkOutput parses the completion and validates it against the
// schema. A nil schema accepts anything.
func checkOutput(s *OutputSchema, out json.RawMessage) error {
	if s == nil {
		return nil
	}

	var doc any
	if err := json.Unmarshal(out, &doc); err != nil {
		return &BadOutputError{Output: out, Err: fmt.Errorf("not JSON: %w", err)}
	}

	compiled, err := compiledFor(s)
	if err != nil {
		return &BadOutputError{Output: out, Err: fmt.Errorf("compile schema %q: %w", s.Name, err)}
	}

	if err := compiled.Validate(doc); err != nil {
		return &BadOutputError{Output: out, Err: fmt.Errorf("schema %q: %w", s.Name, err)}
	}
	return nil
}

func compiledFor(s *OutputSchema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants generic JSON values. Round-trip the definition
	// so typed maps inside it do not leak through.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	url := fmt.Sprintf("schema://%s.json", s.Name)
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	compiledSchemas.Store(s.Name, compiled)
	return compiled, nil
}
