package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockReply is one scripted answer for the MockProvider.
type MockReply struct {
	JSON   json.RawMessage
	Tokens TokenUsage
	Err    error
}

// MockProvider plays back scripted replies in order and records every
// prompt it receives. Safe for concurrent use.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply

	// Prompts holds every prompt seen, in call order.
	Prompts []Prompt
}

// NewMockProvider creates a MockProvider scripted with the given
// replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

// Complete pops the next scripted reply. An exhausted script reads as a
// transport failure.
func (m *MockProvider) Complete(_ context.Context, p Prompt) (*Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, p)

	if len(m.replies) == 0 {
		return nil, &TransportError{Err: errors.New("no scripted replies left")}
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]

	if reply.Err != nil {
		return nil, reply.Err
	}
	return &Completion{
		JSON:   reply.JSON,
		Tokens: reply.Tokens,
		Model:  "mock",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// Enqueue appends a reply to the script.
func (m *MockProvider) Enqueue(reply MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, reply)
}

// CallCount reports how many prompts have been received.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
