package llm

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
)

// Provider failures unwrap to the quiz sentinels so callers branch with
// errors.Is like everywhere else in the tree. The concrete types exist
// for the retry layer, which needs RetryAfter and the
// one-retry-for-bad-output rule.

// RateLimitError reports a 429 from the provider. RetryAfter is zero
// when the provider gave no hint.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() []error { return sentinel(quiz.ErrUnavailable, e.Err) }

// TransportError reports an unreachable provider or a server-side
// failure (5xx, network).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unreachable: %v", e.Err)
	}
	return "provider unreachable"
}

func (e *TransportError) Unwrap() []error { return sentinel(quiz.ErrUnavailable, e.Err) }

// BadOutputError reports model output that failed the JSON parse or the
// schema check. Output holds the offending document for the log.
type BadOutputError struct {
	Output json.RawMessage
	Err    error
}

func (e *BadOutputError) Error() string {
	return fmt.Sprintf("model output rejected: %v", e.Err)
}

func (e *BadOutputError) Unwrap() []error { return sentinel(quiz.ErrUnavailable, e.Err) }

// TruncatedError reports a completion cut off at the token limit. The
// prompt's MaxTokens is too small for the batch; retrying the same
// prompt cannot help.
type TruncatedError struct {
	Output json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "completion truncated at the token limit"
}

func (e *TruncatedError) Unwrap() error { return quiz.ErrInvalidInput }

func sentinel(kind, cause error) []error {
	if cause == nil {
		return []error{kind}
	}
	return []error{kind, cause}
}
