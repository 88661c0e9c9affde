package quiz

import "context"

// AttemptRepository provides access to the attempt history.
type AttemptRepository interface {
	// ListRecent returns up to limit attempts for the user, most recent
	// first. An empty categoryID means all categories.
	ListRecent(ctx context.Context, userID, categoryID string, limit int) ([]AttemptRecord, error)

	// Create appends an immutable attempt record.
	Create(ctx context.Context, rec AttemptRecord) (AttemptRecord, error)
}

// ProgressRepository stores per-(user, category) aggregates.
type ProgressRepository interface {
	// Get returns the progress row, or nil when the user has no attempts
	// in the category yet.
	Get(ctx context.Context, userID, categoryID string) (*CategoryProgress, error)

	// Upsert creates or replaces the progress row.
	Upsert(ctx context.Context, p CategoryProgress) error
}

// QuestionRepository is the external question source. Questions returned
// by ListByCategoryDifficulty carry their answer keys; projection to
// untrusted callers happens via Question.Public at the engine boundary.
type QuestionRepository interface {
	Get(ctx context.Context, id string) (*Question, error)

	// ListByCategoryDifficulty returns up to limit active questions,
	// skipping excludeIDs.
	ListByCategoryDifficulty(ctx context.Context, categoryID string, difficulty Difficulty, limit int, excludeIDs []string) ([]Question, error)

	// Count returns the number of active questions in the category,
	// optionally restricted to one difficulty.
	Count(ctx context.Context, categoryID string, difficulty *Difficulty) (int, error)
}

// TxRunner executes fn atomically against the attempt and progress
// repositories: either every write in fn is visible afterwards or none is.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(attempts AttemptRepository, progress ProgressRepository) error) error
}
