// Package progress folds scored attempts into per-(user, category)
// aggregates.
package progress

import (
	"context"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
)

// Accumulator is the sole writer of CategoryProgress rows. Writes for the
// same (user, category) pair serialize through a per-key lock, so
// concurrent attempts never lose increments.
type Accumulator struct {
	runner quiz.TxRunner
	locks  keyedMutex
	now    func() time.Time
}

// New creates an Accumulator writing through the given transaction runner.
func New(runner quiz.TxRunner) *Accumulator {
	return &Accumulator{runner: runner, now: time.Now}
}

// WithClock overrides the clock, for tests.
func (a *Accumulator) WithClock(now func() time.Time) *Accumulator {
	a.now = now
	return a
}

// Record stores the attempt and applies it to the user's category
// aggregate in one transaction. Either both become visible or neither.
func (a *Accumulator) Record(ctx context.Context, rec quiz.AttemptRecord) (quiz.CategoryProgress, error) {
	unlock := a.locks.lock(rec.UserID + "\x00" + rec.CategoryID)
	defer unlock()

	var updated quiz.CategoryProgress
	err := a.runner.WithTx(ctx, func(attempts quiz.AttemptRepository, progress quiz.ProgressRepository) error {
		if _, err := attempts.Create(ctx, rec); err != nil {
			return err
		}
		current, err := progress.Get(ctx, rec.UserID, rec.CategoryID)
		if err != nil {
			return err
		}
		updated = Fold(current, rec, a.now())
		return progress.Upsert(ctx, updated)
	})
	if err != nil {
		return quiz.CategoryProgress{}, err
	}
	return updated, nil
}

// Fold applies one attempt to an aggregate. A nil current means this is
// the user's first attempt in the category; the streak seeds at 1 or 0.
func Fold(current *quiz.CategoryProgress, rec quiz.AttemptRecord, now time.Time) quiz.CategoryProgress {
	p := quiz.CategoryProgress{
		UserID:     rec.UserID,
		CategoryID: rec.CategoryID,
	}
	if current != nil {
		p = *current
	}

	p.TotalAttempted++
	if rec.IsCorrect {
		p.CorrectCount++
		p.CurrentStreak++
	} else {
		p.CurrentStreak = 0
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.TotalPoints += rec.PointsEarned
	p.AverageScore = float64(p.CorrectCount) / float64(p.TotalAttempted) * 100
	p.LastActivity = now
	return p
}
