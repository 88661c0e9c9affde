// Package analysis derives performance metrics from attempt history.
package analysis

import (
	"context"
	"fmt"

	"github.com/abhisek/quizforge/internal/quiz"
)

const (
	// DefaultWindow is how many recent attempts feed the metrics.
	DefaultWindow = 20

	// DefaultTrendSize bounds the recent_performance sequence.
	DefaultTrendSize = 10

	// Neutral prior returned for users with no history. Metrics for a
	// blank slate are a default, not an error.
	neutralAccuracy    = 50.0
	neutralAverageTime = 30.0
)

// DifficultyCount aggregates correct/total for one difficulty level.
type DifficultyCount struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Metrics is a derived snapshot of recent performance. Not persisted.
type Metrics struct {
	Accuracy      float64 `json:"accuracy"`      // 0..100 over the window
	AverageTime   float64 `json:"average_time"`  // seconds, attempts with t>0 only
	CurrentStreak int     `json:"current_streak"`

	// RecentPerformance holds 1/0 outcomes, most recent first, at most
	// DefaultTrendSize entries.
	RecentPerformance []int `json:"recent_performance"`

	DifficultyDistribution map[quiz.Difficulty]DifficultyCount `json:"difficulty_distribution"`

	// SampleSize is the number of attempts in the window.
	SampleSize int `json:"sample_size"`
}

// Analyzer computes Metrics from the attempt history.
type Analyzer struct {
	attempts  quiz.AttemptRepository
	window    int
	trendSize int
}

// New creates an Analyzer with the default window sizes.
func New(attempts quiz.AttemptRepository) *Analyzer {
	return NewWindowed(attempts, DefaultWindow)
}

// NewWindowed creates an Analyzer reading the given number of recent
// attempts. Non-positive windows fall back to the default.
func NewWindowed(attempts quiz.AttemptRepository, window int) *Analyzer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Analyzer{attempts: attempts, window: window, trendSize: DefaultTrendSize}
}

// Analyze computes metrics over the user's most recent attempts.
// An empty categoryID spans all categories.
func (a *Analyzer) Analyze(ctx context.Context, userID, categoryID string) (Metrics, error) {
	recent, err := a.attempts.ListRecent(ctx, userID, categoryID, a.window)
	if err != nil {
		return Metrics{}, fmt.Errorf("list recent attempts: %w", err)
	}
	return Compute(recent, a.trendSize), nil
}

// Compute derives metrics from a most-recent-first attempt window.
func Compute(recent []quiz.AttemptRecord, trendSize int) Metrics {
	if len(recent) == 0 {
		return Metrics{
			Accuracy:               neutralAccuracy,
			AverageTime:            neutralAverageTime,
			RecentPerformance:      []int{},
			DifficultyDistribution: map[quiz.Difficulty]DifficultyCount{},
		}
	}

	m := Metrics{
		DifficultyDistribution: make(map[quiz.Difficulty]DifficultyCount),
		SampleSize:             len(recent),
	}

	correct := 0
	timeSum, timeCount := 0, 0
	for _, rec := range recent {
		if rec.IsCorrect {
			correct++
		}
		if rec.TimeTakenSeconds > 0 {
			timeSum += rec.TimeTakenSeconds
			timeCount++
		}
		dc := m.DifficultyDistribution[rec.Difficulty]
		dc.Total++
		if rec.IsCorrect {
			dc.Correct++
		}
		m.DifficultyDistribution[rec.Difficulty] = dc
	}

	m.Accuracy = float64(correct) / float64(len(recent)) * 100
	if timeCount > 0 {
		m.AverageTime = float64(timeSum) / float64(timeCount)
	}

	// Streak counts consecutive correct answers from the most recent back.
	for _, rec := range recent {
		if !rec.IsCorrect {
			break
		}
		m.CurrentStreak++
	}

	n := len(recent)
	if n > trendSize {
		n = trendSize
	}
	m.RecentPerformance = make([]int, n)
	for i := 0; i < n; i++ {
		if recent[i].IsCorrect {
			m.RecentPerformance[i] = 1
		}
	}

	return m
}
