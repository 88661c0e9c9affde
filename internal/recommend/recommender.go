// Package recommend maps performance metrics to difficulty
// recommendations.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/quizforge/internal/analysis"
	"github.com/abhisek/quizforge/internal/quiz"
)

// Weights of the linear performance score.
const (
	weightAccuracy = 0.40
	weightStreak   = 0.20
	weightTrend    = 0.25
	weightSpeed    = 0.15

	// streakCap is the streak length at which the streak term saturates.
	streakCap = 10

	// speedCeiling is the average time (seconds) at which the speed term
	// bottoms out.
	speedCeiling = 60
)

// Score thresholds for the difficulty mapping.
const (
	advancedThreshold     = 0.8
	intermediateThreshold = 0.6
)

// Adjustment gates: a level change needs both a minimum sample and a
// minimum confidence, so one noisy attempt cannot cause thrashing.
const (
	minAdjustSamples    = 3
	minAdjustConfidence = 0.7
)

// BaselineMinAttempts is the attempt count below which the weighted model
// is not trusted and new users get beginner unconditionally.
const BaselineMinAttempts = 5

// Recommendation is the recommender's output.
type Recommendation struct {
	Difficulty   quiz.Difficulty `json:"recommended_difficulty"`
	Confidence   float64         `json:"confidence"` // 0..1
	Reasoning    string          `json:"reasoning"`
	ShouldAdjust bool            `json:"should_adjust"`
}

// Recommender derives difficulty recommendations from attempt history.
type Recommender struct {
	attempts quiz.AttemptRepository
	window   int
	baseline int
}

// New creates a Recommender with the default window and baseline.
func New(attempts quiz.AttemptRepository) *Recommender {
	return NewTuned(attempts, analysis.DefaultWindow, BaselineMinAttempts)
}

// NewTuned creates a Recommender with an explicit history window and
// baseline sample size. Non-positive values fall back to the defaults.
func NewTuned(attempts quiz.AttemptRepository, window, baseline int) *Recommender {
	if window <= 0 {
		window = analysis.DefaultWindow
	}
	if baseline <= 0 {
		baseline = BaselineMinAttempts
	}
	return &Recommender{
		attempts: attempts,
		window:   window,
		baseline: baseline,
	}
}

// Recommend produces a difficulty recommendation for the user in the
// category. current is the user's present difficulty, nil when unknown.
func (r *Recommender) Recommend(ctx context.Context, userID, categoryID string, current *quiz.Difficulty) (Recommendation, error) {
	recent, err := r.attempts.ListRecent(ctx, userID, categoryID, r.window)
	if err != nil {
		return Recommendation{}, fmt.Errorf("list recent attempts: %w", err)
	}

	// Baseline assessment: too little history to trust the model.
	if len(recent) < r.baseline {
		return Recommendation{
			Difficulty:   quiz.Beginner,
			Confidence:   1,
			Reasoning:    "not enough attempts yet, starting at beginner",
			ShouldAdjust: current == nil,
		}, nil
	}

	m := analysis.Compute(recent, analysis.DefaultTrendSize)
	return FromMetrics(m, current), nil
}

// FromMetrics applies the weighted model to an existing metrics snapshot.
func FromMetrics(m analysis.Metrics, current *quiz.Difficulty) Recommendation {
	score := PerformanceScore(m)

	rec := Recommendation{
		Difficulty: levelFor(score),
		Confidence: confidence(m.RecentPerformance),
		Reasoning:  reasoning(m),
	}
	rec.ShouldAdjust = shouldAdjust(rec, m, current)
	return rec
}

// PerformanceScore computes the weighted linear score in [0,1].
// It is monotonic in accuracy, streak and trend.
func PerformanceScore(m analysis.Metrics) float64 {
	accuracy := clamp(m.Accuracy/100, 0, 1)
	streak := clamp(float64(m.CurrentStreak)/streakCap, 0, 1)
	trend := trendMean(m.RecentPerformance)
	speed := clamp((speedCeiling-m.AverageTime)/speedCeiling, 0, 1)

	return weightAccuracy*accuracy +
		weightStreak*streak +
		weightTrend*trend +
		weightSpeed*speed
}

func levelFor(score float64) quiz.Difficulty {
	switch {
	case score >= advancedThreshold:
		return quiz.Advanced
	case score >= intermediateThreshold:
		return quiz.Intermediate
	default:
		return quiz.Beginner
	}
}

// confidence averages a sample-size score and a consistency score over
// the recent 0/1 outcomes.
func confidence(trend []int) float64 {
	sample := clamp(float64(len(trend))/analysis.DefaultTrendSize, 0, 1)
	consistency := clamp(1-variance(trend), 0, 1)
	return (sample + consistency) / 2
}

func shouldAdjust(rec Recommendation, m analysis.Metrics, current *quiz.Difficulty) bool {
	if current == nil {
		return true
	}
	return *current != rec.Difficulty &&
		len(m.RecentPerformance) >= minAdjustSamples &&
		rec.Confidence >= minAdjustConfidence
}

// reasoning builds a short comma-joined sentence list from rule
// thresholds on the metrics.
func reasoning(m analysis.Metrics) string {
	var parts []string

	if m.Accuracy >= 85 {
		parts = append(parts, "high accuracy suggests readiness for harder questions")
	} else if m.Accuracy <= 60 {
		parts = append(parts, "accuracy below target suggests easier questions")
	}
	if m.CurrentStreak >= 5 {
		parts = append(parts, fmt.Sprintf("on a %d-answer streak", m.CurrentStreak))
	}
	if len(m.RecentPerformance) > 0 {
		mean := trendMean(m.RecentPerformance)
		if mean > 0.8 {
			parts = append(parts, "recent answers are consistently correct")
		} else if mean < 0.5 {
			parts = append(parts, "recent answers show a dip in performance")
		}
	}

	if len(parts) == 0 {
		return "performance is steady at the current level"
	}
	return strings.Join(parts, ", ")
}

// trendMean averages the 0/1 outcomes, defaulting to 0.5 when empty.
func trendMean(trend []int) float64 {
	if len(trend) == 0 {
		return 0.5
	}
	sum := 0
	for _, v := range trend {
		sum += v
	}
	return float64(sum) / float64(len(trend))
}

// variance is the population variance of the 0/1 sequence.
func variance(trend []int) float64 {
	if len(trend) == 0 {
		return 0
	}
	mean := trendMean(trend)
	var sum float64
	for _, v := range trend {
		d := float64(v) - mean
		sum += d * d
	}
	return sum / float64(len(trend))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
