// Package engine wires scoring, progress, recommendation, selection and
// the cached fetch path into one facade.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizforge/internal/analysis"
	"github.com/abhisek/quizforge/internal/cache"
	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/fetch"
	"github.com/abhisek/quizforge/internal/netplan"
	"github.com/abhisek/quizforge/internal/progress"
	"github.com/abhisek/quizforge/internal/quiz"
	"github.com/abhisek/quizforge/internal/recommend"
	"github.com/abhisek/quizforge/internal/scoring"
	"github.com/abhisek/quizforge/internal/selection"
)

// Deps are the external collaborators of the Engine.
type Deps struct {
	Questions quiz.QuestionRepository
	Attempts  quiz.AttemptRepository
	Runner    quiz.TxRunner

	// KV backs the offline snapshot tier. Defaults to in-memory.
	KV cache.KVStore

	// Source overrides the fetch path's question source. Defaults to the
	// adaptive selector over Questions.
	Source fetch.Source

	// Fallback, when set, is consulted after the primary source returns
	// an empty or exhausted pool. Typically the LLM question generator.
	Fallback fetch.Source

	// Probe reports network conditions. May be nil (optimistic default).
	Probe netplan.Probe
}

// Engine is the facade over the assessment pipeline.
type Engine struct {
	questions   quiz.QuestionRepository
	accumulator *progress.Accumulator
	analyzer    *analysis.Analyzer
	recommender *recommend.Recommender
	selector    *selection.Selector
	coordinator *fetch.Coordinator
	sweeper     *cache.Sweeper
	now         func() time.Time
}

// New assembles an Engine and starts its cache sweeper. Call Close to
// stop background work.
func New(cfg config.Config, deps Deps) *Engine {
	recommender := recommend.NewTuned(deps.Attempts, cfg.HistoryWindow, cfg.BaselineMinAttempts)
	selector := selection.New(deps.Questions, deps.Attempts, recommender)

	kv := deps.KV
	if kv == nil {
		kv = cache.NewMemoryKV()
	}
	memory := cache.NewMemory[[]quiz.Question](cfg.MemoryTTL)
	offline := cache.NewOffline(kv, cfg.OfflineTTL, cfg.OfflineCapacity)

	source := deps.Source
	if source == nil {
		source = selectorSource(selector, deps.Questions)
	}
	if deps.Fallback != nil {
		source = fetch.Chain(source, deps.Fallback)
	}
	coordinator := fetch.New(memory, offline, source, deps.Probe, fetch.DefaultRetryConfig())

	sweeper := cache.NewSweeper(memory, offline, cfg.SweepInterval)
	sweeper.Start(context.Background())

	return &Engine{
		questions:   deps.Questions,
		accumulator: progress.New(deps.Runner),
		analyzer:    analysis.NewWindowed(deps.Attempts, cfg.HistoryWindow),
		recommender: recommender,
		selector:    selector,
		coordinator: coordinator,
		sweeper:     sweeper,
		now:         time.Now,
	}
}

// Close stops background work.
func (e *Engine) Close() {
	e.sweeper.Stop()
}

// selectorSource adapts the adaptive selector to the fetch path. On the
// degraded network tier the selector is bypassed for a plain pool read.
func selectorSource(sel *selection.Selector, questions quiz.QuestionRepository) fetch.Source {
	return fetch.SourceFunc(func(ctx context.Context, req fetch.Request) ([]quiz.Question, error) {
		if !req.Adaptive {
			difficulty := quiz.Beginner
			if req.Difficulty != nil {
				difficulty = *req.Difficulty
			}
			return questions.ListByCategoryDifficulty(ctx, req.CategoryID, difficulty, req.Count, nil)
		}
		return sel.Select(ctx, req.UserID, req.CategoryID, req.Count, req.Difficulty)
	})
}

// ScoreRequest is one answer submission.
type ScoreRequest struct {
	UserID     string
	QuestionID string

	// AnswerID selects an option for choice questions; AnswerText is the
	// free-text answer for open questions.
	AnswerID   string
	AnswerText string

	TimeTakenSeconds int
}

// ScoreResult is the outcome of a scored submission, including the
// updated category aggregate.
type ScoreResult struct {
	IsCorrect    bool                  `json:"is_correct"`
	PointsEarned int                   `json:"points_earned"`
	Explanation  string                `json:"explanation"`
	Progress     quiz.CategoryProgress `json:"progress"`
}

// ScoreAttempt judges the submission, stores the attempt and folds it
// into the user's category progress. The attempt record and the progress
// update land in one transaction: either both persist or neither.
func (e *Engine) ScoreAttempt(ctx context.Context, req ScoreRequest) (ScoreResult, error) {
	if req.UserID == "" {
		return ScoreResult{}, quiz.Invalidf("user id is required")
	}

	q, err := e.questions.Get(ctx, req.QuestionID)
	if err != nil {
		return ScoreResult{}, err
	}

	res, err := scoring.Score(q, scoring.Submission{
		AnswerID:         req.AnswerID,
		AnswerText:       req.AnswerText,
		TimeTakenSeconds: req.TimeTakenSeconds,
	})
	if err != nil {
		return ScoreResult{}, err
	}

	rec := quiz.AttemptRecord{
		ID:               uuid.NewString(),
		UserID:           req.UserID,
		QuestionID:       q.ID,
		CategoryID:       q.CategoryID,
		Difficulty:       q.Difficulty,
		IsCorrect:        res.IsCorrect,
		PointsEarned:     res.PointsEarned,
		TimeTakenSeconds: req.TimeTakenSeconds,
		CreatedAt:        e.now(),
	}
	updated, err := e.accumulator.Record(ctx, rec)
	if err != nil {
		return ScoreResult{}, err
	}

	return ScoreResult{
		IsCorrect:    res.IsCorrect,
		PointsEarned: res.PointsEarned,
		Explanation:  res.Explanation,
		Progress:     updated,
	}, nil
}

// Metrics returns the user's performance snapshot for the category.
func (e *Engine) Metrics(ctx context.Context, userID, categoryID string) (analysis.Metrics, error) {
	return e.analyzer.Analyze(ctx, userID, categoryID)
}

// Recommend returns a difficulty recommendation. current is the user's
// present level, nil when unknown.
func (e *Engine) Recommend(ctx context.Context, userID, categoryID string, current *quiz.Difficulty) (recommend.Recommendation, error) {
	return e.recommender.Recommend(ctx, userID, categoryID, current)
}

// SelectAdaptiveQuestions returns up to count questions at the user's
// recommended (or forced) difficulty, answer keys stripped.
func (e *Engine) SelectAdaptiveQuestions(ctx context.Context, userID, categoryID string, count int, forced *quiz.Difficulty) ([]quiz.Question, error) {
	qs, err := e.selector.Select(ctx, userID, categoryID, count, forced)
	if err != nil {
		return nil, err
	}
	return publicBatch(qs), nil
}

// LoadQuestionsOptimized returns a question batch through the cache
// tiers, answer keys stripped.
func (e *Engine) LoadQuestionsOptimized(ctx context.Context, userID, categoryID string, count int, difficulty *quiz.Difficulty) ([]quiz.Question, error) {
	qs, err := e.coordinator.Load(ctx, categoryID, userID, count, difficulty)
	if err != nil {
		return nil, err
	}
	return publicBatch(qs), nil
}

// ClearCache drops both cache tiers.
func (e *Engine) ClearCache(ctx context.Context) error {
	return e.coordinator.ClearCache(ctx)
}

// CacheStats reports cache hit rate and offline coverage.
func (e *Engine) CacheStats(ctx context.Context) (fetch.Stats, error) {
	return e.coordinator.CacheStats(ctx)
}

// publicBatch strips answer keys from every question in the batch.
func publicBatch(qs []quiz.Question) []quiz.Question {
	out := make([]quiz.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Public()
	}
	return out
}
