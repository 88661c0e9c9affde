// Package quiztest provides in-memory repository implementations for tests.
package quiztest

import (
	"context"
	"sync"

	"github.com/abhisek/quizforge/internal/quiz"
)

// Repo is an in-memory implementation of the attempt, progress and
// question repositories plus the transaction runner. Safe for concurrent
// use. The zero value is not usable; call NewRepo.
type Repo struct {
	mu        sync.Mutex
	attempts  []quiz.AttemptRecord // newest first
	progress  map[string]quiz.CategoryProgress
	questions map[string]quiz.Question
	order     []string // question insertion order

	// ListCalls counts ListByCategoryDifficulty invocations.
	ListCalls int
}

func NewRepo() *Repo {
	return &Repo{
		progress:  make(map[string]quiz.CategoryProgress),
		questions: make(map[string]quiz.Question),
	}
}

func progressKey(userID, categoryID string) string {
	return userID + "\x00" + categoryID
}

// AddQuestion registers a question.
func (r *Repo) AddQuestion(q quiz.Question) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[q.ID]; !ok {
		r.order = append(r.order, q.ID)
	}
	r.questions[q.ID] = q
}

// AddAttempt prepends an attempt to the history (most recent first).
func (r *Repo) AddAttempt(rec quiz.AttemptRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append([]quiz.AttemptRecord{rec}, r.attempts...)
}

func (r *Repo) ListRecent(_ context.Context, userID, categoryID string, limit int) ([]quiz.AttemptRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []quiz.AttemptRecord
	for _, rec := range r.attempts {
		if rec.UserID != userID {
			continue
		}
		if categoryID != "" && rec.CategoryID != categoryID {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *Repo) Create(_ context.Context, rec quiz.AttemptRecord) (quiz.AttemptRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append([]quiz.AttemptRecord{rec}, r.attempts...)
	return rec, nil
}

func (r *Repo) Get(_ context.Context, userID, categoryID string) (*quiz.CategoryProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.progress[progressKey(userID, categoryID)]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *Repo) Upsert(_ context.Context, p quiz.CategoryProgress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress[progressKey(p.UserID, p.CategoryID)] = p
	return nil
}

func (r *Repo) GetQuestion(_ context.Context, id string) (*quiz.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, quiz.NotFoundf("question %s", id)
	}
	return &q, nil
}

func (r *Repo) ListByCategoryDifficulty(_ context.Context, categoryID string, difficulty quiz.Difficulty, limit int, excludeIDs []string) ([]quiz.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ListCalls++

	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var out []quiz.Question
	for _, id := range r.order {
		q := r.questions[id]
		if !q.Active || q.CategoryID != categoryID || q.Difficulty != difficulty {
			continue
		}
		if excluded[q.ID] {
			continue
		}
		out = append(out, q)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *Repo) Count(_ context.Context, categoryID string, difficulty *quiz.Difficulty) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, q := range r.questions {
		if !q.Active || q.CategoryID != categoryID {
			continue
		}
		if difficulty != nil && q.Difficulty != *difficulty {
			continue
		}
		n++
	}
	return n, nil
}

// WithTx runs fn against the repo itself. The in-memory repo has no real
// transactions; tests relying on rollback use the sqlite store instead.
func (r *Repo) WithTx(ctx context.Context, fn func(attempts quiz.AttemptRepository, progress quiz.ProgressRepository) error) error {
	return fn(r, r)
}

// Questions returns the repo viewed as a QuestionRepository. A separate
// view is needed because Get is already taken by ProgressRepository.
func (r *Repo) Questions() quiz.QuestionRepository {
	return questionView{r}
}

type questionView struct{ r *Repo }

func (v questionView) Get(ctx context.Context, id string) (*quiz.Question, error) {
	return v.r.GetQuestion(ctx, id)
}

func (v questionView) ListByCategoryDifficulty(ctx context.Context, categoryID string, difficulty quiz.Difficulty, limit int, excludeIDs []string) ([]quiz.Question, error) {
	return v.r.ListByCategoryDifficulty(ctx, categoryID, difficulty, limit, excludeIDs)
}

func (v questionView) Count(ctx context.Context, categoryID string, difficulty *quiz.Difficulty) (int, error) {
	return v.r.Count(ctx, categoryID, difficulty)
}
