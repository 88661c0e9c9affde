package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
	"github.com/abhisek/quizforge/internal/quiz/quiztest"
)

func attempt(userID, categoryID string, correct bool, points int) quiz.AttemptRecord {
	return quiz.AttemptRecord{
		UserID:       userID,
		CategoryID:   categoryID,
		QuestionID:   "q1",
		Difficulty:   quiz.Beginner,
		IsCorrect:    correct,
		PointsEarned: points,
		CreatedAt:    time.Now(),
	}
}

func TestFold_FirstAttemptSeedsStreak(t *testing.T) {
	now := time.Now()

	p := Fold(nil, attempt("u1", "c1", true, 12), now)
	if p.TotalAttempted != 1 || p.CorrectCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", p.CorrectCount, p.TotalAttempted)
	}
	if p.CurrentStreak != 1 || p.LongestStreak != 1 {
		t.Errorf("streaks = %d/%d, want 1/1", p.CurrentStreak, p.LongestStreak)
	}
	if p.AverageScore != 100 {
		t.Errorf("AverageScore = %v, want 100", p.AverageScore)
	}

	p = Fold(nil, attempt("u1", "c1", false, 0), now)
	if p.CurrentStreak != 0 {
		t.Errorf("first incorrect attempt: streak = %d, want 0", p.CurrentStreak)
	}
}

func TestFold_StreakResetAndLongest(t *testing.T) {
	now := time.Now()
	var p *quiz.CategoryProgress

	seq := []bool{true, true, true, false, true}
	for _, correct := range seq {
		next := Fold(p, attempt("u1", "c1", correct, 10), now)
		p = &next
	}

	if p.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", p.CurrentStreak)
	}
	if p.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", p.LongestStreak)
	}
	if p.TotalAttempted != 5 || p.CorrectCount != 4 {
		t.Errorf("counts = %d/%d, want 4/5", p.CorrectCount, p.TotalAttempted)
	}
	if p.AverageScore != 80 {
		t.Errorf("AverageScore = %v, want 80", p.AverageScore)
	}
}

func TestFold_InvariantCorrectLEQTotal(t *testing.T) {
	now := time.Now()
	var p *quiz.CategoryProgress
	for i := 0; i < 50; i++ {
		next := Fold(p, attempt("u1", "c1", i%3 == 0, 5), now)
		p = &next
		if p.CorrectCount > p.TotalAttempted {
			t.Fatalf("correct %d > total %d", p.CorrectCount, p.TotalAttempted)
		}
	}
}

func TestRecord_NoLostUpdates(t *testing.T) {
	repo := quiztest.NewRepo()
	acc := New(repo)
	ctx := context.Background()

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(correct bool) {
			defer wg.Done()
			if _, err := acc.Record(ctx, attempt("u1", "c1", correct, 10)); err != nil {
				t.Errorf("Record failed: %v", err)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	p, err := repo.Get(ctx, "u1", "c1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p == nil {
		t.Fatal("no progress row")
	}
	if p.TotalAttempted != n {
		t.Errorf("TotalAttempted = %d, want %d", p.TotalAttempted, n)
	}
	if p.CorrectCount != n/2 {
		t.Errorf("CorrectCount = %d, want %d", p.CorrectCount, n/2)
	}
}

func TestRecord_SeparateCategoriesIndependent(t *testing.T) {
	repo := quiztest.NewRepo()
	acc := New(repo)
	ctx := context.Background()

	if _, err := acc.Record(ctx, attempt("u1", "math", true, 10)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if _, err := acc.Record(ctx, attempt("u1", "history", false, 0)); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	math, _ := repo.Get(ctx, "u1", "math")
	if math.CurrentStreak != 1 {
		t.Errorf("math streak = %d, want 1", math.CurrentStreak)
	}
	hist, _ := repo.Get(ctx, "u1", "history")
	if hist.CurrentStreak != 0 {
		t.Errorf("history streak = %d, want 0", hist.CurrentStreak)
	}
}
