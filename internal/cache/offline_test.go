package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
)

func questions(n int) []quiz.Question {
	out := make([]quiz.Question, n)
	for i := range out {
		out[i] = quiz.Question{ID: fmt.Sprintf("q%d", i), CategoryID: "c1"}
	}
	return out
}

func TestOffline_SaveLoad(t *testing.T) {
	ctx := context.Background()
	o := NewOffline(NewMemoryKV(), 15*time.Minute, 50)

	if err := o.Save(ctx, "c1", "beginner", 5, questions(5)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	qs, ok, err := o.Load(ctx, "c1", "beginner", 5)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok || len(qs) != 5 {
		t.Errorf("Load = %d questions, %t, want 5, true", len(qs), ok)
	}

	// Different count is a different key.
	if _, ok, _ := o.Load(ctx, "c1", "beginner", 10); ok {
		t.Error("unexpected hit for different count")
	}
}

func TestOffline_ExpiredNeverReturned(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	o := NewOffline(NewMemoryKV(), 15*time.Minute, 50).WithClock(func() time.Time { return now })

	if err := o.Save(ctx, "c1", "mixed", 5, questions(5)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	now = now.Add(16 * time.Minute)

	if _, ok, _ := o.Load(ctx, "c1", "mixed", 5); ok {
		t.Error("expired snapshot was returned")
	}
}

func TestOffline_CapacityEvictsOldestFirst(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	o := NewOffline(NewMemoryKV(), time.Hour, 3).WithClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		if err := o.Save(ctx, fmt.Sprintf("c%d", i), "mixed", 5, questions(2)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		now = now.Add(time.Minute)
	}

	// c0 and c1 were cached first and must be gone.
	for i := 0; i < 2; i++ {
		if _, ok, _ := o.Load(ctx, fmt.Sprintf("c%d", i), "mixed", 5); ok {
			t.Errorf("snapshot c%d survived capacity eviction", i)
		}
	}
	for i := 2; i < 5; i++ {
		if _, ok, _ := o.Load(ctx, fmt.Sprintf("c%d", i), "mixed", 5); !ok {
			t.Errorf("snapshot c%d was evicted too early", i)
		}
	}
}

func TestOffline_CategoryCountAndSweep(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	o := NewOffline(NewMemoryKV(), 15*time.Minute, 50).WithClock(func() time.Time { return now })

	o.Save(ctx, "c1", "beginner", 5, questions(2))
	o.Save(ctx, "c1", "advanced", 5, questions(2))
	o.Save(ctx, "c2", "mixed", 5, questions(2))

	n, err := o.CategoryCount(ctx)
	if err != nil {
		t.Fatalf("CategoryCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CategoryCount = %d, want 2", n)
	}

	now = now.Add(16 * time.Minute)
	dropped, err := o.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired failed: %v", err)
	}
	if dropped != 3 {
		t.Errorf("SweepExpired = %d, want 3", dropped)
	}
}

func TestOffline_Clear(t *testing.T) {
	ctx := context.Background()
	o := NewOffline(NewMemoryKV(), time.Hour, 50)

	o.Save(ctx, "c1", "mixed", 5, questions(2))
	if err := o.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok, _ := o.Load(ctx, "c1", "mixed", 5); ok {
		t.Error("snapshot survived Clear")
	}
}
