package cache

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
)

func TestSweeper_SweepPass(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	clock := func() time.Time { return now }

	mem := NewMemory[[]quiz.Question](time.Minute).WithClock(clock)
	off := NewOffline(NewMemoryKV(), time.Minute, 50).WithClock(clock)
	s := NewSweeper(mem, off, time.Hour)

	mem.Set("k", questions(2))
	off.Save(ctx, "c1", "mixed", 5, questions(2))
	now = now.Add(2 * time.Minute)

	s.Sweep(ctx)

	if mem.Len() != 0 {
		t.Errorf("memory Len = %d, want 0", mem.Len())
	}
	if _, ok, _ := off.Load(ctx, "c1", "mixed", 5); ok {
		t.Error("offline snapshot survived sweep")
	}
}

func TestSweeper_WakeAndStop(t *testing.T) {
	mem := NewMemory[[]quiz.Question](time.Minute)
	off := NewOffline(NewMemoryKV(), time.Minute, 50)
	s := NewSweeper(mem, off, time.Hour)

	s.Start(context.Background())
	s.Wake()
	s.Wake() // redundant wakes coalesce
	s.Stop() // must not hang
}
