package cache

import (
	"context"
	"time"

	"github.com/abhisek/quizforge/internal/logging"
	"github.com/abhisek/quizforge/internal/quiz"
)

// DefaultSweepInterval matches the original eviction cadence.
const DefaultSweepInterval = 5 * time.Minute

// Sweeper periodically evicts expired entries from both cache tiers.
// Each pass holds locks only briefly, so concurrent readers are not
// stalled.
type Sweeper struct {
	memory   *Memory[[]quiz.Question]
	offline  *OfflineStore
	interval time.Duration

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewSweeper creates a Sweeper over the two tiers.
func NewSweeper(memory *Memory[[]quiz.Question], offline *OfflineStore, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		memory:   memory,
		offline:  offline,
		interval: interval,
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. Call Stop to terminate it.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

// Wake triggers an immediate opportunistic sweep, e.g. on a visibility
// or resume event. Non-blocking; redundant wakes coalesce.
func (s *Sweeper) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Stop terminates the loop and waits for it to exit.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-s.wake:
			s.Sweep(ctx)
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs one eviction pass over both tiers.
func (s *Sweeper) Sweep(ctx context.Context) {
	memDropped := s.memory.SweepExpired()
	offDropped, err := s.offline.SweepExpired(ctx)
	if err != nil {
		// A failing sweep is not fatal; the next pass retries.
		logging.Cache("sweep: offline tier error: %v", err)
	}
	if memDropped > 0 || offDropped > 0 {
		logging.Cache("sweep: evicted %d memory, %d offline entries", memDropped, offDropped)
	}
}
