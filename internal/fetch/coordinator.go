package fetch

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/quizforge/internal/cache"
	"github.com/abhisek/quizforge/internal/logging"
	"github.com/abhisek/quizforge/internal/netplan"
	"github.com/abhisek/quizforge/internal/quiz"
)

// MixedDifficulty is the cache-key stand-in when no level is pinned.
const MixedDifficulty = "mixed"

// Stats is the coordinator's observability snapshot.
type Stats struct {
	HitRate              float64 `json:"hit_rate"`
	OfflineCategoryCount int     `json:"offline_category_count"`
}

// Coordinator sits between callers and the question source. Lookup
// order: memory tier, in-flight attach, offline tier, network fetch.
// Concurrent identical requests collapse into one underlying fetch.
type Coordinator struct {
	memory  *cache.Memory[[]quiz.Question]
	offline *cache.OfflineStore
	source  Source
	probe   netplan.Probe
	retry   RetryConfig

	mu       sync.Mutex
	inflight map[string]*call
}

type call struct {
	done chan struct{}
	qs   []quiz.Question
	err  error
}

// New creates a Coordinator. probe may be nil (optimistic default).
func New(memory *cache.Memory[[]quiz.Question], offline *cache.OfflineStore, source Source, probe netplan.Probe, retry RetryConfig) *Coordinator {
	return &Coordinator{
		memory:   memory,
		offline:  offline,
		source:   source,
		probe:    probe,
		retry:    retry,
		inflight: make(map[string]*call),
	}
}

func cacheKey(categoryID string, difficulty *quiz.Difficulty, count int) string {
	level := MixedDifficulty
	if difficulty != nil {
		level = string(*difficulty)
	}
	return fmt.Sprintf("%s:%s:%d", categoryID, level, count)
}

// Load returns a question batch for the category, preferring caches over
// the network. On persistent failure the error is surfaced; an empty
// result here is a real error state.
func (c *Coordinator) Load(ctx context.Context, categoryID, userID string, count int, difficulty *quiz.Difficulty) ([]quiz.Question, error) {
	if count <= 0 {
		return nil, quiz.Invalidf("count must be positive, got %d", count)
	}
	key := cacheKey(categoryID, difficulty, count)

	if qs, ok := c.memory.Get(key); ok {
		c.prefetch(key, categoryID, userID, count, difficulty)
		return qs, nil
	}

	// At most one fetch per key: either start the call or attach to the
	// running one.
	cl, started := c.begin(key)
	if !started {
		select {
		case <-cl.done:
			return cl.qs, cl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	qs, err := c.load(ctx, key, categoryID, userID, count, difficulty)
	c.finish(key, cl, qs, err)
	return qs, err
}

// begin claims the in-flight slot for key. When another call already
// owns it, that call is returned with started false. The lock covers
// the check-then-insert.
func (c *Coordinator) begin(key string) (cl *call, started bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.inflight[key]; ok {
		return existing, false
	}
	cl = &call{done: make(chan struct{})}
	c.inflight[key] = cl
	return cl, true
}

func (c *Coordinator) finish(key string, cl *call, qs []quiz.Question, err error) {
	cl.qs, cl.err = qs, err
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	close(cl.done)
}

// load resolves a miss: offline tier first, then the network source.
func (c *Coordinator) load(ctx context.Context, key, categoryID, userID string, count int, difficulty *quiz.Difficulty) ([]quiz.Question, error) {
	level := MixedDifficulty
	if difficulty != nil {
		level = string(*difficulty)
	}

	qs, ok, err := c.offline.Load(ctx, categoryID, level, count)
	switch {
	case err != nil:
		// A broken offline tier must not block the network path.
		logging.Cache("offline read for %s failed: %v", key, err)
	case ok:
		c.memory.Set(key, qs)
		logging.Fetch("offline snapshot hit for %s", key)
		return qs, nil
	}

	strategy := netplan.PlanFrom(c.probe)
	fetchCtx, cancel := context.WithTimeout(ctx, strategy.Timeout)
	defer cancel()

	req := Request{
		CategoryID: categoryID,
		UserID:     userID,
		Count:      count,
		Difficulty: difficulty,
		Adaptive:   !strategy.Degraded(),
	}
	qs, err = fetchWithRetry(fetchCtx, c.source, req, c.retry)
	if err != nil {
		return nil, err
	}

	c.populate(ctx, key, categoryID, level, count, qs)
	return qs, nil
}

// populate fills both tiers. Cache writes are best-effort: the batch is
// already in hand, so failures are logged and ignored.
func (c *Coordinator) populate(ctx context.Context, key, categoryID, level string, count int, qs []quiz.Question) {
	c.memory.Set(key, qs)
	if err := c.offline.Save(ctx, categoryID, level, count, qs); err != nil {
		logging.Cache("offline save for %s failed: %v", key, err)
	}
}

// prefetch refreshes the batch behind a cache hit. Detached and
// best-effort: it must never block or fail the caller. It claims the
// same in-flight slot as a miss, so concurrent hits on a hot key
// refresh through one fetch instead of one per caller.
func (c *Coordinator) prefetch(key, categoryID, userID string, count int, difficulty *quiz.Difficulty) {
	go func() {
		cl, started := c.begin(key)
		if !started {
			return
		}

		strategy := netplan.PlanFrom(c.probe)
		ctx, cancel := context.WithTimeout(context.Background(), strategy.Timeout)
		defer cancel()

		req := Request{
			CategoryID: categoryID,
			UserID:     userID,
			Count:      count,
			Difficulty: difficulty,
			Adaptive:   !strategy.Degraded(),
		}
		qs, err := fetchWithRetry(ctx, c.source, req, c.retry)
		if err != nil {
			logging.Fetch("prefetch for %s failed: %v", key, err)
			c.finish(key, cl, nil, err)
			return
		}
		level := MixedDifficulty
		if difficulty != nil {
			level = string(*difficulty)
		}
		c.populate(ctx, key, categoryID, level, count, qs)
		c.finish(key, cl, qs, nil)
	}()
}

// ClearCache drops both tiers.
func (c *Coordinator) ClearCache(ctx context.Context) error {
	c.memory.Clear()
	return c.offline.Clear(ctx)
}

// CacheStats reports hit rate and offline coverage.
func (c *Coordinator) CacheStats(ctx context.Context) (Stats, error) {
	categories, err := c.offline.CategoryCount(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("offline category count: %w", err)
	}
	return Stats{
		HitRate:              c.memory.HitRate(),
		OfflineCategoryCount: categories,
	}, nil
}
