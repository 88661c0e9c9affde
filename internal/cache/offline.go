package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
)

const snapshotPrefix = "offline:"

// Snapshot is a durable copy of a previously fetched question batch,
// the last resort before a network fetch.
type Snapshot struct {
	CategoryID string          `json:"category_id"`
	Difficulty string          `json:"difficulty"` // level or "mixed"
	Questions  []quiz.Question `json:"questions"`
	CachedAt   time.Time       `json:"cached_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
}

// OfflineStore is the capacity-bounded, TTL'd snapshot tier above a
// KVStore backend. Eviction drops oldest cached_at first.
type OfflineStore struct {
	kv       KVStore
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// NewOffline creates an OfflineStore over kv.
func NewOffline(kv KVStore, ttl time.Duration, capacity int) *OfflineStore {
	return &OfflineStore{kv: kv, ttl: ttl, capacity: capacity, now: time.Now}
}

// WithClock overrides the clock, for tests.
func (o *OfflineStore) WithClock(now func() time.Time) *OfflineStore {
	o.now = now
	return o
}

func snapshotKey(categoryID, difficulty string, count int) string {
	return fmt.Sprintf("%s%s:%s:%d", snapshotPrefix, categoryID, difficulty, count)
}

// Save stores a snapshot and prunes the tier back under capacity.
func (o *OfflineStore) Save(ctx context.Context, categoryID, difficulty string, count int, questions []quiz.Question) error {
	now := o.now()
	snap := Snapshot{
		CategoryID: categoryID,
		Difficulty: difficulty,
		Questions:  questions,
		CachedAt:   now,
		ExpiresAt:  now.Add(o.ttl),
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := o.kv.Set(ctx, snapshotKey(categoryID, difficulty, count), raw); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return o.pruneCapacity(ctx)
}

// Load returns the snapshot's questions, or ok=false when absent or
// expired. Expired snapshots are deleted on the way out.
func (o *OfflineStore) Load(ctx context.Context, categoryID, difficulty string, count int) ([]quiz.Question, bool, error) {
	key := snapshotKey(categoryID, difficulty, count)
	raw, ok, err := o.kv.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Corrupt entry: drop it and treat as a miss.
		_ = o.kv.Delete(ctx, key)
		return nil, false, nil
	}
	if o.now().After(snap.ExpiresAt) {
		_ = o.kv.Delete(ctx, key)
		return nil, false, nil
	}
	return snap.Questions, true, nil
}

// CategoryCount reports how many distinct categories have live snapshots.
func (o *OfflineStore) CategoryCount(ctx context.Context) (int, error) {
	snaps, err := o.liveSnapshots(ctx)
	if err != nil {
		return 0, err
	}
	cats := make(map[string]bool)
	for _, s := range snaps {
		cats[s.snap.CategoryID] = true
	}
	return len(cats), nil
}

// SweepExpired deletes expired snapshots and returns how many were
// dropped.
func (o *OfflineStore) SweepExpired(ctx context.Context) (int, error) {
	keys, err := o.kv.Keys(ctx, snapshotPrefix)
	if err != nil {
		return 0, fmt.Errorf("list snapshots: %w", err)
	}
	now := o.now()
	dropped := 0
	for _, key := range keys {
		raw, ok, err := o.kv.Get(ctx, key)
		if err != nil || !ok {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil || now.After(snap.ExpiresAt) {
			if derr := o.kv.Delete(ctx, key); derr == nil {
				dropped++
			}
		}
	}
	return dropped, nil
}

// Clear removes every snapshot.
func (o *OfflineStore) Clear(ctx context.Context) error {
	keys, err := o.kv.Keys(ctx, snapshotPrefix)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	for _, key := range keys {
		if err := o.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

type keyedSnapshot struct {
	key  string
	snap Snapshot
}

func (o *OfflineStore) liveSnapshots(ctx context.Context) ([]keyedSnapshot, error) {
	keys, err := o.kv.Keys(ctx, snapshotPrefix)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var out []keyedSnapshot
	for _, key := range keys {
		if !strings.HasPrefix(key, snapshotPrefix) {
			continue
		}
		raw, ok, err := o.kv.Get(ctx, key)
		if err != nil || !ok {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			continue
		}
		out = append(out, keyedSnapshot{key: key, snap: snap})
	}
	return out, nil
}

// pruneCapacity evicts oldest-cached snapshots until the tier fits the
// capacity bound.
func (o *OfflineStore) pruneCapacity(ctx context.Context) error {
	if o.capacity <= 0 {
		return nil
	}
	snaps, err := o.liveSnapshots(ctx)
	if err != nil {
		return err
	}
	if len(snaps) <= o.capacity {
		return nil
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].snap.CachedAt.Before(snaps[j].snap.CachedAt)
	})
	for _, s := range snaps[:len(snaps)-o.capacity] {
		if err := o.kv.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("evict %s: %w", s.key, err)
		}
	}
	return nil
}
