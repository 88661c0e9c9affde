package cache

import (
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory[string](time.Minute)
	m.Set("k", "v")

	got, ok := m.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get = %q, %t, want \"v\", true", got, ok)
	}
}

func TestMemory_ExpiredNeverReturned(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	m := NewMemory[string](time.Minute).WithClock(clock)

	m.Set("k", "v")
	now = now.Add(2 * time.Minute)

	if _, ok := m.Get("k"); ok {
		t.Error("expired entry was returned")
	}

	// Re-set repopulates with a fresh deadline.
	m.Set("k", "v2")
	got, ok := m.Get("k")
	if !ok || got != "v2" {
		t.Errorf("Get after repopulate = %q, %t", got, ok)
	}
}

func TestMemory_SweepExpired(t *testing.T) {
	now := time.Now()
	m := NewMemory[int](time.Minute).WithClock(func() time.Time { return now })

	m.Set("a", 1)
	m.Set("b", 2)
	now = now.Add(2 * time.Minute)
	m.Set("c", 3)

	if dropped := m.SweepExpired(); dropped != 2 {
		t.Errorf("SweepExpired = %d, want 2", dropped)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestMemory_HitRate(t *testing.T) {
	m := NewMemory[int](time.Minute)
	if m.HitRate() != 0 {
		t.Errorf("empty HitRate = %v, want 0", m.HitRate())
	}

	m.Set("a", 1)
	m.Get("a")
	m.Get("missing")

	if got := m.HitRate(); got != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", got)
	}

	m.Clear()
	if m.HitRate() != 0 || m.Len() != 0 {
		t.Error("Clear should reset entries and counters")
	}
}
