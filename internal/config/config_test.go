package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MemoryTTL != 15*time.Minute {
		t.Errorf("MemoryTTL = %s, want 15m", cfg.MemoryTTL)
	}
	if cfg.OfflineTTL != 15*time.Minute {
		t.Errorf("OfflineTTL = %s, want 15m", cfg.OfflineTTL)
	}
	if cfg.OfflineCapacity != 50 {
		t.Errorf("OfflineCapacity = %d, want 50", cfg.OfflineCapacity)
	}
	if cfg.BaselineMinAttempts != 5 {
		t.Errorf("BaselineMinAttempts = %d, want 5", cfg.BaselineMinAttempts)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("QUIZFORGE_MEMORY_TTL", "30s")
	t.Setenv("QUIZFORGE_OFFLINE_CAPACITY", "7")

	cfg := FromEnv()
	if cfg.MemoryTTL != 30*time.Second {
		t.Errorf("MemoryTTL = %s, want 30s", cfg.MemoryTTL)
	}
	if cfg.OfflineCapacity != 7 {
		t.Errorf("OfflineCapacity = %d, want 7", cfg.OfflineCapacity)
	}
	// Unset keys keep their defaults.
	if cfg.HistoryWindow != 20 {
		t.Errorf("HistoryWindow = %d, want 20", cfg.HistoryWindow)
	}
}

func TestEnvHelpers_IgnoreMalformed(t *testing.T) {
	t.Setenv("QF_TEST_INT", "not-a-number")
	if got := GetEnvInt("QF_TEST_INT", 9); got != 9 {
		t.Errorf("GetEnvInt = %d, want fallback 9", got)
	}

	t.Setenv("QF_TEST_DUR", "soon")
	if got := GetEnvDuration("QF_TEST_DUR", time.Minute); got != time.Minute {
		t.Errorf("GetEnvDuration = %s, want fallback 1m", got)
	}

	t.Setenv("QF_TEST_STR", "")
	if got := GetEnvOrDefault("QF_TEST_STR", "fallback"); got != "fallback" {
		t.Errorf("GetEnvOrDefault = %q, want fallback", got)
	}
}
