package netplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_Tiers(t *testing.T) {
	tests := []struct {
		et        EffectiveType
		wantMode  Mode
		wantBatch int
		wantConc  int
	}{
		{TypeSlow2G, ModeProgressive, 2, 1},
		{Type2G, ModeProgressive, 2, 1},
		{Type3G, ModeProgressive, 5, 2},
		{Type4G, ModeEager, 10, 3},
		{TypeUnknown, ModeEager, 10, 3},
		{EffectiveType("5g"), ModeEager, 10, 3},
	}
	for _, tt := range tests {
		got := Plan(Sample{EffectiveType: tt.et})
		assert.Equal(t, tt.wantMode, got.Mode, "%s mode", tt.et)
		assert.Equal(t, tt.wantBatch, got.BatchSize, "%s batch size", tt.et)
		assert.Equal(t, tt.wantConc, got.MaxConcurrent, "%s concurrency", tt.et)
	}
}

func TestPlan_Slow2GBatchBound(t *testing.T) {
	got := Plan(Sample{EffectiveType: TypeSlow2G})
	assert.LessOrEqual(t, got.BatchSize, 2, "slow-2g batch size")
}

func TestPlanFrom_NilProbeOptimistic(t *testing.T) {
	got := PlanFrom(nil)
	require.Equal(t, ModeEager, got.Mode)
	assert.Equal(t, 10, got.BatchSize)
	assert.Equal(t, 10*time.Second, got.Timeout)
}

func TestPlanFrom_UsesProbe(t *testing.T) {
	p := ProbeFunc(func() Sample { return Sample{EffectiveType: Type3G} })
	assert.Equal(t, 5, PlanFrom(p).BatchSize)
}

func TestDegraded(t *testing.T) {
	assert.True(t, Plan(Sample{EffectiveType: TypeSlow2G}).Degraded())
	assert.True(t, Plan(Sample{EffectiveType: Type2G}).Degraded())
	assert.False(t, Plan(Sample{EffectiveType: Type4G}).Degraded())
}
