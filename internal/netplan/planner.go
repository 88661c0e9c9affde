// Package netplan maps observed network quality to loading strategies.
package netplan

import "time"

// EffectiveType is the coarse connection class reported by a probe.
type EffectiveType string

const (
	TypeSlow2G  EffectiveType = "slow-2g"
	Type2G      EffectiveType = "2g"
	Type3G      EffectiveType = "3g"
	Type4G      EffectiveType = "4g"
	TypeUnknown EffectiveType = "unknown"
)

// Sample is one observation of network quality.
type Sample struct {
	EffectiveType EffectiveType
	DownlinkMbps  float64
	RTT           time.Duration
}

// Mode selects between loading everything up front and trickling
// batches in.
type Mode string

const (
	ModeEager       Mode = "eager"
	ModeProgressive Mode = "progressive"
)

// Strategy is the planner's output: how aggressively to load questions.
type Strategy struct {
	Mode          Mode
	BatchSize     int
	MaxConcurrent int
	Timeout       time.Duration
}

// Probe supplies network samples. Callers without a probe pass nil and
// get the optimistic default.
type Probe interface {
	Sample() Sample
}

// ProbeFunc adapts a function to the Probe interface.
type ProbeFunc func() Sample

func (f ProbeFunc) Sample() Sample { return f() }

// Plan maps a network sample to a loading strategy.
func Plan(s Sample) Strategy {
	switch s.EffectiveType {
	case TypeSlow2G:
		return Strategy{Mode: ModeProgressive, BatchSize: 2, MaxConcurrent: 1, Timeout: 30 * time.Second}
	case Type2G:
		return Strategy{Mode: ModeProgressive, BatchSize: 2, MaxConcurrent: 1, Timeout: 20 * time.Second}
	case Type3G:
		return Strategy{Mode: ModeProgressive, BatchSize: 5, MaxConcurrent: 2, Timeout: 15 * time.Second}
	default:
		// 4g, unknown and anything newer: assume a good connection.
		// No false negatives on environments we cannot classify.
		return Strategy{Mode: ModeEager, BatchSize: 10, MaxConcurrent: 3, Timeout: 10 * time.Second}
	}
}

// PlanFrom samples the probe and plans. A nil probe yields the 4g
// optimistic default.
func PlanFrom(p Probe) Strategy {
	if p == nil {
		return Plan(Sample{EffectiveType: Type4G})
	}
	return Plan(p.Sample())
}

// Degraded reports whether the strategy belongs to the worst network
// tier, where the fetch path skips adaptive selection entirely.
func (s Strategy) Degraded() bool {
	return s.BatchSize <= 2
}
