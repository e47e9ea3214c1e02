package engine

import (
	"fmt"

	"github.com/trumanellis/indras-sim/churn"
	"github.com/trumanellis/indras-sim/routing"
)

// SimConfig configures a Simulation.
type SimConfig struct {
	WakeProbability          float64
	SleepProbability         float64
	InitialOnlineProbability float64

	// MaxTicks is advisory only: the engine never halts on its own,
	// scenarios bound their own run_ticks loops.
	MaxTicks int64

	// TraceRouting emits extra relay detail (via correlation tags) when
	// true.
	TraceRouting bool

	RoutingMode routing.Mode

	// TTL is the packet hold timeout in ticks; <= 0 means unbounded.
	TTL int64

	RngSeed int64

	// Manual disables probabilistic churn entirely; transitions occur
	// only via explicit ForceOnline/ForceOffline calls.
	Manual bool
}

// ManualConfig returns a preset with all probabilities zero, so every
// transition is driven by explicit ForceOnline/ForceOffline calls.
func ManualConfig() SimConfig {
	return SimConfig{
		RoutingMode: routing.ModeDefault,
		Manual:      true,
	}
}

// Validate checks configuration invariants, failing fast with a
// ConfigError.
func (c SimConfig) Validate() error {
	for name, p := range map[string]float64{
		"wake_probability":           c.WakeProbability,
		"sleep_probability":          c.SleepProbability,
		"initial_online_probability": c.InitialOnlineProbability,
	} {
		if p < 0 || p > 1 {
			return &ConfigError{Reason: fmt.Sprintf("%s must be in [0,1], got %v", name, p)}
		}
	}
	if c.MaxTicks < 0 {
		return &ConfigError{Reason: "max_ticks must be non-negative"}
	}
	if c.RoutingMode != routing.ModeDefault && c.RoutingMode != routing.ModeProphet {
		return &ConfigError{Reason: fmt.Sprintf("unknown routing_mode %q", c.RoutingMode)}
	}
	return nil
}

func (c SimConfig) churnConfig() churn.Config {
	return churn.Config{
		WakeProbability:          c.WakeProbability,
		SleepProbability:         c.SleepProbability,
		InitialOnlineProbability: c.InitialOnlineProbability,
		Manual:                   c.Manual,
	}
}
