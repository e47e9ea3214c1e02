package churn

import "fmt"

// Config configures per-tick online/offline churn transitions. In
// Manual mode all three probabilities are ignored and transitions
// occur only via explicit ForceOnline/ForceOffline calls.
type Config struct {
	WakeProbability          float64
	SleepProbability         float64
	InitialOnlineProbability float64
	Manual                   bool
}

// ManualConfig returns a preset with all probabilities zero and
// manual mode on.
func ManualConfig() Config {
	return Config{Manual: true}
}

// Validate checks that probabilities lie within [0,1]. Manual mode
// configs skip the probability checks since the fields are ignored.
func (c Config) Validate() error {
	if c.Manual {
		return nil
	}
	for name, p := range map[string]float64{
		"wake_probability":           c.WakeProbability,
		"sleep_probability":          c.SleepProbability,
		"initial_online_probability": c.InitialOnlineProbability,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("churn: %s must be in [0,1], got %v", name, p)
		}
	}
	return nil
}
