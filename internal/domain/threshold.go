package domain

// ThresholdConfig holds the minimum attendance percentages a student aims
// to keep: a global default plus per-subject overrides keyed by Subject.Key.
type ThresholdConfig struct {
	Global    int            `json:"global"`
	Overrides map[string]int `json:"overrides,omitempty"`
}

func NewThresholdConfig(global int) ThresholdConfig {
	return ThresholdConfig{
		Global:    global,
		Overrides: make(map[string]int),
	}
}
