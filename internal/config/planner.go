package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	defaultThresholdEnv = "DEFAULT_ATTENDANCE_THRESHOLD"
	windowSizesEnv      = "PLANNER_WINDOW_SIZES"
	weeksAheadEnv       = "PLANNER_WEEKS_AHEAD"
	suggestionLimitEnv  = "PLANNER_SUGGESTION_LIMIT"

	defaultThreshold       = 75
	defaultWeeksAhead      = 3
	defaultSuggestionLimit = 3
)

type PlannerConfig struct {
	// DefaultThreshold applies when a student has no stored threshold
	// config yet.
	DefaultThreshold int
	WindowSizes      []int
	WeeksAhead       int
	SuggestionLimit  int
}

func LoadPlannerConfig() *PlannerConfig {
	threshold := defaultThreshold
	if v := os.Getenv(defaultThresholdEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 100 {
			threshold = parsed
		}
	}

	weeksAhead := defaultWeeksAhead
	if v := os.Getenv(weeksAheadEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			weeksAhead = parsed
		}
	}

	suggestionLimit := defaultSuggestionLimit
	if v := os.Getenv(suggestionLimitEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			suggestionLimit = parsed
		}
	}

	return &PlannerConfig{
		DefaultThreshold: threshold,
		WindowSizes:      parseWindowSizes(os.Getenv(windowSizesEnv)),
		WeeksAhead:       weeksAhead,
		SuggestionLimit:  suggestionLimit,
	}
}

// parseWindowSizes reads a comma-separated list of day counts, e.g.
// "3,5,7". Entries that fail to parse or are non-positive are dropped;
// an empty result falls back to the defaults.
func parseWindowSizes(raw string) []int {
	var sizes []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := strconv.Atoi(part)
		if err != nil || parsed <= 0 {
			continue
		}
		sizes = append(sizes, parsed)
	}
	if len(sizes) == 0 {
		return []int{3, 5, 7}
	}
	return sizes
}
