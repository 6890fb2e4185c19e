package schedule

import (
	"math"
	"time"
)

// Step is one unit of work in a recipe procedure.
type Step struct {
	// Key identifies the step and is the target of DependsOn references.
	Key string `json:"key" yaml:"key"`
	// Title is a human-readable label.
	Title string `json:"title" yaml:"title"`
	// Minutes is the step's own duration. Negative values are kept as-is for
	// accumulation but report a DurationMin of zero.
	Minutes float64 `json:"minutes" yaml:"minutes"`
	// DependsOn lists prerequisite step keys in the order they are visited.
	// Keys that match no step are ignored.
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// Accumulated offsets are bounded well past the range of time.Duration
// (about 292 years either way) so sums stay finite; offset saturates them.
var (
	maxOffsetMinutes = 2 * float64(math.MaxInt64) / float64(time.Minute)
	minOffsetMinutes = 2 * float64(math.MinInt64) / float64(time.Minute)
)

// Duration returns the step's duration as a time.Duration, saturating
// instead of overflowing.
func (s Step) Duration() time.Duration {
	return offset(s.Minutes)
}

// clampMinutes bounds an accumulated offset. NaN counts as zero.
func clampMinutes(m float64) float64 {
	switch {
	case math.IsNaN(m):
		return 0
	case m > maxOffsetMinutes:
		return maxOffsetMinutes
	case m < minOffsetMinutes:
		return minOffsetMinutes
	}
	return m
}

// offset converts minutes to a time.Duration, saturating at the int64 range.
func offset(minutes float64) time.Duration {
	ns := math.Round(clampMinutes(minutes) * float64(time.Minute))
	switch {
	case ns >= math.MaxInt64:
		return math.MaxInt64
	case ns <= math.MinInt64:
		return math.MinInt64
	}
	return time.Duration(ns)
}

// wholeMinutes rounds to whole minutes, floored at zero and capped at MaxInt.
func wholeMinutes(m float64) int {
	r := math.Round(m)
	switch {
	case math.IsNaN(r) || r <= 0:
		return 0
	case r >= math.MaxInt:
		return math.MaxInt
	}
	return int(r)
}

// Entry is the projected due time for one step.
type Entry struct {
	Title       string    `json:"title" yaml:"title"`
	StepKey     string    `json:"step_key" yaml:"step_key"`
	DurationMin int       `json:"duration_min" yaml:"duration_min"`
	DueAt       time.Time `json:"due_at" yaml:"due_at"`
}

// DueAtMillis returns DueAt as Unix milliseconds.
func (e Entry) DueAtMillis() int64 {
	return e.DueAt.UnixMilli()
}
