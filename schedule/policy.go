package schedule

import (
	"time"

	"github.com/kbukum/sporeplan/errors"
)

// Policy names accepted by PolicyByName.
const (
	PolicyLinear       = "linear"
	PolicyCriticalPath = "critical_path"
)

// Policy projects due times for steps that are already in topological order.
type Policy interface {
	Name() string
	Project(order []Step, start time.Time) []Entry
}

// Linear schedules steps on a single timeline: each step is due once it and
// every step ordered before it have elapsed, whether or not it depends on
// them.
type Linear struct{}

// Name implements Policy.
func (Linear) Name() string { return PolicyLinear }

// Project implements Policy.
func (Linear) Project(order []Step, start time.Time) []Entry {
	entries := make([]Entry, 0, len(order))
	var elapsed float64
	for _, s := range order {
		elapsed = clampMinutes(elapsed + finite(s.Minutes))
		entries = append(entries, newEntry(s, start.Add(offset(elapsed))))
	}
	return entries
}

// CriticalPath lets steps run as soon as their prerequisites finish. A step is
// due at the latest finish among its known prerequisites plus its own
// duration; steps without prerequisites start at the start time.
type CriticalPath struct{}

// Name implements Policy.
func (CriticalPath) Name() string { return PolicyCriticalPath }

// Project implements Policy.
func (CriticalPath) Project(order []Step, start time.Time) []Entry {
	entries := make([]Entry, 0, len(order))
	finish := make(map[string]float64, len(order))
	for _, s := range order {
		var earliest float64
		for _, dep := range s.DependsOn {
			if f, ok := finish[dep]; ok && f > earliest {
				earliest = f
			}
		}
		finish[s.Key] = clampMinutes(earliest + finite(s.Minutes))
		entries = append(entries, newEntry(s, start.Add(offset(finish[s.Key]))))
	}
	return entries
}

// PolicyByName resolves a policy from its name. An empty name selects Linear.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", PolicyLinear:
		return Linear{}, nil
	case PolicyCriticalPath:
		return CriticalPath{}, nil
	}
	return nil, errors.InvalidInput("policy", "unknown scheduling policy "+name).
		WithDetail("allowed", []string{PolicyLinear, PolicyCriticalPath})
}

func newEntry(s Step, due time.Time) Entry {
	return Entry{
		Title:       s.Title,
		StepKey:     s.Key,
		DurationMin: wholeMinutes(s.Minutes),
		DueAt:       due,
	}
}
