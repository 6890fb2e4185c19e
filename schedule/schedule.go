package schedule

import "time"

// Scheduler orders steps and projects them with a Policy.
type Scheduler struct {
	Policy Policy
}

// NewScheduler creates a Scheduler. A nil policy selects Linear.
func NewScheduler(policy Policy) *Scheduler {
	if policy == nil {
		policy = Linear{}
	}
	return &Scheduler{Policy: policy}
}

// Project orders steps topologically and returns one Entry per step in that
// order. The only error is a dependency cycle.
func (s *Scheduler) Project(steps []Step, start time.Time) ([]Entry, error) {
	order, err := TopologicalOrder(steps)
	if err != nil {
		return nil, err
	}
	policy := s.Policy
	if policy == nil {
		policy = Linear{}
	}
	return policy.Project(order, start), nil
}

// Project schedules steps on a single linear timeline starting at start.
func Project(steps []Step, start time.Time) ([]Entry, error) {
	return NewScheduler(Linear{}).Project(steps, start)
}

// End returns the latest due time among entries, or the zero time when there
// are none.
func End(entries []Entry) time.Time {
	var end time.Time
	for i, e := range entries {
		if i == 0 || e.DueAt.After(end) {
			end = e.DueAt
		}
	}
	return end
}
