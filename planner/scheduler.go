package planner

import (
	"context"
	"time"

	"github.com/kbukum/sporeplan/schedule"
)

// Scheduler projects steps onto a timeline.
type Scheduler interface {
	// Policy names the timing policy, e.g. "linear".
	Policy() string
	Schedule(ctx context.Context, steps []schedule.Step, start time.Time) ([]schedule.Entry, error)
}

// FromPolicy adapts a schedule.Policy into a Scheduler. A nil policy is linear.
func FromPolicy(policy schedule.Policy) Scheduler {
	return &policyScheduler{inner: schedule.NewScheduler(policy)}
}

type policyScheduler struct {
	inner *schedule.Scheduler
}

func (s *policyScheduler) Policy() string { return s.inner.Policy.Name() }

func (s *policyScheduler) Schedule(ctx context.Context, steps []schedule.Step, start time.Time) ([]schedule.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.inner.Project(steps, start)
}
