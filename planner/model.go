package planner

import (
	"time"

	"github.com/kbukum/sporeplan/recipe"
)

// Batch stages.
const (
	StagePlan = "plan"
)

// Task statuses.
const (
	StatusOpen = "open"
	StatusDone = "done"
)

// Batch is one run of a recipe.
type Batch struct {
	ID                string    `json:"id" yaml:"id"`
	Name              string    `json:"name" yaml:"name"`
	RecipeName        string    `json:"recipe" yaml:"recipe"`
	QtyUnits          float64   `json:"qty_units" yaml:"qty_units"`
	Stage             string    `json:"stage" yaml:"stage"`
	StartDate         time.Time `json:"start_date" yaml:"start_date"`
	TargetHarvestDate time.Time `json:"target_harvest_date" yaml:"target_harvest_date"`
	Notes             string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at" yaml:"created_at"`
}

// Task is one scheduled step of a batch.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	BatchID     string    `json:"batch_id" yaml:"batch_id"`
	Title       string    `json:"title" yaml:"title"`
	StepKey     string    `json:"step_key" yaml:"step_key"`
	DueAt       time.Time `json:"due_at" yaml:"due_at"`
	DurationMin int       `json:"duration_min" yaml:"duration_min"`
	Status      string    `json:"status" yaml:"status"`
	Notes       string    `json:"notes" yaml:"notes"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// IsOpen reports whether the task still needs doing.
func (t Task) IsOpen() bool { return t.Status == StatusOpen }

// Plan is a planned batch with its tasks in schedule order.
type Plan struct {
	Batch  Batch          `json:"batch" yaml:"batch"`
	Policy string         `json:"policy" yaml:"policy"`
	Tasks  []Task         `json:"tasks" yaml:"tasks"`
	Issues []recipe.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Overdue returns the open tasks due strictly before now, in schedule order.
func (p *Plan) Overdue(now time.Time) []Task {
	var out []Task
	for _, t := range p.Tasks {
		if t.IsOpen() && t.DueAt.Before(now) {
			out = append(out, t)
		}
	}
	return out
}

// DueBetween returns the open tasks due in [from, to).
func (p *Plan) DueBetween(from, to time.Time) []Task {
	var out []Task
	for _, t := range p.Tasks {
		if t.IsOpen() && !t.DueAt.Before(from) && t.DueAt.Before(to) {
			out = append(out, t)
		}
	}
	return out
}
