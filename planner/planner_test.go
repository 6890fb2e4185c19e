package planner

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/logger"
	"github.com/kbukum/sporeplan/recipe"
	"github.com/kbukum/sporeplan/schedule"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestPlanner(loader recipe.Loader, buf *bytes.Buffer, opts ...Option) *Planner {
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
		WithLogger(logger.NewWithWriter(buf, "debug", "test")),
	}
	return New(loader, append(base, opts...)...)
}

func TestPlanner_PlanBuiltin(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPlanner(recipe.NewLoader(recipe.Builtin()), &buf)

	plan, err := p.Plan(context.Background(), Request{Recipe: "monotub-3-5lb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := fixedNow.Add(-DefaultStartOffset)
	b := plan.Batch
	if b.ID != "id-1" || b.Name != "monotub-3-5lb batch" || b.RecipeName != "monotub-3-5lb" {
		t.Errorf("unexpected batch identity: %+v", b)
	}
	if b.QtyUnits != 20 || b.Stage != StagePlan || !b.StartDate.Equal(start) || !b.CreatedAt.Equal(fixedNow) {
		t.Errorf("unexpected batch fields: %+v", b)
	}
	if plan.Policy != schedule.PolicyLinear {
		t.Errorf("expected linear policy, got %s", plan.Policy)
	}

	wantKeys := []string{"hydrate_grain", "sterilize_grain", "cool", "inoc", "spawn", "fruit", "harvest"}
	wantMinutes := []int{720, 840, 1320, 1320, 21480, 27240, 27240}
	if len(plan.Tasks) != len(wantKeys) {
		t.Fatalf("expected %d tasks, got %d", len(wantKeys), len(plan.Tasks))
	}
	for i, task := range plan.Tasks {
		if task.StepKey != wantKeys[i] {
			t.Errorf("task %d: expected %s, got %s", i, wantKeys[i], task.StepKey)
		}
		if want := start.Add(time.Duration(wantMinutes[i]) * time.Minute); !task.DueAt.Equal(want) {
			t.Errorf("%s: expected due %v, got %v", task.StepKey, want, task.DueAt)
		}
		if task.BatchID != b.ID || task.Status != StatusOpen || task.ID != fmt.Sprintf("id-%d", i+2) {
			t.Errorf("unexpected task fields: %+v", task)
		}
	}
	if !b.TargetHarvestDate.Equal(plan.Tasks[6].DueAt) {
		t.Errorf("expected target harvest %v, got %v", plan.Tasks[6].DueAt, b.TargetHarvestDate)
	}
	if len(plan.Issues) != 0 {
		t.Errorf("expected no lint issues, got %v", plan.Issues)
	}
	if !strings.Contains(buf.String(), "batch planned") {
		t.Errorf("expected summary log line, got %s", buf.String())
	}
}

func TestPlanner_RequestOverrides(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPlanner(recipe.NewLoader(recipe.Builtin()), &buf)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	plan, err := p.Plan(context.Background(), Request{
		Recipe:    "grain-prep",
		BatchName: "Batch #24",
		QtyUnits:  3,
		Start:     start,
		Notes:     "rye instead of milo",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Batch.Name != "Batch #24" || plan.Batch.QtyUnits != 3 || plan.Batch.Notes != "rye instead of milo" {
		t.Errorf("expected request fields on batch, got %+v", plan.Batch)
	}
	if !plan.Tasks[0].DueAt.Equal(start.Add(12 * time.Hour)) {
		t.Errorf("expected first task 12h after start, got %v", plan.Tasks[0].DueAt)
	}
}

func TestPlanner_Errors(t *testing.T) {
	loader := recipe.NewLoader(fstest.MapFS{
		"loop.yaml": {Data: []byte("steps:\n  - key: a\n    title: A\n    depends_on: [b]\n  - key: b\n    title: B\n    depends_on: [a]\n")},
		"dupe.yaml": {Data: []byte("steps:\n  - key: a\n    title: A\n  - key: a\n    title: A again\n")},
	})

	tests := []struct {
		name string
		req  Request
		code errors.ErrorCode
	}{
		{"missing recipe name", Request{}, errors.ErrCodeInvalidInput},
		{"negative quantity", Request{Recipe: "loop", QtyUnits: -1}, errors.ErrCodeInvalidInput},
		{"unknown recipe", Request{Recipe: "ghost"}, errors.ErrCodeNotFound},
		{"dependency cycle", Request{Recipe: "loop"}, errors.ErrCodeCycleDetected},
		{"duplicate keys", Request{Recipe: "dupe"}, errors.ErrCodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := newTestPlanner(loader, &buf).Plan(context.Background(), tc.req)
			if !errors.HasCode(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestPlanner_NoLoader(t *testing.T) {
	var buf bytes.Buffer
	_, err := newTestPlanner(nil, &buf).Plan(context.Background(), Request{Recipe: "x"})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestPlanner_LintWarningsLogged(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPlanner(nil, &buf)
	r := &recipe.Recipe{Name: "sloppy", Steps: []recipe.StepDef{
		{Key: "a", Title: "A", Duration: recipe.Token("a while")},
		{Key: "b", Title: "B", Duration: recipe.Token("1h"), DependsOn: []string{"ghost"}},
	}}

	plan, err := p.PlanRecipe(context.Background(), r, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", plan.Issues)
	}
	if got := strings.Count(buf.String(), "recipe lint"); got != 2 {
		t.Errorf("expected 2 lint log lines, got %d: %s", got, buf.String())
	}
	if plan.Tasks[0].DurationMin != 0 || plan.Tasks[1].DurationMin != 60 {
		t.Errorf("unexpected durations: %+v", plan.Tasks)
	}
}

func TestPlanner_PlanStepsCriticalPath(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPlanner(nil, &buf, WithScheduler(FromPolicy(schedule.CriticalPath{})), WithStartOffset(0))
	steps := []schedule.Step{
		{Key: "grain", Title: "Grain", Minutes: 600},
		{Key: "agar", Title: "Agar", Minutes: 120},
		{Key: "inoc", Title: "Inoculate", Minutes: 30, DependsOn: []string{"grain", "agar"}},
	}

	plan, err := p.PlanSteps(context.Background(), "parallel", steps, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Policy != schedule.PolicyCriticalPath {
		t.Errorf("expected critical path policy, got %s", plan.Policy)
	}
	due := map[string]time.Duration{}
	for _, task := range plan.Tasks {
		due[task.StepKey] = task.DueAt.Sub(fixedNow)
	}
	if due["grain"] != 10*time.Hour || due["agar"] != 2*time.Hour || due["inoc"] != 10*time.Hour+30*time.Minute {
		t.Errorf("unexpected due offsets: %v", due)
	}
	if plan.Batch.RecipeName != "parallel" {
		t.Errorf("expected recipe name parallel, got %s", plan.Batch.RecipeName)
	}
}

func TestPlanner_EmptyRecipe(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPlanner(nil, &buf)
	plan, err := p.PlanRecipe(context.Background(), &recipe.Recipe{Name: "empty"}, Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(plan.Tasks))
	}
	if !plan.Batch.TargetHarvestDate.Equal(plan.Batch.StartDate) {
		t.Errorf("expected target harvest at start, got %v", plan.Batch.TargetHarvestDate)
	}
}

func TestPlanner_CancelledContext(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPlanner(recipe.NewLoader(recipe.Builtin()), &buf).Plan(ctx, Request{Recipe: "grain-prep"})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPlan_OverdueAndDueBetween(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPlanner(recipe.NewLoader(recipe.Builtin()), &buf)
	plan, err := p.Plan(context.Background(), Request{Recipe: "monotub-3-5lb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Start is two days back: the grain steps (12h, 14h, 22h, 22h) are past due.
	overdue := plan.Overdue(fixedNow)
	if len(overdue) != 4 || overdue[3].StepKey != "inoc" {
		t.Errorf("expected 4 overdue tasks ending with inoc, got %+v", overdue)
	}

	plan.Tasks[0].Status = StatusDone
	if got := len(plan.Overdue(fixedNow)); got != 3 {
		t.Errorf("expected done tasks to drop out, got %d overdue", got)
	}

	week := plan.DueBetween(fixedNow, fixedNow.Add(14*24*time.Hour))
	if len(week) != 1 || week[0].StepKey != "spawn" {
		t.Errorf("expected only spawn due in the next two weeks, got %+v", week)
	}
}
