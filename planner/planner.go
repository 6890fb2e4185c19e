package planner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/logger"
	"github.com/kbukum/sporeplan/observability"
	"github.com/kbukum/sporeplan/recipe"
	"github.com/kbukum/sporeplan/schedule"
	"github.com/kbukum/sporeplan/validation"
)

// DefaultStartOffset moves the default start two days into the past so a
// fresh plan already has overdue and current tasks.
const DefaultStartOffset = 48 * time.Hour

// Request describes the batch to plan.
type Request struct {
	// Recipe is the name the loader resolves.
	Recipe string `json:"recipe" validate:"required"`
	// BatchName defaults to "<recipe> batch".
	BatchName string `json:"batch_name"`
	// QtyUnits defaults to the recipe's default scale.
	QtyUnits float64 `json:"qty_units" validate:"gte=0"`
	// Start defaults to now minus the planner's start offset.
	Start time.Time `json:"start"`
	// Notes are copied onto the batch.
	Notes string `json:"notes"`
}

// Planner creates batch plans from recipes.
type Planner struct {
	loader      recipe.Loader
	scheduler   Scheduler
	log         *logger.Logger
	now         func() time.Time
	newID       func() string
	startOffset time.Duration
}

// Option configures a Planner.
type Option func(*Planner)

// WithScheduler sets the Scheduler. The default is the linear policy.
func WithScheduler(s Scheduler) Option {
	return func(p *Planner) { p.scheduler = s }
}

// WithLogger sets the logger used for lint warnings and plan summaries.
func WithLogger(l *logger.Logger) Option {
	return func(p *Planner) { p.log = l }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithIDGenerator sets the function producing batch and task IDs.
func WithIDGenerator(fn func() string) Option {
	return func(p *Planner) { p.newID = fn }
}

// WithStartOffset sets how far before now a plan starts when the request
// gives no start.
func WithStartOffset(d time.Duration) Option {
	return func(p *Planner) { p.startOffset = d }
}

// New creates a Planner reading recipes from loader.
func New(loader recipe.Loader, opts ...Option) *Planner {
	p := &Planner{
		loader:      loader,
		scheduler:   FromPolicy(schedule.Linear{}),
		log:         logger.WithComponent("planner"),
		now:         time.Now,
		newID:       uuid.NewString,
		startOffset: DefaultStartOffset,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan loads the requested recipe and plans a batch of it.
func (p *Planner) Plan(ctx context.Context, req Request) (*Plan, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	if p.loader == nil {
		return nil, errors.InvalidInput("recipe", "no recipe loader is configured")
	}
	r, err := p.loader.Load(req.Recipe)
	if err != nil {
		return nil, err
	}
	return p.PlanRecipe(ctx, r, req)
}

// PlanRecipe plans a batch of an already loaded recipe. req.Recipe is
// ignored.
func (p *Planner) PlanRecipe(ctx context.Context, r *recipe.Recipe, req Request) (*Plan, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanPlan)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRecipe, r.Name)

	plan, err := p.planRecipe(ctx, r, req)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrBatchID, plan.Batch.ID)
	return plan, nil
}

// planRecipe validates r as written, since resolving folds steps with the
// same key together, then validates the flattened result.
func (p *Planner) planRecipe(ctx context.Context, r *recipe.Recipe, req Request) (*Plan, error) {
	if err := recipe.Validate(r); err != nil {
		return nil, err
	}
	flat, err := recipe.Resolve(r, p.loader)
	if err != nil {
		return nil, err
	}
	if err := recipe.Validate(flat); err != nil {
		return nil, err
	}

	issues := recipe.Lint(flat)
	for _, issue := range issues {
		p.log.Warn("recipe lint", logger.Fields(
			logger.FieldRecipe, flat.Name,
			logger.FieldStepKey, issue.StepKey,
			"field", issue.Field,
			"message", issue.Message,
		))
	}

	if req.QtyUnits == 0 {
		req.QtyUnits = flat.DefaultScale
	}
	plan, err := p.plan(ctx, flat.Name, flat.ScheduleSteps(), req)
	if err != nil {
		return nil, err
	}
	plan.Issues = issues
	return plan, nil
}

// PlanSteps plans a batch directly from scheduler steps, skipping recipe
// loading, include resolution and validation. name becomes the batch's
// recipe name.
func (p *Planner) PlanSteps(ctx context.Context, name string, steps []schedule.Step, req Request) (*Plan, error) {
	return p.plan(ctx, name, steps, req)
}

func (p *Planner) plan(ctx context.Context, recipeName string, steps []schedule.Step, req Request) (*Plan, error) {
	now := p.now()
	start := req.Start
	if start.IsZero() {
		start = now.Add(-p.startOffset)
	}

	entries, err := p.scheduler.Schedule(ctx, steps, start)
	if err != nil {
		return nil, err
	}

	name := req.BatchName
	if name == "" {
		name = recipeName + " batch"
	}
	batch := Batch{
		ID:                p.newID(),
		Name:              name,
		RecipeName:        recipeName,
		QtyUnits:          req.QtyUnits,
		Stage:             StagePlan,
		StartDate:         start,
		TargetHarvestDate: schedule.End(entries),
		Notes:             req.Notes,
		CreatedAt:         now,
	}
	if batch.TargetHarvestDate.IsZero() {
		batch.TargetHarvestDate = start
	}

	tasks := make([]Task, len(entries))
	for i, e := range entries {
		tasks[i] = Task{
			ID:          p.newID(),
			BatchID:     batch.ID,
			Title:       e.Title,
			StepKey:     e.StepKey,
			DueAt:       e.DueAt,
			DurationMin: e.DurationMin,
			Status:      StatusOpen,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	p.log.Info("batch planned", logger.Fields(
		logger.FieldRecipe, recipeName,
		logger.FieldBatchID, batch.ID,
		logger.FieldPolicy, p.scheduler.Policy(),
		"tasks", len(tasks),
	))

	return &Plan{Batch: batch, Policy: p.scheduler.Policy(), Tasks: tasks}, nil
}
