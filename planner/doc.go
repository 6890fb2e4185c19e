// Package planner turns a recipe into a batch and its task list.
//
// A Planner loads a recipe, flattens its includes, validates it, projects
// the schedule and creates one open task per schedule entry:
//
//	p := planner.New(recipe.NewLoader(recipe.Builtin()))
//	plan, err := p.Plan(ctx, planner.Request{Recipe: "monotub-3-5lb"})
//
// The projection itself goes through a Scheduler, which can be decorated
// with tracing, metrics and logging the same way as any other component.
package planner
