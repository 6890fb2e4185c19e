package recipe

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/schedule"
	"github.com/kbukum/sporeplan/validation"
)

// Recipe is a named, versioned cultivation procedure.
type Recipe struct {
	// Name is the recipe identifier used by loaders and includes.
	Name string `json:"name" yaml:"name" validate:"required"`
	// Version is the recipe revision.
	Version int `json:"version,omitempty" yaml:"version,omitempty" validate:"gte=0"`
	// Description is free text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// DefaultScale is the number of units a batch of this recipe produces.
	DefaultScale float64 `json:"default_scale,omitempty" yaml:"default_scale,omitempty" validate:"gte=0"`
	// Media names the grain and substrate used, e.g. {"grain": "milo"}.
	Media map[string]string `json:"media,omitempty" yaml:"media,omitempty"`
	// Includes lists recipes whose steps are scheduled before this one's.
	Includes []string `json:"includes,omitempty" yaml:"includes,omitempty"`
	// Steps is the procedure.
	Steps []StepDef `json:"steps" yaml:"steps" validate:"unique=Key,dive"`
}

// StepDef is one step as written in a recipe.
type StepDef struct {
	Key       string   `json:"key" yaml:"key" validate:"required"`
	Title     string   `json:"title" yaml:"title" validate:"required"`
	Duration  Duration `json:"duration,omitzero" yaml:"duration,omitempty"`
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// Step converts the definition into scheduler input.
func (d StepDef) Step() schedule.Step {
	return schedule.Step{
		Key:       d.Key,
		Title:     d.Title,
		Minutes:   d.Duration.Minutes(),
		DependsOn: d.DependsOn,
	}
}

// ScheduleSteps converts the recipe's own steps into scheduler input.
// Includes must be flattened with Resolve first.
func (r *Recipe) ScheduleSteps() []schedule.Step {
	steps := make([]schedule.Step, len(r.Steps))
	for i, d := range r.Steps {
		steps[i] = d.Step()
	}
	return steps
}

// StepKeys returns the keys of the recipe's own steps in order.
func (r *Recipe) StepKeys() []string {
	keys := make([]string, len(r.Steps))
	for i, d := range r.Steps {
		keys[i] = d.Key
	}
	return keys
}

// Validate checks required fields, key uniqueness and self-dependencies.
func Validate(r *Recipe) error {
	if r == nil {
		return errors.MissingField("recipe")
	}
	v := validation.New()
	v.Merge("recipe", validation.Validate(r))
	if !v.HasErrors() {
		checkSelfDependencies(v, r.Steps)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr.WithDetail("recipe", r.Name)
	}
	return nil
}

func checkSelfDependencies(v *validation.Validator, steps []StepDef) {
	for i, s := range steps {
		for j, dep := range s.DependsOn {
			if dep == s.Key {
				v.AddError(fmt.Sprintf("steps[%d].depends_on[%d]", i, j), "must not reference the step itself")
			}
		}
	}
}

// stepList wraps a bare step array so struct tags apply to it.
type stepList struct {
	Steps []StepDef `json:"steps" validate:"unique=Key,dive"`
}

// ParseStepsJSON decodes and validates a JSON array of steps, the form in
// which a recipe's procedure is submitted and stored.
func ParseStepsJSON(data []byte) ([]StepDef, error) {
	var list stepList
	if err := json.Unmarshal(data, &list.Steps); err != nil {
		return nil, errors.InvalidFormat("steps", "JSON array of steps").WithCause(err)
	}
	if list.Steps == nil {
		list.Steps = []StepDef{}
	}

	v := validation.New()
	v.Merge("steps", validation.Validate(list))
	if !v.HasErrors() {
		checkSelfDependencies(v, list.Steps)
	}
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}
	return list.Steps, nil
}
