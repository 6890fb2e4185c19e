package recipe

import "fmt"

// Issue is a problem the scheduler tolerates silently but an author would
// want to hear about.
type Issue struct {
	Field   string `json:"field" yaml:"field"`
	StepKey string `json:"step_key" yaml:"step_key"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s (%s): %s", i.Field, i.StepKey, i.Message)
}

// Lint reports dependency keys that match no step and durations that resolve
// to zero or less because they could not be parsed or are negative.
func Lint(r *Recipe) []Issue {
	known := make(map[string]bool, len(r.Steps))
	for _, s := range r.Steps {
		known[s.Key] = true
	}

	var issues []Issue
	for i, s := range r.Steps {
		if !s.Duration.Valid() {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("steps[%d].duration", i),
				StepKey: s.Key,
				Message: fmt.Sprintf("duration %q is not understood and counts as zero", s.Duration.String()),
			})
		} else if s.Duration.Minutes() < 0 {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("steps[%d].duration", i),
				StepKey: s.Key,
				Message: fmt.Sprintf("duration %s is negative", s.Duration.String()),
			})
		}
		for j, dep := range s.DependsOn {
			if !known[dep] {
				issues = append(issues, Issue{
					Field:   fmt.Sprintf("steps[%d].depends_on[%d]", i, j),
					StepKey: s.Key,
					Message: fmt.Sprintf("unknown step %q is ignored", dep),
				})
			}
		}
	}
	return issues
}
