// Package validation provides input validation for sporeplan inputs.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Failures are reported as
// *errors.AppError with a "fields" detail listing every offending field.
//
// # Struct Tag Validation
//
//	type StepDef struct {
//	    Key   string `json:"key" validate:"required"`
//	    Title string `json:"title" validate:"required"`
//	}
//	err := validation.Validate(step)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name).OneOf("policy", policy, policies)
//	err := v.Validate()
package validation
