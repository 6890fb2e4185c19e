package validation

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/sporeplan/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "Monotub")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", uuid.New().String(), false},
		{"empty", "", true},
		{"malformed", "not-a-uuid", true},
		{"nil uuid", uuid.Nil.String(), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().RequiredUUID("id", tc.value)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("expected errors=%v, got %v", tc.wantErr, v.Errors())
			}
		})
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"linear", "critical_path"}
	if New().OneOf("policy", "linear", allowed).HasErrors() {
		t.Error("expected allowed value to pass")
	}
	if New().OneOf("policy", "", allowed).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
	v := New().OneOf("policy", "parallel", allowed)
	if !v.HasErrors() {
		t.Fatal("expected error for disallowed value")
	}
	if !strings.Contains(v.Errors()[0].Message, "linear, critical_path") {
		t.Errorf("expected allowed values in message, got %q", v.Errors()[0].Message)
	}
}

func TestValidatorUnique(t *testing.T) {
	v := New().Unique("steps[%d].key", []string{"a", "b", "a", "c", "b"})
	errs := v.Errors()
	if len(errs) != 2 {
		t.Fatalf("expected 2 duplicates, got %v", errs)
	}
	if errs[0].Field != "steps[2].key" || errs[1].Field != "steps[4].key" {
		t.Errorf("unexpected fields: %v", errs)
	}
	if !strings.Contains(errs[0].Message, "index 0") {
		t.Errorf("expected first index in message, got %q", errs[0].Message)
	}
}

func TestValidatorMinAndCheck(t *testing.T) {
	v := New().Min("qty", 0, 1).Check(false, "start", "must be set")
	if len(v.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %v", v.Errors())
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("expected nil for no errors")
	}

	appErr := New().Required("name", "").Required("key", "").Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if appErr.Message != "name: is required; key: is required" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %v", appErr.Details["fields"])
	}
}

func TestValidatorMerge(t *testing.T) {
	inner := New().Required("steps[0].key", "").Validate()

	v := New()
	v.Merge("steps", inner)
	v.Merge("recipe", errors.NotFound("recipe", "x"))
	v.Merge("file", stderrors.New("unreadable"))
	v.Merge("ignored", nil)

	errs := v.Errors()
	if len(errs) != 3 {
		t.Fatalf("expected 3 merged errors, got %v", errs)
	}
	if errs[0].Field != "steps[0].key" {
		t.Errorf("expected nested field kept, got %q", errs[0].Field)
	}
	if errs[1].Field != "recipe" || errs[2].Message != "unreadable" {
		t.Errorf("unexpected merge result: %v", errs)
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("name", "x"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("name", ""); err == nil {
		t.Error("expected error")
	}
}

type stepInput struct {
	Key       string   `json:"key" validate:"required"`
	Title     string   `json:"title" validate:"required,min=1"`
	DependsOn []string `json:"depends_on"`
}

type recipeInput struct {
	Name  string      `json:"name" validate:"required"`
	Scale int         `json:"default_scale" validate:"gte=0"`
	Steps []stepInput `json:"steps" validate:"unique=Key,dive"`
}

func TestValidateStruct_Valid(t *testing.T) {
	in := recipeInput{
		Name:  "grain",
		Steps: []stepInput{{Key: "a", Title: "A"}, {Key: "b", Title: "B"}},
	}
	if err := Validate(in); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}
}

func TestValidateStruct_NestedFieldPaths(t *testing.T) {
	in := recipeInput{
		Scale: -1,
		Steps: []stepInput{{Key: "a", Title: "A"}, {Key: "", Title: ""}},
	}
	err := Validate(in)
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	fields := appErr.Details["fields"].([]FieldError)
	got := make(map[string]string)
	for _, f := range fields {
		got[f.Field] = f.Message
	}
	want := map[string]string{
		"name":           "is required",
		"default_scale":  "must be greater than or equal to 0",
		"steps[1].key":   "is required",
		"steps[1].title": "is required",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: expected %q, got %q (all: %v)", field, msg, got[field], got)
		}
	}
}

func TestValidateStruct_UniqueKeys(t *testing.T) {
	in := recipeInput{
		Name:  "grain",
		Steps: []stepInput{{Key: "a", Title: "A"}, {Key: "a", Title: "again"}},
	}
	err := Validate(in)
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	if !strings.Contains(err.Error(), "steps: must not repeat key") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"DependsOn":    "depends_on",
		"Key":          "key",
		"DefaultScale": "default_scale",
		"already":      "already",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
