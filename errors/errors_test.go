package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.Error() != "NOT_FOUND: not found" {
		t.Errorf("unexpected Error(): %q", err.Error())
	}
}

func TestAppError_NotFound(t *testing.T) {
	err := NotFound("recipe", "monotub")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Details["resource"] != "recipe" {
		t.Errorf("expected resource=recipe, got %v", err.Details["resource"])
	}
	if err.Details["id"] != "monotub" {
		t.Errorf("expected id=monotub, got %v", err.Details["id"])
	}
	if !strings.Contains(err.Message, `"monotub"`) {
		t.Errorf("expected id in message, got %q", err.Message)
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("recipe", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAppError_CycleDetected(t *testing.T) {
	err := CycleDetected([]string{"a", "b", "a"})
	if err.Code != ErrCodeCycleDetected {
		t.Errorf("expected CYCLE_DETECTED, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "a -> b -> a") {
		t.Errorf("expected path in message, got %q", err.Message)
	}
	path, ok := err.Details["cycle"].([]string)
	if !ok || len(path) != 3 {
		t.Fatalf("expected cycle details, got %v", err.Details["cycle"])
	}
	if err.ExitCode() != ExitCycle {
		t.Errorf("expected exit %d, got %d", ExitCycle, err.ExitCode())
	}
}

func TestAppError_Internal(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Internal(cause)
	if err.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
	if !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("expected cause in Error(), got %q", err.Error())
	}
}

func TestAppError_InputConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		code  ErrorCode
		field string
	}{
		{"invalid input", InvalidInput("policy", "unknown policy"), ErrCodeInvalidInput, "policy"},
		{"missing field", MissingField("key"), ErrCodeMissingField, "key"},
		{"invalid format", InvalidFormat("start", "RFC3339"), ErrCodeInvalidFormat, "start"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Details["field"] != tc.field {
				t.Errorf("expected field=%s, got %v", tc.field, tc.err.Details["field"])
			}
			if tc.err.ExitCode() != ExitInvalid {
				t.Errorf("expected exit %d, got %d", ExitInvalid, tc.err.ExitCode())
			}
		})
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := Validation("bad").WithDetail("a", 1).WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NotFound("recipe", "x"))
	if !HasCode(wrapped, ErrCodeNotFound) {
		t.Error("expected wrapped NOT_FOUND to match")
	}
	if HasCode(wrapped, ErrCodeCycleDetected) {
		t.Error("expected code mismatch")
	}
	if HasCode(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("plain errors carry no code")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", stderrors.New("x"), ExitFailure},
		{"not found", NotFound("recipe", "x"), ExitNotFound},
		{"wrapped cycle", fmt.Errorf("w: %w", CycleDetected([]string{"a", "a"})), ExitCycle},
		{"unknown code", New("SOMETHING_ELSE", "x"), ExitFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestToResponse_JSON(t *testing.T) {
	resp := MissingField("title").ToResponse()
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"code":"MISSING_FIELD"`) {
		t.Errorf("expected code in JSON, got %s", s)
	}
	if !strings.Contains(s, `"field":"title"`) {
		t.Errorf("expected details in JSON, got %s", s)
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(stderrors.New("x")); ok {
		t.Error("expected plain error not to convert")
	}
	appErr, ok := AsAppError(fmt.Errorf("w: %w", Internal(nil)))
	if !ok || appErr.Code != ErrCodeInternal {
		t.Errorf("expected wrapped AppError, got %v", appErr)
	}
	if !IsAppError(appErr) {
		t.Error("expected IsAppError")
	}
}
