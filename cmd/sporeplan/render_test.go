package main

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/planner"
	"github.com/kbukum/sporeplan/validation"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "90m"},
		{720, "12h"},
		{1440, "1d"},
		{20160, "14d"},
		{1500, "25h"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.in); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "empty", in: "", want: time.Time{}},
		{name: "now", in: "NOW", want: now},
		{name: "unix millis", in: "86400000", want: time.UnixMilli(86400000)},
		{name: "rfc3339", in: "2025-01-01T06:30:00Z", want: time.Date(2025, 1, 1, 6, 30, 0, 0, time.UTC)},
		{name: "date", in: "2025-01-01", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)},
		{name: "minute", in: " 2025-01-01T06:30 ", want: time.Date(2025, 1, 1, 6, 30, 0, 0, time.Local)},
		{name: "garbage", in: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStart(tt.in, now)
			if tt.wantErr {
				if !errors.HasCode(err, errors.ErrCodeInvalidFormat) {
					t.Fatalf("error = %v, want INVALID_FORMAT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRecipeFile(t *testing.T) {
	tests := map[string]bool{
		"monotub-3-5lb":       false,
		"tek.yaml":            true,
		"tek.YML":             true,
		"tek.json":            true,
		"./recipes/tek":       true,
		"grain-prep.v2":       false,
		"recipes/nested.yaml": true,
	}
	for in, want := range tests {
		if got := isRecipeFile(in); got != want {
			t.Errorf("isRecipeFile(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRenderFormats(t *testing.T) {
	rows := []durationRow{{Input: "2h", Minutes: 120, Valid: true}}

	tests := []struct {
		format string
		want   []string
	}{
		{outputTable, []string{"INPUT", "MINUTES", `"2h"`, "120", "true"}},
		{outputJSON, []string{`"input": "2h"`, `"minutes": 120`, `"valid": true`}},
		{outputYAML, []string{"- input: 2h", "  minutes: 120", "  valid: true"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := renderDurations(&buf, tt.format, rows); err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestRenderEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, outputTable, nil, func(*table) {}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestRenderPlanMarksOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	plan := &planner.Plan{
		Batch:  planner.Batch{Name: "b1", RecipeName: "grain-prep", QtyUnits: 2.5, StartDate: now.Add(-48 * time.Hour), TargetHarvestDate: now},
		Policy: "linear",
		Tasks: []planner.Task{
			{StepKey: "past", Title: "Past", DueAt: now.Add(-time.Hour), DurationMin: 60, Status: planner.StatusOpen},
			{StepKey: "done", Title: "Done", DueAt: now.Add(-time.Hour), DurationMin: 60, Status: planner.StatusDone},
			{StepKey: "later", Title: "Later", DueAt: now.Add(time.Hour), DurationMin: 1440, Status: planner.StatusOpen},
		},
	}

	var buf bytes.Buffer
	if err := renderPlan(&buf, outputTable, plan, now); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	find := func(key string) string {
		for _, l := range lines {
			if strings.Contains(l, key) {
				return l
			}
		}
		t.Fatalf("no line for %q in:\n%s", key, buf.String())
		return ""
	}

	if !strings.Contains(buf.String(), "b1 (grain-prep, 2.5 units)") {
		t.Errorf("missing title:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "1 of 3 tasks overdue") {
		t.Errorf("missing overdue summary:\n%s", buf.String())
	}
	if l := find("past"); !strings.Contains(l, "overdue") {
		t.Errorf("past task not marked overdue: %q", l)
	}
	if l := find("Done"); strings.Contains(l, "overdue") {
		t.Errorf("done task marked overdue: %q", l)
	}
	if l := find("later"); !strings.Contains(l, "open") || !strings.Contains(l, "1d") {
		t.Errorf("later line = %q", l)
	}
}

func TestErrorLines(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"plain", stderrors.New("boom"), []string{"boom"}},
		{"app error", errors.NotFound("recipe", "x"), []string{errors.NotFound("recipe", "x").Error()}},
		{
			"field errors",
			validation.New().Required("name", "").Min("qty", -1, 0).Validate(),
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorLines(tt.err)
			if tt.want == nil {
				if len(got) != 2 || !strings.HasPrefix(got[0], "name: ") || !strings.HasPrefix(got[1], "qty: ") {
					t.Errorf("got %q", got)
				}
				return
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
