package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/planner"
	"github.com/kbukum/sporeplan/recipe"
	"github.com/kbukum/sporeplan/schedule"
	"github.com/kbukum/sporeplan/validation"
)

// Output formats.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var outputFormats = []string{outputTable, outputJSON, outputYAML}

const dueLayout = "Mon 2006-01-02 15:04"

func checkOutput(format string) error {
	if appErr := validation.New().OneOf("output", format, outputFormats).Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// render writes v as JSON or YAML, or calls table for the table format.
func render(w io.Writer, format string, v any, table func(*table)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		t := newTable(w)
		table(t)
		return t.flush()
	}
}

// table aligns rows with tabwriter and styles whole lines afterwards so
// escape sequences do not skew column widths.
type table struct {
	out    io.Writer
	buf    bytes.Buffer
	tw     *tabwriter.Writer
	styles map[int]func(...string) string
	rows   int
}

func newTable(out io.Writer) *table {
	t := &table{out: out, styles: map[int]func(...string) string{}}
	t.tw = tabwriter.NewWriter(&t.buf, 0, 0, 2, ' ', 0)
	return t
}

func (t *table) header(cols ...string) {
	t.styles[t.rows] = headerStyle.Render
	t.row(cols...)
}

func (t *table) row(cols ...string) {
	fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
	t.rows++
}

// styled adds a row rendered with style.
func (t *table) styled(style func(...string) string, cols ...string) {
	t.styles[t.rows] = style
	t.row(cols...)
}

func (t *table) flush() error {
	if err := t.tw.Flush(); err != nil {
		return err
	}
	if t.rows == 0 {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(t.buf.String(), "\n"), "\n")
	for i, line := range lines {
		if style, ok := t.styles[i]; ok {
			line = style(strings.TrimRight(line, " "))
		}
		if _, err := fmt.Fprintln(t.out, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// formatMinutes prints whole minutes as the largest exact unit: 2d, 14h, 90m.
func formatMinutes(minutes int) string {
	switch {
	case minutes == 0:
		return "0m"
	case minutes%schedule.MinutesPerDay == 0:
		return strconv.Itoa(minutes/schedule.MinutesPerDay) + "d"
	case minutes%schedule.MinutesPerHour == 0:
		return strconv.Itoa(minutes/schedule.MinutesPerHour) + "h"
	default:
		return strconv.Itoa(minutes) + "m"
	}
}

func renderPlan(w io.Writer, format string, plan *planner.Plan, now time.Time) error {
	return render(w, format, plan, func(t *table) {
		b := plan.Batch
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s, %s units)", b.Name, b.RecipeName, strconv.FormatFloat(b.QtyUnits, 'f', -1, 64))))
		fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("start %s, harvest %s, policy %s",
			b.StartDate.Local().Format(dueLayout), b.TargetHarvestDate.Local().Format(dueLayout), plan.Policy)))
		if n := len(plan.Overdue(now)); n > 0 {
			fmt.Fprintln(w, overdueStyle.Render(fmt.Sprintf("%d of %d tasks overdue", n, len(plan.Tasks))))
		}
		fmt.Fprintln(w)

		t.header("DUE", "STEP", "TITLE", "DURATION", "STATUS")
		for _, task := range plan.Tasks {
			cols := []string{task.DueAt.Local().Format(dueLayout), task.StepKey, task.Title, formatMinutes(task.DurationMin), task.Status}
			if task.IsOpen() && task.DueAt.Before(now) {
				cols[4] = "overdue"
				t.styled(overdueStyle.Render, cols...)
				continue
			}
			t.row(cols...)
		}
	})
}

type orderRow struct {
	Position  int      `json:"position" yaml:"position"`
	Key       string   `json:"key" yaml:"key"`
	Title     string   `json:"title" yaml:"title"`
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

func renderOrder(w io.Writer, format string, order []schedule.Step) error {
	rows := make([]orderRow, len(order))
	for i, s := range order {
		rows[i] = orderRow{Position: i + 1, Key: s.Key, Title: s.Title, DependsOn: s.DependsOn}
	}
	return render(w, format, rows, func(t *table) {
		t.header("#", "KEY", "TITLE", "DEPENDS ON")
		for _, r := range rows {
			t.row(strconv.Itoa(r.Position), r.Key, r.Title, strings.Join(r.DependsOn, ", "))
		}
	})
}

type durationRow struct {
	Input   string  `json:"input" yaml:"input"`
	Minutes float64 `json:"minutes" yaml:"minutes"`
	Valid   bool    `json:"valid" yaml:"valid"`
}

func renderDurations(w io.Writer, format string, rows []durationRow) error {
	return render(w, format, rows, func(t *table) {
		t.header("INPUT", "MINUTES", "VALID")
		for _, r := range rows {
			cols := []string{strconv.Quote(r.Input), strconv.FormatFloat(r.Minutes, 'f', -1, 64), strconv.FormatBool(r.Valid)}
			if !r.Valid {
				t.styled(overdueStyle.Render, cols...)
				continue
			}
			t.row(cols...)
		}
	})
}

type recipeRow struct {
	Name        string   `json:"name" yaml:"name"`
	Version     int      `json:"version" yaml:"version"`
	Steps       int      `json:"steps" yaml:"steps"`
	Includes    []string `json:"includes,omitempty" yaml:"includes,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

func renderRecipes(w io.Writer, format string, rows []recipeRow) error {
	return render(w, format, rows, func(t *table) {
		t.header("NAME", "VERSION", "STEPS", "INCLUDES", "DESCRIPTION")
		for _, r := range rows {
			t.row(r.Name, strconv.Itoa(r.Version), strconv.Itoa(r.Steps), strings.Join(r.Includes, ", "), r.Description)
		}
	})
}

type validationReport struct {
	Recipe string         `json:"recipe" yaml:"recipe"`
	Valid  bool           `json:"valid" yaml:"valid"`
	Errors []string       `json:"errors,omitempty" yaml:"errors,omitempty"`
	Issues []recipe.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func renderValidation(w io.Writer, format string, reports []validationReport) error {
	return render(w, format, reports, func(t *table) {
		t.header("RECIPE", "RESULT", "DETAIL")
		for _, r := range reports {
			for _, e := range r.Errors {
				t.styled(errorStyle.Render, r.Recipe, "error", e)
			}
			for _, issue := range r.Issues {
				t.styled(overdueStyle.Render, r.Recipe, "warning", issue.String())
			}
			if r.Valid && len(r.Issues) == 0 {
				t.row(r.Recipe, "ok", "")
			}
		}
	})
}

// errorLines flattens an error for display: the message, then one line per
// field error.
func errorLines(err error) []string {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return []string{err.Error()}
	}
	fields, ok := appErr.Details["fields"].([]validation.FieldError)
	if !ok || len(fields) == 0 {
		return []string{appErr.Error()}
	}
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = f.Field + ": " + f.Message
	}
	return lines
}
