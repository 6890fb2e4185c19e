package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/planner"
)

type scheduleOptions struct {
	start  string
	policy string
	batch  string
	qty    float64
	notes  string
	output string
}

func (c *cli) newScheduleCmd() *cobra.Command {
	var opts scheduleOptions

	cmd := &cobra.Command{
		Use:   "schedule <recipe|file>",
		Short: "Plan a batch and print its dated task list",
		Long: `Plan a batch of a recipe: resolve its includes, order the steps and project
a due time for each one. Without --start the batch starts schedule.start_offset
before now (two days by default), so the first tasks already show as overdue.`,
		Example: `  sporeplan schedule monotub-3-5lb
  sporeplan schedule ./recipes/oyster.yaml --start 2025-03-01 --policy critical_path
  sporeplan schedule grain-prep --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(opts.output); err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, e *env) error {
				return runSchedule(ctx, e, args[0], opts)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.start, "start", "", "start time: RFC 3339, YYYY-MM-DD, YYYY-MM-DDTHH:MM, Unix milliseconds or \"now\"")
	f.StringVar(&opts.policy, "policy", "", "timing policy: linear or critical_path (default from config)")
	f.StringVar(&opts.batch, "batch", "", "batch name (default \"<recipe> batch\")")
	f.Float64Var(&opts.qty, "qty", 0, "quantity in units (default: the recipe's default scale)")
	f.StringVar(&opts.notes, "notes", "", "notes stored on the batch")
	f.StringVarP(&opts.output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func runSchedule(ctx context.Context, e *env, name string, opts scheduleOptions) error {
	now := e.now()
	start, err := parseStart(opts.start, now)
	if err != nil {
		return err
	}

	s, err := e.scheduler(opts.policy)
	if err != nil {
		return err
	}
	p := planner.New(e.loader,
		planner.WithScheduler(s),
		planner.WithLogger(e.log.WithComponent("planner")),
		planner.WithClock(e.now),
		planner.WithStartOffset(e.cfg.Schedule.StartOffset),
	)

	r, err := e.load(name)
	if err != nil {
		return err
	}
	plan, err := p.PlanRecipe(ctx, r, planner.Request{
		Recipe:    r.Name,
		BatchName: opts.batch,
		QtyUnits:  opts.qty,
		Start:     start,
		Notes:     opts.notes,
	})
	if err != nil {
		return err
	}
	return renderPlan(e.out, opts.output, plan, now)
}

var startLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// parseStart reads the --start flag. Empty means "let the planner decide";
// dates without a zone are local time.
func parseStart(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return time.Time{}, nil
	case strings.EqualFold(s, "now"):
		return now, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.InvalidFormat("start", "RFC 3339, YYYY-MM-DD, YYYY-MM-DDTHH:MM, Unix milliseconds or now")
}
