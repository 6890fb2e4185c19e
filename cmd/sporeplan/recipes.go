package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/logger"
	"github.com/kbukum/sporeplan/recipe"
	"github.com/kbukum/sporeplan/schedule"
)

func (c *cli) newRecipesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipes",
		Aliases: []string{"recipe"},
		Short:   "List, inspect and validate recipes",
	}
	cmd.AddCommand(
		c.newRecipesListCmd(),
		c.newRecipesShowCmd(),
		c.newRecipesValidateCmd(),
	)
	return cmd
}

func (c *cli) newRecipesListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the recipes found in the recipe directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			return c.run(cmd, func(_ context.Context, e *env) error {
				names, err := e.loader.List()
				if err != nil {
					return err
				}
				rows := make([]recipeRow, 0, len(names))
				for _, name := range names {
					r, err := e.loader.Load(name)
					if err != nil {
						e.log.Warn("skipping recipe", map[string]interface{}{logger.FieldRecipe: name, logger.FieldError: err.Error()})
						continue
					}
					rows = append(rows, recipeRow{
						Name:        name,
						Version:     r.Version,
						Steps:       len(r.Steps),
						Includes:    r.Includes,
						Description: r.Description,
					})
				}
				return renderRecipes(e.out, output, rows)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func (c *cli) newRecipesShowCmd() *cobra.Command {
	var (
		output string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "show <recipe|file>",
		Short: "Print a recipe with its includes flattened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			return c.run(cmd, func(_ context.Context, e *env) error {
				var (
					r   *recipe.Recipe
					err error
				)
				if raw {
					r, err = e.load(args[0])
				} else {
					r, err = e.resolve(args[0])
				}
				if err != nil {
					return err
				}
				return renderRecipe(e.out, output, r)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", outputYAML, "output format: table, json or yaml")
	f.BoolVar(&raw, "raw", false, "print the recipe as written, without resolving includes")
	return cmd
}

func renderRecipe(w io.Writer, format string, r *recipe.Recipe) error {
	return render(w, format, r, func(t *table) {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s v%d", r.Name, r.Version)))
		if r.Description != "" {
			fmt.Fprintln(w, subtleStyle.Render(r.Description))
		}
		fmt.Fprintln(w)
		t.header("KEY", "TITLE", "DURATION", "DEPENDS ON")
		for _, s := range r.Steps {
			t.row(s.Key, s.Title, s.Duration.String(), strings.Join(s.DependsOn, ", "))
		}
	})
}

func (c *cli) newRecipesValidateCmd() *cobra.Command {
	var (
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate <recipe|file>...",
		Short: "Check recipes for structural errors and lint warnings",
		Long: `Check each recipe: required fields, unique step keys, includes that resolve
without cycles, and a dependency graph that can be ordered. Unknown dependency
keys and unparseable durations are reported as warnings; --strict makes them
fail the run too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			return c.run(cmd, func(_ context.Context, e *env) error {
				reports := make([]validationReport, len(args))
				failed := 0
				for i, name := range args {
					reports[i] = e.validateRecipe(name)
					if !reports[i].Valid || (strict && len(reports[i].Issues) > 0) {
						failed++
					}
				}
				if err := renderValidation(e.out, output, reports); err != nil {
					return err
				}
				if failed > 0 {
					return errors.Validation(fmt.Sprintf("%d of %d recipes failed validation", failed, len(args)))
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	f.BoolVar(&strict, "strict", false, "treat warnings as failures")
	return cmd
}

// validateRecipe loads, resolves, validates, orders and lints one recipe,
// collecting every problem instead of stopping at the first.
func (e *env) validateRecipe(name string) validationReport {
	report := validationReport{Recipe: name}
	fail := func(err error) validationReport {
		report.Errors = append(report.Errors, errorLines(err)...)
		return report
	}

	raw, err := e.load(name)
	if err != nil {
		return fail(err)
	}
	if err := recipe.Validate(raw); err != nil {
		return fail(err)
	}
	r, err := recipe.Resolve(raw, e.loader)
	if err != nil {
		return fail(err)
	}
	if err := recipe.Validate(r); err != nil {
		return fail(err)
	}
	if _, err := schedule.TopologicalOrder(r.ScheduleSteps()); err != nil {
		return fail(err)
	}
	report.Valid = true
	report.Issues = recipe.Lint(r)
	return report
}
