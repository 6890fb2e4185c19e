package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/sporeplan/schedule"
)

func (c *cli) newOrderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "order <recipe|file>",
		Short: "Print a recipe's steps in dependency order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context, e *env) error {
				r, err := e.resolve(args[0])
				if err != nil {
					return err
				}
				order, err := schedule.TopologicalOrder(r.ScheduleSteps())
				if err != nil {
					return err
				}
				return renderOrder(e.out, output, order)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}
