package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/sporeplan/schedule"
)

func (c *cli) newDurationCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "duration <value>...",
		Short: "Convert duration tokens such as 14d, 2h or 90m to minutes",
		Long: `Convert duration values to minutes the way recipes are read: "<n>d", "<n>h"
and "<n>m" scale by the unit, other input is taken as a plain number of minutes,
and anything unparseable counts as zero.`,
		Example: `  sporeplan duration 14d 2h 120m 45 soon`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			rows := make([]durationRow, len(args))
			for i, arg := range args {
				rows[i] = durationRow{
					Input:   arg,
					Minutes: schedule.ParseDurationToken(arg),
					Valid:   schedule.IsDurationToken(arg),
				}
			}
			return renderDurations(cmd.OutOrStdout(), output, rows)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}
