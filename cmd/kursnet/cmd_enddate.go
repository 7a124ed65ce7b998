package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kursnet-xml-tool/internal/dates"
)

var endDateCmd = &cobra.Command{
	Use:   "end-date <start> <weeks>",
	Short: "Compute the inclusive end date of a course lasting <weeks> weeks",
	Example: `  kursnet end-date 01.01.2024 1    # 2024-01-07
  kursnet end-date 2024-01-01 2    # 2024-01-14`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weeks, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid weeks %q", args[1])
		}
		end, ok := dates.ProjectEndDate(args[0], weeks)
		if !ok {
			return fmt.Errorf("cannot compute end date from start %q and %s weeks", args[0], args[1])
		}
		fmt.Fprintln(cmd.OutOrStdout(), end)
		return nil
	},
}
