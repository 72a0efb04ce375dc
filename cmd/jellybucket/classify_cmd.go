package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Nomadcxx/jellybucket/internal/bucket"
	"github.com/Nomadcxx/jellybucket/internal/pathfmt"
	"github.com/spf13/cobra"
)

func newYearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year <year>...",
		Short: "Print the year bucket for each year",
		Long: `Print the configured year bucket for each argument, one per line.

Arguments may be bare years or dates such as 1983-05-12.

Examples:
  jellybucket year 1959 1969
  jellybucket year --extrapolate 1914`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			for _, arg := range args {
				year, err := strconv.Atoi(pathfmt.YearOf(arg))
				if err != nil {
					return fmt.Errorf("%w: %q", bucket.ErrNotAYear, arg)
				}
				label := e.set.Year.Lookup(year)
				printLabel(arg, label, yearOrigin(e.set.Year, year, label))
			}
			return nil
		},
	}
}

func newAlphaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alpha <text>...",
		Short: "Print the alphabetic bucket for each name",
		Long: `Print the configured alphabetic bucket for each argument's initial.

Examples:
  jellybucket alpha "Garry Moore" errol`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			for _, arg := range args {
				label := e.set.Alpha.Lookup(arg)
				printLabel(arg, label, alphaOrigin(e.set.Alpha, label))
			}
			return nil
		},
	}
}

func newBucketCmd() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "bucket <text>",
		Short: "Classify text the way %bucket{} does in path templates",
		Long: `Classify text the way the %bucket{} template function does: four digits
are looked up as a year, anything else by its initial. --field forces the
year or alpha classifier.

Examples:
  jellybucket bucket 1983
  jellybucket bucket "The Beatles"
  jellybucket bucket 1999 --field alpha`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			label, err := e.set.Bucket(args[0], field)
			if err != nil {
				return err
			}

			origin := alphaOrigin(e.set.Alpha, label)
			if year, err := strconv.Atoi(strings.TrimSpace(args[0])); err == nil && field != bucket.FieldAlpha {
				origin = yearOrigin(e.set.Year, year, label)
			}
			printLabel(args[0], label, origin)
			return nil
		},
	}

	cmd.Flags().StringVarP(&field, "field", "f", "", "classifier to use: year or alpha (default: detect)")

	return cmd
}
