package main

import (
	"fmt"
	"strconv"

	"github.com/Nomadcxx/jellybucket/internal/ui"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show how the configured buckets were parsed",
		Long: `Show every configured bucket with its style and the years or initials it
covers. Open single-year buckets show the end resolved from the next bucket
or the current year.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ui.Section("Year buckets")
			spans := e.set.Year.Spans()
			if len(spans) == 0 {
				fmt.Println(ui.Dim("  none configured"))
			} else {
				rows := make([][]string, len(spans))
				for i, s := range spans {
					end := strconv.Itoa(s.EffectiveEnd)
					if s.Open() {
						end += ui.Dim(" (open)")
					}
					rows[i] = []string{ui.Label(s.Label), s.Kind.String(), strconv.Itoa(s.Start), end}
				}
				fmt.Println(ui.Table([]string{"Label", "Style", "From", "To"}, rows))
			}
			if e.set.Year.Extrapolates() {
				fmt.Println(ui.Dim("  extrapolation enabled"))
			}

			ui.Section("Alpha buckets")
			alpha := e.set.Alpha.Buckets()
			if len(alpha) == 0 {
				fmt.Println(ui.Dim("  none configured"))
				return nil
			}
			rows := make([][]string, len(alpha))
			for i, d := range alpha {
				rows[i] = []string{ui.Label(d.Label), d.Kind.String(), string(d.Start), string(d.End)}
			}
			fmt.Println(ui.Table([]string{"Label", "Style", "From", "To"}, rows))
			return nil
		},
	}
}
