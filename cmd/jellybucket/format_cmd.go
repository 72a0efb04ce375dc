package main

import (
	"fmt"
	"strings"

	"github.com/Nomadcxx/jellybucket/internal/pathfmt"
	"github.com/spf13/cobra"
)

func newFormatCmd() *cobra.Command {
	var fields []string

	cmd := &cobra.Command{
		Use:   "format <template>",
		Short: "Expand a path template with %bucket{} support",
		Long: `Expand a path template. $name and ${name} are replaced with --field
values; %bucket{value} and %bucket{value,field} insert bucket labels.

Examples:
  jellybucket format '%bucket{$year}/$albumartist/$album' \
    --field year=1983 --field albumartist=Eurythmics --field "album=Sweet Dreams"
  jellybucket format '%bucket{$albumartist}/$albumartist' --field albumartist=Blondie`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFields(fields)
			if err != nil {
				return err
			}

			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			tmpl := pathfmt.New(map[string]pathfmt.Func{
				"bucket": pathfmt.BucketFunc(e.set),
			})
			out, err := tmpl.Expand(args[0], values)
			if err != nil {
				return fmt.Errorf("failed to expand template: %w", err)
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fields, "field", nil, "template field as name=value (repeatable)")

	return cmd
}

func parseFields(pairs []string) (map[string]string, error) {
	fields := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid field %q (expected name=value)", pair)
		}
		fields[name] = value
	}
	return fields, nil
}
