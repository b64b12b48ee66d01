package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fontdex/fontdex/pkg/data"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [catalog]",
	Short: "Convert a legacy catalog to the grouped format",
	Long:  "Read a catalog in the legacy one-entry-per-file format with string ranges and rewrite it grouped by family and coverage, with ranges as hex pairs",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := catalogPath
		if len(args) == 1 {
			input = args[0]
		}
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = input
		}

		entries, err := data.ReadCatalog(input)
		if err != nil {
			cobra.CheckErr(err)
		}

		migrated := data.Regroup(entries)
		if err := data.WriteCatalog(output, migrated); err != nil {
			cobra.CheckErr(err)
		}

		fmt.Printf("✅ Wrote %d entries to %s\n", len(migrated), output)
	},
}

func init() {
	migrateCmd.Flags().StringP("output", "o", "", "Output path (defaults to overwriting the input)")
}
