package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fontdex/fontdex/pkg/coverage"
)

var rangesCmd = &cobra.Command{
	Use:   "ranges [font-file]",
	Short: "Print the Unicode coverage of a font file",
	Long:  "Read one local font file's character map and print its merged Unicode ranges",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ranges, err := coverage.FromFile(args[0])
		if err != nil {
			cobra.CheckErr(err)
		}

		total := 0
		for _, r := range ranges {
			fmt.Println(r)
			total += int(r.End-r.Start) + 1
		}
		fmt.Printf("\n%d ranges, %d code points\n", len(ranges), total)
	},
}
