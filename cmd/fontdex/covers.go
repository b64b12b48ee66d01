package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fontdex/fontdex/pkg/coverage"
	"github.com/fontdex/fontdex/pkg/data"
)

var coversCmd = &cobra.Command{
	Use:   "covers [codepoint]",
	Short: "Find fonts covering a code point",
	Long:  "Query the coverage index for every cataloged font file that declares a glyph for the given code point (U+1F600, 0x1F600 or decimal)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cp, err := coverage.ParseCodePoint(args[0])
		if err != nil {
			cobra.CheckErr(err)
		}

		repo, err := data.OpenRepository(indexPath)
		if err != nil {
			cobra.CheckErr(err)
		}
		defer repo.Close()

		// Populate the index from the catalog if it has never been built.
		stats, err := repo.Families()
		if err != nil {
			cobra.CheckErr(err)
		}
		if len(stats) == 0 {
			entries, err := data.ReadCatalog(catalogPath)
			if err != nil {
				cobra.CheckErr(fmt.Errorf("index is empty and catalog is unreadable: %w", err))
			}
			if err := repo.Rebuild(entries); err != nil {
				cobra.CheckErr(err)
			}
		}

		hits, err := repo.Covers(cp)
		if err != nil {
			cobra.CheckErr(err)
		}

		if len(hits) == 0 {
			fmt.Printf("😕 No cataloged font covers U+%04X\n", cp)
			return
		}

		var (
			purple = lipgloss.Color("99")

			headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				default:
					return cellStyle
				}
			}).
			Headers("Family", "File", "Range")

		for _, h := range hits {
			t.Row(h.Family, truncateString(h.File, 58), h.Range.String())
		}

		fmt.Printf("\n🔎 U+%04X is covered by %d file(s)\n", cp, len(hits))
		fmt.Println(t)
	},
}
