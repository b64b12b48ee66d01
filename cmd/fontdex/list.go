package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fontdex/fontdex/pkg/data"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cataloged font families",
	Long:  "Display every catalog entry with its files and Unicode coverage in a formatted table",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := data.ReadCatalog(catalogPath)
		if err != nil {
			cobra.CheckErr(err)
		}

		if len(entries) == 0 {
			fmt.Println("📭 Catalog is empty. Run 'fontdex fetch' first.")
			return
		}

		columns := []table.Column{
			{Title: "Family", Width: 30},
			{Title: "Files", Width: 6},
			{Title: "Ranges", Width: 7},
			{Title: "Code Points", Width: 12},
			{Title: "First Range", Width: 18},
		}

		rows := []table.Row{}
		for _, entry := range entries {
			first := ""
			if len(entry.UnicodeRanges) > 0 {
				first = entry.UnicodeRanges[0].String()
			}
			rows = append(rows, table.Row{
				truncateString(entry.Family, 28),
				fmt.Sprintf("%d", len(entry.Files)),
				fmt.Sprintf("%d", len(entry.UnicodeRanges)),
				fmt.Sprintf("%d", entry.CodePoints()),
				first,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		families := map[string]bool{}
		for _, e := range entries {
			families[e.Family] = true
		}
		fmt.Printf("\n🗂  Catalog (%d entries, %d families)\n\n", len(entries), len(families))
		fmt.Println(t.View())
	},
}
