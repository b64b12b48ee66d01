package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fontdex/fontdex/pkg/app"
)

var (
	fontsDir    string
	catalogPath string
	indexPath   string
)

var rootCmd = &cobra.Command{
	Use:   "fontdex",
	Short: "Catalog Noto fonts by Unicode coverage",
	Long:  "Fetch Noto font files, read their character maps and keep a catalog of which file covers which Unicode ranges",
	Run: func(cmd *cobra.Command, args []string) {
		// Launch the catalog browser by default
		a := app.NewApp(catalogPath)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fontsDir, "fonts-dir", "fonts", "Directory for downloaded font files")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "fonts.yaml", "Path of the coverage catalog document")
	rootCmd.PersistentFlags().StringVar(&indexPath, "index", ".fontdex.db", "Path of the queryable coverage index")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(coversCmd)
	rootCmd.AddCommand(rangesCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
