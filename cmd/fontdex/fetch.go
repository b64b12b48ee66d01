package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fontdex/fontdex/pkg/services"
	"github.com/fontdex/fontdex/pkg/sources"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download fonts and rebuild the coverage catalog",
	Long:  "Scrape the configured sources for font files, download anything new, read each file's character map and regenerate the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		workers, _ := cmd.Flags().GetInt("workers")
		listingURL, _ := cmd.Flags().GetString("listing-url")
		skipMain, _ := cmd.Flags().GetBool("skip-main")
		skipCJK, _ := cmd.Flags().GetBool("skip-cjk")
		skipEmoji, _ := cmd.Flags().GetBool("skip-emoji")

		var srcs []sources.Source
		if !skipMain {
			srcs = append(srcs, sources.NewNotoSiteWithURL(listingURL))
		}
		if !skipCJK {
			srcs = append(srcs, sources.NewCJK())
		}
		if !skipEmoji {
			srcs = append(srcs, sources.NewEmoji())
		}
		if len(srcs) == 0 {
			fmt.Println("⚠️  All sources skipped, nothing to fetch.")
			return
		}

		pipeline := services.NewPipeline(fontsDir, catalogPath, indexPath, srcs...)
		pipeline.Downloader().SetWorkers(workers)

		go func() {
			for p := range pipeline.Downloader().GetProgressChannel() {
				switch p.Status {
				case "done":
					fmt.Printf("  [%d/%d] %s/%s\n", p.Current, p.Total, p.Family, p.Filename)
				case "error":
					fmt.Printf("  [%d/%d] %s/%s failed: %v\n", p.Current, p.Total, p.Family, p.Filename, p.Error)
				}
			}
		}()

		fmt.Println("🔍 Collecting font links…")
		summary, err := pipeline.Run(limit)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("fetch failed: %w", err))
		}

		fmt.Printf("\n📦 %d files discovered, %d downloaded, %d already present\n",
			summary.Discovered, summary.Downloaded, summary.SkippedExisting)
		for _, f := range summary.DownloadFailures {
			fmt.Printf("  ⚠️  download failed: %s/%s: %v\n", f.Ref.Family, f.Ref.Filename, f.Err)
		}
		for _, f := range summary.ScanFailures {
			fmt.Printf("  ⚠️  unreadable font: %s: %v\n", f.Path, f.Err)
		}
		if n := len(summary.DownloadFailures) + len(summary.ScanFailures); n > 0 {
			fmt.Printf("⚠️  %d files failed and were left out of the catalog\n", n)
		}
		fmt.Printf("✅ Catalog written to %s (%d entries)\n", catalogPath, summary.Entries)
	},
}

func init() {
	fetchCmd.Flags().IntP("limit", "l", 0, "Fetch at most N files (0 = no limit, useful for dry runs)")
	fetchCmd.Flags().IntP("workers", "w", 3, "Number of concurrent downloads")
	fetchCmd.Flags().String("listing-url", sources.DefaultListingURL, "Dashboard page to scrape for TTF links")
	fetchCmd.Flags().Bool("skip-main", false, "Do not fetch fonts listed on notofonts.github.io")
	fetchCmd.Flags().Bool("skip-cjk", false, "Do not fetch CJK fonts from notofonts/noto-cjk")
	fetchCmd.Flags().Bool("skip-emoji", false, "Do not fetch emoji fonts from googlefonts/noto-emoji")
}
