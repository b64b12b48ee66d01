package services

import (
	"fmt"
	"os"

	"github.com/fontdex/fontdex/pkg/data"
	"github.com/fontdex/fontdex/pkg/sources"
)

// Pipeline runs the full fetch: collect links from every source, download
// the files, scan coverage and regenerate the catalog plus the query index.
type Pipeline struct {
	sources     []sources.Source
	downloader  *Downloader
	fontsDir    string
	catalogPath string
	indexPath   string
}

// Summary describes the outcome of one run. Recoverable per-file failures
// are collected here instead of aborting the run.
type Summary struct {
	Discovered       int
	Downloaded       int
	SkippedExisting  int
	DownloadFailures []Failure
	ScanFailures     []ScanFailure
	Entries          int
}

// NewPipeline wires a run. indexPath may be empty to skip the DuckDB index.
func NewPipeline(fontsDir, catalogPath, indexPath string, srcs ...sources.Source) *Pipeline {
	return &Pipeline{
		sources:     srcs,
		downloader:  NewDownloader(fontsDir),
		fontsDir:    fontsDir,
		catalogPath: catalogPath,
		indexPath:   indexPath,
	}
}

// Downloader exposes the underlying downloader so callers can tune worker
// count and consume progress updates.
func (p *Pipeline) Downloader() *Downloader {
	return p.downloader
}

// Run executes the pipeline. At most limit files are fetched when limit > 0.
// A source whose listing cannot be retrieved aborts the run; per-file
// download and parse failures are recorded in the summary and the catalog
// is still written from the files that succeeded.
func (p *Pipeline) Run(limit int) (*Summary, error) {
	defer p.downloader.Close()

	var refs []data.FontRef
	for _, src := range p.sources {
		found, err := src.Fonts()
		if err != nil {
			return nil, fmt.Errorf("listing %s failed: %w", src.Name(), err)
		}
		refs = append(refs, found...)
	}

	summary := &Summary{Discovered: len(refs)}

	if err := os.MkdirAll(p.fontsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create fonts directory: %w", err)
	}

	results, failures := p.downloader.FetchAll(refs, limit)
	summary.DownloadFailures = failures
	for _, res := range results {
		if res.SkippedExisting {
			summary.SkippedExisting++
		} else {
			summary.Downloaded++
		}
	}

	files, scanFailures, err := ScanFonts(p.fontsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan fonts: %w", err)
	}
	summary.ScanFailures = scanFailures

	entries := data.BuildEntries(files)
	summary.Entries = len(entries)
	if err := data.WriteCatalog(p.catalogPath, entries); err != nil {
		return nil, err
	}

	if p.indexPath != "" {
		repo, err := data.OpenRepository(p.indexPath)
		if err != nil {
			return nil, err
		}
		defer repo.Close()
		if err := repo.Rebuild(entries); err != nil {
			return nil, err
		}
	}

	return summary, nil
}
