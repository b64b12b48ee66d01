package data

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/fontdex/fontdex/pkg/coverage"
)

// BuildEntries groups processed font files into catalog entries. Files of
// the same family with the exact same coverage share one entry. Entries are
// sorted by family name, then by their ranges.
func BuildEntries(files []FontFile) []Entry {
	type key struct {
		family string
		ranges string
	}
	grouped := map[key]*Entry{}
	var order []key

	for _, f := range files {
		k := key{family: f.Family, ranges: coverage.Key(f.Ranges)}
		entry, ok := grouped[k]
		if !ok {
			entry = &Entry{Family: f.Family, UnicodeRanges: f.Ranges}
			grouped[k] = entry
			order = append(order, k)
		}
		entry.Files = append(entry.Files, f.Path)
	}

	entries := make([]Entry, 0, len(order))
	for _, k := range order {
		entry := grouped[k]
		entry.Files = dedupeSorted(entry.Files)
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Family != entries[j].Family {
			return entries[i].Family < entries[j].Family
		}
		return coverage.Compare(entries[i].UnicodeRanges, entries[j].UnicodeRanges) < 0
	})
	return entries
}

// WriteCatalog replaces the catalog document at path with the given entries.
// The document is written to a temporary file first and renamed into place,
// so an interrupted run never leaves a half-written catalog behind.
func WriteCatalog(path string, entries []Entry) error {
	out, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".fonts-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temporary catalog: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}

// rawEntry also accepts the legacy catalog shape: one entry per file with a
// scalar "file" field and string ranges.
type rawEntry struct {
	Family        string           `yaml:"family"`
	File          string           `yaml:"file"`
	Files         []string         `yaml:"files"`
	UnicodeRanges []coverage.Range `yaml:"unicode_ranges"`
}

// ReadCatalog loads a catalog document, accepting both the current grouped
// format and the legacy one-entry-per-file format.
func ReadCatalog(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var rawEntries []rawEntry
	if err := yaml.Unmarshal(raw, &rawEntries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	entries := make([]Entry, 0, len(rawEntries))
	for _, re := range rawEntries {
		files := re.Files
		if re.File != "" {
			files = append([]string{re.File}, files...)
		}
		ranges := append([]coverage.Range(nil), re.UnicodeRanges...)
		sort.Slice(ranges, func(i, j int) bool {
			if ranges[i].Start != ranges[j].Start {
				return ranges[i].Start < ranges[j].Start
			}
			return ranges[i].End < ranges[j].End
		})
		entries = append(entries, Entry{
			Family:        re.Family,
			Files:         files,
			UnicodeRanges: ranges,
		})
	}
	return entries, nil
}

// Regroup merges entries that share a family and identical coverage. Used by
// the migrate command to convert legacy catalogs.
func Regroup(entries []Entry) []Entry {
	var files []FontFile
	for _, e := range entries {
		for _, f := range e.Files {
			files = append(files, FontFile{
				Family: e.Family,
				Path:   f,
				Ranges: e.UnicodeRanges,
			})
		}
	}
	return BuildEntries(files)
}

func dedupeSorted(in []string) []string {
	sort.Strings(in)
	out := in[:0]
	for i, s := range in {
		if i == 0 || s != in[i-1] {
			out = append(out, s)
		}
	}
	return out
}
