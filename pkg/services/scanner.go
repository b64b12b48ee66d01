package services

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fontdex/fontdex/pkg/coverage"
	"github.com/fontdex/fontdex/pkg/data"
)

// ScanFailure records a downloaded file that could not be parsed as a font.
type ScanFailure struct {
	Path string
	Err  error
}

// ScanFonts walks the fonts root, computes the Unicode coverage of every
// font file and returns catalog-ready records. Paths are stored relative to
// the fonts root, family is the containing directory. Unparsable files are
// recorded as failures and left out; they never abort the scan.
func ScanFonts(root string) ([]data.FontFile, []ScanFailure, error) {
	var files []data.FontFile
	var failures []ScanFailure

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isFontFile(entry.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		ranges, err := coverage.FromFile(path)
		if err != nil {
			failures = append(failures, ScanFailure{Path: rel, Err: err})
			return nil
		}
		files = append(files, data.FontFile{
			Family: filepath.Base(filepath.Dir(path)),
			Path:   filepath.ToSlash(rel),
			Ranges: ranges,
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, failures, nil
}

func isFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc":
		return true
	default:
		return false
	}
}
