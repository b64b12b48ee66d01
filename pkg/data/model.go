package data

import "github.com/fontdex/fontdex/pkg/coverage"

// FontRef is a downloadable font file discovered by a source.
type FontRef struct {
	Family   string
	Filename string
	URL      string
}

// FontFile is a downloaded font together with its computed coverage.
type FontFile struct {
	Family string
	Path   string // relative to the fonts root
	Ranges []coverage.Range
}

// Entry is one catalog record. Files of the same family that share the
// exact same coverage are grouped into a single entry.
type Entry struct {
	Family        string           `yaml:"family"`
	Files         []string         `yaml:"files"`
	UnicodeRanges []coverage.Range `yaml:"unicode_ranges"`
}

// CodePoints returns the total number of code points covered by the entry.
func (e *Entry) CodePoints() int {
	n := 0
	for _, r := range e.UnicodeRanges {
		n += int(r.End-r.Start) + 1
	}
	return n
}
