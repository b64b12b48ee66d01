package coverage

import (
	"errors"
	"fmt"
	"os"

	"seehuhn.de/go/sfnt"
)

// ErrFormat is wrapped by errors returned for files that cannot be parsed
// as a font, e.g. truncated downloads.
var ErrFormat = errors.New("unreadable font file")

// FromFile reads a font file and returns its merged Unicode coverage.
func FromFile(path string) ([]Range, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}
	defer fd.Close()

	font, err := sfnt.Read(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}
	return FromFont(font)
}

// FromFont computes the merged coverage of an already parsed font.
func FromFont(font *sfnt.Font) ([]Range, error) {
	if font.CMapTable == nil {
		return nil, fmt.Errorf("%w: font has no cmap table", ErrFormat)
	}
	subtable, err := font.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	low, high := subtable.CodeRange()
	var codepoints []rune
	for cp := low; cp <= high; cp++ {
		if subtable.Lookup(cp) != 0 {
			codepoints = append(codepoints, cp)
		}
	}
	if len(codepoints) == 0 {
		return nil, fmt.Errorf("%w: cmap maps no code points", ErrFormat)
	}
	return Merge(codepoints), nil
}
