// Package coverage computes and manipulates the Unicode coverage of font
// files: the set of code points a font's character map declares glyphs for,
// represented as a minimal list of closed ranges.
package coverage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Range is a closed interval of Unicode code points, both ends inclusive.
type Range struct {
	Start rune
	End   rune
}

// String renders the range as U+XXXX or U+XXXX-U+YYYY.
func (r Range) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("U+%04X", r.Start)
	}
	return fmt.Sprintf("U+%04X-U+%04X", r.Start, r.End)
}

// MarshalYAML renders the range as an inline hex pair, e.g. [0x00A7, 0x00AB].
func (r Range) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("0x%04X", r.Start)},
			{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("0x%04X", r.End)},
		},
	}
	return node, nil
}

// UnmarshalYAML accepts both the pair form [0x00A7, 0x00AB] and the legacy
// string forms ("65-67", "0x41-0x43", "U+0041..U+0043", single code point).
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("coverage: range pair must have 2 elements, got %d", len(node.Content))
		}
		start, err := parseCodePoint(node.Content[0].Value)
		if err != nil {
			return err
		}
		end, err := parseCodePoint(node.Content[1].Value)
		if err != nil {
			return err
		}
		*r = ordered(start, end)
		return nil
	case yaml.ScalarNode:
		parsed, err := ParseRange(node.Value)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	default:
		return fmt.Errorf("coverage: cannot decode %v node as range", node.Kind)
	}
}

// ParseRange parses "65-67", "0x41-0x43", "U+0041..U+0043" or a single code
// point in any of those notations.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	var startStr, endStr string
	switch {
	case strings.Contains(s, ".."):
		parts := strings.SplitN(s, "..", 2)
		startStr, endStr = parts[0], parts[1]
	case strings.Count(s, "-") == 1 && !strings.HasPrefix(s, "-"):
		parts := strings.SplitN(s, "-", 2)
		startStr, endStr = parts[0], parts[1]
	default:
		startStr, endStr = s, s
	}
	start, err := parseCodePoint(startStr)
	if err != nil {
		return Range{}, err
	}
	end, err := parseCodePoint(endStr)
	if err != nil {
		return Range{}, err
	}
	return ordered(start, end), nil
}

// ParseCodePoint parses a single code point in U+XXXX, 0xXXXX or decimal
// notation.
func ParseCodePoint(s string) (rune, error) {
	return parseCodePoint(s)
}

func parseCodePoint(s string) (rune, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "U+") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("coverage: bad code point %q: %w", s, err)
		}
		return rune(v), nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("coverage: bad code point %q: %w", s, err)
	}
	return rune(v), nil
}

func ordered(start, end rune) Range {
	if start > end {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// Merge converts a set of code points into the minimal ordered list of
// non-overlapping, non-adjacent ranges. Expanding the result reproduces the
// input set exactly.
func Merge(codepoints []rune) []Range {
	if len(codepoints) == 0 {
		return nil
	}
	sorted := make([]rune, len(codepoints))
	copy(sorted, codepoints)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	ranges := []Range{{Start: sorted[0], End: sorted[0]}}
	for _, cp := range sorted[1:] {
		last := &ranges[len(ranges)-1]
		switch {
		case cp == last.End: // duplicate
		case cp == last.End+1:
			last.End = cp
		default:
			ranges = append(ranges, Range{Start: cp, End: cp})
		}
	}
	return ranges
}

// Expand is the inverse of Merge: it flattens ranges back into the sorted
// list of individual code points.
func Expand(ranges []Range) []rune {
	var out []rune
	for _, r := range ranges {
		for cp := r.Start; cp <= r.End; cp++ {
			out = append(out, cp)
		}
	}
	return out
}

// Contains reports whether any range in the list covers cp.
func Contains(ranges []Range, cp rune) bool {
	i := sort.Search(len(ranges), func(i int) bool { return ranges[i].End >= cp })
	return i < len(ranges) && ranges[i].Start <= cp
}

// Compare orders two range lists lexicographically. Used to give catalog
// entries a stable sort order.
func Compare(a, b []Range) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Start != b[i].Start {
			if a[i].Start < b[i].Start {
				return -1
			}
			return 1
		}
		if a[i].End != b[i].End {
			if a[i].End < b[i].End {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Key returns a canonical string for a range list, usable as a map key when
// grouping files with identical coverage.
func Key(ranges []Range) string {
	var b strings.Builder
	for i, r := range ranges {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%X-%X", r.Start, r.End)
	}
	return b.String()
}
