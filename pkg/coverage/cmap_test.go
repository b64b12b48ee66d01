package coverage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func writeGoRegular(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "GoRegular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestFromFile(t *testing.T) {
	ranges, err := FromFile(writeGoRegular(t))
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if len(ranges) == 0 {
		t.Fatal("expected non-empty coverage")
	}

	// Basic Latin must be covered.
	for _, cp := range []rune{'A', 'Z', 'a', 'z', '0', '9'} {
		if !Contains(ranges, cp) {
			t.Errorf("Go Regular should cover %q", cp)
		}
	}

	// Ranges must be sorted, disjoint and maximally merged.
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Start <= ranges[i-1].End+1 {
			t.Errorf("ranges %v and %v are not disjoint non-adjacent", ranges[i-1], ranges[i])
		}
	}
}

func TestFromFileNotAFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(path, []byte("this is not a font"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := FromFile(path)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.ttf"))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat for missing file, got %v", err)
	}
}
