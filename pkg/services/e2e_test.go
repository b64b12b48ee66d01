package services

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/fontdex/fontdex/pkg/coverage"
	"github.com/fontdex/fontdex/pkg/data"
	"github.com/fontdex/fontdex/pkg/sources"
)

// mockSource feeds the pipeline a fixed set of refs.
type mockSource struct {
	name     string
	refs     []data.FontRef
	err      error
	requests int32
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Fonts() ([]data.FontRef, error) {
	atomic.AddInt32(&m.requests, 1)
	return m.refs, m.err
}

func fontServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/FooFont-Bold.ttf", func(w http.ResponseWriter, r *http.Request) {
		w.Write(gobold.TTF)
	})
	mux.HandleFunc("/BarFont-Regular.ttf", func(w http.ResponseWriter, r *http.Request) {
		w.Write(goregular.TTF)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestE2E_FullPipeline(t *testing.T) {
	server := fontServer(t)
	dir := t.TempDir()
	fontsDir := filepath.Join(dir, "fonts")
	catalogPath := filepath.Join(dir, "fonts.yaml")
	indexPath := filepath.Join(dir, "index.db")

	src := &mockSource{name: "test", refs: []data.FontRef{
		{Family: "Foo", Filename: "FooFont-Bold.ttf", URL: server.URL + "/FooFont-Bold.ttf"},
		{Family: "Bar", Filename: "BarFont-Regular.ttf", URL: server.URL + "/BarFont-Regular.ttf"},
	}}

	pipeline := NewPipeline(fontsDir, catalogPath, indexPath, src)
	summary, err := pipeline.Run(0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Discovered != 2 || summary.Downloaded != 2 {
		t.Errorf("summary = %+v, want 2 discovered and downloaded", summary)
	}
	if len(summary.DownloadFailures) != 0 || len(summary.ScanFailures) != 0 {
		t.Errorf("unexpected failures in %+v", summary)
	}

	entries, err := data.ReadCatalog(catalogPath)
	if err != nil {
		t.Fatalf("ReadCatalog: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 catalog entries, got %d: %+v", len(entries), entries)
	}
	// Sorted by family name.
	if entries[0].Family != "Bar" || entries[1].Family != "Foo" {
		t.Errorf("entries out of order: %+v", entries)
	}
	for _, e := range entries {
		if len(e.UnicodeRanges) == 0 {
			t.Errorf("entry %s has empty coverage", e.Family)
		}
		if !coverage.Contains(e.UnicodeRanges, 'A') {
			t.Errorf("entry %s should cover U+0041", e.Family)
		}
	}

	// The DuckDB index must answer coverage queries for the same data.
	repo, err := data.OpenRepository(indexPath)
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()
	hits, err := repo.Covers('A')
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Errorf("index should report both files covering U+0041, got %+v", hits)
	}
}

func TestE2E_RerunSkipsExistingDownloads(t *testing.T) {
	server := fontServer(t)
	dir := t.TempDir()
	fontsDir := filepath.Join(dir, "fonts")
	catalogPath := filepath.Join(dir, "fonts.yaml")

	refs := []data.FontRef{
		{Family: "Foo", Filename: "FooFont-Bold.ttf", URL: server.URL + "/FooFont-Bold.ttf"},
	}

	first := NewPipeline(fontsDir, catalogPath, "", &mockSource{name: "test", refs: refs})
	if _, err := first.Run(0); err != nil {
		t.Fatal(err)
	}

	second := NewPipeline(fontsDir, catalogPath, "", &mockSource{name: "test", refs: refs})
	summary, err := second.Run(0)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Downloaded != 0 || summary.SkippedExisting != 1 {
		t.Errorf("rerun summary = %+v, want everything skipped", summary)
	}
}

func TestE2E_PartialFailureStillWritesCatalog(t *testing.T) {
	server := fontServer(t)
	dir := t.TempDir()
	fontsDir := filepath.Join(dir, "fonts")
	catalogPath := filepath.Join(dir, "fonts.yaml")

	src := &mockSource{name: "test", refs: []data.FontRef{
		{Family: "Foo", Filename: "FooFont-Bold.ttf", URL: server.URL + "/FooFont-Bold.ttf"},
		{Family: "Gone", Filename: "missing.ttf", URL: server.URL + "/missing.ttf"},
	}}

	pipeline := NewPipeline(fontsDir, catalogPath, "", src)
	pipeline.Downloader().backoff = 0
	summary, err := pipeline.Run(0)
	if err != nil {
		t.Fatalf("per-file failures must not abort the run: %v", err)
	}

	if len(summary.DownloadFailures) != 1 {
		t.Fatalf("expected 1 recorded failure, got %+v", summary.DownloadFailures)
	}
	if !errors.Is(summary.DownloadFailures[0].Err, ErrDownload) {
		t.Errorf("failure should wrap ErrDownload: %v", summary.DownloadFailures[0].Err)
	}

	entries, err := data.ReadCatalog(catalogPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Family != "Foo" {
		t.Errorf("surviving file must still be cataloged: %+v", entries)
	}
}

func TestE2E_LimitProcessesExactlyN(t *testing.T) {
	server := fontServer(t)
	dir := t.TempDir()

	src := &mockSource{name: "test", refs: []data.FontRef{
		{Family: "A", Filename: "a.ttf", URL: server.URL + "/FooFont-Bold.ttf"},
		{Family: "B", Filename: "b.ttf", URL: server.URL + "/FooFont-Bold.ttf"},
		{Family: "C", Filename: "c.ttf", URL: server.URL + "/FooFont-Bold.ttf"},
	}}

	pipeline := NewPipeline(filepath.Join(dir, "fonts"), filepath.Join(dir, "fonts.yaml"), "", src)
	summary, err := pipeline.Run(1)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Downloaded != 1 {
		t.Errorf("limit 1 must download exactly one file, got %+v", summary)
	}

	entries, err := data.ReadCatalog(filepath.Join(dir, "fonts.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 catalog entry, got %+v", entries)
	}
}

func TestE2E_ListingFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	src := &mockSource{
		name: "test",
		err:  fmt.Errorf("%w: boom", sources.ErrRetrieval),
	}

	pipeline := NewPipeline(filepath.Join(dir, "fonts"), filepath.Join(dir, "fonts.yaml"), "", src)
	_, err := pipeline.Run(0)
	if !errors.Is(err, sources.ErrRetrieval) {
		t.Errorf("expected fatal retrieval error, got %v", err)
	}
}
