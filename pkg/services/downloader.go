package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fontdex/fontdex/pkg/data"
)

// ErrDownload is wrapped by errors for font files that could not be
// fetched. A failed file is recorded and skipped; the run continues.
var ErrDownload = errors.New("download failed")

// Progress reports the state of one file as it moves through the fetch
// pipeline.
type Progress struct {
	Family   string
	Filename string
	Current  int
	Total    int
	Status   string // "downloading", "skipped", "done", "error"
	Error    error
}

// Result is one successfully stored font file.
type Result struct {
	Ref             data.FontRef
	Path            string // absolute path on disk
	SkippedExisting bool   // file was already present, no request made
}

// Failure records a font file that could not be downloaded.
type Failure struct {
	Ref data.FontRef
	Err error
}

// Downloader fetches font files into <root>/<family>/<filename> with a
// bounded worker pool, per-file retries and skip-if-present idempotence.
type Downloader struct {
	rootDir      string
	client       *http.Client
	workers      int
	attempts     int
	backoff      time.Duration
	rateLimiter  *time.Ticker
	progressChan chan Progress
	closeOnce    sync.Once
}

// NewDownloader creates a Downloader writing below rootDir.
func NewDownloader(rootDir string) *Downloader {
	return &Downloader{
		rootDir:      rootDir,
		client:       &http.Client{Timeout: 30 * time.Second},
		workers:      3,
		attempts:     3,
		backoff:      500 * time.Millisecond,
		rateLimiter:  time.NewTicker(100 * time.Millisecond),
		progressChan: make(chan Progress, 100),
	}
}

// SetWorkers overrides the number of concurrent downloads.
func (d *Downloader) SetWorkers(n int) {
	if n > 0 {
		d.workers = n
	}
}

// GetProgressChannel returns the channel for receiving progress updates.
func (d *Downloader) GetProgressChannel() <-chan Progress {
	return d.progressChan
}

// FetchAll downloads every ref, at most limit of them when limit > 0.
// Individual failures do not abort the run. The returned result set does
// not depend on download order.
func (d *Downloader) FetchAll(refs []data.FontRef, limit int) ([]Result, []Failure) {
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}

	var (
		mu       sync.Mutex
		results  []Result
		failures []Failure
		wg       sync.WaitGroup
	)
	semaphore := make(chan struct{}, d.workers)

	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref data.FontRef) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			res, err := d.fetchOne(ref, i+1, len(refs))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, Failure{Ref: ref, Err: err})
				return
			}
			results = append(results, res)
		}(i, ref)
	}
	wg.Wait()

	return results, failures
}

func (d *Downloader) fetchOne(ref data.FontRef, current, total int) (Result, error) {
	dest := filepath.Join(d.rootDir, ref.Family, ref.Filename)

	// Already downloaded: no network request at all.
	if info, err := os.Stat(dest); err == nil && info.Size() > 0 {
		d.sendProgress(Progress{
			Family: ref.Family, Filename: ref.Filename,
			Current: current, Total: total, Status: "skipped",
		})
		return Result{Ref: ref, Path: dest, SkippedExisting: true}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	d.sendProgress(Progress{
		Family: ref.Family, Filename: ref.Filename,
		Current: current, Total: total, Status: "downloading",
	})

	var lastErr error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(d.backoff)
		}
		<-d.rateLimiter.C

		if lastErr = d.downloadTo(ref.URL, dest); lastErr == nil {
			d.sendProgress(Progress{
				Family: ref.Family, Filename: ref.Filename,
				Current: current, Total: total, Status: "done",
			})
			return Result{Ref: ref, Path: dest}, nil
		}
	}

	err := fmt.Errorf("%w: %s: %v", ErrDownload, ref.URL, lastErr)
	d.sendProgress(Progress{
		Family: ref.Family, Filename: ref.Filename,
		Current: current, Total: total, Status: "error", Error: err,
	})
	return Result{}, err
}

// downloadTo streams the response body to a temporary file and renames it
// into place, so an interrupted download never leaves a non-empty partial
// file that a later run would wrongly skip.
func (d *Downloader) downloadTo(url, dest string) error {
	resp, err := d.client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, dest)
}

// sendProgress sends a progress update (non-blocking).
func (d *Downloader) sendProgress(p Progress) {
	select {
	case d.progressChan <- p:
	default:
		// Channel full, skip this update.
	}
}

// Close releases the rate limiter and the progress channel.
func (d *Downloader) Close() {
	d.closeOnce.Do(func() {
		d.rateLimiter.Stop()
		close(d.progressChan)
	})
}
