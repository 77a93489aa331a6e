// SPDX-License-Identifier: MPL-2.0

package vslicelib

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultTimeout bounds a single library download.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxArchiveBytes caps the size of a downloaded library archive (512 MB).
	DefaultMaxArchiveBytes int64 = 512 << 20

	defaultUserAgent = "vslice"
)

var (
	// ErrInvalidURL is returned when a library URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid library URL")
	// ErrArchiveTooLarge is returned when a download exceeds the archive size cap.
	ErrArchiveTooLarge = errors.New("library archive too large")
	// ErrUnsafeEntry is returned for archive entries that would be written
	// outside the library directory.
	ErrUnsafeEntry = errors.New("unsafe archive entry")
)

// urlValidate checks library URLs before any request is issued.
var urlValidate = validator.New()

type (
	// Fetcher downloads library archives and extracts their script sources.
	Fetcher struct {
		httpClient      *http.Client
		timeout         time.Duration
		userAgent       string
		maxArchiveBytes int64
		logger          *slog.Logger
	}

	// FetcherOption configures a Fetcher during construction.
	FetcherOption func(*Fetcher)
)

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithTimeout sets the per-download timeout of the default HTTP client.
// It is ignored when WithHTTPClient supplies a client.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxArchiveBytes overrides DefaultMaxArchiveBytes.
func WithMaxArchiveBytes(n int64) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxArchiveBytes = n
		}
	}
}

// WithLogger sets the logger used for per-library progress and failures.
func WithLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher creates a Fetcher. Defaults: a client with DefaultTimeout,
// User-Agent "vslice", DefaultMaxArchiveBytes and slog.Default().
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout:         DefaultTimeout,
		userAgent:       defaultUserAgent,
		maxArchiveBytes: DefaultMaxArchiveBytes,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.httpClient == nil {
		f.httpClient = &http.Client{Timeout: f.timeout}
	}
	return f
}

// ValidateURL checks that rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	if err := urlValidate.Var(rawURL, "required,http_url"); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidURL, rawURL)
	}
	return nil
}

// Fetch downloads lib into targetDir and extracts its script sources.
//
// When targetDir already exists Fetch returns StatusAlreadyExists without
// touching the network. Every failure returns StatusFailed with the cause;
// the partially populated targetDir is removed so a later run retries.
func (f *Fetcher) Fetch(ctx context.Context, lib Library, targetDir string) (status DownloadStatus, err error) {
	if _, statErr := os.Stat(targetDir); statErr == nil {
		f.logger.Info("library already exists", "library", lib.Name, "path", targetDir)
		return StatusAlreadyExists, nil
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return StatusFailed, fmt.Errorf("check %s: %w", targetDir, statErr)
	}

	if err := ValidateURL(lib.URL); err != nil {
		return StatusFailed, err
	}

	f.logger.Info("downloading library", "library", lib.Name, "url", lib.URL)

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return StatusFailed, fmt.Errorf("create %s: %w", targetDir, err)
	}
	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(targetDir); rmErr != nil {
				f.logger.Warn("failed to remove partial library", "library", lib.Name, "error", rmErr)
			}
		}
	}()

	archivePath, err := f.download(ctx, lib.URL)
	if err != nil {
		return StatusFailed, fmt.Errorf("download %s: %w", lib.Name, err)
	}
	defer func() { _ = os.Remove(archivePath) }() // Best-effort cleanup of temp file

	count, err := extractScripts(ctx, archivePath, targetDir)
	if err != nil {
		return StatusFailed, fmt.Errorf("extract %s: %w", lib.Name, err)
	}

	f.logger.Info("downloaded library", "library", lib.Name, "files", count)
	return StatusDownloaded, nil
}

// download streams url into a temporary file and returns its path.
// zip.Reader needs random access, so the body cannot be read in place.
func (f *Fetcher) download(ctx context.Context, url string) (tmpPath string, err error) {
	tmpFile, err := os.CreateTemp("", "vslice-lib-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath = tmpFile.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath) // Best-effort cleanup
		}
	}()
	defer func() {
		if closeErr := tmpFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req) //nolint:gosec // URL is validated by ValidateURL
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	n, err := io.Copy(tmpFile, io.LimitReader(resp.Body, f.maxArchiveBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to save archive: %w", err)
	}
	if n > f.maxArchiveBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrArchiveTooLarge, f.maxArchiveBytes)
	}

	return tmpPath, nil
}

// extractScripts writes every script entry of the archive at archivePath
// under targetDir and returns how many files were written.
func extractScripts(ctx context.Context, archivePath, targetDir string) (count int, err error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return 0, err
	}

	for _, file := range zr.File {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if file.FileInfo().IsDir() {
			continue
		}

		rel, ok := ScriptEntryPath(file.Name)
		if !ok {
			continue
		}

		destPath := filepath.Join(absTarget, filepath.FromSlash(rel))
		relCheck, relErr := filepath.Rel(absTarget, destPath)
		if relErr != nil || relCheck == ".." || strings.HasPrefix(relCheck, ".."+string(filepath.Separator)) {
			return count, fmt.Errorf("%w: %s", ErrUnsafeEntry, file.Name)
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return count, fmt.Errorf("failed to create parent directory: %w", err)
		}
		if err := extractFile(file, destPath); err != nil {
			return count, fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
		count++
	}
	return count, nil
}

func extractFile(file *zip.File, destPath string) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	//nolint:gosec // G110: archive size is capped at download time
	_, err = io.Copy(destFile, rc)
	return err
}
