// SPDX-License-Identifier: MPL-2.0

package vslicelib

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/funkindev/vslice/pkg/progress"
)

type (
	// Manager runs library updates against a cache.
	Manager struct {
		fetcher  *Fetcher
		cache    *Cache
		logger   *slog.Logger
		progress progress.Reporter
	}

	// ManagerOption configures a Manager.
	ManagerOption func(*Manager)

	// UpdateOptions controls a single Update run.
	UpdateOptions struct {
		// ClearCache deletes the whole cache before downloading.
		ClearCache bool
	}

	// LibraryResult is the outcome for one configured library.
	LibraryResult struct {
		Name   string
		Status DownloadStatus
		Err    error
	}

	// MergeResult is the outcome for one merge rule.
	MergeResult struct {
		Rule   MergeRule
		Copied int
		Err    error
	}

	// Summary aggregates the results of an Update run.
	Summary struct {
		Downloaded  int
		Skipped     int
		Failed      int
		Total       int
		Merged      int
		MergeFailed int
		Cleared     bool

		Libraries []LibraryResult
		Merges    []MergeResult
	}
)

// WithFetcher sets the Fetcher used for downloads.
func WithFetcher(f *Fetcher) ManagerOption {
	return func(m *Manager) {
		if f != nil {
			m.fetcher = f
		}
	}
}

// WithProgress sets the progress reporter.
func WithProgress(r progress.Reporter) ManagerOption {
	return func(m *Manager) {
		if r != nil {
			m.progress = r
		}
	}
}

// WithManagerLogger sets the logger.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a Manager for cache.
func NewManager(cache *Cache, opts ...ManagerOption) *Manager {
	m := &Manager{
		cache:    cache,
		logger:   slog.Default(),
		progress: progress.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fetcher == nil {
		m.fetcher = NewFetcher(WithLogger(m.logger))
	}
	return m
}

// Cache returns the cache the manager operates on.
func (m *Manager) Cache() *Cache { return m.cache }

// Update downloads every configured library missing from the cache and then
// applies the merge rules, both in configuration order. Per-library and
// per-merge failures are recorded in the Summary and do not stop the run.
// The returned error is reserved for cache setup failures and cancellation.
func (m *Manager) Update(ctx context.Context, cfg *LibraryConfig, opts UpdateOptions) (*Summary, error) {
	summary := &Summary{Total: len(cfg.Libraries)}

	if opts.ClearCache {
		m.progress.SetText("Clearing library cache...")
		if err := m.cache.Clear(); err != nil {
			return summary, err
		}
		summary.Cleared = true
	}
	if err := m.cache.Ensure(); err != nil {
		return summary, err
	}

	for i, lib := range cfg.Libraries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		m.progress.SetFraction(float64(i) / float64(len(cfg.Libraries)))
		m.progress.SetText(fmt.Sprintf("Processing %s...", lib.Name))

		status, err := m.fetcher.Fetch(ctx, lib, m.cache.LibraryDir(lib.Name))
		switch status {
		case StatusDownloaded:
			summary.Downloaded++
			m.progress.SetText(fmt.Sprintf("Downloaded %s", lib.Name))
		case StatusAlreadyExists:
			summary.Skipped++
			m.progress.SetText(fmt.Sprintf("%s already exists", lib.Name))
		default:
			summary.Failed++
			m.progress.SetText(fmt.Sprintf("Failed to download %s", lib.Name))
			m.logger.Warn("failed to download library", "library", lib.Name, "error", err)
		}
		summary.Libraries = append(summary.Libraries, LibraryResult{Name: lib.Name, Status: status, Err: err})
	}

	m.progress.SetText("Merging libraries...")
	for _, rule := range cfg.MergeInto {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		copied, err := Merge(m.cache.Dir(), rule)
		if err != nil {
			summary.MergeFailed++
			m.logger.Warn("failed to merge library", "source", rule.Source, "target", rule.Target, "error", err)
		} else {
			summary.Merged++
			m.logger.Info("merged library", "source", rule.Source, "target", rule.Target, "files", copied)
		}
		summary.Merges = append(summary.Merges, MergeResult{Rule: rule, Copied: copied, Err: err})
	}

	m.progress.SetFraction(1)
	return summary, nil
}

// SourceRoots returns the source root of every cached library that is not
// merged into another one, in configuration order.
func (m *Manager) SourceRoots(cfg *LibraryConfig) []string {
	var roots []string
	for _, lib := range cfg.Libraries {
		if cfg.IsMergeSource(lib.Name) || !m.cache.Has(lib.Name) {
			continue
		}
		roots = append(roots, FindSourceRoot(m.cache.LibraryDir(lib.Name)))
	}
	return roots
}

// Message returns the one-line completion message.
func (s *Summary) Message() string {
	var sb strings.Builder
	if s.Downloaded > 0 {
		fmt.Fprintf(&sb, "Downloaded %d new libraries. ", s.Downloaded)
	}
	if s.Skipped > 0 {
		fmt.Fprintf(&sb, "Skipped %d existing. ", s.Skipped)
	}
	if s.Failed > 0 {
		fmt.Fprintf(&sb, "Failed %d libraries. ", s.Failed)
	}
	if s.Downloaded == 0 && s.Failed == 0 {
		fmt.Fprintf(&sb, "All %d libraries are up to date.", s.Total)
	}
	return strings.TrimSpace(sb.String())
}

// HasFailures reports whether any download or merge failed.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0 || s.MergeFailed > 0
}

// NeedsSetup reports whether the project's library roots changed, which is
// the case when anything was downloaded or the cache was cleared.
func (s *Summary) NeedsSetup() bool {
	return s.Downloaded > 0 || s.Cleared
}
