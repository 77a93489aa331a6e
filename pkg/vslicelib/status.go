// SPDX-License-Identifier: MPL-2.0

package vslicelib

import (
	"errors"
	"fmt"
)

const (
	// StatusDownloaded means the archive was fetched and extracted.
	StatusDownloaded DownloadStatus = "DOWNLOADED"
	// StatusAlreadyExists means the library directory was already present
	// and no request was made.
	StatusAlreadyExists DownloadStatus = "ALREADY_EXISTS"
	// StatusFailed means the fetch or extraction failed.
	StatusFailed DownloadStatus = "FAILED"
)

// ErrInvalidDownloadStatus is the sentinel error wrapped by InvalidDownloadStatusError.
var ErrInvalidDownloadStatus = errors.New("invalid download status")

type (
	// DownloadStatus is the outcome of fetching one library.
	DownloadStatus string

	// InvalidDownloadStatusError is returned when a DownloadStatus value is not recognized.
	InvalidDownloadStatusError struct {
		Value DownloadStatus
	}
)

// String returns the string representation of the DownloadStatus.
func (s DownloadStatus) String() string { return string(s) }

// Validate returns an error if s is not one of the defined statuses.
func (s DownloadStatus) Validate() error {
	switch s {
	case StatusDownloaded, StatusAlreadyExists, StatusFailed:
		return nil
	default:
		return &InvalidDownloadStatusError{Value: s}
	}
}

// Error implements the error interface.
func (e *InvalidDownloadStatusError) Error() string {
	return fmt.Sprintf("invalid download status %q (valid: DOWNLOADED, ALREADY_EXISTS, FAILED)", e.Value)
}

// Unwrap returns ErrInvalidDownloadStatus for errors.Is() compatibility.
func (e *InvalidDownloadStatusError) Unwrap() error { return ErrInvalidDownloadStatus }
