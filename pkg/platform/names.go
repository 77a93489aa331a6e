// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"strings"
)

// GOOS values that change where vslice keeps its files.
const (
	Windows = "windows"
	Darwin  = "darwin"
)

// ErrInvalidFileName is the sentinel error wrapped by file name validation failures.
var ErrInvalidFileName = errors.New("invalid file name")

// WindowsReservedNames lists device names that cannot be used as a file or
// directory name on Windows, with or without an extension.
var WindowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName reports whether name (optionally with an extension)
// is a reserved device name on Windows. The check is case-insensitive.
func IsWindowsReservedName(name string) bool {
	if name == "" {
		return false
	}
	base, _, _ := strings.Cut(name, ".")
	return WindowsReservedNames[strings.ToUpper(base)]
}

// ValidateFileName checks that name can be created as a single path element
// on every supported platform.
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidFileName)
	}
	if strings.ContainsAny(name, `/\:*?"<>|`) {
		return fmt.Errorf("%w: %q contains a character that is not allowed in file names", ErrInvalidFileName, name)
	}
	if IsWindowsReservedName(name) {
		return fmt.Errorf("%w: %q is reserved on Windows", ErrInvalidFileName, name)
	}
	if strings.HasSuffix(name, " ") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("%w: %q cannot end with space or period", ErrInvalidFileName, name)
	}
	return nil
}
