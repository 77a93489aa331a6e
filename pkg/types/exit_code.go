// SPDX-License-Identifier: MPL-2.0

package types

import "strconv"

// ExitCode is the status vslice reports to the shell.
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	ExitFailure ExitCode = 1
	// ExitFindings means the command ran to the end but found problems:
	// failed library downloads, blacklisted imports or invalid metadata.
	ExitFindings ExitCode = 2
)

// Status returns c as a value os.Exit accepts. Codes outside 0-255 cannot
// be represented by POSIX shells and collapse to ExitFailure.
func (c ExitCode) Status() int {
	if c < 0 || c > 255 {
		return int(ExitFailure)
	}
	return int(c)
}

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
