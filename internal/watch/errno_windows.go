// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// brokenWatcherErrnos end a watch session. ReadDirectoryChangesW has no
// watch limit, but running out of handles or memory, or losing the handle
// of a project folder that was deleted, cannot be recovered from.
var brokenWatcherErrnos = []syscall.Errno{
	4, // ERROR_TOO_MANY_OPEN_FILES
	6, // ERROR_INVALID_HANDLE
	8, // ERROR_NOT_ENOUGH_MEMORY
}
