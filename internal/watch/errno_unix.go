// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import "syscall"

// brokenWatcherErrnos end a watch session: inotify has run out of watches
// (fs.inotify.max_user_watches) or the process or system is out of file
// descriptors. A large mod with many asset folders can hit the watch limit.
var brokenWatcherErrnos = []syscall.Errno{
	syscall.ENOSPC,
	syscall.EMFILE,
	syscall.ENFILE,
}
