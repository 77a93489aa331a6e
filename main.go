// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/funkindev/vslice/cmd/vslice"

func main() {
	cmd.Execute()
}
