// SPDX-License-Identifier: MPL-2.0

package main

import cmd "bellows/cmd/bellows"

func main() {
	cmd.Execute()
}
