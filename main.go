// SPDX-License-Identifier: MPL-2.0

// Command pyshim is a fast dispatch shim for pyenv-managed interpreters.
package main

import cmd "github.com/invowk/pyshim/cmd/pyshim"

func main() {
	cmd.Execute()
}
