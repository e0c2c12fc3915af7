// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dispatch

import "os/exec"

func signalNumber(*exec.ExitError) int { return 0 }
