// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     main
// Description: Entry point of the pl2 command line tool
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package main

import (
	"os"

	"github.com/msto63/pl2/cmd/pl2/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
