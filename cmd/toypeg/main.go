// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     main
// Description: Entry point of the toypeg command line tool
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package main

import (
	"os"

	"github.com/msto63/toypeg/cmd/toypeg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
