// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     cmd
// Description: version subcommand
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/toypeg/pkg/core/version"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := cmd.OutOrStdout()
		if versionJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}
		fmt.Fprintf(out, "toypeg version %s\n", info.Version)
		fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
		fmt.Fprintf(out, "Built: %s\n", info.BuildDate)
		fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print version information as JSON")
	rootCmd.AddCommand(versionCmd)
}
