// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     cmd
// Description: repl subcommand
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/toypeg/internal/eval"
	"github.com/msto63/toypeg/internal/render"
	"github.com/msto63/toypeg/internal/repl"
	"github.com/msto63/toypeg/pkg/core/version"
)

var replNoHistory bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive shell",
	Args:  cobra.NoArgs,
	RunE:  runREPL,
}

func init() {
	replCmd.Flags().BoolVar(&replNoHistory, "no-history", false, "do not load or save the history file")

	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	p, err := newParser(false)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(app.cfg.Output.Format)
	if err != nil {
		return err
	}

	history := app.cfg.REPL.HistoryFile
	if replNoHistory {
		history = ""
	}

	r, err := repl.New(repl.Options{
		Output:      cmd.OutOrStdout(),
		Parser:      p,
		Interpreter: eval.New(eval.Options{Logger: app.logger}),
		Logger:      app.logger,
		Format:      format,
		Color:       app.cfg.Output.Color,
		Prompt:      app.cfg.REPL.Prompt,
		HistoryPath: history,
		Banner:      fmt.Sprintf("%s\nType :help for commands, :quit to leave.", version.Get()),
	})
	if err != nil {
		return err
	}
	return r.Loop(cmd.Context())
}
