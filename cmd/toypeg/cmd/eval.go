// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     cmd
// Description: eval subcommand
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/toypeg/internal/eval"
	"github.com/msto63/toypeg/internal/render"
)

var (
	evalExpr  string
	evalVars  bool
	evalTrace bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Parse and evaluate a program",
	Long: `Parse a program, evaluate its statements in order and print the value
of the last statement that produced one.`,
	Example: `  toypeg eval -e "x = 6  y = x * 7  y"
  toypeg eval --vars program.tp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&evalExpr, "expr", "e", "", "source text to evaluate")
	evalCmd.Flags().BoolVar(&evalVars, "vars", false, "print the variable table after evaluation")
	evalCmd.Flags().BoolVar(&evalTrace, "trace", false, "log rule entry and exit at trace level")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args, evalExpr)
	if err != nil {
		return err
	}
	p, err := newParser(evalTrace)
	if err != nil {
		return err
	}
	program, err := p.ParseProgram(src)
	if err != nil {
		return err
	}

	in := eval.New(eval.Options{Logger: app.logger})
	v, err := in.Run(cmd.Context(), program)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, v)
	if evalVars {
		render.Vars(out, in.Names(), in.Get)
	}
	return nil
}
