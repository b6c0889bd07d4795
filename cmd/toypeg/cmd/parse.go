// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     cmd
// Description: parse subcommand
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/toypeg/internal/ast"
	"github.com/msto63/toypeg/internal/parser"
)

var (
	parseExpr   string
	parseRule   string
	parseFormat string
	parseTrace  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse input and print the syntax tree",
	Long: `Parse a program and print its syntax tree.

Without --rule the input is read as a sequence of statements. With --rule
the whole input must match exactly that grammar rule.

Input is taken from -e, a file argument, or stdin.`,
	Example: `  toypeg parse -e "x = 1 + 2"
  toypeg parse --rule expr --format tree -e "1 * (2 + 3)"
  toypeg parse program.tp --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseExpr, "expr", "e", "", "source text to parse")
	parseCmd.Flags().StringVarP(&parseRule, "rule", "r", "", "parse a single rule: statement, assignment, if, expr, term, atom")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: sexpr, tree, json, yaml, spew")
	parseCmd.Flags().BoolVar(&parseTrace, "trace", false, "log rule entry and exit at trace level")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args, parseExpr)
	if err != nil {
		return err
	}

	p, err := newParser(parseTrace)
	if err != nil {
		return err
	}
	r, err := newRenderer(parseFormat)
	if err != nil {
		return err
	}

	if parseRule == "" {
		program, err := p.ParseProgram(src)
		if err != nil {
			return err
		}
		return r.Program(cmd.OutOrStdout(), program)
	}

	rule, err := parser.ParseRuleName(parseRule)
	if err != nil {
		return err
	}
	var f ast.Fragment
	if f, err = p.ParseRule(src, rule); err != nil {
		return err
	}
	return r.Fragment(cmd.OutOrStdout(), f)
}
