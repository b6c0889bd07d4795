// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     cmd
// Description: tokens subcommand
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/msto63/toypeg/internal/render"
)

var (
	tokensExpr string
	tokensJSON bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of the input",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().StringVarP(&tokensExpr, "expr", "e", "", "source text to tokenize")
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "print tokens as JSON")

	rootCmd.AddCommand(tokensCmd)
}

type tokenDoc struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args, tokensExpr)
	if err != nil {
		return err
	}
	p, err := newParser(false)
	if err != nil {
		return err
	}
	toks, err := p.Tokens(src)
	if err != nil {
		return err
	}

	if !tokensJSON {
		render.Tokens(cmd.OutOrStdout(), toks)
		return nil
	}

	docs := make([]tokenDoc, 0, len(toks))
	for _, t := range toks {
		docs = append(docs, tokenDoc{Kind: t.Kind.String(), Text: t.Text, Line: t.Pos.Line, Column: t.Pos.Column})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
