// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     render
// Description: Output formats for syntax trees and token streams
// Created:     2026-10-15
// License:     MIT
// ============================================================================

// Package render writes syntax trees and tokens in the formats offered by the
// command line tool and the REPL.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	tperror "github.com/msto63/toypeg/pkg/core/error"

	"github.com/msto63/toypeg/internal/ast"
	"github.com/msto63/toypeg/internal/token"
)

// Format selects how a tree is written
type Format string

const (
	FormatSExpr Format = "sexpr"
	FormatTree  Format = "tree"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatSpew  Format = "spew"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatSExpr, FormatTree, FormatJSON, FormatYAML, FormatSpew}
}

// ParseFormat converts a format name
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", tperror.Newf("unknown output format %q", s).
		WithCode(tperror.CodeInvalidInput).
		WithDetail("format", s)
}

// Tree styles
var (
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Renderer writes fragments in one format
type Renderer struct {
	format Format
	color  bool
}

// New creates a renderer. Color only affects the tree format.
func New(format Format, color bool) (*Renderer, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	return &Renderer{format: format, color: color}, nil
}

// Format returns the renderer's format
func (r *Renderer) Format() Format {
	return r.format
}

// Fragment writes a single fragment followed by a newline
func (r *Renderer) Fragment(w io.Writer, f ast.Fragment) error {
	switch r.format {
	case FormatSExpr:
		_, err := fmt.Fprintln(w, f.String())
		return err
	case FormatTree:
		_, err := io.WriteString(w, r.tree(f))
		return err
	case FormatJSON:
		return writeJSON(w, f)
	case FormatYAML:
		return writeYAML(w, f)
	case FormatSpew:
		spewConfig.Fdump(w, f)
		return nil
	default:
		return tperror.Newf("unknown output format %q", r.format).WithCode(tperror.CodeInvalidInput)
	}
}

// Program writes a list of statements. Structured formats emit one document
// holding a list; text formats write the statements one after another.
func (r *Renderer) Program(w io.Writer, program []ast.Fragment) error {
	switch r.format {
	case FormatJSON:
		if program == nil {
			program = []ast.Fragment{}
		}
		return writeJSON(w, program)
	case FormatYAML:
		return writeYAML(w, program)
	}
	for _, f := range program {
		if err := r.Fragment(w, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) tree(f ast.Fragment) string {
	var b strings.Builder
	b.WriteString(r.label(f))
	b.WriteString("\n")
	if n, ok := f.(*ast.Node); ok {
		r.branches(&b, n, "")
	}
	return b.String()
}

func (r *Renderer) branches(b *strings.Builder, n *ast.Node, prefix string) {
	children := n.Children()
	for i, c := range children {
		connector, indent := "├── ", "│   "
		if i == len(children)-1 {
			connector, indent = "└── ", "    "
		}
		b.WriteString(r.style(branchStyle, prefix+connector))
		b.WriteString(r.label(c))
		b.WriteString("\n")
		if child, ok := c.(*ast.Node); ok {
			r.branches(b, child, prefix+indent)
		}
	}
}

func (r *Renderer) label(f ast.Fragment) string {
	return ast.Fold(f,
		func(n *ast.Node) string {
			return r.style(kindStyle, n.Kind().String())
		},
		func(l ast.Leaf) string {
			if l.IsNumber() {
				return r.style(numberStyle, l.Token.Text)
			}
			return r.style(nameStyle, l.Token.Text)
		},
	)
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func writeJSON(w io.Writer, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return tperror.Wrap(err, "encode json").WithCode(tperror.CodeInternal)
	}
	_, err = fmt.Fprintln(w, string(buf))
	return err
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return tperror.Wrap(err, "encode yaml").WithCode(tperror.CodeInternal)
	}
	return enc.Close()
}

// Tokens writes a table of tokens with their positions
func Tokens(w io.Writer, tokens []token.Token) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"#", "KIND", "TEXT", "LINE", "COLUMN"})
	for i, tok := range tokens {
		table.Append([]string{
			strconv.Itoa(i),
			tok.Kind.String(),
			tok.Text,
			strconv.Itoa(tok.Pos.Line),
			strconv.Itoa(tok.Pos.Column),
		})
	}
	table.Render()
}

// Vars writes a table of variable bindings in the order of names
func Vars(w io.Writer, names []string, lookup func(string) (int64, bool)) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"NAME", "VALUE"})
	for _, name := range names {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		table.Append([]string{name, strconv.FormatInt(v, 10)})
	}
	table.Render()
}
