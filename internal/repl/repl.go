// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     repl
// Description: Interactive read-eval-print loop over parser and interpreter
// Created:     2026-10-15
// License:     MIT
// ============================================================================

// Package repl implements the interactive shell. Lines are parsed as a
// program and evaluated against a persistent environment; lines starting with
// ':' are shell commands.
package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/peterh/liner"

	tperror "github.com/msto63/toypeg/pkg/core/error"
	tplog "github.com/msto63/toypeg/pkg/core/log"

	"github.com/msto63/toypeg/internal/eval"
	"github.com/msto63/toypeg/internal/parser"
	"github.com/msto63/toypeg/internal/render"
)

// DefaultPrompt is used when Options.Prompt is empty
const DefaultPrompt = "toypeg> "

// Options configures a REPL
type Options struct {
	Output      io.Writer
	Parser      *parser.Parser
	Interpreter *eval.Interpreter
	Logger      *tplog.Logger
	Format      render.Format
	Color       bool
	Prompt      string
	HistoryPath string
	Banner      string
}

// REPL represents an instance of the interactive shell
type REPL struct {
	output      io.Writer
	parser      *parser.Parser
	interp      *eval.Interpreter
	renderer    *render.Renderer
	logger      *tplog.Logger
	color       bool
	prompt      string
	historyPath string
	banner      string
}

// stop is returned by OneShot when the user asked to leave
type stop struct{}

func (stop) Error() string { return "<stop>" }

// IsStop reports whether err asks the loop to end
func IsStop(err error) bool {
	_, ok := err.(stop)
	return ok
}

// New returns a new REPL. A parser and interpreter are created when the
// options do not supply them.
func New(opts Options) (*REPL, error) {
	if opts.Logger == nil {
		opts.Logger = tplog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Format == "" {
		opts.Format = render.FormatSExpr
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Parser == nil {
		p, err := parser.New(parser.Options{Logger: opts.Logger})
		if err != nil {
			return nil, err
		}
		opts.Parser = p
	}
	if opts.Interpreter == nil {
		opts.Interpreter = eval.New(eval.Options{Logger: opts.Logger})
	}

	renderer, err := render.New(opts.Format, opts.Color)
	if err != nil {
		return nil, err
	}

	return &REPL{
		output:      opts.Output,
		parser:      opts.Parser,
		interp:      opts.Interpreter,
		renderer:    renderer,
		logger:      opts.Logger.WithField("component", "repl"),
		color:       opts.Color,
		prompt:      opts.Prompt,
		historyPath: opts.HistoryPath,
		banner:      opts.Banner,
	}, nil
}

// Loop runs until the user enters :quit, Ctrl+C, Ctrl+D, or the terminal fails
func (r *REPL) Loop(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(r.complete)
	r.loadHistory(line)

	if r.banner != "" {
		fmt.Fprintln(r.output, r.banner)
	}

	for {
		input, err := line.Prompt(r.prompt)
		if err == liner.ErrPromptAborted || err == io.EOF {
			fmt.Fprintln(r.output, "Exiting")
			break
		}
		if err != nil {
			r.saveHistory(line)
			return tperror.Wrap(err, "read input").WithCode(tperror.CodeInternal)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if err := r.OneShot(ctx, input); err != nil {
			if IsStop(err) {
				break
			}
			fmt.Fprintln(r.output, "error:", err)
		}
	}

	r.saveHistory(line)
	return nil
}

// OneShot handles a single line and prints its result. Errors are returned for
// the caller to display.
func (r *REPL) OneShot(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if cmd := newCommand(line); cmd != nil {
		r.logger.Debug("command", tplog.Fields{"op": cmd.op, "args": cmd.args})
		switch cmd.op {
		case "help":
			return r.cmdHelp()
		case "quit", "exit":
			return stop{}
		case "vars":
			return r.cmdVars()
		case "tokens":
			return r.cmdTokens(cmd.args)
		case "ast":
			return r.cmdAST(cmd.args)
		case "format":
			return r.cmdFormat(cmd.args)
		case "reset":
			return r.cmdReset()
		default:
			return tperror.Newf("unknown command :%s (see :help)", cmd.op).
				WithCode(tperror.CodeInvalidInput)
		}
	}

	return r.evalLine(ctx, line)
}

func (r *REPL) evalLine(ctx context.Context, line string) error {
	program, err := r.parser.ParseProgram(line)
	if err != nil {
		return err
	}
	v, err := r.interp.Run(ctx, program)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.output, v)
	return nil
}

type command struct {
	op   string
	args string
}

func newCommand(line string) *command {
	if !strings.HasPrefix(line, ":") {
		return nil
	}
	fields := strings.SplitN(strings.TrimPrefix(line, ":"), " ", 2)
	cmd := &command{op: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		cmd.args = strings.TrimSpace(fields[1])
	}
	return cmd
}

type commandDesc struct {
	name string
	args string
	help string
}

var builtin = []commandDesc{
	{"ast", "<source>", "show the syntax tree of a program"},
	{"format", "[name]", "show or set the tree format (" + formatNames() + ")"},
	{"help", "", "show this help"},
	{"quit", "", "leave the shell"},
	{"reset", "", "forget all variables"},
	{"tokens", "<source>", "show the tokens of a program"},
	{"vars", "", "list variables"},
}

func formatNames() string {
	var names []string
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func (r *REPL) cmdHelp() error {
	fmt.Fprintln(r.output, "Enter statements such as 'x = 1 + 2' or 'if x: y = x * 2'.")
	fmt.Fprintln(r.output, "Commands:")
	for _, c := range builtin {
		syntax := ":" + c.name
		if c.args != "" {
			syntax += " " + c.args
		}
		fmt.Fprintf(r.output, "  %-20s %s\n", syntax, c.help)
	}
	return nil
}

func (r *REPL) cmdVars() error {
	names := r.interp.Names()
	if len(names) == 0 {
		fmt.Fprintln(r.output, "no variables")
		return nil
	}
	render.Vars(r.output, names, r.interp.Get)
	return nil
}

func (r *REPL) cmdTokens(src string) error {
	toks, err := r.parser.Tokens(src)
	if err != nil {
		return err
	}
	render.Tokens(r.output, toks)
	return nil
}

func (r *REPL) cmdAST(src string) error {
	program, err := r.parser.ParseProgram(src)
	if err != nil {
		return err
	}
	return r.renderer.Program(r.output, program)
}

func (r *REPL) cmdFormat(name string) error {
	if name == "" {
		fmt.Fprintln(r.output, r.renderer.Format())
		return nil
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}
	renderer, err := render.New(format, r.color)
	if err != nil {
		return err
	}
	r.renderer = renderer
	return nil
}

func (r *REPL) cmdReset() error {
	r.interp.Reset()
	return nil
}

// complete proposes commands for lines starting with ':' and variable names
// for the last word of anything else, best fuzzy match first
func (r *REPL) complete(line string) []string {
	if strings.HasPrefix(line, ":") && !strings.Contains(line, " ") {
		var names []string
		for _, c := range builtin {
			names = append(names, ":"+c.name)
		}
		return rank(line, names, "")
	}

	cut := strings.LastIndexAny(line, " =+-*/():") + 1
	word := line[cut:]
	if word == "" {
		return nil
	}
	return rank(word, r.interp.Names(), line[:cut])
}

type scored struct {
	target string
	score  int
}

// rank scores each target against input, drops the ones that do not match
// and orders the rest by distance, then name
func rank(input string, targets []string, prefix string) []string {
	items := make([]scored, 0, len(targets))
	for _, target := range targets {
		if score := fuzzy.RankMatchNormalizedFold(input, target); score >= 0 {
			items = append(items, scored{target: target, score: score})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score < items[j].score
		}
		return items[i].target < items[j].target
	})

	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, prefix+item.target)
	}
	return out
}

func (r *REPL) loadHistory(prompt *liner.State) {
	if r.historyPath == "" {
		return
	}
	if f, err := os.Open(r.historyPath); err == nil {
		if _, err := prompt.ReadHistory(f); err != nil {
			r.logger.WarnWithErr("cannot read history", err, tplog.Fields{"path": r.historyPath})
		}
		f.Close()
	}
}

func (r *REPL) saveHistory(prompt *liner.State) {
	if r.historyPath == "" {
		return
	}
	f, err := os.Create(r.historyPath)
	if err != nil {
		r.logger.WarnWithErr("cannot write history", err, tplog.Fields{"path": r.historyPath})
		return
	}
	defer f.Close()
	if _, err := prompt.WriteHistory(f); err != nil {
		r.logger.WarnWithErr("cannot write history", err, tplog.Fields{"path": r.historyPath})
	}
}
