// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     cmd
// Description: Root command, global flags and shared setup
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/msto63/toypeg/pkg/core/config"
	tperror "github.com/msto63/toypeg/pkg/core/error"
	tplog "github.com/msto63/toypeg/pkg/core/log"

	"github.com/msto63/toypeg/internal/parser"
	"github.com/msto63/toypeg/internal/render"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	verbose   bool
)

// app holds what the root command prepared for its subcommands
var app struct {
	cfg       *config.Config
	logger    *tplog.Logger
	requestID string
}

var rootCmd = &cobra.Command{
	Use:   "toypeg",
	Short: "PEG parser toolkit for a small statement language",
	Long: `toypeg parses, inspects and evaluates programs written in a small
statement language using a backtracking PEG parser.

Grammar:
  statement    = assignment / expr / if_statement
  assignment   = NAME "=" expr
  if_statement = "if" statement ":" statement
  expr         = term ("+" expr / "-" expr / ε)
  term         = atom ("*" term / "/" term / ε)
  atom         = NAME / NUMBER / "(" expr ")"`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and prints any error to stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an error to the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return tperror.GetCode(err).ExitCode()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvConfigPath+" or ./configs/toypeg.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: json, text, console")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging, detailed errors)")
}

// setup loads the configuration and builds the logger for every subcommand
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		app.cfg, err = config.Load(cfgFile)
	} else {
		app.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if logLevel != "" {
		app.cfg.General.LogLevel = logLevel
	}
	if logFormat != "" {
		app.cfg.General.LogFormat = logFormat
	}
	if verbose {
		app.cfg.General.LogLevel = "debug"
	}

	level, err := tplog.ParseLevel(app.cfg.General.LogLevel)
	if err != nil {
		return tperror.Wrap(err, "invalid --log-level").WithCode(tperror.CodeInvalidConfig)
	}
	format, err := tplog.ParseFormat(app.cfg.General.LogFormat)
	if err != nil {
		return tperror.Wrap(err, "invalid --log-format").WithCode(tperror.CodeInvalidConfig)
	}

	app.requestID = uuid.NewString()
	app.logger = tplog.NewWithConfig(tplog.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
		Name:   "toypeg",
	}).WithRequestID(app.requestID)
	tplog.SetDefault(app.logger)

	app.logger.Debug("command started", tplog.Fields{
		"command": cmd.CommandPath(),
		"config":  cfgFile,
	})
	return nil
}

// newParser builds a parser from the config. Tracing lowers the log level to
// trace so the rule events are written.
func newParser(trace bool) (*parser.Parser, error) {
	trace = trace || app.cfg.Parser.Trace
	if trace {
		app.logger.SetLevel(tplog.LevelTrace)
	}
	return parser.New(parser.Options{
		Logger:         app.logger,
		MaxDepth:       app.cfg.Parser.MaxDepth,
		MaxInputLength: app.cfg.Parser.MaxInputLength,
		Trace:          trace,
	})
}

// newRenderer uses name, or the configured format when name is empty
func newRenderer(name string) (*render.Renderer, error) {
	if name == "" {
		name = app.cfg.Output.Format
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return render.New(format, app.cfg.Output.Color)
}

// readSource returns the program text from -e, a file argument, or stdin
func readSource(cmd *cobra.Command, args []string, expr string) (string, error) {
	if expr != "" {
		if len(args) > 0 {
			return "", tperror.New("use either -e or a file argument, not both").WithCode(tperror.CodeInvalidInput)
		}
		return expr, nil
	}

	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", tperror.Wrap(err, "cannot read input").WithCode(tperror.CodeInvalidInput)
	}
	return string(data), nil
}

func printError(w io.Writer, err error) {
	var e *tperror.Error
	if !errors.As(err, &e) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}

	msg := e.Error()
	if line, ok := e.Detail("line"); ok {
		if col, ok := e.Detail("column"); ok {
			msg = fmt.Sprintf("%v:%v: %s", line, col, msg)
		}
	}
	fmt.Fprintf(w, "error: %s\n", msg)
	if verbose {
		fmt.Fprintln(w, indent(e.String()))
	}
	if app.logger != nil {
		app.logger.LogError(err)
	}
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
