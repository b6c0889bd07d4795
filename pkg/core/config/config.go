// ============================================================================
// toypeg - PEG parser toolkit
// ============================================================================
//
// Package:     config
// Description: Application configuration loaded from TOML or YAML
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	tperror "github.com/msto63/toypeg/pkg/core/error"
)

// EnvConfigPath names the environment variable that points at a config file
const EnvConfigPath = "TOYPEG_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	REPL    REPLConfig    `toml:"repl" yaml:"repl"`
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// ParserConfig holds grammar engine settings
type ParserConfig struct {
	MaxDepth       int  `toml:"max_depth" yaml:"max_depth"`
	Trace          bool `toml:"trace" yaml:"trace"`
	MaxInputLength int  `toml:"max_input_length" yaml:"max_input_length"`
}

// OutputConfig holds rendering settings
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
}

// REPLConfig holds interactive shell settings
type REPLConfig struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
}

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// OutputFormats lists the accepted values of output.format
var OutputFormats = []string{"sexpr", "tree", "json", "yaml", "spew"}

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

var logFormats = []string{"json", "text", "console"}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file; the format follows the
// file extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, tperror.Wrap(err, "config file not found").
				WithCode(tperror.CodeMissingConfig).
				WithOperation("config.Load").
				WithDetail("path", path)
		}
		return nil, tperror.Wrap(err, "failed to read config").
			WithCode(tperror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, tperror.Wrap(err, "failed to parse config").WithDetail("path", path)
	}
	return cfg, nil
}

// Parse decodes configuration content, applies defaults and validates it
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, tperror.Wrap(err, "TOML parse error").
				WithCode(tperror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, tperror.Wrap(err, "YAML parse error").
				WithCode(tperror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	default:
		return nil, tperror.Newf("unsupported format: %s", format).
			WithCode(tperror.CodeInvalidConfig).
			WithOperation("config.Parse")
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from $TOYPEG_CONFIG or the first default
// location that exists. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths returns the locations searched by LoadFromEnv
func DefaultPaths() []string {
	paths := []string{
		"./configs/toypeg.toml",
		"./toypeg.toml",
		"./toypeg.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "toypeg", "config.toml"))
	}
	return paths
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	var problems []string

	if !contains(logLevels, strings.ToLower(c.General.LogLevel)) {
		problems = append(problems, fmt.Sprintf("general.log_level %q is not one of %v", c.General.LogLevel, logLevels))
	}
	if !contains(logFormats, strings.ToLower(c.General.LogFormat)) {
		problems = append(problems, fmt.Sprintf("general.log_format %q is not one of %v", c.General.LogFormat, logFormats))
	}
	if c.Parser.MaxDepth < 0 {
		problems = append(problems, "parser.max_depth must not be negative")
	}
	if c.Parser.MaxInputLength < 0 {
		problems = append(problems, "parser.max_input_length must not be negative")
	}
	if !contains(OutputFormats, strings.ToLower(c.Output.Format)) {
		problems = append(problems, fmt.Sprintf("output.format %q is not one of %v", c.Output.Format, OutputFormats))
	}

	if len(problems) > 0 {
		return tperror.New("invalid configuration: " + strings.Join(problems, "; ")).
			WithCode(tperror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("problems", problems)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = 1024
	}
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = 1 << 20
	}

	if c.Output.Format == "" {
		c.Output.Format = "sexpr"
	}

	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "toypeg> "
	}
	if c.REPL.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.REPL.HistoryFile = filepath.Join(home, ".toypeg_history")
		}
	}
}

// expandEnvVars expands environment references in path settings
func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
