// Package config loads maigus settings from defaults, a maigus.yaml file,
// MAIGUS_* environment variables and command-line flags.
package config

import (
	"fmt"
	"slices"

	"github.com/maigus-labs/maigus/pkg/parser"
)

// ParserConfig mirrors parser.Config under the "parser" key.
type ParserConfig struct {
	Trace            bool `koanf:"trace"`
	StackTrace       bool `koanf:"stacktrace"`
	AllowUnsupported bool `koanf:"allow_unsupported"`
}

// Config holds all settings of a maigus run.
type Config struct {
	Parser ParserConfig `koanf:"parser"`
	// Workers bounds the batch worker pool. Zero means one per CPU.
	Workers   int    `koanf:"workers"`
	StatePath string `koanf:"state_path"`
	Output    string `koanf:"output"`
	Verbose   bool   `koanf:"verbose"`

	// FileUsed is the config file that was loaded, if any.
	FileUsed string `koanf:"-"`
}

// ParserSettings returns the parser configuration.
func (c *Config) ParserSettings() parser.Config {
	return parser.Config{
		Trace:            c.Parser.Trace,
		StackTrace:       c.Parser.StackTrace,
		AllowUnsupported: c.Parser.AllowUnsupported,
	}
}

// Validate checks values that the decoder cannot.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if !slices.Contains(OutputFormats, c.Output) {
		return fmt.Errorf("unknown output format %q (want one of %v)", c.Output, OutputFormats)
	}
	if c.StatePath == "" {
		return fmt.Errorf("state_path is required")
	}
	return nil
}
