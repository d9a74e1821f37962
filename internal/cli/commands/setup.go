package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maigus-labs/maigus/internal/config"
	"github.com/maigus-labs/maigus/internal/engine"
	"github.com/maigus-labs/maigus/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Out    io.Writer
}

// NewCommandContext collects the config and logger stored by the root
// command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    config.FromContext(cmd.Context()),
		Logger: config.GetLogger(cmd.Context()),
		Out:    cmd.OutOrStdout(),
	}
}

// Engine creates a batch engine from the configuration.
func (c *CommandContext) Engine() *engine.Engine {
	return engine.New(engine.Config{
		Parser:  c.Cfg.ParserSettings(),
		Workers: c.Cfg.Workers,
		Logger:  c.Logger,
	})
}

// OpenStore opens and migrates the audit database. The caller closes it.
func (c *CommandContext) OpenStore() (*state.Store, error) {
	// Ensure state directory exists
	stateDir := filepath.Dir(c.Cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store, err := state.Open(c.Cfg.StatePath, c.Logger)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
