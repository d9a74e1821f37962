package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/maigus-labs/maigus/internal/engine"
)

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "batch <corpus.yaml>",
		Short: "Parse every card of a corpus",
		Long: `Parse every card of a YAML corpus on a bounded worker pool and report the
lines that failed. The command fails when any card fails, unless
--allow-unsupported keeps failures as unsupported markers.

With --watch the corpus is parsed again whenever the file changes.`,
		Example: `  # Parse a corpus
  maigus batch cards.yaml

  # Parse on 8 workers and print JSON
  maigus batch cards.yaml --workers 8 -o json

  # Re-parse on every save
  maigus batch cards.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			eng := c.Engine()

			if watch {
				return eng.Watch(cmd.Context(), args[0], func(r *engine.Report, err error) {
					if err != nil {
						c.Logger.Error("batch failed", "error", err)
						return
					}
					if err := renderReport(c.Out, r, c.Cfg.Output); err != nil {
						c.Logger.Error("failed to render report", "error", err)
					}
				})
			}

			report, err := eng.ParseFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := renderReport(c.Out, report, c.Cfg.Output); err != nil {
				return err
			}
			if failed := report.FailedCards(); len(failed) > 0 {
				return fmt.Errorf("%d of %d cards failed to parse", len(failed), len(report.Cards))
			}
			return nil
		},
	}

	cmd.Flags().Int("workers", 0, "Cards parsed at once (default: one per CPU)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-parse when the corpus changes")

	return cmd
}

func renderReport(w io.Writer, r *engine.Report, output string) error {
	if output == "json" {
		return renderReportJSON(w, r)
	}
	renderReportTable(w, r)
	return nil
}
