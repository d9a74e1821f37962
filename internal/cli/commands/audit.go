package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maigus-labs/maigus/internal/state"
)

// NewAuditCommand creates the audit command and its subcommands.
func NewAuditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <corpus.yaml>",
		Short: "Parse a corpus and record every line outcome",
		Long: `Parse a corpus like batch does and store the outcome of every line in the
state database, so coverage can be compared across parser changes.`,
		Example: `  # Audit a corpus
  maigus audit cards.yaml

  # Use a different state database
  maigus audit cards.yaml --state /tmp/audit.db

  # Show the failing lines of the latest run
  maigus audit show`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			store, err := c.OpenStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			run, report, err := c.Engine().Audit(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}

			if c.Cfg.Output == "json" {
				return renderReportJSON(c.Out, report)
			}
			_, _ = fmt.Fprintf(c.Out, "run %s\n", run.ID)
			renderStats(c.Out, run.Stats)
			return nil
		},
	}

	cmd.Flags().Int("workers", 0, "Cards parsed at once (default: one per CPU)")

	cmd.AddCommand(newAuditShowCommand())
	cmd.AddCommand(newAuditListCommand())

	return cmd
}

func newAuditShowCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show a stored run and its failing lines",
		Long:  `Show a stored audit run, the latest one when no run id is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			store, err := c.OpenStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var runID string
			if len(args) == 1 {
				runID = args[0]
			} else {
				latest, err := store.LatestRun()
				if err != nil {
					return err
				}
				if latest == nil {
					return fmt.Errorf("no audit runs recorded in %s", store.Path())
				}
				runID = latest.ID
			}

			run, err := store.GetRun(runID)
			if err != nil {
				return err
			}
			lines, err := store.ListLines(run.ID, !all)
			if err != nil {
				return err
			}

			renderRunTable(c.Out, []*state.Run{run})
			if run.Error != "" {
				_, _ = fmt.Fprintf(c.Out, "error: %s\n", run.Error)
			}
			renderLineTable(c.Out, lines)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every line, not only failures")

	return cmd
}

func newAuditListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)

			store, err := c.OpenStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.ListRuns(limit)
			if err != nil {
				return err
			}
			renderRunTable(c.Out, runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")

	return cmd
}
