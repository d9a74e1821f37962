package engine

import (
	"context"
	"fmt"

	"github.com/maigus-labs/maigus/internal/state"
)

// Records flattens a report into one audit record per line.
func (r *Report) Records() []state.LineRecord {
	var recs []state.LineRecord
	for _, c := range r.Cards {
		for _, l := range c.Lines {
			rec := state.LineRecord{
				Card:   c.Card.Name,
				Source: c.Card.Source,
				Index:  l.Index,
				Text:   l.Text,
				Status: l.Status(),
				Kind:   l.Kind(),
			}
			if l.Err != nil {
				rec.Error = l.Err.Error()
			}
			recs = append(recs, rec)
		}
	}
	return recs
}

// Audit parses a corpus file and stores the run. A run that cannot finish
// is marked failed with the error.
func (e *Engine) Audit(ctx context.Context, store *state.Store, path string) (*state.Run, *Report, error) {
	run, err := store.CreateRun(path)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Info("audit started", "run_id", run.ID, "corpus", path)

	report, err := e.ParseFile(ctx, path)
	if err != nil {
		if ferr := store.FailRun(run.ID, state.RunStats{}, err.Error()); ferr != nil {
			e.logger.Warn("failed to mark run failed", "run_id", run.ID, "error", ferr)
		}
		return nil, nil, err
	}

	if err := store.RecordLines(run.ID, report.Records()); err != nil {
		_ = store.FailRun(run.ID, report.Stats, err.Error())
		return nil, nil, fmt.Errorf("failed to record lines: %w", err)
	}
	if err := store.CompleteRun(run.ID, report.Stats); err != nil {
		return nil, nil, err
	}

	run, err = store.GetRun(run.ID)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Info("audit completed", "run_id", run.ID, "coverage", run.Stats.Coverage())
	return run, report, nil
}
