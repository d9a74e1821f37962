package state

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const runColumns = `id, corpus, status, started_at, completed_at, cards, lines, parsed, failed, unsupported, error`

// CreateRun starts a run over a corpus.
func (s *Store) CreateRun(corpus string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:        generateID(),
		Corpus:    corpus,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	s.logger.Debug("creating run", slog.String("id", run.ID), slog.String("corpus", corpus))

	_, err := s.db.ExecContext(ctx(),
		`INSERT INTO runs (id, corpus, status, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Corpus, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun marks a run completed with its final counts.
func (s *Store) CompleteRun(id string, stats RunStats) error {
	return s.finishRun(id, RunStatusCompleted, stats, "")
}

// FailRun marks a run failed, keeping whatever counts were reached.
func (s *Store) FailRun(id string, stats RunStats, errMsg string) error {
	return s.finishRun(id, RunStatusFailed, stats, errMsg)
}

func (s *Store) finishRun(id string, status RunStatus, stats RunStats, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	var errCol *string
	if errMsg != "" {
		errCol = &errMsg
	}
	res, err := s.db.ExecContext(ctx(),
		`UPDATE runs SET status = ?, completed_at = ?, cards = ?, lines = ?, parsed = ?, failed = ?, unsupported = ?, error = ?
		 WHERE id = ?`,
		string(status), time.Now().UTC(), stats.Cards, stats.Lines, stats.Parsed, stats.Failed, stats.Unsupported, errCol, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run not found: %s", id)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run, err := scanRun(s.db.QueryRowContext(ctx(), `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// LatestRun retrieves the most recently started run, or nil when there is
// none.
func (s *Store) LatestRun() (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run, err := scanRun(s.db.QueryRowContext(ctx(),
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx(),
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run         Run
		status      string
		completedAt sql.NullTime
		errMsg      sql.NullString
	)
	err := row.Scan(&run.ID, &run.Corpus, &status, &run.StartedAt, &completedAt,
		&run.Stats.Cards, &run.Stats.Lines, &run.Stats.Parsed, &run.Stats.Failed, &run.Stats.Unsupported, &errMsg)
	if err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	run.StartedAt = run.StartedAt.UTC()
	run.CompletedAt = nullTime(completedAt)
	run.Error = errMsg.String
	return &run, nil
}
