package state

import (
	"fmt"
)

const insertLine = `INSERT INTO run_lines (run_id, card, source, line_index, text, status, kind, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// RecordLine stores the outcome of one line.
func (s *Store) RecordLine(runID string, rec LineRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.ExecContext(ctx(), insertLine,
		runID, rec.Card, rec.Source, rec.Index, rec.Text, string(rec.Status), rec.Kind, rec.Error)
	if err != nil {
		return fmt.Errorf("failed to record line %d of %s: %w", rec.Index, rec.Card, err)
	}
	return nil
}

// RecordLines stores many outcomes in one transaction.
func (s *Store) RecordLines(runID string, recs []LineRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx(), insertLine)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range recs {
		if _, err := stmt.ExecContext(ctx(),
			runID, rec.Card, rec.Source, rec.Index, rec.Text, string(rec.Status), rec.Kind, rec.Error); err != nil {
			return fmt.Errorf("failed to record line %d of %s: %w", rec.Index, rec.Card, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lines: %w", err)
	}
	s.logger.Debug("recorded lines", "run", runID, "count", len(recs))
	return nil
}

// ListLines returns the lines of a run in the order they were recorded.
// With onlyFailures it returns failed and unsupported lines only.
func (s *Store) ListLines(runID string, onlyFailures bool) ([]LineRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT card, source, line_index, text, status, kind, error FROM run_lines WHERE run_id = ?`
	if onlyFailures {
		query += ` AND status IN ('failed', 'unsupported')`
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx(), query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []LineRecord
	for rows.Next() {
		var (
			rec    LineRecord
			status string
		)
		if err := rows.Scan(&rec.Card, &rec.Source, &rec.Index, &rec.Text, &status, &rec.Kind, &rec.Error); err != nil {
			return nil, fmt.Errorf("failed to scan line: %w", err)
		}
		rec.Status = LineStatus(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}
