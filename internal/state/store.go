// Package state records batch parse runs in SQLite so corpus coverage can
// be audited and compared across parser changes.
package state

import "time"

// RunStatus is the lifecycle state of a run.
type RunStatus string

// RunStatus constants.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// LineStatus is the outcome of one line.
type LineStatus string

// LineStatus constants.
const (
	LineParsed      LineStatus = "parsed"
	LineFailed      LineStatus = "failed"
	LineUnsupported LineStatus = "unsupported"
	// LineAttached is a bullet or restriction folded into the line above.
	LineAttached LineStatus = "attached"
)

// Run is one audit of a corpus.
type Run struct {
	ID          string
	Corpus      string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Stats       RunStats
	Error       string
}

// RunStats are the line counts of a run.
type RunStats struct {
	Cards       int
	Lines       int
	Parsed      int
	Failed      int
	Unsupported int
}

// Coverage is the share of lines that parsed, in [0, 1]. A run without
// lines has full coverage.
func (s RunStats) Coverage() float64 {
	if s.Lines == 0 {
		return 1
	}
	return float64(s.Parsed) / float64(s.Lines)
}

// LineRecord is the stored outcome of one line of a card.
type LineRecord struct {
	Card   string
	Source string
	Index  int
	Text   string
	Status LineStatus
	// Kind is the type of the parsed line ("TriggeredLine").
	Kind  string
	Error string
}
