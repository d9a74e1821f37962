package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/maigus-labs/maigus/internal/engine"
	"github.com/maigus-labs/maigus/internal/state"
)

// reportJSON is the JSON shape of a batch report.
type reportJSON struct {
	Corpus   string         `json:"corpus,omitempty"`
	Stats    state.RunStats `json:"stats"`
	Coverage float64        `json:"coverage"`
	Duration string         `json:"duration"`
	Failures []failureJSON  `json:"failures"`
}

type failureJSON struct {
	Card   string `json:"card"`
	Source string `json:"source,omitempty"`
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// isFailure reports whether a line belongs in the failure listing.
func isFailure(status state.LineStatus) bool {
	return status == state.LineFailed || status == state.LineUnsupported
}

func renderReportJSON(w io.Writer, r *engine.Report) error {
	out := reportJSON{
		Corpus:   r.Corpus,
		Stats:    r.Stats,
		Coverage: r.Stats.Coverage(),
		Duration: r.Duration.Round(time.Millisecond).String(),
		Failures: []failureJSON{},
	}
	for _, rec := range r.Records() {
		if !isFailure(rec.Status) {
			continue
		}
		out.Failures = append(out.Failures, failureJSON{
			Card:   rec.Card,
			Source: rec.Source,
			Index:  rec.Index,
			Text:   rec.Text,
			Status: string(rec.Status),
			Error:  rec.Error,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderReportTable(w io.Writer, r *engine.Report) {
	var failures []state.LineRecord
	for _, rec := range r.Records() {
		if isFailure(rec.Status) {
			failures = append(failures, rec)
		}
	}
	renderLineTable(w, failures)
	renderStats(w, r.Stats)
}

// renderLineTable prints line outcomes, one row per line.
func renderLineTable(w io.Writer, lines []state.LineRecord) {
	if len(lines) == 0 {
		_, _ = fmt.Fprintln(w, "(0 failing lines)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Card", "Line", "Status", "Text", "Error"})
	for _, l := range lines {
		t.AppendRow(table.Row{l.Card, l.Index, string(l.Status), truncate(l.Text, 60), truncate(l.Error, 80)})
	}
	t.Render()
}

func renderStats(w io.Writer, s state.RunStats) {
	_, _ = fmt.Fprintf(w, "cards: %d  lines: %d  parsed: %d  failed: %d  unsupported: %d  coverage: %.1f%%\n",
		s.Cards, s.Lines, s.Parsed, s.Failed, s.Unsupported, s.Coverage()*100)
}

// renderRunTable prints stored runs, newest first.
func renderRunTable(w io.Writer, runs []*state.Run) {
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(w, "(0 runs)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Corpus", "Status", "Started", "Cards", "Lines", "Failed", "Coverage"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID,
			r.Corpus,
			string(r.Status),
			r.StartedAt.Local().Format(time.DateTime),
			r.Stats.Cards,
			r.Stats.Lines,
			r.Stats.Failed,
			fmt.Sprintf("%.1f%%", r.Stats.Coverage()*100),
		})
	}
	t.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
