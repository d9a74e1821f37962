// Package engine parses card corpora concurrently and records the outcome of
// every line.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maigus-labs/maigus/internal/loader"
	"github.com/maigus-labs/maigus/internal/state"
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/parser"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Engine runs the parser over corpora.
type Engine struct {
	parser           *parser.Parser
	workers          int
	debounce         time.Duration
	allowUnsupported bool
	logger           *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Parser configures the parser; AllowUnsupported is applied here.
	Parser parser.Config
	// Workers bounds the cards parsed at once. Zero uses one per CPU.
	Workers int
	// Debounce delays re-parsing in Watch (optional, defaults to DefaultDebounce)
	Debounce time.Duration
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger.Debug("initializing engine", "workers", workers, "allow_unsupported", cfg.Parser.AllowUnsupported)

	return &Engine{
		parser:           parser.New(cfg.Parser, logger),
		workers:          workers,
		debounce:         debounce,
		allowUnsupported: cfg.Parser.AllowUnsupported,
		logger:           logger,
	}
}

// Workers returns the resolved concurrency limit.
func (e *Engine) Workers() int {
	return e.workers
}

// LineOutcome is the result of one line of a card.
type LineOutcome struct {
	Index int
	Text  string
	Ast   core.LineAst
	Err   error
	// Unsupported is set when a failure was kept as an UnsupportedLine.
	Unsupported bool
	// Attached lines were folded into an earlier line.
	Attached bool
}

// Status classifies the outcome for the audit log.
func (o LineOutcome) Status() state.LineStatus {
	switch {
	case o.Attached:
		return state.LineAttached
	case o.Unsupported:
		return state.LineUnsupported
	case o.Err != nil:
		return state.LineFailed
	default:
		return state.LineParsed
	}
}

// Kind is the type name of the parsed line, or "" when there is none.
func (o LineOutcome) Kind() string {
	if o.Ast == nil {
		return ""
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", o.Ast), "*core.")
}

// CardResult is the outcome of one card.
type CardResult struct {
	Card  loader.Card
	Lines []LineOutcome
	// Err joins the failures of every line; nil when the card parsed.
	Err error
}

// ParseCard parses every line of a card. Line failures are reported in the
// result, never as a Go error.
func (e *Engine) ParseCard(card loader.Card) CardResult {
	results, err := e.parser.ParseText(card.Text, card.Name, card.ShortName)
	res := CardResult{Card: card, Lines: make([]LineOutcome, 0, len(results))}

	for _, r := range results {
		out := LineOutcome{
			Index:    r.Index,
			Text:     r.Text,
			Ast:      r.Ast,
			Err:      r.Err,
			Attached: r.Attached,
		}
		if r.Err != nil && e.allowUnsupported {
			out.Ast = &core.StaticLine{Abilities: []core.StaticAbility{
				&core.UnsupportedLine{Text: r.Text, Reason: r.Err.Error()},
			}}
			out.Unsupported = true
		}
		res.Lines = append(res.Lines, out)
	}
	if err != nil && !e.allowUnsupported {
		res.Err = err
	}

	if res.Err != nil {
		e.logger.Debug("card failed", "card", card.Name, "source", card.Source, "error", res.Err)
	} else {
		e.logger.Debug("card parsed", "card", card.Name, "lines", len(res.Lines))
	}
	return res
}

// Report is the outcome of a corpus.
type Report struct {
	// Corpus names the source of the cards, usually a file path.
	Corpus   string
	Cards    []CardResult
	Stats    state.RunStats
	Duration time.Duration
}

// FailedCards returns the cards with at least one failing line.
func (r *Report) FailedCards() []CardResult {
	var failed []CardResult
	for _, c := range r.Cards {
		if c.Err != nil {
			failed = append(failed, c)
		}
	}
	return failed
}

// ParseCorpus parses cards with bounded concurrency. Results keep the input
// order. The error is non-nil only when ctx is canceled.
func (e *Engine) ParseCorpus(ctx context.Context, cards []loader.Card) (*Report, error) {
	start := time.Now()
	results := make([]CardResult, len(cards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range cards {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.ParseCard(cards[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("corpus parse canceled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("corpus parse canceled: %w", err)
	}

	report := &Report{
		Cards:    results,
		Stats:    computeStats(results),
		Duration: time.Since(start),
	}
	e.logger.Info("corpus parsed",
		"cards", report.Stats.Cards,
		"lines", report.Stats.Lines,
		"failed", report.Stats.Failed,
		"unsupported", report.Stats.Unsupported,
		"duration", report.Duration)
	return report, nil
}

// ParseFile loads a corpus file and parses it.
func (e *Engine) ParseFile(ctx context.Context, path string) (*Report, error) {
	cards, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	report, err := e.ParseCorpus(ctx, cards)
	if err != nil {
		return nil, err
	}
	report.Corpus = path
	return report, nil
}

// computeStats counts lines that stand on their own; attached lines are
// part of the line above.
func computeStats(cards []CardResult) state.RunStats {
	stats := state.RunStats{Cards: len(cards)}
	for _, c := range cards {
		for _, l := range c.Lines {
			switch l.Status() {
			case state.LineAttached:
				continue
			case state.LineParsed:
				stats.Parsed++
			case state.LineFailed:
				stats.Failed++
			case state.LineUnsupported:
				stats.Unsupported++
			}
			stats.Lines++
		}
	}
	return stats
}
