// Package parser compiles oracle text into the typed IR of package core.
//
// # Usage
//
//	p := parser.New(parser.Config{}, logger)
//	ast, err := p.ParseLine("Destroy target creature.", 0)
//	if err != nil {
//	    // the line could not be parsed; err embeds the clause words
//	}
//
// Card-aware parsing substitutes the card's own name first:
//
//	res, err := p.ParseCardLine("When Grizzly Bears enters, draw a card.", 0, "Grizzly Bears", "")
//
// # Pipeline
//
//	line       → normalize (names, ability words, reminder text)
//	           → tokenize
//	           → classify (ordered table, first match wins)
//	sentence   → primitives (pre) → conditional → primitives (post) → verb
//	verb args  → target / object filter / value / predicate parsers
//
// Recognizers return (nil, nil) when a clause is not theirs and an error when
// it is theirs but a detail is unsupported; errors are never retried.
package parser

import (
	"log/slog"
	"runtime/debug"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// Parser parses card lines. It holds no per-parse state and is safe for
// concurrent use.
type Parser struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a parser. A nil logger discards output.
func New(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{cfg: cfg, logger: logger}
}

// Config returns the parser configuration.
func (p *Parser) Config() Config {
	return p.cfg
}

// Result is a parsed line together with the normalization used to produce
// it and the spans of tagged references.
type Result struct {
	Line       core.LineAst
	Normalized *NormalizedLine
	Tags       map[core.TagKey][]token.TextSpan
}

// ParseLine parses one already-normalized line. Spans are offsets into line.
func (p *Parser) ParseLine(line string, index int) (core.LineAst, error) {
	lp := p.newLineParser(index, nil)
	return lp.parseLine(Tokenize(line, index))
}

// ParseCardLine normalizes a line of card text with the card's names and
// parses it. It returns a nil result for lines that carry no rules text.
// Spans in the result are offsets into the original line.
func (p *Parser) ParseCardLine(line string, index int, fullName, shortName string) (*Result, error) {
	norm, ok := NormalizeLineForParse(line, fullName, shortName)
	if !ok {
		return nil, nil
	}
	lp := p.newLineParser(index, norm)
	ast, err := lp.parseLine(lp.tokens())
	if err != nil {
		return nil, err
	}
	return &Result{Line: ast, Normalized: norm, Tags: lp.tags}, nil
}

// ParseEffects parses a clause of effect sentences ("Draw a card. Then
// discard a card.").
func (p *Parser) ParseEffects(text string, index int) ([]core.Effect, error) {
	lp := p.newLineParser(index, nil)
	return lp.parseEffects(Tokenize(text, index))
}

// lineParser carries the state of one line's parse. It is created per line
// and never shared.
type lineParser struct {
	cfg    Config
	logger *slog.Logger
	index  int
	norm   *NormalizedLine
	tags   map[core.TagKey][]token.TextSpan
	// depth counts nested parseLine calls; quoted ability text is parsed
	// as a line inside the line that grants it.
	depth int
}

func (p *Parser) newLineParser(index int, norm *NormalizedLine) *lineParser {
	return &lineParser{cfg: p.cfg, logger: p.logger, index: index, norm: norm}
}

// tokens tokenizes the normalized text and remaps spans to the original.
func (lp *lineParser) tokens() []token.Token {
	toks := Tokenize(lp.norm.Normalized, lp.index)
	for i := range toks {
		toks[i].Span = lp.norm.MapSpan(toks[i].Span)
	}
	return toks
}

// noteTag records the span of a tagged or targeted reference.
func (lp *lineParser) noteTag(tag core.TagKey, span token.TextSpan) {
	if lp.tags == nil {
		lp.tags = make(map[core.TagKey][]token.TextSpan)
	}
	lp.tags[tag] = append(lp.tags[tag], span)
}

// trace logs a stage at debug level when tracing is enabled.
func (lp *lineParser) trace(stage string, toks []token.Token) {
	if !lp.cfg.Trace {
		return
	}
	lp.logger.Debug("parse stage", "line", lp.index, "stage", stage, "clause", token.Join(toks))
}

// checkpoint logs a failure together with the current stack when stack
// traces are enabled. It returns err unchanged.
func (lp *lineParser) checkpoint(stage string, err error) error {
	if err == nil {
		return nil
	}
	if lp.cfg.Trace {
		lp.logger.Debug("parse failed", "line", lp.index, "stage", stage, "error", err)
	}
	if lp.cfg.StackTrace {
		lp.logger.Debug("parse failure stack", "line", lp.index, "stage", stage, "stack", string(debug.Stack()))
	}
	return err
}
