package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maigus-labs/maigus/pkg/core"
)

// LineResult is the outcome of one line of a card's text.
type LineResult struct {
	Index      int
	Text       string
	Normalized *NormalizedLine
	Ast        core.LineAst
	Err        error
	// Attached is set when the line was folded into an earlier line (a
	// modal bullet or an activation restriction); Ast is nil then.
	Attached bool
}

const bullet = "•"

// ParseText parses a card's full oracle text, one line per newline. Modal
// bullets become modes of the preceding header and restriction lines join
// the ability above them. Lines without rules text are omitted. The error
// joins every line failure; results are returned either way.
func (p *Parser) ParseText(text, fullName, shortName string) ([]LineResult, error) {
	var (
		results []LineResult
		errs    []error
	)
	for _, raw := range splitTextLines(text) {
		index := len(results)
		norm, ok := NormalizeLineForParse(raw, fullName, shortName)
		if !ok {
			continue
		}
		res := LineResult{Index: index, Text: raw, Normalized: norm}
		lp := p.newLineParser(index, norm)

		var err error
		switch {
		case strings.HasPrefix(strings.TrimSpace(raw), bullet):
			err = lp.attachMode(results, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), bullet)))
			res.Attached = err == nil
		case isRestrictionLine(lp.tokens()):
			err = lp.attachRestriction(results)
			res.Attached = err == nil
		default:
			res.Ast, err = lp.parseLine(lp.tokens())
		}
		if err != nil {
			res.Err = fmt.Errorf("line %d: %w", index, err)
			errs = append(errs, res.Err)
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}

// splitTextLines splits on newlines and on inline bullets ("Choose one —
// • Draw a card. • Gain 3 life."), keeping the bullet on each piece.
func splitTextLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pieces := strings.Split(line, bullet)
		if head := strings.TrimSpace(pieces[0]); head != "" {
			out = append(out, head)
		}
		for _, piece := range pieces[1:] {
			if piece = strings.TrimSpace(piece); piece != "" {
				out = append(out, bullet+" "+piece)
			}
		}
	}
	return out
}

// lastAst returns the most recent parsed line.
func lastAst(results []LineResult) core.LineAst {
	for i := len(results) - 1; i >= 0; i-- {
		if results[i].Ast != nil {
			return results[i].Ast
		}
		if !results[i].Attached {
			return nil
		}
	}
	return nil
}

// attachMode parses a bullet and appends it to the modal header above it,
// or to the choose-mode effect ending the previous line.
func (lp *lineParser) attachMode(results []LineResult, text string) error {
	effects, err := lp.parseEffects(lp.tokens())
	if err != nil {
		return err
	}
	mode := core.Mode{Text: text, Effects: effects}
	switch prev := lastAst(results).(type) {
	case *core.ModalLine:
		prev.Modes = append(prev.Modes, mode)
		return nil
	case *core.TriggeredLine:
		if cm := trailingChooseMode(prev.Effects); cm != nil {
			cm.Modes = append(cm.Modes, mode)
			return nil
		}
	case *core.StatementLine:
		if cm := trailingChooseMode(prev.Effects); cm != nil {
			cm.Modes = append(cm.Modes, mode)
			return nil
		}
	case *core.AbilityLine:
		if cm := trailingChooseMode(prev.Ability.Effects); cm != nil {
			cm.Modes = append(cm.Modes, mode)
			return nil
		}
	}
	return parseErrorf("%s: mode without a modal header (clause: '%s')", ErrUnsupportedLine, text)
}

func trailingChooseMode(effects []core.Effect) *core.ChooseMode {
	if len(effects) == 0 {
		return nil
	}
	cm, _ := effects[len(effects)-1].(*core.ChooseMode)
	return cm
}

// attachRestriction adds "Activate only ..." to the ability above it and
// "This ability triggers only once each turn." to the trigger above it.
func (lp *lineParser) attachRestriction(results []LineResult) error {
	toks := lp.tokens()
	prev := lastAst(results)
	if phOnceEachTurn.matches(trimPunct(toks)) {
		if tl, ok := prev.(*core.TriggeredLine); ok {
			tl.OnceEachTurn = true
			return nil
		}
		return unsupportedf(toks, "%s: trigger restriction without a trigger", ErrUnsupportedLine)
	}
	rs, err := lp.parseActivationRestrictions(toks)
	if err != nil {
		return err
	}
	switch prev := prev.(type) {
	case *core.AbilityLine:
		prev.Ability.Restrictions = append(prev.Ability.Restrictions, rs...)
		return nil
	case *core.AbilitiesLine:
		for i := range prev.Abilities {
			prev.Abilities[i].Restrictions = append(prev.Abilities[i].Restrictions, rs...)
		}
		return nil
	}
	return unsupportedf(toks, "%s: activation restriction without an ability", ErrUnsupportedLine)
}
