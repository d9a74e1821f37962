package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// parseActivationCost parses the part of an activated ability before the
// colon: "{2}{B}, {T}, Sacrifice a creature", "+1", "-X".
func (lp *lineParser) parseActivationCost(toks []token.Token) (core.Cost, error) {
	toks = trimPunct(toks)
	var cost core.Cost
	if len(toks) == 0 {
		return cost, parseErrorf("%s (clause: '')", ErrUnsupportedCost)
	}
	lp.trace("cost", toks)

	if len(toks) == 1 {
		if n, isX, ok := parseLoyaltyWord(toks[0].Text); ok {
			if isX {
				cost.LoyaltyX = true
			} else {
				cost.Loyalty = &n
			}
			return cost, nil
		}
	}

	for _, part := range splitOnKind(toks, token.Comma) {
		if r, ok := trimPrefixWords(part, "and"); ok {
			part = r
		}
		if energy, ok := countEnergy(part); ok {
			cost.Effects = append(cost.Effects, &core.PayEnergy{Amount: core.FixedValue(energy), Player: core.PlayerAstYou})
			continue
		}
		mana, rest := parseManaWords(part)
		if len(mana) > 0 && len(rest) == 0 {
			if cost.Mana == nil {
				cost.Mana = &core.ManaCost{}
			}
			cost.Mana.Symbols = append(cost.Mana.Symbols, mana...)
			continue
		}
		if len(part) == 1 && isTapSymbol(part[0]) {
			cost.Tap = true
			continue
		}
		if len(part) == 1 && isUntapSymbol(part[0]) {
			cost.Untap = true
			continue
		}
		effects, err := lp.parseCostEffects(part)
		if err != nil {
			return cost, err
		}
		cost.Effects = append(cost.Effects, effects...)
	}
	return cost, nil
}

// parseLoyaltyWord reads a loyalty cost: "+2", "-3", "0", "-x".
func parseLoyaltyWord(w string) (int, bool, bool) {
	if w == "0" {
		return 0, false, true
	}
	if len(w) < 2 || (w[0] != '+' && w[0] != '-') {
		return 0, false, false
	}
	if w[1:] == "x" {
		return 0, true, w[0] == '-'
	}
	n, isX, ok := parseSignedInt(w)
	if !ok || isX {
		return 0, false, false
	}
	return n, false, true
}

// parseCostEffects parses non-mana costs: "sacrifice a creature", "pay 2
// life", "discard a card", "exile three other cards from your graveyard",
// "tap two untapped creatures you control", "remove a +1/+1 counter from
// this creature". Several costs may be joined by commas or "and".
func (lp *lineParser) parseCostEffects(toks []token.Token) ([]core.Effect, error) {
	var out []core.Effect
	for _, part := range splitOnKind(toks, token.Comma) {
		for _, piece := range splitAndVerb(part) {
			effects, err := lp.parseCostEffect(piece)
			if err != nil {
				return nil, err
			}
			out = append(out, effects...)
		}
	}
	if len(out) == 0 {
		return nil, unsupportedf(toks, ErrUnsupportedCost)
	}
	return out, nil
}

// splitAndVerb splits "sacrifice a creature and pay 2 life" where the word
// after "and" starts a new cost.
func splitAndVerb(toks []token.Token) [][]token.Token {
	toks = trimPunct(toks)
	if r, ok := trimPrefixWords(toks, "and"); ok {
		toks = r
	}
	for i := 1; i+1 < len(toks); i++ {
		if !toks[i].IsWord("and") {
			continue
		}
		if j, _ := findVerb(toks[i+1:]); j == 0 {
			return append([][]token.Token{toks[:i]}, splitAndVerb(toks[i+1:])...)
		}
	}
	return [][]token.Token{toks}
}

func (lp *lineParser) parseCostEffect(toks []token.Token) ([]core.Effect, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrUnsupportedCost)
	}
	if energy, ok := countEnergy(toks); ok {
		return []core.Effect{&core.PayEnergy{Amount: core.FixedValue(energy), Player: core.PlayerAstYou}}, nil
	}
	if mana, rest := parseManaWords(toks); len(mana) > 0 && len(rest) == 0 {
		return []core.Effect{&core.PayMana{Cost: core.ManaCost{Symbols: mana}, Player: core.PlayerAstYou}}, nil
	}
	// Exile and tap costs choose untargeted objects, often several.
	if args, ok := trimPrefixWords(toks, "exile"); ok {
		t, err := lp.costObjects(args, toks)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.Exile{Target: t}}, nil
	}
	if args, ok := trimPrefixWords(toks, "tap"); ok && !isSelfReference(args) {
		t, err := lp.costObjects(args, toks)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.Tap{Target: t}}, nil
	}
	effects, err := lp.parseVerbClause(toks)
	if err != nil {
		return nil, err
	}
	for _, e := range effects {
		if core.IsTargeted(costTarget(e)) {
			return nil, unsupportedf(toks, "%s: targeted cost", ErrUnsupportedCost)
		}
	}
	return effects, nil
}

// costObjects parses the untargeted objects of an exile or tap cost:
// "this card", "a creature card from your graveyard", "two untapped
// artifacts you control".
func (lp *lineParser) costObjects(args, whole []token.Token) (core.TargetAst, error) {
	args = trimPunct(args)
	if len(args) == 0 {
		return nil, unsupportedf(whole, ErrUnsupportedCost)
	}
	if indexWord(args, "target") >= 0 {
		return nil, unsupportedf(whole, "%s: targeted cost", ErrUnsupportedCost)
	}
	if n, ok := parseNumberWord(args[0].Text); ok && n > 1 && len(args) > 1 {
		f, err := lp.parseObjectFilter(args[1:])
		if err != nil {
			return nil, err
		}
		return &core.CountedTarget{Target: &core.ObjectTarget{Filter: f}, Count: core.Exactly(n)}, nil
	}
	if args[0].IsWord("x") && len(args) > 1 {
		f, err := lp.parseObjectFilter(args[1:])
		if err != nil {
			return nil, err
		}
		return &core.CountedTarget{Target: &core.ObjectTarget{Filter: f}, Count: core.ChoiceCount{DynamicX: true}}, nil
	}
	return lp.parseTarget(args)
}

// costTarget returns the object a cost effect acts on, if any.
func costTarget(e core.Effect) core.TargetAst {
	switch e := e.(type) {
	case *core.Exile:
		return e.Target
	case *core.Tap:
		return e.Target
	case *core.Untap:
		return e.Target
	case *core.ReturnToHand:
		return e.Target
	case *core.RemoveCounters:
		return e.Target
	case *core.PutCounters:
		return e.Target
	}
	return nil
}
