package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

var (
	phYouDo            = mustPhrase("you do")
	phYouDont          = mustPhrase("you don't|didn't")
	phYouDoNot         = mustPhrase("you do|did not")
	phDiesThisWay      = mustPhrase("* dies|die this way")
	phYourTurn         = mustPhrase("it's|it (is) your turn")
	phNotYourTurn      = mustPhrase("it's|it (is) not your turn")
	phAttackedThisTurn = mustPhrase("you attacked (with) (a) (creature) this turn")
	phCreatureDied     = mustPhrase("a creature died this turn")
	phNoSpellsLastTurn = mustPhrase("no spells were cast last turn")
	phKicked           = mustPhrase("this|it (spell) was kicked")
	phManaSpent        = mustPhrase("at least # ? mana was spent to cast this|it (spell)")
	phMoreLifeThanYou  = mustPhrase("* has|have more life than you")
	phLessLifeThanYou  = mustPhrase("* has|have less life than you")
	phLifeTotal        = mustPhrase("* life total is *")
	phHaveLife         = mustPhrase("* has|have * life")
	phCardsInHand      = mustPhrase("* has|have * cards|card in hand")
	phNoCardsInHand    = mustPhrase("* has|have no cards in hand")
	phThereAre         = mustPhrase("there are|is *")
	phSourceNoCounters = mustPhrase("this (creature|permanent|artifact) has no counters on it")
	phSourceHasCounter = mustPhrase("this (creature|permanent|artifact) has a|an ? counter on it")
	phSourceNoCounter  = mustPhrase("there are no ? counters on this (creature|permanent)")
)

// parsePredicate parses the body of an "if" or "as long as" clause. Shapes
// it does not know are errors.
func (lp *lineParser) parsePredicate(toks []token.Token) (core.PredicateAst, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrUnsupportedPredicate)
	}
	lp.trace("predicate", toks)

	switch {
	case phYouDo.matches(toks):
		return &core.EffectResultIs{Result: core.IfDid}, nil
	case phYouDont.matches(toks), phYouDoNot.matches(toks):
		return &core.EffectResultIs{Result: core.IfDidNot}, nil
	case phDiesThisWay.matches(toks):
		return &core.EffectResultIs{Result: core.IfDiesThisWay}, nil
	case phYourTurn.matches(toks):
		return &core.YourTurn{}, nil
	case phNotYourTurn.matches(toks):
		return &core.Not{Inner: &core.YourTurn{}}, nil
	case phAttackedThisTurn.matches(toks):
		return &core.YouAttackedThisTurn{}, nil
	case phCreatureDied.matches(toks):
		return &core.CreatureDiedThisTurn{}, nil
	case phNoSpellsLastTurn.matches(toks):
		return &core.NoSpellsCastLastTurn{}, nil
	case phKicked.matches(toks):
		return &core.ThisSpellWasKicked{}, nil
	case phSourceNoCounters.matches(toks):
		return &core.SourceHasCounters{Counter: core.AnyCounter, None: true}, nil
	}
	if caps, ok := phManaSpent.match(toks); ok {
		n, _ := parseNumberWord(caps[0][0].Text)
		c, ok := core.LookupColor(caps[1][0].Text)
		if !ok {
			return nil, unsupportedf(toks, ErrUnsupportedPredicate)
		}
		return &core.ManaSpentToCastAtLeast{Color: c, Amount: n}, nil
	}
	if caps, ok := phSourceHasCounter.match(toks); ok {
		c, ok := core.LookupCounterType(caps[0][0].Text)
		if !ok {
			return nil, unsupportedf(toks, ErrUnsupportedPredicate)
		}
		return &core.SourceHasCounters{Counter: c}, nil
	}
	if caps, ok := phSourceNoCounter.match(toks); ok {
		c, ok := core.LookupCounterType(caps[0][0].Text)
		if !ok {
			return nil, unsupportedf(toks, ErrUnsupportedPredicate)
		}
		return &core.SourceHasCounters{Counter: c, None: true}, nil
	}

	if p, ok, err := lp.parseLifePredicate(toks); ok || err != nil {
		return p, err
	}
	if p, ok, err := lp.parseControlPredicate(toks); ok || err != nil {
		return p, err
	}
	if caps, ok := phThereAre.match(toks); ok {
		return lp.parseThereAre(caps[0], toks)
	}
	if p, ok, err := lp.parseIsPredicate(toks); ok || err != nil {
		return p, err
	}
	return nil, lp.checkpoint("predicate", unsupportedf(toks, ErrUnsupportedPredicate))
}

// parseLifePredicate handles life totals and hand sizes.
func (lp *lineParser) parseLifePredicate(toks []token.Token) (core.PredicateAst, bool, error) {
	player := func(who []token.Token) (core.PlayerFilter, error) {
		pp, ok := parsePlayerPhrase(who)
		if !ok {
			return core.PlayerFilter{}, unsupportedf(toks, ErrUnsupportedPredicate)
		}
		return pp.filter, nil
	}
	if caps, ok := phMoreLifeThanYou.match(toks); ok {
		p, err := player(caps[0])
		return &core.LifeComparedToYou{Player: p, More: true}, true, err
	}
	if caps, ok := phLessLifeThanYou.match(toks); ok {
		p, err := player(caps[0])
		return &core.LifeComparedToYou{Player: p}, true, err
	}
	if caps, ok := phNoCardsInHand.match(toks); ok {
		p, err := player(caps[0])
		return &core.CardsInHandIs{Player: p, Comparison: core.Comparison{Op: core.OpEqual}}, true, err
	}
	if caps, ok := phCardsInHand.match(toks); ok {
		p, err := player(caps[0])
		if err != nil {
			return nil, true, err
		}
		cmp, err := parseComparison(caps[1], toks)
		if err != nil {
			return nil, true, err
		}
		return &core.CardsInHandIs{Player: p, Comparison: *cmp}, true, nil
	}
	if caps, ok := phLifeTotal.match(toks); ok {
		who := caps[0]
		var p core.PlayerFilter
		if len(who) == 1 && who[0].IsWord("your") {
			p = core.You
		} else if pf, n, ok := possessivePlayer(who); ok && n == len(who) {
			p = pf
		} else {
			return nil, true, unsupportedf(toks, ErrUnsupportedPredicate)
		}
		cmp, err := parseComparison(caps[1], toks)
		if err != nil {
			return nil, true, err
		}
		return &core.LifeTotalIs{Player: p, Comparison: *cmp}, true, nil
	}
	if caps, ok := phHaveLife.match(toks); ok {
		p, err := player(caps[0])
		if err != nil {
			return nil, true, err
		}
		cmp, err := parseComparison(caps[1], toks)
		if err != nil {
			return nil, true, err
		}
		return &core.LifeTotalIs{Player: p, Comparison: *cmp}, true, nil
	}
	return nil, false, nil
}

// parseControlPredicate handles "you control a Wizard", "you control three
// or more artifacts", "an opponent controls no creatures".
func (lp *lineParser) parseControlPredicate(toks []token.Token) (core.PredicateAst, bool, error) {
	verb := indexWord(toks, "control", "controls")
	if verb <= 0 {
		return nil, false, nil
	}
	negated := false
	who := toks[:verb]
	if r, ok := trimSuffixWords(who, "don't"); ok {
		who, negated = r, true
	} else if r, ok := trimSuffixWords(who, "do", "not"); ok {
		who, negated = r, true
	} else if r, ok := trimSuffixWords(who, "doesn't"); ok {
		who, negated = r, true
	}
	pp, ok := parsePlayerPhrase(who)
	if !ok {
		return nil, false, nil
	}
	obj := toks[verb+1:]
	if len(obj) == 0 {
		return nil, true, unsupportedf(toks, ErrUnsupportedPredicate)
	}

	count := 0
	switch {
	case obj[0].IsWord("no"):
		negated = !negated
		obj = obj[1:]
	case len(obj) > 3 && obj[1].IsWord("or") && obj[2].IsAnyWord("more", "greater"):
		n, ok := parseNumberWord(obj[0].Text)
		if !ok {
			return nil, true, unsupportedf(toks, ErrArithmeticCompare)
		}
		count, obj = n, obj[3:]
	case hasPrefixWords(obj, "at", "least") && len(obj) > 3:
		n, ok := parseNumberWord(obj[2].Text)
		if !ok {
			return nil, true, unsupportedf(toks, ErrArithmeticCompare)
		}
		count, obj = n, obj[3:]
	case obj[0].IsAnyWord("another", "other"):
	default:
		if n, ok := parseNumberWord(obj[0].Text); ok && n > 1 && len(obj) > 1 {
			return nil, true, unsupportedf(toks, ErrArithmeticCompare)
		}
	}
	filter, err := lp.parseObjectFilter(obj)
	if err != nil {
		return nil, true, err
	}
	if filter.Zone == core.ZoneAny {
		filter.Zone = core.ZoneBattlefield
	}
	var p core.PredicateAst
	if count > 1 {
		p = &core.PlayerControlsAtLeast{Player: pp.filter, Filter: filter, Count: count}
	} else {
		p = &core.PlayerControls{Player: pp.filter, Filter: filter}
	}
	if negated {
		p = &core.Not{Inner: p}
	}
	return p, true, nil
}

// parseThereAre handles "there are N or more <filter>" and "there are no
// <filter>".
func (lp *lineParser) parseThereAre(obj, whole []token.Token) (core.PredicateAst, error) {
	negated := false
	count := 1
	switch {
	case obj[0].IsWord("no"):
		negated = true
		obj = obj[1:]
	case len(obj) > 3 && obj[1].IsWord("or") && obj[2].IsAnyWord("more", "greater"):
		n, ok := parseNumberWord(obj[0].Text)
		if !ok {
			return nil, unsupportedf(whole, ErrArithmeticCompare)
		}
		count, obj = n, obj[3:]
	}
	if len(obj) == 0 {
		return nil, unsupportedf(whole, ErrUnsupportedPredicate)
	}
	filter, err := lp.parseObjectFilter(obj)
	if err != nil {
		return nil, err
	}
	var p core.PredicateAst = &core.ThereAreAtLeast{Filter: filter, Count: count}
	if negated {
		p = &core.Not{Inner: p}
	}
	return p, nil
}

// parseIsPredicate handles property checks on tagged objects or the source:
// "it's a land card", "the sacrificed creature was a Goblin", "this
// creature is tapped".
func (lp *lineParser) parseIsPredicate(toks []token.Token) (core.PredicateAst, bool, error) {
	var subject, rest []token.Token
	switch {
	case hasPrefixWords(toks, "it's"), hasPrefixWords(toks, "that's"):
		subject, rest = []token.Token{synthWord("it", toks[0].Span)}, toks[1:]
	default:
		verb := indexWord(toks, "is", "was", "are", "were")
		if verb <= 0 {
			return nil, false, nil
		}
		subject, rest = toks[:verb], toks[verb+1:]
	}
	negated := false
	if r, ok := trimPrefixWords(rest, "not"); ok {
		rest, negated = r, true
	}
	if len(rest) == 0 {
		return nil, true, unsupportedf(toks, ErrUnsupportedPredicate)
	}

	target, err := lp.parseTarget(subject)
	if err != nil {
		return nil, true, err
	}
	filter, err := lp.parseObjectFilter(rest)
	if err != nil {
		return nil, true, err
	}
	// Property checks describe the object wherever it is.
	if !hasZoneWords(rest) {
		filter.Zone = core.ZoneAny
	}
	var p core.PredicateAst
	switch t := target.(type) {
	case *core.SourceTarget:
		p = &core.SourceMatches{Filter: filter}
	case *core.TaggedTarget:
		p = &core.TaggedMatches{Tag: t.Tag, Filter: filter}
	case *core.ObjectTarget:
		if t.TargetSpan == nil {
			return nil, true, unsupportedf(toks, ErrUnsupportedPredicate)
		}
		p = &core.TaggedMatches{Tag: core.TargetTag, Filter: filter}
	default:
		return nil, true, unsupportedf(toks, ErrUnsupportedPredicate)
	}
	if negated {
		p = &core.Not{Inner: p}
	}
	return p, true, nil
}

func hasZoneWords(toks []token.Token) bool {
	return indexWord(toks, "battlefield", "graveyard", "hand", "library", "exile") >= 0
}
