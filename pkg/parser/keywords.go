package parser

import (
	"strings"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// costedKeywords print a mana cost after the keyword ("kicker {R}").
var costedKeywords = map[string]core.Keyword{
	"kicker": core.Kicker, "multikicker": core.Multikicker, "buyback": core.Buyback,
	"entwine": core.Entwine, "echo": core.Echo, "morph": core.Morph,
	"megamorph": core.Megamorph, "ninjutsu": core.Ninjutsu, "embalm": core.Embalm,
	"eternalize": core.Eternalize, "transmute": core.Transmute, "scavenge": core.Scavenge,
}

// parseKeywordList parses a comma/"and" separated list of keyword
// abilities: "flying, first strike, and lifelink", "ward {2}",
// "protection from red and from blue". Anything else is an error.
func (lp *lineParser) parseKeywordList(toks []token.Token) ([]core.StaticAbility, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrUnsupportedStatic)
	}
	var out []core.StaticAbility
	rest := toks
	for {
		for len(rest) > 0 && (rest[0].Kind == token.Comma || rest[0].IsAnyWord("and", "or")) {
			rest = rest[1:]
		}
		if len(rest) == 0 {
			break
		}
		ka, n, err := lp.matchKeyword(rest, toks)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, unsupportedf(toks, ErrUnsupportedStatic)
		}
		out = append(out, &core.KeywordStatic{Ability: ka})
		rest = rest[n:]
	}
	return out, nil
}

// isKeywordList reports whether the whole clause is a keyword list.
func (lp *lineParser) isKeywordList(toks []token.Token) bool {
	_, err := lp.parseKeywordList(toks)
	return err == nil
}

// parseGrantedAbilities parses what "gains"/"have" grant. Quoted ability
// text is rejected here; only keyword abilities can be granted by effects.
func (lp *lineParser) parseGrantedAbilities(toks, whole []token.Token) ([]core.StaticAbility, error) {
	toks = trimPunct(toks)
	if q, _ := quotedRun(toks); len(q) > 0 {
		return nil, unsupportedf(whole, "%s: granted quoted ability", ErrUnsupportedStatic)
	}
	return lp.parseKeywordList(toks)
}

// matchKeyword matches one keyword ability at the start of toks and
// returns it with the number of tokens consumed (zero for no match).
func (lp *lineParser) matchKeyword(toks, whole []token.Token) (core.KeywordAbility, int, error) {
	words := wordsOf(toks)
	if kw, n := core.MatchSimpleKeyword(words); n > 0 {
		// "hexproof from <quality>" carries a payload.
		if kw == core.Hexproof && n < len(toks) && toks[n].IsWord("from") {
			pf, m, err := parseProtectionFrom(toks[n:], whole)
			if err != nil {
				return core.KeywordAbility{}, 0, err
			}
			return core.KeywordAbility{Keyword: kw, Protection: pf}, n + m, nil
		}
		return core.KeywordAbility{Keyword: kw}, n, nil
	}
	w := toks[0].Text

	if kw, ok := core.LookupNumericKeyword(w); ok {
		if len(toks) < 2 {
			return core.KeywordAbility{}, 0, unsupportedf(whole, "%s: %s needs an amount", ErrUnsupportedStatic, w)
		}
		if kw == core.Ward {
			// "ward {2}" tokenizes as "ward 2".
			mana, rest := parseManaWords(toks[1:])
			if len(mana) == 0 {
				return core.KeywordAbility{}, 0, unsupportedf(whole, "%s: non-mana ward cost", ErrUnsupportedCost)
			}
			cost := core.ManaCost{Symbols: mana}
			return core.KeywordAbility{Keyword: kw, Cost: &cost}, len(toks) - len(rest), nil
		}
		n, ok := parseNumberWord(toks[1].Text)
		if !ok {
			return core.KeywordAbility{}, 0, unsupportedf(whole, "%s: %s amount", ErrUnsupportedValue, w)
		}
		return core.KeywordAbility{Keyword: kw, Amount: n}, 2, nil
	}

	if kw, ok := costedKeywords[w]; ok {
		mana, rest := parseManaWords(toks[1:])
		if len(mana) == 0 {
			return core.KeywordAbility{}, 0, unsupportedf(whole, "%s: %s cost", ErrUnsupportedCost, w)
		}
		cost := core.ManaCost{Symbols: mana}
		return core.KeywordAbility{Keyword: kw, Cost: &cost}, len(toks) - len(rest), nil
	}
	if hasPrefixWords(toks, "cumulative", "upkeep") {
		mana, rest := parseManaWords(toks[2:])
		if len(mana) == 0 {
			return core.KeywordAbility{}, 0, unsupportedf(whole, "%s: cumulative upkeep cost", ErrUnsupportedCost)
		}
		cost := core.ManaCost{Symbols: mana}
		return core.KeywordAbility{Keyword: core.Cumulative, Cost: &cost}, len(toks) - len(rest), nil
	}

	switch {
	case w == "protection" && len(toks) > 1 && toks[1].IsWord("from"):
		pf, m, err := parseProtectionFrom(toks[1:], whole)
		if err != nil {
			return core.KeywordAbility{}, 0, err
		}
		return core.KeywordAbility{Keyword: core.Protection, Protection: pf}, 1 + m, nil
	case w == "affinity" && hasPrefixWords(toks, "affinity", "for") && len(toks) > 2:
		ct, ok := core.LookupCardType(toks[2].Text)
		if !ok {
			return core.KeywordAbility{}, 0, unsupportedf(whole, "%s: affinity", ErrUnsupportedStatic)
		}
		return core.KeywordAbility{Keyword: core.Affinity, AffinityFor: ct}, 3, nil
	case w == "nonbasic" && len(toks) > 1 && toks[1].IsWord("landwalk"):
		return core.KeywordAbility{Keyword: core.Landwalk, Nonbasic: true}, 2, nil
	case strings.HasSuffix(w, "walk") && len(w) > 4:
		st, ok := core.LookupSubtype(strings.TrimSuffix(w, "walk"))
		if !ok || !st.IsBasicLandType() {
			return core.KeywordAbility{}, 0, nil
		}
		return core.KeywordAbility{Keyword: core.Landwalk, LandType: st}, 1, nil
	}
	return core.KeywordAbility{}, 0, nil
}

// parseProtectionFrom parses "from red", "from everything", "from
// creatures", "from white and from blue", "from multicolored". toks starts
// at "from".
func parseProtectionFrom(toks, whole []token.Token) (*core.ProtectionFrom, int, error) {
	pf := &core.ProtectionFrom{}
	i := 0
	for i < len(toks) && toks[i].IsWord("from") {
		i++
		if i >= len(toks) {
			return nil, 0, unsupportedf(whole, "%s: protection quality", ErrUnsupportedStatic)
		}
		if hasPrefixWords(toks[i:], "the", "chosen", "player") {
			pf.Player = true
			i += 3
		} else {
			w := toks[i].Text
			switch {
			case w == "everything":
				pf.Everything = true
			case w == "multicolored":
				pf.Multicolored = true
			case w == "monocolored":
				pf.Monocolored = true
			default:
				if c, ok := core.LookupColor(w); ok {
					pf.Colors = append(pf.Colors, c)
				} else if ct, ok := core.LookupCardType(w); ok {
					pf.CardTypes = append(pf.CardTypes, ct)
				} else if st, ok := core.LookupSubtype(w); ok {
					pf.Subtypes = append(pf.Subtypes, st)
				} else {
					return nil, 0, unsupportedf(whole, "%s: protection from %s", ErrUnsupportedStatic, w)
				}
			}
			i++
		}
		// "from white and from blue"
		if i+1 < len(toks) && toks[i].IsAnyWord("and", "or") && toks[i+1].IsWord("from") {
			i++
		} else if i+2 < len(toks) && toks[i].Kind == token.Comma && toks[i+1].IsWord("from") {
			i++
		}
	}
	return pf, i, nil
}

// ---------- keyword-introduced activated abilities ----------

// keywordActivation builds the body of an ability introduced by a keyword
// with a printed cost.
type keywordActivation struct {
	keyword core.Keyword
	build   func(lp *lineParser, extra []token.Token, span *token.TextSpan) ([]core.Effect, []core.ActivationRestriction, error)
}

var keywordActivations = map[string]keywordActivation{
	"equip": {core.Equip, func(lp *lineParser, extra []token.Token, span *token.TextSpan) ([]core.Effect, []core.ActivationRestriction, error) {
		filter := core.CreatureFilter().YouControl()
		if len(extra) > 0 {
			f, err := lp.parseObjectFilter(concat(extra, []token.Token{synthWord("you", extra[len(extra)-1].Span), synthWord("control", extra[len(extra)-1].Span)}))
			if err != nil {
				return nil, nil, err
			}
			filter = f
		}
		target := &core.ObjectTarget{Filter: filter, TargetSpan: span}
		return []core.Effect{&core.Attach{Object: &core.SourceTarget{}, Target: target}},
			[]core.ActivationRestriction{{Timing: core.SorcerySpeed}}, nil
	}},
	"fortify": {core.Fortify, func(_ *lineParser, _ []token.Token, span *token.TextSpan) ([]core.Effect, []core.ActivationRestriction, error) {
		target := &core.ObjectTarget{Filter: core.Permanent().WithType(core.Land).YouControl(), TargetSpan: span}
		return []core.Effect{&core.Attach{Object: &core.SourceTarget{}, Target: target}},
			[]core.ActivationRestriction{{Timing: core.SorcerySpeed}}, nil
	}},
	"level": {core.LevelUp, func(_ *lineParser, _ []token.Token, span *token.TextSpan) ([]core.Effect, []core.ActivationRestriction, error) {
		return []core.Effect{&core.PutCounters{Counter: "level", Count: core.FixedValue(1), Target: &core.SourceTarget{}}},
			[]core.ActivationRestriction{{Timing: core.SorcerySpeed}}, nil
	}},
	"cycling": {core.Cycling, func(_ *lineParser, _ []token.Token, span *token.TextSpan) ([]core.Effect, []core.ActivationRestriction, error) {
		return []core.Effect{&core.Draw{Count: core.FixedValue(1), Player: core.PlayerAstYou}}, nil, nil
	}},
	"unearth": {core.Unearth, func(_ *lineParser, _ []token.Token, span *token.TextSpan) ([]core.Effect, []core.ActivationRestriction, error) {
		return []core.Effect{&core.ReturnToBattlefield{Target: &core.SourceTarget{}, Controller: core.ReturnPreserve}},
			[]core.ActivationRestriction{{Timing: core.SorcerySpeed}, {Timing: core.OnlyFromGrave}}, nil
	}},
	"outlast": {core.Outlast, func(_ *lineParser, _ []token.Token, span *token.TextSpan) ([]core.Effect, []core.ActivationRestriction, error) {
		return []core.Effect{&core.PutCounters{Counter: core.PlusOneCounter, Count: core.FixedValue(1), Target: &core.SourceTarget{}}},
			[]core.ActivationRestriction{{Timing: core.SorcerySpeed}}, nil
	}},
	"reconfigure": {core.Reconfigure, func(_ *lineParser, _ []token.Token, span *token.TextSpan) ([]core.Effect, []core.ActivationRestriction, error) {
		target := &core.ObjectTarget{Filter: core.CreatureFilter().YouControl().AsOther(), TargetSpan: span}
		return []core.Effect{&core.Attach{Object: &core.SourceTarget{}, Target: target}},
			[]core.ActivationRestriction{{Timing: core.SorcerySpeed}}, nil
	}},
}

// parseKeywordActivatedLine parses "Equip {2}", "Level up {1}{W}",
// "Cycling {2}", "Forestcycling {2}", "Unearth {B}". It returns nil, nil
// when the line is not one of these.
func (lp *lineParser) parseKeywordActivatedLine(toks []token.Token) (core.LineAst, error) {
	toks = trimPunct(toks)
	if len(toks) < 2 {
		return nil, nil
	}
	head := toks[0].Text
	keywordLen := 1
	if hasPrefixWords(toks, "level", "up") {
		keywordLen = 2
	}

	// "<type>cycling": search for a card of that type.
	if strings.HasSuffix(head, "cycling") && head != "cycling" {
		st, ok := core.LookupSubtype(strings.TrimSuffix(head, "cycling"))
		land := head == "landcycling"
		if !ok && !land {
			return nil, nil
		}
		mana, rest := parseManaWords(toks[1:])
		if len(mana) == 0 || len(trimPunct(rest)) > 0 {
			return nil, unsupportedf(toks, ErrUnsupportedCost)
		}
		filter := core.ObjectFilter{Zone: core.ZoneLibrary}
		if land {
			filter = filter.WithType(core.Land)
		} else {
			filter = filter.WithSubtype(st)
		}
		cost := core.ManaCost{Symbols: mana}
		kw := core.KeywordAbility{Keyword: core.Typecycling, Subtype: st, Cost: &cost}
		return &core.AbilityLine{Ability: core.Ability{
			Kind:    core.ActivatedAbility,
			Cost:    core.Cost{Mana: &cost, Effects: []core.Effect{&core.Discard{Count: core.FixedValue(1), Player: core.PlayerAstYou}}},
			Effects: []core.Effect{&core.SearchLibrary{Filter: filter, Destination: core.ZoneHand, Player: core.PlayerAstYou, Reveal: true, Shuffle: true, Count: core.Exactly(1)}},
			Keyword: &kw,
		}}, nil
	}

	ka, ok := keywordActivations[head]
	if !ok {
		return nil, nil
	}
	// Equip may name what it attaches to before the cost ("equip legendary creature {3}").
	var extra []token.Token
	rest := toks[keywordLen:]
	for len(rest) > 0 {
		if _, ok := manaSymbolWord(rest[0]); ok {
			break
		}
		extra = append(extra, rest[0])
		rest = rest[1:]
	}
	mana, tail := parseManaWords(rest)
	if len(mana) == 0 || len(trimPunct(tail)) > 0 {
		if len(extra) > 0 && head != "equip" {
			return nil, nil
		}
		return nil, unsupportedf(toks, ErrUnsupportedCost)
	}
	if len(extra) > 0 && head != "equip" {
		return nil, nil
	}
	effects, restrictions, err := ka.build(lp, extra, spanPtr(toks[:keywordLen]...))
	if err != nil {
		return nil, err
	}
	cost := core.ManaCost{Symbols: mana}
	kw := core.KeywordAbility{Keyword: ka.keyword, Cost: &cost}
	c := core.Cost{Mana: &cost}
	if ka.keyword == core.Cycling {
		c.Effects = []core.Effect{&core.Discard{Count: core.FixedValue(1), Player: core.PlayerAstYou}}
	}
	return &core.AbilityLine{Ability: core.Ability{
		Kind:         core.ActivatedAbility,
		Cost:         c,
		Effects:      effects,
		Restrictions: restrictions,
		Keyword:      &kw,
	}}, nil
}

// ---------- alternative casting methods ----------

var castingMethods = map[string]core.CastingMethodKind{
	"flashback": core.Flashback, "escape": core.Escape, "madness": core.Madness,
	"miracle": core.Miracle, "jump-start": core.JumpStart, "retrace": core.Retrace,
	"overload": core.Overload, "spectacle": core.Spectacle, "surge": core.Surge,
	"dash": core.Dash, "evoke": core.Evoke, "prowl": core.Prowl,
}

// parseAlternativeCastingLine parses "Flashback {2}{R}", "Escape—{2}{B},
// Exile three other cards from your graveyard.", "Jump-start".
func (lp *lineParser) parseAlternativeCastingLine(toks []token.Token) (core.LineAst, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, nil
	}
	kind, ok := castingMethods[toks[0].Text]
	if !ok {
		return nil, nil
	}
	rest := toks[1:]
	method := core.AlternativeCastingMethod{Kind: kind}
	if len(rest) == 0 {
		if kind != core.JumpStart && kind != core.Retrace {
			return nil, unsupportedf(toks, ErrUnsupportedCost)
		}
		return &core.AlternativeCastingLine{Method: method}, nil
	}
	mana, tail := parseManaWords(rest)
	if len(mana) == 0 {
		// Not a keyword line: "Escape" used as a word in a sentence.
		if _, v := findVerb(toks); v != "" {
			return nil, nil
		}
		return nil, unsupportedf(toks, ErrUnsupportedCost)
	}
	cost := core.ManaCost{Symbols: mana}
	method.Cost = &cost
	tail = trimPunct(tail)
	if len(tail) > 0 {
		effects, err := lp.parseCostEffects(tail)
		if err != nil {
			return nil, err
		}
		method.CostEffects = effects
	}
	return &core.AlternativeCastingLine{Method: method}, nil
}
