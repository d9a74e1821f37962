package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// parseEffects parses a clause of one or more effect sentences. Sentences
// may amend effects produced by earlier sentences of the same clause
// ("Otherwise, ...", "They can't be regenerated.").
func (lp *lineParser) parseEffects(toks []token.Token) ([]core.Effect, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrEmptyClause)
	}
	var out []core.Effect
	for _, sentence := range splitSentences(toks) {
		if r, ok := trimPrefixWords(sentence, "then"); ok {
			sentence = trimPunct(r)
		}
		if r, ok := trimPrefixWords(sentence, "otherwise"); ok {
			var err error
			if out, err = lp.attachOtherwise(trimPunct(r), out, sentence); err != nil {
				return nil, err
			}
			continue
		}
		effects, err := lp.parseSentence(sentence, out)
		if err != nil {
			return nil, err
		}
		out = append(out, effects...)
	}
	if len(out) == 0 {
		return nil, unsupportedf(toks, ErrEmptyClause)
	}
	return out, nil
}

// attachOtherwise binds "Otherwise, <effects>" to the conditional right
// before it.
func (lp *lineParser) attachOtherwise(body []token.Token, out []core.Effect, whole []token.Token) ([]core.Effect, error) {
	if len(out) == 0 {
		return nil, unsupportedf(whole, "%s: otherwise without a condition", ErrUnsupportedPredicate)
	}
	effects, err := lp.parseSentence(body, out)
	if err != nil {
		return nil, err
	}
	switch last := out[len(out)-1].(type) {
	case *core.Conditional:
		if last.IfFalse != nil {
			break
		}
		last.IfFalse = effects
		return out, nil
	case *core.IfResult:
		if last.Predicate != core.IfDid {
			break
		}
		return append(out, &core.IfResult{Predicate: core.IfDidNot, Effects: effects}), nil
	}
	return nil, unsupportedf(whole, "%s: otherwise without a condition", ErrUnsupportedPredicate)
}

// parseSentence parses one sentence. prev holds the effects of earlier
// sentences and clauses, which amending primitives may modify.
func (lp *lineParser) parseSentence(toks []token.Token, prev []core.Effect) ([]core.Effect, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrEmptyClause)
	}
	lp.trace("sentence", toks)

	if effects, ok, err := lp.runPrimitives(prePrimitives, toks, prev); ok {
		return effects, err
	}
	if toks[0].IsWord("if") {
		return lp.parseLeadingIf(toks, prev)
	}
	if effects, ok, err := lp.parseTrailingIf(toks, prev); ok {
		return effects, err
	}
	if effects, ok, err := lp.parseMay(toks, prev); ok {
		return effects, err
	}
	if effects, ok, err := lp.parseUnless(toks, prev); ok {
		return effects, err
	}

	segments := lp.splitChain(toks)
	if len(segments) > 1 {
		var acc []core.Effect
		for _, seg := range segments {
			effects, err := lp.parseSentence(seg, concatEffects(prev, acc))
			if err != nil {
				return nil, err
			}
			acc = append(acc, effects...)
		}
		return acc, nil
	}

	if effects, ok, err := lp.runPrimitives(postPrimitives, toks, prev); ok {
		return effects, err
	}
	return lp.parseVerbClause(toks)
}

func concatEffects(a, b []core.Effect) []core.Effect {
	out := make([]core.Effect, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}

// parseLeadingIf splits "If <predicate>, <effects>" at the rightmost comma
// whose head still parses as a predicate.
func (lp *lineParser) parseLeadingIf(toks []token.Token, prev []core.Effect) ([]core.Effect, error) {
	var lastErr error
	for c := len(toks) - 1; c > 1; c-- {
		if toks[c].Kind != token.Comma || toks[c].Quoted {
			continue
		}
		pred, err := lp.parsePredicate(toks[1:c])
		if err != nil {
			lastErr = err
			continue
		}
		body, err := lp.parseSentence(toks[c+1:], prev)
		if err != nil {
			return nil, err
		}
		return []core.Effect{conditionalFor(pred, body)}, nil
	}
	if lastErr == nil {
		lastErr = unsupportedf(toks, "%s: condition without effects", ErrUnsupportedPredicate)
	}
	return nil, lastErr
}

func conditionalFor(pred core.PredicateAst, body []core.Effect) core.Effect {
	if r, ok := pred.(*core.EffectResultIs); ok {
		return &core.IfResult{Predicate: r.Result, Effects: body}
	}
	return &core.Conditional{Predicate: pred, IfTrue: body}
}

// parseTrailingIf claims "<effects> if <predicate>" when the tail parses.
func (lp *lineParser) parseTrailingIf(toks []token.Token, prev []core.Effect) ([]core.Effect, bool, error) {
	for k := len(toks) - 2; k > 0; k-- {
		if !toks[k].IsWord("if") || toks[k].Quoted {
			continue
		}
		pred, err := lp.parsePredicate(toks[k+1:])
		if err != nil {
			return nil, false, nil
		}
		body, err := lp.parseSentence(toks[:k], prev)
		if err != nil {
			return nil, true, err
		}
		return []core.Effect{conditionalFor(pred, body)}, true, nil
	}
	return nil, false, nil
}

// parseMay claims "<player> may <effects>".
func (lp *lineParser) parseMay(toks []token.Token, prev []core.Effect) ([]core.Effect, bool, error) {
	m := indexWord(toks, "may")
	if m <= 0 || m+1 >= len(toks) || toks[m].Quoted {
		return nil, false, nil
	}
	subj := toks[:m]
	pp, ok := parsePlayerPhrase(subj)
	if !ok {
		return nil, false, nil
	}
	if pp.ast == core.PlayerAstYou {
		effects, err := lp.parseSentence(toks[m+1:], prev)
		if err != nil {
			return nil, true, err
		}
		return []core.Effect{&core.May{Effects: effects}}, true, nil
	}
	effects, err := lp.parseSentence(concat(subj, toks[m+1:]), prev)
	if err != nil {
		return nil, true, err
	}
	return []core.Effect{&core.MayByPlayer{Player: pp.ast, Effects: effects}}, true, nil
}

// parseUnless claims "<effects> unless <player> pays <mana>" and
// "<effects> unless <player> <action>", and the same clauses printed first
// ("Unless you pay {2}, sacrifice it"). Counterspells keep their own
// "unless its controller pays" form.
func (lp *lineParser) parseUnless(toks []token.Token, prev []core.Effect) ([]core.Effect, bool, error) {
	u := indexWord(toks, "unless")
	if u < 0 || toks[u].Quoted || toks[0].IsWord("counter") {
		return nil, false, nil
	}
	if u == 0 {
		effects, err := lp.parseLeadingUnless(toks, prev)
		return effects, true, err
	}
	left, right := trimPunct(toks[:u]), trimPunct(toks[u+1:])
	pp, rest, ok := matchPlayerPrefix(right)
	if !ok || len(rest) == 0 {
		return nil, true, unsupportedf(toks, "%s: unless clause", ErrUnsupportedPredicate)
	}
	effects, err := lp.parseSentence(left, prev)
	if err != nil {
		return nil, true, err
	}
	if mana, tail, ok := unlessPayment(rest); ok && len(trimPunct(tail)) == 0 {
		return []core.Effect{&core.UnlessPays{Effects: effects, Player: pp.ast, Mana: core.ManaCost{Symbols: mana}}}, true, nil
	}
	alt, err := lp.parseSentence(right, nil)
	if err != nil {
		return nil, true, err
	}
	return []core.Effect{&core.UnlessAction{Effects: effects, Alternative: alt, Player: pp.ast}}, true, nil
}

// parseLeadingUnless parses "Unless <player> pays <mana>, <effects>" and
// "Unless <player> <action>, <effects>". The action form splits at the
// first comma whose two sides both parse.
func (lp *lineParser) parseLeadingUnless(toks []token.Token, prev []core.Effect) ([]core.Effect, error) {
	pp, rest, ok := matchPlayerPrefix(toks[1:])
	if !ok || len(rest) == 0 {
		return nil, unsupportedf(toks, "%s: unless clause", ErrUnsupportedPredicate)
	}
	if mana, tail, ok := unlessPayment(rest); ok && len(tail) > 1 && tail[0].Kind == token.Comma {
		effects, err := lp.parseSentence(tail[1:], prev)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.UnlessPays{Effects: effects, Player: pp.ast, Mana: core.ManaCost{Symbols: mana}}}, nil
	}
	for c := 2; c < len(toks)-1; c++ {
		if toks[c].Kind != token.Comma || toks[c].Quoted {
			continue
		}
		alt, err := lp.parseSentence(toks[1:c], nil)
		if err != nil {
			continue
		}
		effects, err := lp.parseSentence(toks[c+1:], prev)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.UnlessAction{Effects: effects, Alternative: alt, Player: pp.ast}}, nil
	}
	return nil, unsupportedf(toks, "%s: unless clause without effects", ErrUnsupportedPredicate)
}

// unlessPayment matches "pays <mana>" or "pay <mana>" and returns the mana
// and what follows it.
func unlessPayment(toks []token.Token) ([]core.ManaSymbol, []token.Token, bool) {
	r, ok := trimPrefixWords(toks, "pays")
	if !ok {
		if r, ok = trimPrefixWords(toks, "pay"); !ok {
			return nil, nil, false
		}
	}
	mana, tail := parseManaWords(r)
	if len(mana) == 0 {
		return nil, nil, false
	}
	return mana, tail, true
}

// chainLeaders start sentence primitives that can follow "and" or a comma
// without a verb of their own.
var chainLeaders = []string{"choose", "prevent", "have", "monstrosity", "distribute"}

// splitChain splits a sentence into independently parsed clauses at
// ", then", "then", and at "and" or a comma followed by a new clause.
// Clauses without a subject inherit the subject of the first clause; a
// trailing duration applies to every earlier pump or grant.
func (lp *lineParser) splitChain(toks []token.Token) [][]token.Token {
	var segs [][]token.Token
	start := 0
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Quoted {
			continue
		}
		skip := 0
		switch {
		case t.Kind == token.Comma && i+1 < len(toks) && toks[i+1].IsWord("then"):
			skip = 2
		case t.IsWord("then") && i > start:
			skip = 1
		case t.Kind == token.Comma && i+2 < len(toks) && toks[i+1].IsWord("and") && startsClause(toks[i+2:]):
			skip = 2
		case (t.Kind == token.Comma || t.IsWord("and")) && i > start && i+1 < len(toks) && startsClause(toks[i+1:]):
			skip = 1
		}
		if skip == 0 {
			continue
		}
		if seg := trimPunct(toks[start:i]); len(seg) > 0 {
			segs = append(segs, seg)
		}
		start = i + skip
		i = start - 1
	}
	if seg := trimPunct(toks[start:]); len(seg) > 0 {
		segs = append(segs, seg)
	}
	if len(segs) < 2 {
		return segs
	}
	return inheritChain(segs)
}

// startsClause reports whether toks begin a new clause: a verb, a
// restriction, a primitive leader, or a player or pronoun subject followed
// by one of those.
func startsClause(toks []token.Token) bool {
	if len(toks) == 0 || toks[0].Quoted || toks[0].Kind != token.Word {
		return false
	}
	if toks[0].IsAnyWord(chainLeaders...) {
		return true
	}
	if j, _ := findVerb(toks); j == 0 {
		return true
	}
	rest := toks
	if _, r, ok := matchPlayerPrefix(toks); ok {
		rest = r
	} else if toks[0].IsAnyWord("it", "they") {
		rest = toks[1:]
	} else if hasPrefixWords(toks, "that", "creature") || hasPrefixWords(toks, "this", "creature") {
		rest = toks[2:]
	} else {
		return false
	}
	if len(rest) == 0 {
		return false
	}
	if rest[0].IsAnyWord("may", "can't", "doesn't", "don't") {
		return true
	}
	j, _ := findVerb(rest)
	return j == 0
}

// inheritChain gives verb-first clauses the subject of the first clause and
// copies a trailing duration onto earlier pumps and grants.
func inheritChain(segs [][]token.Token) [][]token.Token {
	first := segs[0]
	vi, _ := findVerb(first)
	var subj []token.Token
	if vi > 0 {
		subj = pronounFor(first[:vi])
	}

	last := segs[len(segs)-1]
	dur := trailingDuration(last)

	out := make([][]token.Token, len(segs))
	for k, seg := range segs {
		if k > 0 && len(subj) > 0 {
			if j, _ := findVerb(seg); j == 0 {
				seg = concat(subj, seg)
			}
		}
		if k < len(segs)-1 && len(dur) > 0 && acceptsDuration(seg) {
			seg = concat(seg, dur)
		}
		out[k] = seg
	}
	return out
}

// pronounFor turns a targeted subject into the back-reference used by later
// clauses, so "target player draws a card and loses 1 life" targets once.
func pronounFor(subj []token.Token) []token.Token {
	subj = trimPunct(subj)
	if len(subj) == 0 || indexWord(subj, "target") < 0 {
		return subj
	}
	span := token.SpanOf(subj)
	if _, ok := parsePlayerPhrase(subj); ok {
		return []token.Token{synthWord("that", span), synthWord("player", span)}
	}
	return []token.Token{synthWord("it", span)}
}

func trailingDuration(toks []token.Token) []token.Token {
	toks = trimPunct(toks)
	for _, dp := range durationPhrases {
		if hasSuffixWords(toks, dp.words...) && len(toks) > len(dp.words) {
			return toks[len(toks)-len(dp.words):]
		}
	}
	return nil
}

// acceptsDuration reports whether a clause is a pump or grant without a
// duration of its own.
func acceptsDuration(seg []token.Token) bool {
	if _, d := splitDuration(seg); d != core.Immediate {
		return false
	}
	_, verb := findVerb(seg)
	switch verb {
	case "get", "become":
		return true
	case "gain", "lose":
		return indexWord(seg, "life", "control", "energy") < 0
	}
	return false
}
