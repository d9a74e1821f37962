package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// parseTarget parses a reference to what an effect acts on. Quantifier
// prefixes wrap the result in a CountedTarget.
func (lp *lineParser) parseTarget(toks []token.Token) (core.TargetAst, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrUnsupportedTarget)
	}
	lp.trace("target", toks)

	count, rest, counted := parseChoiceCount(toks)
	if counted && len(rest) == 0 {
		return nil, unsupportedf(toks, ErrUnsupportedTarget)
	}
	inner, err := lp.parseSingleTarget(rest)
	if err != nil {
		return nil, err
	}
	if counted {
		return &core.CountedTarget{Target: inner, Count: count}, nil
	}
	return inner, nil
}

// parseChoiceCount strips "any number of", "up to N", "one, two, or
// three", "N or M", "X" and "N" (two or more) prefixes.
func parseChoiceCount(toks []token.Token) (core.ChoiceCount, []token.Token, bool) {
	if rest, ok := trimPrefixWords(toks, "any", "number", "of"); ok {
		return core.AnyNumber(), rest, true
	}
	if rest, ok := trimPrefixWords(toks, "up", "to"); ok && len(rest) > 0 {
		if rest[0].IsWord("x") {
			return core.ChoiceCount{DynamicX: true}, rest[1:], true
		}
		if n, ok := parseNumberWord(rest[0].Text); ok {
			return core.UpTo(n), rest[1:], true
		}
		return core.ChoiceCount{}, toks, false
	}
	if lo, hi, rest, ok := parseNumberSeries(toks); ok && len(rest) > 0 {
		return core.ChoiceCount{Min: lo, Max: hi}, rest, true
	}
	if len(toks) >= 3 && toks[1].IsWord("or") {
		lo, ok1 := parseNumberWord(toks[0].Text)
		hi, ok2 := parseNumberWord(toks[2].Text)
		if ok1 && ok2 && !toks[0].IsAnyWord("a", "an", "no") && hi > lo {
			return core.ChoiceCount{Min: lo, Max: hi}, toks[3:], true
		}
	}
	if len(toks) >= 2 && isTargetMarkerAt(toks, 1) {
		if toks[0].IsWord("x") {
			return core.ChoiceCount{DynamicX: true}, toks[1:], true
		}
		if n, ok := parseNumberWord(toks[0].Text); ok && n >= 2 {
			return core.Exactly(n), toks[1:], true
		}
	}
	return core.ChoiceCount{}, toks, false
}

// parseNumberSeries matches a comma list of consecutive numbers closed by
// "or": "one, two, or three".
func parseNumberSeries(toks []token.Token) (lo, hi int, rest []token.Token, ok bool) {
	number := func(t token.Token) (int, bool) {
		if t.IsAnyWord("a", "an", "no") {
			return 0, false
		}
		return parseNumberWord(t.Text)
	}
	var nums []int
	commas := 0
	i := 0
	for {
		if i >= len(toks) {
			return 0, 0, nil, false
		}
		n, ok := number(toks[i])
		if !ok {
			return 0, 0, nil, false
		}
		nums = append(nums, n)
		i++
		if i < len(toks) && toks[i].Kind == token.Comma {
			commas++
			i++
		} else if i >= len(toks) || !toks[i].IsWord("or") {
			return 0, 0, nil, false
		}
		if i < len(toks) && toks[i].IsWord("or") {
			if i+1 >= len(toks) {
				return 0, 0, nil, false
			}
			n, ok := number(toks[i+1])
			if !ok {
				return 0, 0, nil, false
			}
			nums = append(nums, n)
			i += 2
			break
		}
	}
	if commas == 0 {
		return 0, 0, nil, false
	}
	for j := 1; j < len(nums); j++ {
		if nums[j] != nums[j-1]+1 {
			return 0, 0, nil, false
		}
	}
	return nums[0], nums[len(nums)-1], toks[i:], true
}

func isTargetMarkerAt(toks []token.Token, i int) bool {
	switch {
	case toks[i].IsWord("target"):
		return true
	case toks[i].IsAnyWord("other", "another"):
		return i+1 < len(toks) && toks[i+1].IsWord("target")
	}
	return false
}

var (
	taggedPronouns = map[string]bool{"it": true, "them": true, "itself": true, "themselves": true}
	taggedNouns    = map[string]bool{
		"card": true, "cards": true, "permanent": true, "permanents": true,
		"spell": true, "spells": true, "token": true, "tokens": true,
		"object": true, "objects": true,
	}
)

func (lp *lineParser) parseSingleTarget(toks []token.Token) (core.TargetAst, error) {
	span := spanPtr(toks...)

	if len(toks) == 1 && taggedPronouns[toks[0].Text] {
		lp.noteTag(core.ItTag, *span)
		return &core.TaggedTarget{Tag: core.ItTag, Span: span}, nil
	}
	if tag, ok := taggedReference(toks); ok {
		lp.noteTag(tag, *span)
		return &core.TaggedTarget{Tag: tag, Span: span}, nil
	}
	if isSelfReference(toks) {
		return &core.SourceTarget{Span: span}, nil
	}
	if pp, ok := parsePlayerPhrase(toks); ok {
		var ts *token.TextSpan
		if toks[0].IsWord("target") {
			ts = spanPtr(toks[0])
		}
		return &core.PlayerTarget{Filter: pp.filter, TargetSpan: ts}, nil
	}

	switch {
	case hasPrefixWords(toks, "any", "target") && len(toks) == 2,
		hasPrefixWords(toks, "any", "other", "target") && len(toks) == 3:
		return &core.AnyTarget{TargetSpan: spanPtr(toks[len(toks)-1])}, nil
	case len(toks) == 4 && hasPrefixWords(toks, "target", "creature", "or", "player"):
		return &core.AnyTarget{TargetSpan: spanPtr(toks[0])}, nil
	case len(toks) == 4 && hasPrefixWords(toks, "target", "player", "or", "planeswalker"):
		return &core.PlayerOrPlaneswalkerTarget{Filter: core.AnyPlayer, TargetSpan: spanPtr(toks[0])}, nil
	case len(toks) == 4 && hasPrefixWords(toks, "target", "opponent", "or", "planeswalker"):
		return &core.PlayerOrPlaneswalkerTarget{Filter: core.Opponent, TargetSpan: spanPtr(toks[0])}, nil
	case len(toks) == 2 && hasPrefixWords(toks, "target", "spell"):
		return &core.SpellTarget{TargetSpan: spanPtr(toks[0])}, nil
	}

	other := false
	rest := toks
	if r, ok := trimPrefixWords(rest, "another"); ok {
		other, rest = true, r
	} else if r, ok := trimPrefixWords(rest, "other"); ok {
		other, rest = true, r
	}
	var targetSpan *token.TextSpan
	if len(rest) > 0 && rest[0].IsWord("target") {
		targetSpan = spanPtr(rest[0])
		rest = rest[1:]
	} else if len(rest) > 1 && rest[0].IsAnyWord("a", "an") && rest[1].IsWord("target") {
		targetSpan = spanPtr(rest[1])
		rest = rest[2:]
	}
	if len(rest) == 0 {
		return nil, unsupportedf(toks, ErrUnsupportedTarget)
	}
	filter, err := lp.parseObjectFilter(rest)
	if err != nil {
		return nil, err
	}
	if other {
		filter.Other = true
	}
	if targetSpan != nil {
		lp.noteTag(core.TargetTag, *targetSpan)
	}
	return &core.ObjectTarget{Filter: filter, TargetSpan: targetSpan}, nil
}

// taggedReference recognizes demonstratives that refer back to a tagged
// object: "that creature", "those cards", "the sacrificed creature",
// "enchanted creature".
func taggedReference(toks []token.Token) (core.TagKey, bool) {
	if len(toks) < 2 {
		return "", false
	}
	noun := toks[len(toks)-1].Text
	isNoun := taggedNouns[noun]
	if !isNoun {
		_, isType := core.LookupCardType(noun)
		_, isSub := core.LookupSubtype(noun)
		isNoun = isType || isSub
	}
	if !isNoun {
		return "", false
	}
	switch {
	case len(toks) == 2 && toks[0].IsAnyWord("that", "those"):
		return core.ItTag, true
	case len(toks) == 3 && hasPrefixWords(toks, "the", "sacrificed"):
		return core.SacrificedTag, true
	case len(toks) == 3 && toks[0].IsWord("the") && toks[1].IsAnyWord("exiled", "chosen", "revealed", "returned", "tapped"):
		return core.ItTag, true
	case len(toks) == 2 && toks[0].IsWord("enchanted"):
		return core.EnchantedTag, true
	case len(toks) == 2 && toks[0].IsWord("equipped"):
		return core.EquippedTag, true
	}
	return "", false
}

// isSelfReference recognizes "this", "this creature", "this spell" and
// "this <type or subtype>".
func isSelfReference(toks []token.Token) bool {
	if len(toks) == 0 || !toks[0].IsWord("this") {
		return false
	}
	if len(toks) == 1 {
		return true
	}
	if len(toks) != 2 {
		return false
	}
	w := toks[1].Text
	if w == "card" || w == "permanent" || w == "spell" || w == "token" {
		return true
	}
	if _, ok := core.LookupCardType(w); ok {
		return true
	}
	_, ok := core.LookupSubtype(w)
	return ok
}
