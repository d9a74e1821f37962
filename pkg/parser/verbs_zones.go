package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

func (lp *lineParser) verbDestroy(vc *verbClause) ([]core.Effect, error) {
	args := vc.args
	cantRegen := false
	if r, ok := trimSuffixWords(args, "they", "can't", "be", "regenerated"); ok {
		args, cantRegen = trimPunct(r), true
	}
	return lp.targetsOrGroup(args,
		func(t core.TargetAst) core.Effect { return &core.Destroy{Target: t} },
		func(f core.ObjectFilter) core.Effect { return &core.DestroyAll{Filter: f, CantRegenerate: cantRegen} })
}

func (lp *lineParser) verbExile(vc *verbClause) ([]core.Effect, error) {
	args := vc.args
	if r, ok := trimSuffixWords(args, "until", "this", "leaves", "the", "battlefield"); ok {
		t, err := lp.parseTarget(r)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.ExileUntilSourceLeaves{Target: t}}, nil
	}
	faceDown := false
	if r, ok := trimSuffixWords(args, "face", "down"); ok {
		args, faceDown = r, true
	}
	return lp.targetsOrGroup(args,
		func(t core.TargetAst) core.Effect { return &core.Exile{Target: t, FaceDown: faceDown} },
		func(f core.ObjectFilter) core.Effect { return &core.ExileAll{Filter: f} })
}

var phUnlessControllerPays = mustPhrase("unless its|that|their controller|player pays *")

func (lp *lineParser) verbCounter(vc *verbClause) ([]core.Effect, error) {
	args := vc.args
	var unless []token.Token
	if i := indexWord(args, "unless"); i > 0 {
		args, unless = trimPunct(args[:i]), args[i:]
	}
	if len(args) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}

	var target core.TargetAst
	switch {
	case hasSuffixWords(args, "activated", "or", "triggered", "ability"),
		hasSuffixWords(args, "activated", "ability"), hasSuffixWords(args, "triggered", "ability"):
		var span *token.TextSpan
		if i := indexWord(args, "target"); i >= 0 {
			span = spanPtr(args[i])
		}
		return []core.Effect{&core.CounterAbility{Target: &core.SpellTarget{TargetSpan: span}}}, nil
	default:
		t, err := lp.parseTarget(args)
		if err != nil {
			return nil, err
		}
		target = t
	}

	if unless == nil {
		return []core.Effect{&core.Counter{Target: target}}, nil
	}
	caps, ok := phUnlessControllerPays.match(unless)
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedCost)
	}
	mana, rest := parseManaWords(caps[0])
	if len(mana) == 0 || len(trimPunct(rest)) > 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedCost)
	}
	return []core.Effect{&core.CounterUnlessPays{Target: target, Mana: core.ManaCost{Symbols: mana}}}, nil
}

func (lp *lineParser) verbSacrifice(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	args := vc.args
	if len(args) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	if isSelfReference(args) {
		return []core.Effect{&core.Sacrifice{Filter: core.ObjectFilter{Source: true}, Player: player, Count: 1}}, nil
	}
	if tag, ok := taggedReference(args); ok || (len(args) == 1 && taggedPronouns[args[0].Text]) {
		if !ok {
			tag = core.ItTag
		}
		f := core.ObjectFilter{TaggedConstraints: []core.TaggedConstraint{{Tag: tag, Relation: core.IsTaggedObject}}}
		return []core.Effect{&core.Sacrifice{Filter: f, Player: player, Count: 1}}, nil
	}
	if isGroupPhrase(args) {
		f, err := lp.parseGroupFilter(args)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.SacrificeAll{Filter: f, Player: player}}, nil
	}

	count := 1
	rest := args
	if n, ok := parseNumberWord(args[0].Text); ok && !args[0].IsAnyWord("a", "an", "no") {
		count, rest = n, args[1:]
	} else if args[0].IsWord("x") || hasPrefixWords(args, "half") {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	if hasPrefixWords(rest, "target") {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	f, err := lp.parseObjectFilter(rest)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.Sacrifice{Filter: f, Player: player, Count: count}}, nil
}

// destination is where a put or return sends an object.
type destination struct {
	zone       core.Zone
	toTop      bool
	tapped     bool
	controller core.ReturnControllerAst
	// yourHand is "into your hand" rather than its owner's.
	yourHand bool
}

// parseDestination parses "its owner's hand", "the battlefield tapped under
// your control", "the top of its owner's library", "your graveyard".
func parseDestination(toks, whole []token.Token) (destination, error) {
	toks = trimPunct(toks)
	d := destination{controller: core.ReturnPreserve}
	switch {
	case hasPrefixWords(toks, "the", "battlefield"):
		d.zone = core.ZoneBattlefield
		rest := toks[2:]
		for len(rest) > 0 {
			switch {
			case rest[0].IsWord("tapped"):
				d.tapped, rest = true, rest[1:]
			case rest[0].IsWord("and"):
				rest = rest[1:]
			case hasPrefixWords(rest, "under", "your", "control"):
				d.controller, rest = core.ReturnYou, rest[3:]
			case hasPrefixWords(rest, "under", "its", "owner's", "control"), hasPrefixWords(rest, "under", "their", "owner's", "control"),
				hasPrefixWords(rest, "under", "their", "owners'", "control"):
				d.controller, rest = core.ReturnOwner, rest[4:]
			default:
				return d, unsupportedf(whole, "%s: destination", ErrUnsupportedTarget)
			}
		}
		return d, nil
	case hasPrefixWords(toks, "the", "top", "of"):
		d.toTop = true
		toks = toks[3:]
	case hasPrefixWords(toks, "top", "of"):
		d.toTop = true
		toks = toks[2:]
	case hasPrefixWords(toks, "the", "bottom", "of"):
		toks = toks[3:]
	}
	if len(toks) == 0 {
		return d, unsupportedf(whole, "%s: destination", ErrUnsupportedTarget)
	}
	if toks[0].IsWord("your") {
		d.yourHand = true
	}
	_, n, ok := possessivePlayer(toks)
	if !ok {
		if hasPrefixWords(toks, "its", "owner's") || hasPrefixWords(toks, "their", "owners'") {
			n, ok = 2, true
		}
	}
	if !ok || n >= len(toks) || n+1 != len(toks) {
		return d, unsupportedf(whole, "%s: destination", ErrUnsupportedTarget)
	}
	switch toks[n].Text {
	case "hand", "hands":
		d.zone = core.ZoneHand
	case "graveyard", "graveyards":
		d.zone = core.ZoneGraveyard
	case "library", "libraries":
		d.zone = core.ZoneLibrary
	default:
		return d, unsupportedf(whole, "%s: destination", ErrUnsupportedTarget)
	}
	return d, nil
}

// moveEffect builds the effect for sending a target to a destination.
func moveEffect(t core.TargetAst, d destination) core.Effect {
	switch d.zone {
	case core.ZoneBattlefield:
		return &core.ReturnToBattlefield{Target: t, Tapped: d.tapped, Controller: d.controller}
	case core.ZoneHand:
		if d.yourHand {
			return &core.PutIntoHand{Player: core.PlayerAstYou, Object: t}
		}
		return &core.ReturnToHand{Target: t}
	}
	return &core.MoveToZone{Target: t, Zone: d.zone, ToTop: d.toTop, Controller: d.controller}
}

func moveAllEffect(f core.ObjectFilter, d destination) (core.Effect, bool) {
	switch d.zone {
	case core.ZoneBattlefield:
		return &core.ReturnAllToBattlefield{Filter: f, Tapped: d.tapped}, true
	case core.ZoneHand:
		if !d.yourHand {
			return &core.ReturnAllToHand{Filter: f}, true
		}
	}
	return nil, false
}

// splitObjectDestination splits "<object> to <destination>" at the first
// connector whose right side is a destination.
func splitObjectDestination(args []token.Token, connectors ...string) ([]token.Token, destination, bool, error) {
	for i, t := range args {
		if i == 0 || !t.IsAnyWord(connectors...) {
			continue
		}
		d, err := parseDestination(args[i+1:], args)
		if err != nil {
			continue
		}
		return trimPunct(args[:i]), d, true, nil
	}
	return nil, destination{}, false, nil
}

func (lp *lineParser) sendTo(obj []token.Token, d destination, whole []token.Token) ([]core.Effect, error) {
	if isGroupPhrase(obj) {
		f, err := lp.parseGroupFilter(obj)
		if err != nil {
			return nil, err
		}
		e, ok := moveAllEffect(f, d)
		if !ok {
			return nil, unsupportedf(whole, ErrUnsupportedTarget)
		}
		return []core.Effect{e}, nil
	}
	var out []core.Effect
	for _, part := range splitTargets(obj) {
		t, err := lp.parseTarget(part)
		if err != nil {
			return nil, err
		}
		out = append(out, moveEffect(t, d))
	}
	return out, nil
}

func (lp *lineParser) verbReturn(vc *verbClause) ([]core.Effect, error) {
	obj, d, ok, _ := splitObjectDestination(vc.args, "to")
	if !ok {
		return nil, unsupportedf(vc.whole, "%s: destination", ErrUnsupportedTarget)
	}
	return lp.sendTo(obj, d, vc.whole)
}

func (lp *lineParser) verbPut(vc *verbClause) ([]core.Effect, error) {
	args := vc.args
	if c := indexWord(args, "counter", "counters"); c >= 0 && c+1 < len(args) && args[c+1].IsWord("on") {
		return lp.putCounters(args, c, vc.whole)
	}
	if i := indexSeq(args, "on", "top", "of"); i > 0 {
		d, err := parseDestination(args[i+1:], vc.whole)
		if err != nil {
			return nil, err
		}
		return lp.sendTo(trimPunct(args[:i]), d, vc.whole)
	}
	if i := indexSeq(args, "on", "the", "bottom", "of"); i > 0 {
		d, err := parseDestination(args[i+1:], vc.whole)
		if err != nil {
			return nil, err
		}
		return lp.sendTo(trimPunct(args[:i]), d, vc.whole)
	}
	obj, d, ok, _ := splitObjectDestination(args, "into", "onto")
	if !ok {
		return nil, unsupportedf(vc.whole, "%s: destination", ErrUnsupportedTarget)
	}
	return lp.sendTo(obj, d, vc.whole)
}

// putCounters parses "<count> <kind> counter(s) on <target>"; c indexes
// the word "counter(s)".
func (lp *lineParser) putCounters(args []token.Token, c int, whole []token.Token) ([]core.Effect, error) {
	head := args[:c]
	on := trimPunct(args[c+2:])
	counter := core.AnyCounter
	if len(head) > 0 {
		if ct, ok := core.LookupCounterType(head[len(head)-1].Text); ok {
			counter, head = ct, head[:len(head)-1]
		}
	}
	var count core.Value
	switch {
	case len(head) == 0:
		count = core.FixedValue(1)
	case hasPrefixWords(head, "a", "number", "of") && len(head) == 3:
		// the amount follows the target: "equal to ..."
	default:
		v, rest, ok := parseCount(head)
		if !ok || len(rest) > 0 {
			return nil, unsupportedf(whole, ErrUnsupportedValue)
		}
		count = v
	}

	// "for each" and "equal to" tails scale the count.
	if i := indexSeq(on, "for", "each"); i > 0 {
		v, err := lp.parseAmountTail(on[i:])
		if err != nil {
			return nil, err
		}
		count, on = scaledCount(count, v), trimPunct(on[:i])
	} else if i := indexSeq(on, "equal", "to"); i > 0 {
		v, err := lp.parseAmountTail(on[i:])
		if err != nil {
			return nil, err
		}
		count, on = v, trimPunct(on[:i])
	}

	if count == nil {
		return nil, unsupportedf(whole, ErrUnsupportedValue)
	}
	if isGroupPhrase(on) {
		f, err := lp.parseGroupFilter(on)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.PutCountersAll{Counter: counter, Count: count, Filter: f}}, nil
	}
	if hasPrefixWords(on, "each", "of") {
		return nil, unsupportedf(whole, ErrUnsupportedTarget)
	}
	var out []core.Effect
	for _, part := range splitTargets(on) {
		t, err := lp.parseTarget(part)
		if err != nil {
			return nil, err
		}
		out = append(out, &core.PutCounters{Counter: counter, Count: count, Target: t})
	}
	return out, nil
}

func (lp *lineParser) verbShuffle(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	args := vc.args
	switch {
	case len(args) == 0, len(args) == 2 && args[0].IsAnyWord("your", "their") && args[1].IsWord("library"):
		return []core.Effect{&core.ShuffleLibrary{Player: player}}, nil
	case len(args) == 5 && args[0].IsAnyWord("your", "their") && hasPrefixWords(args[1:], "graveyard", "into") &&
		args[3].IsAnyWord("your", "their") && args[4].IsWord("library"):
		return []core.Effect{&core.ShuffleGraveyardIntoLibrary{Player: player}}, nil
	}
	obj, d, ok, _ := splitObjectDestination(args, "into")
	if !ok || d.zone != core.ZoneLibrary {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	return lp.sendTo(obj, d, vc.whole)
}

func (lp *lineParser) verbAttach(vc *verbClause) ([]core.Effect, error) {
	i := indexWord(vc.args, "to")
	if i <= 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	obj, err := lp.parseTarget(vc.args[:i])
	if err != nil {
		return nil, err
	}
	to, err := lp.parseTarget(vc.args[i+1:])
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.Attach{Object: obj, Target: to}}, nil
}

// verbSearch handles a bare "search your library for <filter>"; compound
// search sentences are claimed by the search primitive first.
func (lp *lineParser) verbSearch(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	i := indexWord(vc.args, "for")
	if i < 0 || !hasSuffixWords(vc.args[:i], "library") {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	count, filter, err := lp.parseSearchFor(vc.args[i+1:])
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.SearchLibrary{Filter: filter, Player: player, Count: count}}, nil
}

// parseSearchFor parses what a search looks for: "a basic land card", "up
// to two creature cards", "a card named Foo".
func (lp *lineParser) parseSearchFor(toks []token.Token) (core.ChoiceCount, core.ObjectFilter, error) {
	toks = trimPunct(toks)
	count := core.Exactly(1)
	if c, rest, ok := parseChoiceCount(toks); ok {
		count, toks = c, rest
	} else if len(toks) > 1 {
		if n, ok := parseNumberWord(toks[0].Text); ok && n > 1 {
			count, toks = core.Exactly(n), toks[1:]
		}
	}
	if len(toks) == 0 {
		return count, core.ObjectFilter{}, unsupportedf(toks, ErrUnsupportedFilter)
	}
	f, err := lp.parseObjectFilter(toks)
	if err != nil {
		return count, f, err
	}
	f.Zone = core.ZoneLibrary
	return count, f, nil
}
