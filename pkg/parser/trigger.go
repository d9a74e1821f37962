package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

type stepPhrase struct {
	words []string
	step  core.Step
}

var stepPhrases = []stepPhrase{
	{[]string{"upkeep"}, core.StepUpkeep},
	{[]string{"draw", "step"}, core.StepDraw},
	{[]string{"precombat", "main", "phase"}, core.StepPrecombatMain},
	{[]string{"first", "main", "phase"}, core.StepPrecombatMain},
	{[]string{"postcombat", "main", "phase"}, core.StepPostcombatMain},
	{[]string{"second", "main", "phase"}, core.StepPostcombatMain},
	{[]string{"end", "step"}, core.StepEnd},
	{[]string{"combat"}, core.StepCombat},
	{[]string{"declare", "attackers", "step"}, core.StepDeclareAttacker},
	{[]string{"cleanup", "step"}, core.StepCleanup},
}

// parseStepTrigger parses "the beginning of your upkeep", "the beginning
// of combat on your turn", "end of combat".
func parseStepTrigger(toks, whole []token.Token) (core.TriggerSpec, error) {
	if hasPrefixWords(toks, "end", "of", "combat") && len(toks) == 3 {
		return &core.BeginningOfStep{Step: core.StepEndOfCombat, Player: core.AnyPlayer}, nil
	}
	rest, ok := trimPrefixWords(toks, "the", "beginning", "of")
	if !ok {
		return nil, unsupportedf(whole, ErrUnsupportedTrigger)
	}
	if hasPrefixWords(rest, "the", "next") {
		return nil, unsupportedf(whole, "%s: delayed step", ErrUnsupportedTrigger)
	}

	player := core.AnyPlayer
	switch {
	case hasPrefixWords(rest, "combat", "on", "your", "turn"):
		return &core.BeginningOfStep{Step: core.StepCombat, Player: core.You}, nil
	case hasPrefixWords(rest, "each", "combat"), hasPrefixWords(rest, "combat") && len(rest) == 1:
		return &core.BeginningOfStep{Step: core.StepCombat, Player: core.AnyPlayer}, nil
	case hasPrefixWords(rest, "the"), hasPrefixWords(rest, "each"):
		rest = rest[1:]
		if r, ok := trimPrefixWords(rest, "player's"); ok {
			rest = r
		}
	default:
		who, n, ok := possessivePlayer(rest)
		if !ok {
			return nil, unsupportedf(whole, ErrUnsupportedTrigger)
		}
		player, rest = who, rest[n:]
	}
	for _, sp := range stepPhrases {
		if len(rest) == len(sp.words) && hasPrefixWords(rest, sp.words...) {
			return &core.BeginningOfStep{Step: sp.step, Player: player}, nil
		}
	}
	// "each of your end steps"
	if r, ok := trimPrefixWords(rest, "of", "your"); ok && len(r) == 2 && r[0].IsWord("end") && r[1].IsWord("steps") {
		return &core.BeginningOfStep{Step: core.StepEnd, Player: core.You}, nil
	}
	return nil, unsupportedf(whole, ErrUnsupportedTrigger)
}

type eventVerb struct {
	words  []string
	object core.ObjectEventKind
	player core.PlayerEventKind
	zone   *zoneMove
}

type zoneMove struct {
	from, to core.Zone
}

var (
	moveEnters = &zoneMove{to: core.ZoneBattlefield}
	moveDies   = &zoneMove{from: core.ZoneBattlefield, to: core.ZoneGraveyard}
	moveLeaves = &zoneMove{from: core.ZoneBattlefield}
	moveToGY   = &zoneMove{to: core.ZoneGraveyard}
	moveExiled = &zoneMove{to: core.ZoneExile}
)

// eventVerbs lists trigger event verbs. Longer phrases come first where
// they share a prefix.
var eventVerbs = []eventVerb{
	{words: []string{"enters", "the", "battlefield"}, zone: moveEnters},
	{words: []string{"enter", "the", "battlefield"}, zone: moveEnters},
	{words: []string{"enters"}, zone: moveEnters},
	{words: []string{"enter"}, zone: moveEnters},
	{words: []string{"dies"}, zone: moveDies},
	{words: []string{"die"}, zone: moveDies},
	{words: []string{"leaves", "the", "battlefield"}, zone: moveLeaves},
	{words: []string{"leave", "the", "battlefield"}, zone: moveLeaves},
	{words: []string{"is", "put", "into", "a", "graveyard", "from", "the", "battlefield"}, zone: moveDies},
	{words: []string{"are", "put", "into", "a", "graveyard", "from", "the", "battlefield"}, zone: moveDies},
	{words: []string{"is", "put", "into", "your", "graveyard", "from", "anywhere"}, zone: moveToGY},
	{words: []string{"is", "put", "into", "a", "graveyard", "from", "anywhere"}, zone: moveToGY},
	{words: []string{"is", "put", "into", "exile"}, zone: moveExiled},
	{words: []string{"attacks", "or", "blocks"}, object: core.EventAttacksOrBlocks},
	{words: []string{"attacks", "alone"}, object: core.EventAttacks},
	{words: []string{"attacks"}, object: core.EventAttacks},
	{words: []string{"attack"}, object: core.EventAttacks},
	{words: []string{"blocks"}, object: core.EventBlocks},
	{words: []string{"block"}, object: core.EventBlocks},
	{words: []string{"becomes", "blocked"}, object: core.EventBecomesBlocked},
	{words: []string{"becomes", "tapped"}, object: core.EventBecomesTapped},
	{words: []string{"becomes", "untapped"}, object: core.EventBecomesUntapped},
	{words: []string{"becomes", "the", "target", "of"}, object: core.EventBecomesTarget},
	{words: []string{"deals", "combat", "damage", "to", "a", "player"}, object: core.EventDealsCombatDmg},
	{words: []string{"deal", "combat", "damage", "to", "a", "player"}, object: core.EventDealsCombatDmg},
	{words: []string{"deals", "combat", "damage"}, object: core.EventDealsCombatDmg},
	{words: []string{"deals", "damage", "to", "a", "player"}, object: core.EventDealsDamage},
	{words: []string{"deals", "damage"}, object: core.EventDealsDamage},
	{words: []string{"is", "dealt", "damage"}, object: core.EventIsDealtDamage},
	{words: []string{"transforms"}, object: core.EventTransforms},
	{words: []string{"is", "turned", "face", "up"}, object: core.EventTurnedFaceUp},
	{words: []string{"becomes", "attached", "to"}, object: core.EventAttachedTo},
	{words: []string{"is", "sacrificed"}, object: core.EventSacrificed},
	{words: []string{"draws"}, player: core.EventDraws},
	{words: []string{"draw"}, player: core.EventDraws},
	{words: []string{"gains", "life"}, player: core.EventGainsLife},
	{words: []string{"gain", "life"}, player: core.EventGainsLife},
	{words: []string{"loses", "life"}, player: core.EventLosesLife},
	{words: []string{"lose", "life"}, player: core.EventLosesLife},
	{words: []string{"discards"}, player: core.EventDiscards},
	{words: []string{"discard"}, player: core.EventDiscards},
	{words: []string{"plays", "a", "land"}, player: core.EventPlaysLand},
	{words: []string{"play", "a", "land"}, player: core.EventPlaysLand},
	{words: []string{"cycles"}, player: core.EventCycles},
	{words: []string{"cycle"}, player: core.EventCycles},
	{words: []string{"sacrifices"}, player: core.EventSacrifices},
	{words: []string{"sacrifice"}, player: core.EventSacrifices},
	{words: []string{"searches", "their", "library"}, player: core.EventSearches},
	{words: []string{"search", "your", "library"}, player: core.EventSearches},
	{words: []string{"shuffles"}, player: core.EventShuffles},
	{words: []string{"scry"}, player: core.EventScries},
	{words: []string{"scries"}, player: core.EventScries},
}

var (
	phCounterPlaced = mustPhrase("one|a or more ? counters|counter are|is put on *")
	phAnyCounter    = mustPhrase("one|a or more counters are|is put on *")
	phCastSpell     = mustPhrase("* cast|casts *")
	phCastOrCopy    = mustPhrase("* cast|casts or copy|copies *")
	phYouAttack     = mustPhrase("you attack (with) *")
	phYouAttackBare = mustPhrase("you attack")
)

// parseTriggerEvent parses the event of a "when"/"whenever" trigger.
func (lp *lineParser) parseTriggerEvent(toks []token.Token) (core.TriggerSpec, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrUnsupportedTrigger)
	}
	lp.trace("trigger", toks)

	if caps, ok := phCastOrCopy.match(toks); ok {
		return lp.parseSpellCast(caps[0], caps[1], toks, true)
	}
	if caps, ok := phCastSpell.match(toks); ok {
		return lp.parseSpellCast(caps[0], caps[1], toks, false)
	}
	if phYouAttackBare.matches(toks) {
		return &core.PlayerEvent{Event: core.EventAttacksWith, Player: core.You}, nil
	}
	if caps, ok := phYouAttack.match(toks); ok {
		f, err := lp.parseObjectFilter(caps[0])
		if err != nil {
			return nil, err
		}
		return &core.PlayerEvent{Event: core.EventAttacksWith, Player: core.You, Filter: &f}, nil
	}
	if caps, ok := phCounterPlaced.match(toks); ok {
		c, ok := core.LookupCounterType(caps[0][0].Text)
		if !ok {
			return nil, unsupportedf(toks, ErrUnsupportedTrigger)
		}
		return lp.counterPlacedTrigger(c, caps[1])
	}
	if caps, ok := phAnyCounter.match(toks); ok {
		return lp.counterPlacedTrigger(core.AnyCounter, caps[0])
	}

	// "this creature enters or attacks"
	if i := indexWord(toks, "or"); i > 0 && i+1 < len(toks) {
		if first, ok := matchEventVerbAt(toks, i-1); ok && len(first.words) == 1 {
			if second, ok := matchEventVerbAt(toks, i+1); ok && i+1+len(second.words) == len(toks) && second.object != core.EventAttacksOrBlocks {
				subject := toks[:i-1]
				a, err := lp.buildEvent(subject, first, nil, toks)
				if err != nil {
					return nil, err
				}
				b, err := lp.buildEvent(subject, second, toks[i+1+len(second.words):], toks)
				if err != nil {
					return nil, err
				}
				return &core.EitherTrigger{First: a, Second: b}, nil
			}
		}
	}

	for i := 1; i < len(toks); i++ {
		ev, ok := matchEventVerbAt(toks, i)
		if !ok {
			continue
		}
		return lp.buildEvent(toks[:i], ev, toks[i+len(ev.words):], toks)
	}
	return nil, lp.checkpoint("trigger", unsupportedf(toks, ErrUnsupportedTrigger))
}

func matchEventVerbAt(toks []token.Token, i int) (eventVerb, bool) {
	for _, ev := range eventVerbs {
		if hasPrefixWords(toks[i:], ev.words...) {
			return ev, true
		}
	}
	return eventVerb{}, false
}

func (lp *lineParser) counterPlacedTrigger(c core.CounterType, subject []token.Token) (core.TriggerSpec, error) {
	ev := &core.ObjectEvent{Event: core.EventCountersPlaced, Counter: c}
	if isSelfReference(subject) {
		ev.Self = true
		return ev, nil
	}
	f, err := lp.parseObjectFilter(subject)
	if err != nil {
		return nil, err
	}
	ev.Filter = f
	return ev, nil
}

// buildEvent assembles a trigger from its subject, event verb and trailing
// words.
func (lp *lineParser) buildEvent(subject []token.Token, ev eventVerb, tail, whole []token.Token) (core.TriggerSpec, error) {
	if len(subject) == 0 {
		return nil, unsupportedf(whole, ErrUnsupportedTrigger)
	}
	if ev.player != "" {
		return lp.buildPlayerEvent(subject, ev, tail, whole)
	}

	self := isSelfReference(subject)
	var filter core.ObjectFilter
	if !self {
		subj := subject
		if r, ok := trimPrefixWords(subj, "one", "or", "more"); ok {
			subj = r
		}
		f, err := lp.parseObjectFilter(subj)
		if err != nil {
			return nil, err
		}
		filter = f
	}

	if ev.zone != nil {
		tail = trimPunct(tail)
		if len(tail) > 0 {
			// "enters under your control", "enters tapped" are not supported.
			if hasPrefixWords(tail, "under", "your", "control") && len(tail) == 3 {
				you := core.You
				filter.Controller = &you
			} else {
				return nil, unsupportedf(whole, ErrUnsupportedTrigger)
			}
		}
		if ev.zone.to == core.ZoneGraveyard && ev.zone.from == core.ZoneAny && !self {
			filter.Zone = core.ZoneAny
		}
		return &core.ZoneChange{From: ev.zone.from, To: ev.zone.to, Filter: filter, Self: self}, nil
	}

	oe := &core.ObjectEvent{Event: ev.object, Filter: filter, Self: self}
	if len(ev.words) > 1 && ev.words[1] == "alone" {
		oe.Alone = true
	}
	if n := len(ev.words); n >= 2 && ev.words[n-2] == "a" && ev.words[n-1] == "player" {
		oe.ToPlayer = true
	}
	tail = trimPunct(tail)
	switch ev.object {
	case core.EventBecomesTarget, core.EventAttachedTo:
		// The rest names the spell or permanent involved; it does not narrow
		// the triggering object.
		tail = nil
	case core.EventDealsDamage, core.EventDealsCombatDmg:
		if hasPrefixWords(tail, "to", "a", "player") || hasPrefixWords(tail, "to", "an", "opponent") {
			oe.ToPlayer = true
			tail = nil
		}
	}
	if len(tail) > 0 {
		return nil, unsupportedf(whole, ErrUnsupportedTrigger)
	}
	return oe, nil
}

func (lp *lineParser) buildPlayerEvent(subject []token.Token, ev eventVerb, tail, whole []token.Token) (core.TriggerSpec, error) {
	pp, ok := parsePlayerPhrase(subject)
	if !ok {
		return nil, unsupportedf(whole, ErrUnsupportedTrigger)
	}
	pe := &core.PlayerEvent{Event: ev.player, Player: pp.filter}
	tail = trimPunct(tail)
	switch ev.player {
	case core.EventDraws:
		// "draws a card", "draw your second card each turn"
		switch {
		case hasPrefixWords(tail, "a", "card"), hasPrefixWords(tail, "one", "or", "more", "cards"):
		case len(tail) >= 3 && tail[0].IsAnyWord("your", "their") && tail[2].IsWord("card"):
			nth, ok := ordinals[tail[1].Text]
			if !ok {
				return nil, unsupportedf(whole, ErrUnsupportedTrigger)
			}
			pe.Nth = nth
		default:
			return nil, unsupportedf(whole, ErrUnsupportedTrigger)
		}
		return pe, nil
	case core.EventDiscards, core.EventSacrifices, core.EventCycles:
		if len(tail) == 0 {
			return nil, unsupportedf(whole, ErrUnsupportedTrigger)
		}
		if isSelfReference(tail) {
			f := core.ObjectFilter{Source: true}
			pe.Filter = &f
			return pe, nil
		}
		if hasPrefixWords(tail, "a", "card") && len(tail) == 2 {
			return pe, nil
		}
		if r, ok := trimPrefixWords(tail, "one", "or", "more"); ok {
			tail = r
		}
		f, err := lp.parseObjectFilter(tail)
		if err != nil {
			return nil, err
		}
		pe.Filter = &f
		return pe, nil
	}
	if len(tail) > 0 {
		return nil, unsupportedf(whole, ErrUnsupportedTrigger)
	}
	return pe, nil
}

var ordinals = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
}

// parseSpellCast parses "<player> cast(s) <spell filter> [during your turn]".
func (lp *lineParser) parseSpellCast(who, what, whole []token.Token, copied bool) (core.TriggerSpec, error) {
	pp, ok := parsePlayerPhrase(who)
	if !ok {
		return nil, unsupportedf(whole, ErrUnsupportedTrigger)
	}
	sc := &core.SpellCast{Caster: pp.filter, Copied: copied}

	if r, ok := trimSuffixWords(what, "during", "your", "turn"); ok {
		you := core.You
		sc.DuringTurn, what = &you, r
	}
	if r, ok := trimSuffixWords(what, "from", "anywhere", "other", "than", "their", "hand"); ok {
		sc.FromNotHand, what = true, r
	} else if r, ok := trimSuffixWords(what, "from", "anywhere", "other", "than", "your", "hand"); ok {
		sc.FromNotHand, what = true, r
	}
	if r, ok := trimSuffixWords(what, "each", "turn"); ok && len(r) == 3 && r[0].IsAnyWord("your", "their") {
		nth, ok := ordinals[r[1].Text]
		if !ok || !r[2].IsWord("spell") {
			return nil, unsupportedf(whole, ErrUnsupportedTrigger)
		}
		sc.Nth = nth
		return sc, nil
	}
	what = trimPunct(what)
	if len(what) == 0 {
		return nil, unsupportedf(whole, ErrUnsupportedTrigger)
	}
	if isSelfReference(what) {
		f := core.ObjectFilter{Source: true}
		sc.Filter = &f
		return sc, nil
	}
	if len(what) == 2 && what[0].IsAnyWord("a", "an") && what[1].IsWord("spell") {
		return sc, nil
	}
	f, err := lp.parseObjectFilter(what)
	if err != nil {
		return nil, err
	}
	f.Spell = true
	f.Zone = core.ZoneStack
	sc.Filter = &f
	return sc, nil
}
