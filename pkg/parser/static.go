package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// staticRecognizer is one named pattern of the static-ability library. It
// follows the recognizer contract: (nil, nil) when the sentence is not its
// shape, an error when it is but a detail is unsupported.
type staticRecognizer struct {
	name  string
	parse func(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error)
}

var staticLibrary []staticRecognizer

func init() {
	staticLibrary = []staticRecognizer{
		{"enchant", parseEnchantStatic},
		{"control_enchanted", parseControlEnchanted},
		{"as_long_as", parseAsLongAs},
		{"cost_modifier", parseCostModifier},
		{"enters_tapped", parseEntersTapped},
		{"enters_with_counters", parseEntersWithCounters},
		{"activated_abilities_restricted", parseActivatedRestricted},
		{"restricted", parseRestrictedStatic},
		{"attacks_each_combat", parseAttacksEachCombat},
		{"can_block_additional", parseCanBlockAdditional},
		{"no_maximum_hand_size", parseNoMaxHandSize},
		{"look_at_top", parseLookAtTop},
		{"play_from_top", parsePlayFromTop},
		{"cast_as_though_flash", parseCastAsFlash},
		{"characteristic_pt", parseCharacteristicPT},
		{"lose_all_abilities", parseLoseAllAbilities},
		{"additional_land", parseAdditionalLand},
		{"anthem_or_grant", parseAnthemOrGrant},
	}
}

// parseStaticLine runs the library over each sentence of a line. A line
// whose first sentence is unknown is not static; once the first sentence
// matched, every later sentence must match too.
func (lp *lineParser) parseStaticLine(toks []token.Token) (core.LineAst, error) {
	var out []core.StaticAbility
	for i, sentence := range splitSentences(toks) {
		abilities, err := lp.parseStaticSentence(sentence)
		if err != nil {
			return nil, err
		}
		if abilities == nil {
			if i == 0 {
				return nil, nil
			}
			return nil, lp.checkpoint("static", unsupportedf(sentence, ErrUnsupportedStatic))
		}
		out = append(out, abilities...)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &core.StaticLine{Abilities: out}, nil
}

func (lp *lineParser) parseStaticSentence(toks []token.Token) ([]core.StaticAbility, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, nil
	}
	for _, r := range staticLibrary {
		abilities, err := r.parse(lp, toks)
		if err != nil {
			return nil, lp.checkpoint("static:"+r.name, err)
		}
		if abilities != nil {
			lp.trace("static:"+r.name, toks)
			return abilities, nil
		}
	}
	return nil, nil
}

// staticSubject resolves the objects a static ability applies to: the
// source, the attached permanent, or a group.
func (lp *lineParser) staticSubject(toks []token.Token) (core.ObjectFilter, bool, error) {
	toks = trimPunct(toks)
	switch {
	case len(toks) == 0:
		return core.ObjectFilter{}, false, nil
	case isSelfReference(toks):
		return core.ObjectFilter{Source: true}, true, nil
	}
	if tag, ok := attachmentTag(toks); ok {
		return core.ObjectFilter{}.MatchingTag(tag, core.IsTaggedObject), true, nil
	}
	if isGroupPhrase(toks) {
		f, err := lp.parseGroupFilter(toks)
		return f, err == nil, err
	}
	return core.ObjectFilter{}, false, nil
}

// attachmentTag recognizes "enchanted creature" and "equipped creature".
func attachmentTag(toks []token.Token) (core.TagKey, bool) {
	if len(toks) != 2 {
		return "", false
	}
	switch {
	case toks[0].IsWord("enchanted"):
		return core.EnchantedTag, true
	case toks[0].IsWord("equipped"):
		return core.EquippedTag, true
	}
	return "", false
}

func hasDuration(toks []token.Token) bool {
	_, d := splitDuration(toks)
	return d != core.Immediate
}

// ---------- auras ----------

func parseEnchantStatic(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	rest, ok := trimPrefixWords(toks, "enchant")
	if !ok || len(rest) == 0 {
		return nil, nil
	}
	f, err := lp.parseObjectFilter(rest)
	if err != nil {
		return nil, err
	}
	return []core.StaticAbility{&core.Enchant{Filter: f}}, nil
}

var phControlEnchanted = mustPhrase("you control enchanted creature|permanent|artifact|land|planeswalker")

func parseControlEnchanted(_ *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	if phControlEnchanted.matches(toks) {
		return []core.StaticAbility{&core.ControlEnchanted{}}, nil
	}
	return nil, nil
}

// ---------- conditions ----------

var phAsLongAsLead = mustPhrase("as long as * , *")

// parseAsLongAs claims "As long as <predicate>, <static>" and
// "<static> as long as <predicate>".
func parseAsLongAs(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	var predToks, inner []token.Token
	if caps, ok := phAsLongAsLead.match(toks); ok {
		predToks, inner = caps[0], caps[1]
	} else if i := lastIndexSeq(toks, "as", "long", "as"); i > 0 {
		if hasSuffixWords(toks[:i], "for") {
			// "for as long as you control this" is a duration.
			return nil, nil
		}
		predToks, inner = toks[i+3:], toks[:i]
	} else {
		return nil, nil
	}
	pred, err := lp.parsePredicate(predToks)
	if err != nil {
		return nil, err
	}
	abilities, err := lp.parseStaticSentence(inner)
	if err != nil {
		return nil, err
	}
	if abilities == nil {
		return nil, unsupportedf(toks, "%s: conditional ability", ErrUnsupportedStatic)
	}
	return []core.StaticAbility{&core.AsLongAs{Condition: pred, Abilities: abilities}}, nil
}

// ---------- costs ----------

// parseCostModifier claims "Creature spells you cast cost {1} less to
// cast", "Noncreature spells your opponents cast cost {1} more to cast",
// "This spell costs {2} less to cast" and "Activated abilities of
// artifacts cost {1} more to activate".
func parseCostModifier(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	c := indexWord(toks, "cost", "costs")
	if c <= 0 {
		return nil, nil
	}
	dir := indexWord(toks[c:], "less", "more")
	if dir < 0 {
		return nil, nil
	}
	dir += c
	tail := toks[dir+1:]
	if !hasPrefixWords(tail, "to", "cast") && !hasPrefixWords(tail, "to", "activate") {
		return nil, nil
	}
	if len(tail) != 2 {
		return nil, unsupportedf(toks, "%s: cost change condition", ErrUnsupportedStatic)
	}
	mana, rest := parseManaWords(toks[c+1 : dir])
	if len(mana) == 0 || len(rest) > 0 {
		return nil, unsupportedf(toks, "%s: cost change amount", ErrUnsupportedStatic)
	}
	cm := &core.CostModifier{Caster: core.AnyPlayer}
	sign := -1
	if toks[dir].IsWord("more") {
		sign = 1
	}
	for _, s := range mana {
		if s.Kind == core.ManaGeneric {
			cm.Amount += sign * s.Generic
			continue
		}
		cm.Colored = append(cm.Colored, s)
	}

	left := toks[:c]
	if r, ok := trimPrefixWords(left, "activated", "abilities", "of"); ok {
		cm.Abilities = true
		left = r
	} else if r, ok := trimSuffixWords(left, "you", "cast"); ok {
		cm.Caster, left = core.You, r
	} else if r, ok := trimSuffixWords(left, "your", "opponents", "cast"); ok {
		cm.Caster, left = core.Opponent, r
	}
	if isSelfReference(left) {
		cm.Filter = core.ObjectFilter{Source: true}
		return []core.StaticAbility{cm}, nil
	}
	f, err := lp.parseObjectFilter(left)
	if err != nil {
		return nil, err
	}
	cm.Filter = f
	return []core.StaticAbility{cm}, nil
}

// ---------- entering ----------

var (
	phEntersTapped       = mustPhrase("* enter|enters (the) (battlefield) tapped")
	phEntersWithCounters = mustPhrase("* enters (the) (battlefield) with * counter|counters on it")
)

func parseEntersTapped(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	caps, ok := phEntersTapped.match(toks)
	if !ok {
		return nil, nil
	}
	if isSelfReference(caps[0]) {
		return []core.StaticAbility{&core.EntersTapped{}}, nil
	}
	f, err := lp.parseGroupFilter(caps[0])
	if err != nil {
		return nil, err
	}
	return []core.StaticAbility{&core.EntersTapped{Filter: &f}}, nil
}

func parseEntersWithCounters(_ *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	caps, ok := phEntersWithCounters.match(toks)
	if !ok || !isSelfReference(caps[0]) {
		return nil, nil
	}
	count, rest, ok := parseCount(caps[1])
	if !ok || len(rest) != 1 {
		return nil, unsupportedf(toks, "%s: entering counters", ErrUnsupportedValue)
	}
	counter, ok := core.LookupCounterType(rest[0].Text)
	if !ok {
		return nil, unsupportedf(toks, "%s: counter type", ErrUnsupportedValue)
	}
	return []core.StaticAbility{&core.EntersWithCounters{Counter: counter, Count: count}}, nil
}

// ---------- restrictions ----------

type staticRestriction struct {
	words []string
	kind  core.RestrictionKind
}

var staticRestrictions = []staticRestriction{
	{[]string{"can't", "attack", "or", "block"}, core.CantAttackOrBlock},
	{[]string{"can't", "attack"}, core.CantAttack},
	{[]string{"can't", "block"}, core.CantBlock},
	{[]string{"can't", "be", "blocked"}, core.CantBeBlocked},
	{[]string{"can't", "be", "countered"}, core.CantBeCountered},
	{[]string{"can't", "transform"}, core.CantTransform},
	{[]string{"can't", "gain", "life"}, core.CantGainLife},
	{[]string{"can't", "cast", "spells"}, core.CantCastSpells},
	{[]string{"doesn't", "untap", "during", "its", "controller's", "untap", "step"}, core.DoesntUntap},
	{[]string{"don't", "untap", "during", "their", "controllers'", "untap", "steps"}, core.DoesntUntap},
	{[]string{"don't", "untap", "during", "their", "controller's", "untap", "step"}, core.DoesntUntap},
}

var phActivatedRestricted = mustPhrase("activated abilities of * can't be activated")

func parseActivatedRestricted(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	caps, ok := phActivatedRestricted.match(toks)
	if !ok {
		return nil, nil
	}
	f, ok, err := lp.staticSubject(caps[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		if f, err = lp.parseObjectFilter(caps[0]); err != nil {
			return nil, err
		}
	}
	return []core.StaticAbility{&core.Restricted{Restriction: core.CantActivate, Filter: &f}}, nil
}

// parseRestrictedStatic claims standing restrictions: "This creature can't
// block", "Creatures your opponents control don't untap during their
// controllers' untap steps", "Your opponents can't gain life", "This spell
// can't be countered", "This creature can't be blocked except by
// creatures with flying".
func parseRestrictedStatic(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	at := indexWord(toks, "can't", "doesn't", "don't")
	if at <= 0 || hasDuration(toks) {
		return nil, nil
	}
	subj, body := toks[:at], toks[at:]

	var except *core.ObjectFilter
	if i := indexSeq(body, "except", "by"); i > 0 {
		f, err := lp.parseObjectFilter(body[i+2:])
		if err != nil {
			return nil, err
		}
		except, body = &f, body[:i]
	}
	var kind core.RestrictionKind
	for _, sr := range staticRestrictions {
		if len(body) == len(sr.words) && hasPrefixWords(body, sr.words...) {
			kind = sr.kind
			break
		}
	}

	if pp, ok := parsePlayerPhrase(subj); ok {
		if kind != core.CantGainLife && kind != core.CantCastSpells {
			return nil, unsupportedf(toks, ErrUnsupportedStatic)
		}
		pf := pp.filter
		return []core.StaticAbility{&core.Restricted{Restriction: kind, Player: &pf}}, nil
	}
	f, ok, err := lp.staticSubject(subj)
	if err != nil || !ok {
		return nil, err
	}
	if kind == "" || kind == core.CantGainLife || kind == core.CantCastSpells {
		return nil, unsupportedf(toks, ErrUnsupportedStatic)
	}
	if except != nil && kind != core.CantBeBlocked {
		return nil, unsupportedf(toks, ErrUnsupportedStatic)
	}
	r := &core.Restricted{Restriction: kind, Except: except}
	if !f.Source {
		r.Filter = &f
	}
	return []core.StaticAbility{r}, nil
}

var (
	phAttacksEachCombat = mustPhrase("* attack|attacks each combat if able")
	phBlockAdditional   = mustPhrase("* can block an additional # creature|creatures each combat")
	phBlockOneMore      = mustPhrase("* can block an additional creature each combat")
)

func parseAttacksEachCombat(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	caps, ok := phAttacksEachCombat.match(toks)
	if !ok {
		return nil, nil
	}
	f, ok, err := lp.staticSubject(caps[0])
	if err != nil || !ok {
		return nil, err
	}
	ab := &core.AttacksEachCombat{}
	if !f.Source {
		ab.Filter = &f
	}
	return []core.StaticAbility{ab}, nil
}

func parseCanBlockAdditional(_ *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	if caps, ok := phBlockOneMore.match(toks); ok && isSelfReference(caps[0]) {
		return []core.StaticAbility{&core.CanBlockAdditional{Count: 1}}, nil
	}
	caps, ok := phBlockAdditional.match(toks)
	if !ok || !isSelfReference(caps[0]) {
		return nil, nil
	}
	n, _ := parseNumberWord(caps[1][0].Text)
	return []core.StaticAbility{&core.CanBlockAdditional{Count: n}}, nil
}

// ---------- player permissions ----------

var (
	phNoMaxHandSize   = mustPhrase("you have no maximum hand size")
	phLookAtTop       = mustPhrase("you may look at the top card of your library (any) (time)")
	phPlayLandsTop    = mustPhrase("you may play lands from the top of your library")
	phPlayAllTop      = mustPhrase("you may play lands and cast spells from the top of your library")
	phCastFromTop     = mustPhrase("you may cast * from the top of your library")
	phCastAsFlash     = mustPhrase("you may cast * as though it|they had flash")
	phAdditionalLand  = mustPhrase("you may play an additional land on each of your turns")
	phAdditionalLands = mustPhrase("you may play # additional lands on each of your turns")
)

func parseNoMaxHandSize(_ *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	if phNoMaxHandSize.matches(toks) {
		return []core.StaticAbility{&core.NoMaximumHandSize{}}, nil
	}
	return nil, nil
}

func parseLookAtTop(_ *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	if phLookAtTop.matches(toks) {
		return []core.StaticAbility{&core.LookAtTopOfLibrary{}}, nil
	}
	return nil, nil
}

func parsePlayFromTop(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	switch {
	case phPlayAllTop.matches(toks):
		return []core.StaticAbility{&core.PlayFromTopOfLibrary{}}, nil
	case phPlayLandsTop.matches(toks):
		return []core.StaticAbility{&core.PlayFromTopOfLibrary{Filter: core.ObjectFilter{CardTypes: []core.CardType{core.Land}}}}, nil
	}
	caps, ok := phCastFromTop.match(toks)
	if !ok {
		return nil, nil
	}
	f, err := lp.parseObjectFilter(caps[0])
	if err != nil {
		return nil, err
	}
	f.Zone = core.ZoneLibrary
	return []core.StaticAbility{&core.PlayFromTopOfLibrary{Filter: f}}, nil
}

func parseCastAsFlash(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	caps, ok := phCastAsFlash.match(toks)
	if !ok {
		return nil, nil
	}
	f, err := lp.parseObjectFilter(caps[0])
	if err != nil {
		return nil, err
	}
	return []core.StaticAbility{&core.CastAsThoughFlash{Filter: f}}, nil
}

func parseAdditionalLand(_ *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	if phAdditionalLand.matches(toks) {
		return []core.StaticAbility{&core.AdditionalLandPlay{Count: 1}}, nil
	}
	if caps, ok := phAdditionalLands.match(toks); ok {
		n, _ := parseNumberWord(caps[0][0].Text)
		return []core.StaticAbility{&core.AdditionalLandPlay{Count: n}}, nil
	}
	return nil, nil
}

// ---------- characteristics ----------

var (
	phPTEqual    = mustPhrase("* power and toughness are each equal to *")
	phPowerEqual = mustPhrase("* power is equal to *")
)

// parseCharacteristicPT claims "This creature's power and toughness are
// each equal to the number of cards in your hand".
func parseCharacteristicPT(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	caps, ok := phPTEqual.match(toks)
	each := ok
	if !ok {
		caps, ok = phPowerEqual.match(toks)
	}
	if !ok || !isSelfPossessive(caps[0]) {
		return nil, nil
	}
	v, err := lp.parseValueExpr(caps[1])
	if err != nil {
		return nil, err
	}
	pt := &core.CharacteristicPT{Power: v}
	if each {
		pt.Toughness = v
	}
	return []core.StaticAbility{pt}, nil
}

// isSelfPossessive recognizes "this's" and "this creature's".
func isSelfPossessive(toks []token.Token) bool {
	switch len(toks) {
	case 1:
		return toks[0].IsWord("this's")
	case 2:
		return toks[0].IsWord("this") && toks[1].IsAnyWord("creature's", "card's", "permanent's")
	}
	return false
}

var phLoseAllAbilities = mustPhrase("* lose|loses all abilities")

func parseLoseAllAbilities(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	caps, ok := phLoseAllAbilities.match(toks)
	if !ok {
		return nil, nil
	}
	f, ok, err := lp.staticSubject(caps[0])
	if err != nil || !ok {
		return nil, err
	}
	return []core.StaticAbility{&core.LoseAllAbilitiesStatic{Filter: f}}, nil
}

// ---------- anthems and grants ----------

// parseAnthemOrGrant claims "Creatures you control get +1/+1", "Other
// Elves you control get +1/+1 and have forestwalk", "Equipped creature
// gets +2/+0 and has first strike", "Enchanted land has \"{T}: Add {G}.\"",
// "This creature gets +1/+1 for each artifact you control" and "This
// creature has flying".
func parseAnthemOrGrant(lp *lineParser, toks []token.Token) ([]core.StaticAbility, error) {
	v := indexWord(toks, "get", "gets", "have", "has")
	if v <= 0 || toks[v].Quoted || hasDuration(toks) {
		return nil, nil
	}
	subj := toks[:v]
	filter, ok, err := lp.staticSubject(subj)
	if err != nil || !ok {
		return nil, err
	}

	var (
		pt       bool
		power    int
		tough    int
		perCount *core.ObjectFilter
		granted  []core.StaticAbility
		lines    []core.LineAst
	)
	for _, piece := range splitGrantPieces(toks[v:]) {
		verb, args := piece[0], trimPunct(piece[1:])
		if verb.IsAnyWord("get", "gets") {
			if pt || len(args) == 0 {
				return nil, unsupportedf(toks, ErrUnsupportedStatic)
			}
			p, t, ok := parsePowerToughness(args[0].Text)
			if !ok {
				return nil, unsupportedf(toks, "%s: power/toughness change", ErrUnsupportedValue)
			}
			pf, ok1 := p.(*core.Fixed)
			tf, ok2 := t.(*core.Fixed)
			if !ok1 || !ok2 {
				return nil, unsupportedf(toks, "%s: variable power/toughness change", ErrUnsupportedValue)
			}
			pt, power, tough = true, pf.N, tf.N
			if rest := args[1:]; len(rest) > 0 {
				each, ok := trimPrefixWords(rest, "for", "each")
				if !ok {
					return nil, unsupportedf(toks, ErrUnsupportedStatic)
				}
				cf, err := lp.parseObjectFilter(each)
				if err != nil {
					return nil, err
				}
				perCount = &cf
			}
			continue
		}
		if q, rest := quotedRun(args); len(q) > 0 {
			if len(rest) > 0 {
				return nil, unsupportedf(toks, "%s: granted text", ErrUnsupportedStatic)
			}
			line, err := lp.parseLine(unquote(q))
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
			continue
		}
		abilities, err := lp.parseKeywordList(args)
		if err != nil {
			return nil, err
		}
		granted = append(granted, abilities...)
	}

	if tag, ok := attachmentTag(subj); ok && len(lines) == 0 {
		return []core.StaticAbility{&core.AttachedBoost{Attachment: tag, Power: power, Toughness: tough, Abilities: granted}}, nil
	}

	var out []core.StaticAbility
	switch {
	case perCount != nil:
		out = append(out, &core.AnthemForEach{Filter: filter, PowerPer: power, ToughnessPer: tough, CountFilter: *perCount})
	case pt:
		out = append(out, &core.Anthem{Filter: filter, Power: power, Toughness: tough})
	}
	if filter.Source && len(lines) == 0 {
		return append(out, granted...), nil
	}
	if len(granted) > 0 || len(lines) > 0 {
		out = append(out, &core.GrantAbilities{Filter: filter, Abilities: granted, Lines: lines})
	}
	return out, nil
}

// splitGrantPieces splits "get +1/+1 and have flying" into verb-led pieces.
func splitGrantPieces(toks []token.Token) [][]token.Token {
	var out [][]token.Token
	start := 0
	for i := 1; i+1 < len(toks); i++ {
		if toks[i].Quoted || !toks[i].IsWord("and") || !toks[i+1].IsAnyWord("get", "gets", "have", "has", "gain", "gains") {
			continue
		}
		out = append(out, trimPunct(toks[start:i]))
		start = i + 1
	}
	return append(out, trimPunct(toks[start:]))
}

// ---------- lands that reveal ----------

var (
	phRevealLand  = mustPhrase("as this (land) enters , you may reveal a|an * from your hand")
	phRevealElse  = mustPhrase("if you don't , this (land) enters tapped")
	phRevealElse2 = mustPhrase("if you don't , it enters tapped")
)

// parseAsEntersReveal claims "As this land enters, you may reveal a Plains
// or Island card from your hand. If you don't, this land enters tapped."
func (lp *lineParser) parseAsEntersReveal(toks []token.Token) (core.LineAst, error) {
	sentences := splitSentences(toks)
	if len(sentences) == 0 {
		return nil, nil
	}
	caps, ok := phRevealLand.match(sentences[0])
	if !ok {
		return nil, nil
	}
	if len(sentences) != 2 || !(phRevealElse.matches(sentences[1]) || phRevealElse2.matches(sentences[1])) {
		return nil, unsupportedf(toks, "%s: reveal-or-tapped land", ErrUnsupportedStatic)
	}
	f, err := lp.parseObjectFilter(caps[0])
	if err != nil {
		return nil, err
	}
	f.Zone = core.ZoneHand
	return &core.StaticLine{Abilities: []core.StaticAbility{&core.RevealOrEnterTapped{Filter: f}}}, nil
}
