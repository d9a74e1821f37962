package parser

import (
	"reflect"
	"strings"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// headInfo records what a filter head contributed beyond filter fields.
type headInfo struct {
	types     []core.CardType
	subtypes  []core.Subtype
	card      bool
	permanent bool
	spell     bool
}

func (h headInfo) markers() int {
	return len(h.types) + len(h.subtypes)
}

// parseObjectFilter parses a noun phrase ("nonland permanent an opponent
// controls", "creature card with mana value 3 or less from your graveyard")
// into a conjunctive filter.
func (lp *lineParser) parseObjectFilter(toks []token.Token) (core.ObjectFilter, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return core.ObjectFilter{}, parseErrorf("%s (clause: '')", ErrUnsupportedFilter)
	}
	lp.trace("object_filter", toks)

	split := qualifierStart(toks)
	head, quals := toks[:split], toks[split:]
	f, h, err := lp.parseFilterHead(head, toks)
	if err != nil {
		return core.ObjectFilter{}, err
	}
	if err := lp.applyQualifiers(&f, quals, toks); err != nil {
		return core.ObjectFilter{}, err
	}
	inferZone(&f, h)
	return f, nil
}

// qualifierStart returns the index of the first post-head qualifier.
func qualifierStart(toks []token.Token) int {
	for i := 1; i < len(toks); i++ {
		if isQualifierAt(toks, i) {
			return i
		}
	}
	return len(toks)
}

func isQualifierAt(toks []token.Token, i int) bool {
	t := toks[i]
	if t.Kind != token.Word {
		return false
	}
	next := func(ws ...string) bool { return i+1 < len(toks) && toks[i+1].IsAnyWord(ws...) }
	switch t.Text {
	case "with", "without", "you", "named", "from", "that", "that's", "which", "defending",
		"opponents", "graveyards":
		return true
	case "your", "their":
		return true
	case "not":
		return next("named")
	case "in":
		return next("your", "a", "an", "any", "exile", "graveyards", "target", "that", "their", "each")
	case "on":
		return next("the")
	case "an", "each":
		return next("opponent", "opponent's", "player", "player's")
	case "target":
		return next("player", "opponent", "player's", "opponent's")
	case "its":
		return next("controller", "owner")
	case "other":
		return next("than")
	case "attacking", "blocking":
		return next("you", "this")
	}
	return false
}

// parseFilterHead parses the adjectives and nouns of a filter. A head with
// "or" is a disjunction: a union of single type/subtype markers when each
// item contributes exactly one, a color union, or AnyOf otherwise.
func (lp *lineParser) parseFilterHead(head, whole []token.Token) (core.ObjectFilter, headInfo, error) {
	head = dropDeterminers(head)
	if indexWord(head, "or", "and/or") < 0 {
		var f core.ObjectFilter
		var h headInfo
		noCommas := make([]token.Token, 0, len(head))
		for _, t := range head {
			if t.Kind == token.Word {
				noCommas = append(noCommas, t)
			}
		}
		if err := parseHeadWords(noCommas, &f, &h, whole); err != nil {
			return f, h, err
		}
		applyMarkers(&f, h, false)
		return f, h, nil
	}

	items := splitList(head, "or", "and/or")
	if len(items) < 2 {
		return core.ObjectFilter{}, headInfo{}, unsupportedf(whole, ErrUnsupportedFilter)
	}
	filters := make([]core.ObjectFilter, len(items))
	infos := make([]headInfo, len(items))
	for i, item := range items {
		if err := parseHeadWords(dropDeterminers(item), &filters[i], &infos[i], whole); err != nil {
			return core.ObjectFilter{}, headInfo{}, err
		}
	}

	// Type/subtype union: one marker per item, shared attributes in at most
	// one position or identical in every item.
	if f, h, ok := markerUnion(filters, infos); ok {
		return f, h, nil
	}
	// Color union: "white or blue creature".
	if f, h, ok := colorUnion(filters, infos); ok {
		return f, h, nil
	}

	var merged core.ObjectFilter
	var mergedInfo headInfo
	for i := range filters {
		applyMarkers(&filters[i], infos[i], false)
		inferZone(&filters[i], infos[i])
		merged.AnyOf = append(merged.AnyOf, filters[i])
		mergedInfo.card = mergedInfo.card || infos[i].card
		mergedInfo.spell = mergedInfo.spell || infos[i].spell
	}
	return merged, mergedInfo, nil
}

func markerUnion(filters []core.ObjectFilter, infos []headInfo) (core.ObjectFilter, headInfo, bool) {
	var carrier = -1
	for i, h := range infos {
		if h.markers() != 1 {
			return core.ObjectFilter{}, headInfo{}, false
		}
		if !filters[i].IsZero() || h.card || h.spell || h.permanent {
			if carrier >= 0 && !sameResidue(filters[carrier], infos[carrier], filters[i], h) {
				return core.ObjectFilter{}, headInfo{}, false
			}
			if carrier < 0 {
				carrier = i
			}
		}
	}
	var f core.ObjectFilter
	var h headInfo
	if carrier >= 0 {
		f = filters[carrier]
		h.card, h.spell, h.permanent = infos[carrier].card, infos[carrier].spell, infos[carrier].permanent
	}
	for _, info := range infos {
		h.types = append(h.types, info.types...)
		h.subtypes = append(h.subtypes, info.subtypes...)
	}
	applyMarkers(&f, h, true)
	f.TypeOrSubtypeUnion = true
	return f, h, true
}

func sameResidue(a core.ObjectFilter, ah headInfo, b core.ObjectFilter, bh headInfo) bool {
	return reflect.DeepEqual(a, b) && ah.card == bh.card && ah.spell == bh.spell && ah.permanent == bh.permanent
}

func colorUnion(filters []core.ObjectFilter, infos []headInfo) (core.ObjectFilter, headInfo, bool) {
	last := len(filters) - 1
	var colors []core.Color
	for i := 0; i < last; i++ {
		only := core.ObjectFilter{Colors: filters[i].Colors}
		if len(filters[i].Colors) != 1 || !reflect.DeepEqual(only, filters[i]) || infos[i].markers() > 0 || infos[i].card || infos[i].spell {
			return core.ObjectFilter{}, headInfo{}, false
		}
		colors = append(colors, filters[i].Colors...)
	}
	if len(filters[last].Colors) != 1 {
		return core.ObjectFilter{}, headInfo{}, false
	}
	f := filters[last]
	f.Colors = append(colors, f.Colors...)
	applyMarkers(&f, infos[last], false)
	return f, infos[last], true
}

// applyMarkers stores collected types and subtypes. Several types without a
// union are all required ("artifact creature").
func applyMarkers(f *core.ObjectFilter, h headInfo, union bool) {
	switch {
	case union || len(h.types) == 1:
		f.CardTypes = append(f.CardTypes, h.types...)
	case len(h.types) > 1:
		f.AllCardTypes = append(f.AllCardTypes, h.types...)
	}
	f.Subtypes = append(f.Subtypes, h.subtypes...)
}

func dropDeterminers(toks []token.Token) []token.Token {
	for len(toks) > 0 {
		switch {
		case toks[0].IsAnyWord("a", "an", "the", "each", "all", "any", "every"):
			toks = toks[1:]
		case hasPrefixWords(toks, "one", "or", "more"):
			toks = toks[3:]
		case toks[0].Kind != token.Word:
			toks = toks[1:]
		default:
			return toks
		}
	}
	return toks
}

// parseHeadWords applies head adjectives and nouns to the filter.
func parseHeadWords(toks []token.Token, f *core.ObjectFilter, h *headInfo, whole []token.Token) error {
	if len(toks) == 0 {
		return unsupportedf(whole, ErrUnsupportedFilter)
	}
	for _, t := range toks {
		if t.Kind != token.Word {
			continue
		}
		if !applyHeadWord(t.Text, f, h) {
			return unsupportedf(whole, "%s: unknown word %q", ErrUnsupportedFilter, t.Text)
		}
	}
	return nil
}

func applyHeadWord(w string, f *core.ObjectFilter, h *headInfo) bool {
	switch w {
	case "other", "another":
		f.Other = true
	case "tapped":
		f.Tapped = true
	case "untapped":
		f.Untapped = true
	case "attacking":
		f.Attacking = true
	case "nonattacking":
		f.Nonattacking = true
	case "blocking":
		f.Blocking = true
	case "nonblocking":
		f.Nonblocking = true
	case "token", "tokens":
		f.Token = true
	case "nontoken":
		f.Nontoken = true
	case "historic":
		f.Historic = true
	case "modified":
		f.Modified = true
	case "colorless":
		f.Colorless = true
	case "multicolored":
		f.Multicolored = true
	case "monocolored":
		f.Monocolored = true
	case "commander", "commanders":
		f.Commander = true
	case "card", "cards":
		h.card = true
	case "permanent", "permanents":
		h.permanent = true
	case "spell", "spells":
		h.spell = true
	case "outlaw", "outlaws":
		h.subtypes = append(h.subtypes, core.OutlawSubtypes...)
		f.TypeOrSubtypeUnion = true
	default:
		return applyTypeWord(w, f, h)
	}
	return true
}

func applyTypeWord(w string, f *core.ObjectFilter, h *headInfo) bool {
	if st, ok := core.LookupSupertype(w); ok {
		f.Supertypes = append(f.Supertypes, st)
		return true
	}
	if c, ok := core.LookupColor(w); ok {
		f.Colors = append(f.Colors, c)
		return true
	}
	if t, ok := core.LookupCardType(w); ok {
		h.types = append(h.types, t)
		return true
	}
	if s, ok := core.LookupSubtype(w); ok {
		h.subtypes = append(h.subtypes, s)
		return true
	}
	if rest, ok := strings.CutPrefix(w, "non"); ok {
		rest = strings.TrimPrefix(rest, "-")
		if st, ok := core.LookupSupertype(rest); ok {
			f.ExcludedSupertypes = append(f.ExcludedSupertypes, st)
			return true
		}
		if c, ok := core.LookupColor(rest); ok {
			f.ExcludedColors = append(f.ExcludedColors, c)
			return true
		}
		if t, ok := core.LookupCardType(rest); ok {
			f.ExcludedCardTypes = append(f.ExcludedCardTypes, t)
			return true
		}
		if s, ok := core.LookupSubtype(rest); ok {
			f.ExcludedSubtypes = append(f.ExcludedSubtypes, s)
			return true
		}
	}
	return false
}

// inferZone fills in the zone implied by the head nouns.
func inferZone(f *core.ObjectFilter, h headInfo) {
	if f.Zone != core.ZoneAny {
		return
	}
	switch {
	case h.spell:
		f.Zone = core.ZoneStack
		f.Spell = true
	case h.card:
	case len(f.AnyOf) > 0:
	case onlySpellTypes(f):
		f.Zone = core.ZoneStack
	default:
		f.Zone = core.ZoneBattlefield
	}
}

func onlySpellTypes(f *core.ObjectFilter) bool {
	types := append(append([]core.CardType(nil), f.CardTypes...), f.AllCardTypes...)
	if len(types) == 0 {
		return false
	}
	for _, t := range types {
		if t != core.Instant && t != core.Sorcery {
			return false
		}
	}
	return true
}

// applyQualifiers applies trailing qualifiers ("you control", "with
// flying", "from your graveyard") in order.
func (lp *lineParser) applyQualifiers(f *core.ObjectFilter, toks, whole []token.Token) error {
	for len(toks) > 0 {
		toks = trimPunct(toks)
		if len(toks) == 0 {
			break
		}
		if toks[0].IsWord("and") {
			toks = toks[1:]
			continue
		}
		rest, ok, err := lp.applyQualifier(f, toks, whole)
		if err != nil {
			return err
		}
		if !ok {
			return unsupportedf(whole, ErrUnsupportedFilter)
		}
		toks = rest
	}
	return nil
}

type controlPhrase struct {
	words []string
	owner bool
	who   core.PlayerFilter
}

var controlPhrases = []controlPhrase{
	{[]string{"you", "control"}, false, core.You},
	{[]string{"you", "don't", "control"}, false, core.NotYou},
	{[]string{"you", "do", "not", "control"}, false, core.NotYou},
	{[]string{"an", "opponent", "controls"}, false, core.Opponent},
	{[]string{"your", "opponents", "control"}, false, core.Opponent},
	{[]string{"opponents", "control"}, false, core.Opponent},
	{[]string{"each", "opponent", "controls"}, false, core.Opponent},
	{[]string{"target", "player", "controls"}, false, core.TargetPlayer},
	{[]string{"target", "opponent", "controls"}, false, core.TargetOpp},
	{[]string{"that", "player", "controls"}, false, core.TaggedPlayer(core.ItTag)},
	{[]string{"defending", "player", "controls"}, false, core.Defending},
	{[]string{"its", "controller", "controls"}, false, core.ControllerOf(core.ItTag)},
	{[]string{"you", "own"}, true, core.You},
	{[]string{"you", "don't", "own"}, true, core.NotYou},
	{[]string{"an", "opponent", "owns"}, true, core.Opponent},
	{[]string{"your", "opponents", "own"}, true, core.Opponent},
}

func (lp *lineParser) applyQualifier(f *core.ObjectFilter, toks, whole []token.Token) ([]token.Token, bool, error) {
	for _, cp := range controlPhrases {
		if rest, ok := trimPrefixWords(toks, cp.words...); ok {
			who := cp.who
			if cp.owner {
				f.Owner = &who
			} else {
				f.Controller = &who
			}
			return rest, true, nil
		}
	}
	if rest, ok := applyZoneQualifier(f, toks); ok {
		return rest, true, nil
	}

	switch {
	case hasPrefixWords(toks, "not", "named"):
		f.ExcludedName = strings.Join(wordsOf(toks[2:]), " ")
		return nil, true, nil
	case hasPrefixWords(toks, "named"):
		f.Name = strings.Join(wordsOf(toks[1:]), " ")
		return nil, true, nil
	case hasPrefixWords(toks, "other", "than", "this"):
		f.Other = true
		rest := toks[3:]
		if len(rest) > 0 && rest[0].IsAnyWord("creature", "permanent", "card", "artifact", "land", "enchantment") {
			rest = rest[1:]
		}
		return rest, true, nil
	case hasPrefixWords(toks, "that", "entered", "the", "battlefield", "this", "turn"):
		f.EnteredThisTurn = true
		return toks[6:], true, nil
	case hasPrefixWords(toks, "that", "entered", "this", "turn"):
		f.EnteredThisTurn = true
		return toks[4:], true, nil
	case hasPrefixWords(toks, "that's", "attacking"), hasPrefixWords(toks, "that", "is", "attacking"), hasPrefixWords(toks, "that", "are", "attacking"):
		f.Attacking = true
		return toks[indexWord(toks, "attacking")+1:], true, nil
	case hasPrefixWords(toks, "that's", "blocking"), hasPrefixWords(toks, "that", "is", "blocking"):
		f.Blocking = true
		return toks[indexWord(toks, "blocking")+1:], true, nil
	case hasPrefixWords(toks, "that's", "tapped"), hasPrefixWords(toks, "that", "is", "tapped"):
		f.Tapped = true
		return toks[indexWord(toks, "tapped")+1:], true, nil
	case hasPrefixWords(toks, "that", "shares", "a", "card", "type", "with", "it"):
		*f = f.MatchingTag(core.ItTag, core.SharesCardType)
		return toks[7:], true, nil
	case hasPrefixWords(toks, "that", "shares", "a", "color", "with", "it"):
		*f = f.MatchingTag(core.ItTag, core.SharesColor)
		return toks[6:], true, nil
	case hasPrefixWords(toks, "with", "the", "same", "name", "as"):
		*f = f.MatchingTag(core.ItTag, core.SameName)
		return nil, true, nil
	case hasPrefixWords(toks, "with", "the", "same", "mana", "value", "as"):
		*f = f.MatchingTag(core.ItTag, core.SameManaValue)
		return nil, true, nil
	case hasPrefixWords(toks, "with"), hasPrefixWords(toks, "without"):
		return lp.applyWithQualifier(f, toks, whole)
	}
	return toks, false, nil
}

// applyZoneQualifier handles "from your graveyard", "in exile", "on the
// battlefield" and similar zone phrases, inferring the owner from the
// possessive.
func applyZoneQualifier(f *core.ObjectFilter, toks []token.Token) ([]token.Token, bool) {
	rest := toks
	if rest2, ok := trimPrefixWords(rest, "from"); ok {
		rest = rest2
	} else if rest2, ok := trimPrefixWords(rest, "in"); ok {
		rest = rest2
	}
	if r, ok := trimPrefixWords(rest, "on", "the", "battlefield"); ok {
		f.Zone = core.ZoneBattlefield
		return r, true
	}
	if r, ok := trimPrefixWords(rest, "exile"); ok {
		f.Zone = core.ZoneExile
		return r, true
	}
	if r, ok := trimPrefixWords(rest, "graveyards"); ok {
		f.Zone = core.ZoneGraveyard
		return r, true
	}
	var owner *core.PlayerFilter
	switch {
	case hasPrefixWords(rest, "a"), hasPrefixWords(rest, "any"), hasPrefixWords(rest, "one"):
		rest = rest[1:]
	default:
		who, n, ok := possessivePlayer(rest)
		if !ok {
			return toks, false
		}
		owner = &who
		rest = rest[n:]
	}
	if len(rest) == 0 {
		return toks, false
	}
	var zone core.Zone
	switch rest[0].Text {
	case "graveyard":
		zone = core.ZoneGraveyard
	case "hand":
		zone = core.ZoneHand
	case "library":
		zone = core.ZoneLibrary
	default:
		return toks, false
	}
	if rest[0].Kind != token.Word {
		return toks, false
	}
	f.Zone = zone
	if owner != nil {
		f.Owner = owner
	}
	return rest[1:], true
}

// applyWithQualifier handles "with"/"without" qualifiers: keywords, counters
// and power/toughness/mana value comparisons.
func (lp *lineParser) applyWithQualifier(f *core.ObjectFilter, toks, whole []token.Token) ([]token.Token, bool, error) {
	without := toks[0].IsWord("without")
	body := toks[1:]
	end := len(body)
	for i := 1; i < len(body); i++ {
		if isQualifierAt(body, i) && !body[i].IsWord("with") {
			end = i
			break
		}
	}
	body, rest := body[:end], body[end:]
	if len(body) == 0 {
		return nil, false, unsupportedf(whole, ErrUnsupportedFilter)
	}

	// Counters: "with a +1/+1 counter on it", "with no counters on it".
	if hasSuffixWords(body, "on", "it") || hasSuffixWords(body, "on", "them") {
		cc, none, err := parseCounterPresence(body[:len(body)-2], whole)
		if err != nil {
			return nil, false, err
		}
		if without || none {
			f.WithoutCounter = &cc
		} else {
			f.WithCounter = &cc
		}
		return rest, true, nil
	}

	// Keywords: "with flying", "without first strike".
	words := wordsOf(body)
	if kw, n := core.MatchSimpleKeyword(words); n > 0 {
		if n != len(words) {
			return nil, false, unsupportedf(whole, "%s: keyword list", ErrUnsupportedFilter)
		}
		if without {
			f.ExcludedKeywords = append(f.ExcludedKeywords, kw)
		} else {
			f.Keywords = append(f.Keywords, kw)
		}
		return rest, true, nil
	}
	if kw, ok := core.LookupNumericKeyword(words[0]); ok && len(words) == 1 {
		if without {
			f.ExcludedKeywords = append(f.ExcludedKeywords, kw)
		} else {
			f.Keywords = append(f.Keywords, kw)
		}
		return rest, true, nil
	}
	if without {
		return nil, false, unsupportedf(whole, ErrUnsupportedFilter)
	}

	// Comparisons: "with power 2 or less", "with mana value X or less".
	var stat **core.Comparison
	var cmpToks []token.Token
	switch {
	case hasPrefixWords(body, "power", "or", "toughness"), hasPrefixWords(body, "power", "and", "toughness"),
		hasPrefixWords(body, "total", "power"), hasPrefixWords(body, "total", "mana", "value"):
		return nil, false, unsupportedf(whole, ErrArithmeticCompare)
	case hasPrefixWords(body, "power"):
		stat, cmpToks = &f.Power, body[1:]
	case hasPrefixWords(body, "toughness"):
		stat, cmpToks = &f.Toughness, body[1:]
	case hasPrefixWords(body, "mana", "value"):
		stat, cmpToks = &f.ManaValue, body[2:]
	case hasPrefixWords(body, "converted", "mana", "cost"):
		stat, cmpToks = &f.ManaValue, body[3:]
	default:
		return nil, false, unsupportedf(whole, ErrUnsupportedFilter)
	}
	cmp, err := parseComparison(cmpToks, whole)
	if err != nil {
		return nil, false, err
	}
	*stat = cmp
	return rest, true, nil
}

// parseCounterPresence parses "a +1/+1 counter", "one or more counters",
// "no counters".
func parseCounterPresence(toks, whole []token.Token) (core.CounterConstraint, bool, error) {
	none := false
	switch {
	case hasPrefixWords(toks, "no"):
		none = true
		toks = toks[1:]
	case hasPrefixWords(toks, "one", "or", "more"):
		toks = toks[3:]
	case hasPrefixWords(toks, "a"), hasPrefixWords(toks, "an"):
		toks = toks[1:]
	}
	cc := core.CounterConstraint{Counter: core.AnyCounter, AtLeast: 1}
	switch len(toks) {
	case 1:
		if !toks[0].IsAnyWord("counter", "counters") {
			return cc, false, unsupportedf(whole, ErrUnsupportedFilter)
		}
	case 2:
		c, ok := core.LookupCounterType(toks[0].Text)
		if !ok || !toks[1].IsAnyWord("counter", "counters") {
			return cc, false, unsupportedf(whole, ErrUnsupportedFilter)
		}
		cc.Counter = c
	default:
		return cc, false, unsupportedf(whole, ErrUnsupportedFilter)
	}
	return cc, none, nil
}

// parseComparison parses "2 or less", "3 or greater", "x or less", "4",
// "less than 3". Disjunctive and arithmetic operands are rejected.
func parseComparison(toks, whole []token.Token) (*core.Comparison, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, unsupportedf(whole, ErrUnsupportedFilter)
	}
	var op core.CompareOp
	switch {
	case hasPrefixWords(toks, "less", "than", "or", "equal", "to"):
		op, toks = core.OpLessOrEqual, toks[5:]
	case hasPrefixWords(toks, "greater", "than", "or", "equal", "to"):
		op, toks = core.OpGreaterOrEqual, toks[5:]
	case hasPrefixWords(toks, "less", "than"):
		op, toks = core.OpLess, toks[2:]
	case hasPrefixWords(toks, "greater", "than"):
		op, toks = core.OpGreater, toks[2:]
	case hasPrefixWords(toks, "equal", "to"):
		op, toks = core.OpEqual, toks[2:]
	case hasPrefixWords(toks, "at", "least"):
		op, toks = core.OpGreaterOrEqual, toks[2:]
	case hasPrefixWords(toks, "at", "most"):
		op, toks = core.OpLessOrEqual, toks[2:]
	}
	if len(toks) == 0 {
		return nil, unsupportedf(whole, ErrUnsupportedFilter)
	}
	cmp := &core.Comparison{}
	if toks[0].IsWord("x") {
		cmp.X = true
	} else {
		n, ok := parseNumberWord(toks[0].Text)
		if !ok || toks[0].IsAnyWord("a", "an") {
			return nil, unsupportedf(whole, ErrArithmeticCompare)
		}
		cmp.Value = n
	}
	tail := toks[1:]
	if op != "" {
		if len(tail) > 0 {
			return nil, unsupportedf(whole, ErrArithmeticCompare)
		}
		cmp.Op = op
		return cmp, nil
	}
	switch {
	case len(tail) == 0:
		cmp.Op = core.OpEqual
	case len(tail) == 2 && tail[0].IsWord("or") && tail[1].IsAnyWord("less", "fewer", "lower"):
		cmp.Op = core.OpLessOrEqual
	case len(tail) == 2 && tail[0].IsWord("or") && tail[1].IsAnyWord("greater", "more", "higher"):
		cmp.Op = core.OpGreaterOrEqual
	default:
		return nil, unsupportedf(whole, ErrArithmeticCompare)
	}
	return cmp, nil
}
