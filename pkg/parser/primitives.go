package parser

import (
	"strings"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// sentencePrimitive is one named idiom recognizer. parse returns (nil, nil)
// when the clause is not its idiom, effects on a match, and an error when the
// idiom matched but a detail is unsupported. Amending primitives modify an
// effect in prev and return an empty, non-nil slice.
type sentencePrimitive struct {
	name  string
	parse func(lp *lineParser, toks []token.Token, prev []core.Effect) ([]core.Effect, error)
}

// The cascades are filled in init because several primitives parse nested
// effect lists, which reaches back into the cascades.
var (
	prePrimitives  []sentencePrimitive
	postPrimitives []sentencePrimitive
)

func init() {
	prePrimitives = []sentencePrimitive{
		{"vote", parseVote},
		{"distribute_counters", parseDistributeCounters},
		{"search_library", parseSearchSentence},
		{"copy_new_targets", parseCopyNewTargets},
		{"token_copy_modifier", parseTokenModifier},
		{"delayed_trigger", parseDelayedTrigger},
		{"for_each", parseForEach},
		{"prevent_damage", parsePrevent},
		{"choose", parseChoose},
		{"have_fight", parseHaveFight},
		{"monstrosity", parseMonstrosity},
	}
	postPrimitives = []sentencePrimitive{
		{"restriction", parseRestriction},
	}
}

// runPrimitives tries each primitive in order and returns the first claim.
func (lp *lineParser) runPrimitives(table []sentencePrimitive, toks []token.Token, prev []core.Effect) ([]core.Effect, bool, error) {
	for _, p := range table {
		effects, err := p.parse(lp, toks, prev)
		if err != nil {
			return nil, true, lp.checkpoint("primitive:"+p.name, err)
		}
		if effects != nil {
			lp.trace("primitive:"+p.name, toks)
			return effects, true, nil
		}
	}
	return nil, false, nil
}

// ---------- voting ----------

var (
	phVoteStart = mustPhrase("starting with you , each player votes for * or *")
	phVoteFor   = mustPhrase("for each * vote , *")
	phVoteExtra = mustPhrase("you (may) vote an additional time")
)

func parseVote(lp *lineParser, toks []token.Token, _ []core.Effect) ([]core.Effect, error) {
	if caps, ok := phVoteStart.match(toks); ok {
		a, b := voteOption(caps[0]), voteOption(caps[1])
		if a == "" || b == "" {
			return nil, unsupportedf(toks, "%s: vote options", ErrUnsupportedValue)
		}
		return []core.Effect{&core.VoteStart{Options: []string{a, b}}}, nil
	}
	if caps, ok := phVoteFor.match(toks); ok {
		effects, err := lp.parseEffects(caps[1])
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.VoteOption{Option: voteOption(caps[0]), Effects: effects}}, nil
	}
	if phVoteExtra.matches(toks) {
		return []core.Effect{&core.VoteExtra{Count: 1, Optional: toks[1].IsWord("may")}}, nil
	}
	return nil, nil
}

// voteOption strips punctuation from an option name.
func voteOption(toks []token.Token) string {
	return strings.Join(wordsOf(trimPunct(toks)), " ")
}

// ---------- distribute ----------

var phDistribute = mustPhrase("distribute ? ? counters among *")

func parseDistributeCounters(lp *lineParser, toks []token.Token, _ []core.Effect) ([]core.Effect, error) {
	if !hasPrefixWords(toks, "distribute") {
		return nil, nil
	}
	caps, ok := phDistribute.match(toks)
	if !ok {
		return nil, unsupportedf(toks, "%s: distribute", ErrUnsupportedValue)
	}
	count, rest, ok := parseCount(caps[0])
	if !ok || len(rest) > 0 {
		return nil, unsupportedf(toks, ErrUnsupportedValue)
	}
	counter, ok := core.LookupCounterType(caps[1][0].Text)
	if !ok {
		return nil, unsupportedf(toks, "%s: counter type", ErrUnsupportedValue)
	}
	target, err := lp.parseTarget(caps[2])
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.PutCounters{Counter: counter, Count: count, Target: target, Distributed: true}}, nil
}

// ---------- search your library ----------

// searchFollowUp is one step after "search ... for <cards>".
var (
	phSearchReveal  = mustPhrase("reveal it|them|that|those (card|cards)")
	phSearchHand    = mustPhrase("put it|them|that|those (card|cards) into your|their hand")
	phSearchField   = mustPhrase("put it|them|that|those (card|cards) onto the battlefield (tapped)")
	phSearchGY      = mustPhrase("put it|them|that|those (card|cards) into your|their graveyard")
	phSearchTop     = mustPhrase("put it|that (card) on top of your|their library")
	phSearchShuffle = mustPhrase("shuffle (your|their) (library)")
)

// parseSearchSentence claims "search your library for a basic land card,
// put it onto the battlefield tapped, then shuffle" and its variants.
func parseSearchSentence(lp *lineParser, toks []token.Token, _ []core.Effect) ([]core.Effect, error) {
	i, verb := findVerb(toks)
	if verb != "search" {
		return nil, nil
	}
	player, may, ok := mayPrefix(toks[:i])
	if !ok {
		return nil, nil
	}
	args := toks[i+1:]
	forAt := indexWord(args, "for")
	if forAt < 0 {
		return nil, nil
	}
	if indexWord(args[:forAt], "graveyard", "hand") >= 0 {
		return nil, unsupportedf(toks, "%s: search outside a library", ErrUnsupportedTarget)
	}
	if !hasSuffixWords(args[:forAt], "library") {
		return nil, nil
	}

	var what []token.Token
	var steps [][]token.Token
	for _, part := range splitOnKind(args[forAt+1:], token.Comma) {
		for _, piece := range splitAndVerb(part) {
			if r, ok := trimPrefixWords(piece, "then"); ok {
				piece = r
			}
			if len(steps) == 0 && !isSearchStep(piece) {
				// Commas inside the searched-for list ("a plains, island, or swamp card").
				if len(what) > 0 {
					what = append(what, token.Token{Kind: token.Comma})
				}
				what = append(what, piece...)
				continue
			}
			steps = append(steps, piece)
		}
	}
	if len(steps) == 0 {
		return nil, nil
	}
	count, filter, err := lp.parseSearchFor(what)
	if err != nil {
		return nil, err
	}
	sl := &core.SearchLibrary{Filter: filter, Player: player, Count: count}
	for _, step := range steps {
		switch {
		case phSearchReveal.matches(step):
			sl.Reveal = true
		case phSearchHand.matches(step):
			sl.Destination = core.ZoneHand
		case phSearchField.matches(step):
			sl.Destination = core.ZoneBattlefield
			sl.Tapped = hasSuffixWords(step, "tapped")
		case phSearchGY.matches(step):
			sl.Destination = core.ZoneGraveyard
		case phSearchTop.matches(step):
			sl.Destination = core.ZoneLibrary
		case phSearchShuffle.matches(step):
			sl.Shuffle = true
		default:
			return nil, unsupportedf(toks, "%s: search step", ErrUnsupportedTarget)
		}
	}
	return wrapMay([]core.Effect{sl}, player, may), nil
}

func isSearchStep(toks []token.Token) bool {
	for _, ph := range []phrase{phSearchReveal, phSearchHand, phSearchField, phSearchGY, phSearchTop, phSearchShuffle} {
		if ph.matches(toks) {
			return true
		}
	}
	return false
}

// mayPrefix reads the subject of a sentence-level idiom: nothing, a
// player, or either followed by "may".
func mayPrefix(toks []token.Token) (core.PlayerAst, bool, bool) {
	toks = trimPunct(toks)
	may := false
	if r, ok := trimSuffixWords(toks, "may"); ok {
		may, toks = true, r
	}
	if len(toks) == 0 {
		return core.PlayerAstYou, may, true
	}
	pp, ok := parsePlayerPhrase(toks)
	if !ok {
		return "", false, false
	}
	return pp.ast, may, true
}

func wrapMay(effects []core.Effect, player core.PlayerAst, may bool) []core.Effect {
	switch {
	case !may:
		return effects
	case player == core.PlayerAstYou:
		return []core.Effect{&core.May{Effects: effects}}
	}
	return []core.Effect{&core.MayByPlayer{Player: player, Effects: effects}}
}

// ---------- amendments of earlier effects ----------

var phNewTargets = mustPhrase("you may choose new targets for the|that copy|copies")

func parseCopyNewTargets(_ *lineParser, toks []token.Token, prev []core.Effect) ([]core.Effect, error) {
	if !phNewTargets.matches(toks) {
		return nil, nil
	}
	for i := len(prev) - 1; i >= 0; i-- {
		if cs, ok := prev[i].(*core.CopySpell); ok {
			cs.MayChooseNewTargets = true
			return []core.Effect{}, nil
		}
	}
	return nil, unsupportedf(toks, "%s: no copy to retarget", ErrUnsupportedTarget)
}

var (
	phTokenHaste     = mustPhrase("it|they|that|those (token|tokens|creature|creatures) gain|gains haste (until) (end) (of) (turn)")
	phTokenSacEnd    = mustPhrase("sacrifice it|them|that|those (token|tokens) at the beginning of the next end step")
	phTokenExileEnd  = mustPhrase("exile it|them|that|those (token|tokens) at the beginning of the next end step")
	phTokenExileCmbt = mustPhrase("exile it|them|that|those (token|tokens) at end of combat")
)

// parseTokenModifier attaches "it gains haste", "sacrifice it at the
// beginning of the next end step" and similar sentences to the token
// creation right before them.
func parseTokenModifier(_ *lineParser, toks []token.Token, prev []core.Effect) ([]core.Effect, error) {
	if len(prev) == 0 {
		return nil, nil
	}
	switch last := prev[len(prev)-1].(type) {
	case *core.CreateTokenCopy:
		switch {
		case phTokenHaste.matches(toks):
			last.HasHaste = true
		case phTokenSacEnd.matches(toks):
			last.SacrificeAtNextEndStep = true
		case phTokenExileEnd.matches(toks):
			last.ExileAtNextEndStep = true
		default:
			return nil, nil
		}
		return []core.Effect{}, nil
	case *core.CreateToken:
		if phTokenExileCmbt.matches(toks) {
			last.ExileAtEndOfCombat = true
			return []core.Effect{}, nil
		}
	}
	return nil, nil
}

// ---------- delayed triggers ----------

type delayedTiming struct {
	words []string
	build func(effects []core.Effect) core.Effect
}

var delayedTimings = []delayedTiming{
	{[]string{"at", "the", "beginning", "of", "the", "next", "end", "step"}, func(e []core.Effect) core.Effect {
		return &core.DelayedUntilNextEndStep{Player: core.AnyPlayer, Effects: e}
	}},
	{[]string{"at", "the", "beginning", "of", "your", "next", "end", "step"}, func(e []core.Effect) core.Effect {
		return &core.DelayedUntilNextEndStep{Player: core.You, Effects: e}
	}},
	{[]string{"at", "end", "of", "combat"}, func(e []core.Effect) core.Effect {
		return &core.DelayedUntilEndOfCombat{Effects: e}
	}},
	{[]string{"at", "the", "end", "of", "combat"}, func(e []core.Effect) core.Effect {
		return &core.DelayedUntilEndOfCombat{Effects: e}
	}},
	{[]string{"at", "the", "beginning", "of", "your", "next", "upkeep"}, func(e []core.Effect) core.Effect {
		return &core.DelayedNextUpkeep{Player: core.You, Effects: e}
	}},
	{[]string{"at", "the", "beginning", "of", "the", "next", "turn's", "upkeep"}, func(e []core.Effect) core.Effect {
		return &core.DelayedNextUpkeep{Player: core.AnyPlayer, Effects: e}
	}},
}

// parseDelayedTrigger claims "At the beginning of the next end step, return
// it" and "Sacrifice it at end of combat".
func parseDelayedTrigger(lp *lineParser, toks []token.Token, _ []core.Effect) ([]core.Effect, error) {
	for _, dt := range delayedTimings {
		var inner []token.Token
		if r, ok := trimPrefixWords(toks, dt.words...); ok {
			inner = trimPunct(r)
		} else if r, ok := trimSuffixWords(toks, dt.words...); ok {
			inner = trimPunct(r)
		} else {
			continue
		}
		if len(inner) == 0 {
			return nil, unsupportedf(toks, ErrEmptyClause)
		}
		effects, err := lp.parseEffects(inner)
		if err != nil {
			return nil, err
		}
		return []core.Effect{dt.build(effects)}, nil
	}
	if hasPrefixWords(toks, "at", "the", "beginning", "of") || hasPrefixWords(toks, "at", "end", "of") {
		return nil, unsupportedf(toks, "%s: delayed trigger timing", ErrUnsupportedTrigger)
	}
	return nil, nil
}

// ---------- iteration ----------

var phForEach = mustPhrase("for each * , *")

func parseForEach(lp *lineParser, toks []token.Token, _ []core.Effect) ([]core.Effect, error) {
	caps, ok := phForEach.match(toks)
	if !ok {
		return nil, nil
	}
	head, body := caps[0], caps[1]
	effects, err := lp.parseEffects(body)
	if err != nil {
		return nil, err
	}
	if pp, ok := parsePlayerPhrase(head); ok {
		switch pp.filter {
		case core.Opponent:
			return []core.Effect{&core.ForEachOpponent{Effects: effects}}, nil
		case core.AnyPlayer:
			return []core.Effect{&core.ForEachPlayer{Effects: effects}}, nil
		}
		return nil, unsupportedf(toks, "%s: for each player phrase", ErrUnsupportedTarget)
	}
	switch {
	case len(head) == 1 && head[0].IsWord("opponent"):
		return []core.Effect{&core.ForEachOpponent{Effects: effects}}, nil
	case len(head) == 1 && head[0].IsWord("player"):
		return []core.Effect{&core.ForEachPlayer{Effects: effects}}, nil
	}
	filter, err := lp.parseObjectFilter(head)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.ForEachObject{Filter: filter, Effects: effects}}, nil
}

// ---------- damage prevention ----------

var (
	phPreventCombat = mustPhrase("prevent all combat damage that would be dealt this turn")
	phPreventNext   = mustPhrase("prevent the next ? damage that would be dealt to * this turn")
	phPreventAllTo  = mustPhrase("prevent all damage that would be dealt to * this turn")
)

func parsePrevent(lp *lineParser, toks []token.Token, _ []core.Effect) ([]core.Effect, error) {
	if !hasPrefixWords(toks, "prevent") {
		return nil, nil
	}
	if phPreventCombat.matches(toks) {
		return []core.Effect{&core.PreventAllCombatDamage{Duration: core.ThisTurn}}, nil
	}
	if caps, ok := phPreventNext.match(toks); ok {
		amount, rest, ok := parseCount(caps[0])
		if !ok || len(rest) > 0 {
			return nil, unsupportedf(toks, ErrUnsupportedValue)
		}
		target, err := lp.parseTarget(caps[1])
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.PreventDamage{Amount: amount, Target: target, Duration: core.ThisTurn}}, nil
	}
	if caps, ok := phPreventAllTo.match(toks); ok {
		target, err := lp.parseTarget(caps[0])
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.PreventAllDamageToTarget{Target: target, Duration: core.ThisTurn}}, nil
	}
	return nil, unsupportedf(toks, "%s: prevention", ErrUnsupportedTarget)
}

// ---------- choosing ----------

// parseChoose claims "choose target creature", "choose up to two target
// creatures" and "target opponent chooses a creature they control".
func parseChoose(lp *lineParser, toks []token.Token, _ []core.Effect) ([]core.Effect, error) {
	at := indexWord(toks, "choose", "chooses")
	if at < 0 {
		return nil, nil
	}
	player := core.PlayerAstYou
	if at > 0 {
		pp, ok := parsePlayerPhrase(toks[:at])
		if !ok {
			return nil, nil
		}
		player = pp.ast
	}
	rest := trimPunct(toks[at+1:])
	if len(rest) == 0 {
		return nil, unsupportedf(toks, ErrEmptyClause)
	}
	if lo, hi, ok := parseModeCount(rest); ok && player == core.PlayerAstYou {
		return []core.Effect{&core.ChooseMode{Min: lo, Max: hi}}, nil
	}
	if indexWord(rest, "target") >= 0 {
		if player != core.PlayerAstYou {
			return nil, unsupportedf(toks, "%s: another player targets", ErrUnsupportedTarget)
		}
		t, err := lp.parseTarget(rest)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.TargetOnly{Target: t}}, nil
	}

	count := core.Exactly(1)
	if c, r, ok := parseChoiceCount(rest); ok {
		count, rest = c, r
	} else if n, ok := parseNumberWord(rest[0].Text); ok && len(rest) > 1 {
		if n > 1 {
			count = core.Exactly(n)
		}
		if n > 1 || rest[0].IsAnyWord("a", "an", "one") {
			rest = rest[1:]
		}
	}
	filter, err := lp.parseObjectFilter(rest)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.ChooseObjects{Filter: filter, Count: count, Player: player, Tag: core.ItTag}}, nil
}

// modeCounts are the headers of modal spells and abilities. A Max of -1
// means any number of modes.
var modeCounts = []struct {
	words    []string
	min, max int
}{
	{[]string{"one", "or", "more"}, 1, -1},
	{[]string{"one", "or", "both"}, 1, 2},
	{[]string{"any", "number"}, 0, -1},
	{[]string{"up", "to", "one"}, 0, 1},
	{[]string{"up", "to", "two"}, 0, 2},
	{[]string{"one"}, 1, 1},
	{[]string{"two"}, 2, 2},
	{[]string{"three"}, 3, 3},
}

// parseModeCount reads "one", "one or more", "two" and the other mode
// counts after "choose".
func parseModeCount(toks []token.Token) (int, int, bool) {
	toks = trimPunct(toks)
	for _, mc := range modeCounts {
		if len(toks) == len(mc.words) && hasPrefixWords(toks, mc.words...) {
			return mc.min, mc.max, true
		}
	}
	return 0, 0, false
}

// ---------- fights ----------

var (
	phHaveFight = mustPhrase("have * fight *")
	phFightEach = mustPhrase("* and * fight each other")
)

func parseHaveFight(lp *lineParser, toks []token.Token, _ []core.Effect) ([]core.Effect, error) {
	caps, ok := phHaveFight.match(toks)
	if !ok {
		caps, ok = phFightEach.match(toks)
	}
	if !ok {
		return nil, nil
	}
	a, err := lp.parseTarget(caps[0])
	if err != nil {
		return nil, err
	}
	b, err := lp.parseTarget(caps[1])
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.Fight{Creature1: a, Creature2: b}}, nil
}

// ---------- monstrosity ----------

var phMonstrosity = mustPhrase("monstrosity ?")

func parseMonstrosity(_ *lineParser, toks []token.Token, _ []core.Effect) ([]core.Effect, error) {
	caps, ok := phMonstrosity.match(toks)
	if !ok {
		return nil, nil
	}
	amount, rest, ok := parseCount(caps[0])
	if !ok || len(rest) > 0 {
		return nil, unsupportedf(toks, ErrUnsupportedValue)
	}
	return []core.Effect{&core.Monstrosity{Amount: amount}}, nil
}

// ---------- restrictions ----------

type restrictionForm struct {
	words []string
	kind  core.RestrictionKind
	// player restrictions take a player subject instead of an object.
	player bool
}

var restrictionForms = []restrictionForm{
	{[]string{"can't", "attack", "or", "block"}, core.CantAttackOrBlock, false},
	{[]string{"can't", "block"}, core.CantBlock, false},
	{[]string{"can't", "attack"}, core.CantAttack, false},
	{[]string{"can't", "be", "blocked"}, core.CantBeBlocked, false},
	{[]string{"can't", "be", "regenerated"}, core.CantBeRegenerated, false},
	{[]string{"can't", "transform"}, core.CantTransform, false},
	{[]string{"can't", "gain", "life"}, core.CantGainLife, true},
	{[]string{"can't", "cast", "spells"}, core.CantCastSpells, true},
	{[]string{"doesn't", "untap", "during", "its", "controller's", "next", "untap", "step"}, core.DoesntUntap, false},
	{[]string{"don't", "untap", "during", "their", "controllers'", "next", "untap", "step"}, core.DoesntUntap, false},
	{[]string{"don't", "untap", "during", "their", "controller's", "next", "untap", "step"}, core.DoesntUntap, false},
}

// parseRestriction claims "target creature can't block this turn",
// "creatures your opponents control can't block this turn", "your
// opponents can't gain life this turn" and "they can't be regenerated".
func parseRestriction(lp *lineParser, toks []token.Token, prev []core.Effect) ([]core.Effect, error) {
	at := indexWord(toks, "can't", "doesn't", "don't")
	if at <= 0 {
		return nil, nil
	}
	subj, pred := toks[:at], toks[at:]
	body, d := splitDuration(pred)
	var form *restrictionForm
	for i := range restrictionForms {
		rf := &restrictionForms[i]
		if len(body) == len(rf.words) && hasPrefixWords(body, rf.words...) {
			form = rf
			break
		}
	}
	if form == nil {
		return nil, nil
	}
	if form.kind == core.DoesntUntap {
		d = core.NextUntapStep
	} else if d == core.Immediate {
		d = core.Forever
	}

	if form.player {
		pp, ok := parsePlayerPhrase(subj)
		if !ok {
			return nil, unsupportedf(toks, ErrUnsupportedTarget)
		}
		pf := pp.filter
		return []core.Effect{&core.Cant{Restriction: form.kind, Player: &pf, Duration: d}}, nil
	}
	if form.kind == core.CantBeRegenerated && len(prev) > 0 && len(subj) == 1 && subj[0].IsAnyWord("they", "it") {
		if da, ok := prev[len(prev)-1].(*core.DestroyAll); ok {
			da.CantRegenerate = true
			return []core.Effect{}, nil
		}
	}
	var target core.TargetAst
	switch {
	case len(subj) == 1 && subj[0].IsWord("they"):
		target = &core.TaggedTarget{Tag: core.ItTag, Span: spanPtr(subj...)}
	case isGroupPhrase(subj):
		f, err := lp.parseGroupFilter(subj)
		if err != nil {
			return nil, err
		}
		target = &core.ObjectTarget{Filter: f}
	default:
		t, err := lp.parseTarget(subj)
		if err != nil {
			return nil, err
		}
		target = t
	}
	return []core.Effect{&core.Cant{Restriction: form.kind, Target: target, Duration: d}}, nil
}
