package parser

import (
	"strings"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// lineClassifier is one branch of the line dispatcher. The first branch
// returning a line wins; a branch error is final.
type lineClassifier struct {
	name  string
	parse func(lp *lineParser, toks []token.Token) (core.LineAst, error)
}

var lineClassifiers []lineClassifier

func init() {
	lineClassifiers = []lineClassifier{
		{"activation_restriction", classifyRestrictionLine},
		{"as_enters_reveal", (*lineParser).parseAsEntersReveal},
		{"saga_chapter", classifySagaChapter},
		{"modal_header", classifyModalHeader},
		{"additional_cost", classifyAdditionalCost},
		{"alternative_cost", classifyAlternativeCost},
		{"keyword_activated", (*lineParser).parseKeywordActivatedLine},
		{"alternative_casting", (*lineParser).parseAlternativeCastingLine},
		{"triggered", classifyTriggered},
		{"activated", classifyActivated},
		{"statement_heuristic", classifyVerbFirst},
		{"static_library", (*lineParser).parseStaticLine},
		{"keyword_list", classifyKeywordList},
		{"statement", classifyStatement},
	}
}

// parseLine classifies and parses one line of tokens.
func (lp *lineParser) parseLine(toks []token.Token) (core.LineAst, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrEmptyClause)
	}
	lp.depth++
	defer func() { lp.depth-- }()

	for _, c := range lineClassifiers {
		ast, err := c.parse(lp, toks)
		if err != nil {
			return nil, lp.checkpoint("line:"+c.name, err)
		}
		if ast != nil {
			lp.trace("line:"+c.name, toks)
			return ast, nil
		}
	}
	return nil, lp.checkpoint("line", unsupportedf(toks, ErrUnsupportedLine))
}

// ---------- activation restrictions ----------

var (
	phTimesEachTurn = mustPhrase("no more than # times each turn")
	phTwiceEachTurn = mustPhrase("no more than twice each turn")
	phOnceEachTurn  = mustPhrase("this ability triggers only once each turn")
)

// isRestrictionLine reports whether a line only restricts the ability
// before it ("Activate only as a sorcery.").
func isRestrictionLine(toks []token.Token) bool {
	toks = trimPunct(toks)
	return hasPrefixWords(toks, "activate", "only") ||
		hasPrefixWords(toks, "activate", "this", "ability", "only") ||
		hasPrefixWords(toks, "activate", "no", "more", "than") ||
		hasPrefixWords(toks, "activate", "this", "ability", "no", "more", "than") ||
		phOnceEachTurn.matches(toks)
}

func classifyRestrictionLine(_ *lineParser, toks []token.Token) (core.LineAst, error) {
	if !isRestrictionLine(toks) {
		return nil, nil
	}
	return nil, unsupportedf(toks, "%s: activation restriction without an ability", ErrUnsupportedLine)
}

// parseActivationRestrictions parses "activate only as a sorcery", "activate
// only once each turn", "activate only during your turn and only once each
// turn", "activate only if you control an artifact" and "activate no more
// than twice each turn".
func (lp *lineParser) parseActivationRestrictions(toks []token.Token) ([]core.ActivationRestriction, error) {
	whole := trimPunct(toks)
	rest, ok := trimPrefixWords(whole, "activate")
	if !ok {
		return nil, unsupportedf(whole, ErrUnsupportedLine)
	}
	if r, ok := trimPrefixWords(rest, "this", "ability"); ok {
		rest = r
	}
	if phTwiceEachTurn.matches(rest) {
		return []core.ActivationRestriction{{Timing: core.TimesEachTurn, Times: 2}}, nil
	}
	if caps, ok := phTimesEachTurn.match(rest); ok {
		n, _ := parseNumberWord(caps[0][0].Text)
		return []core.ActivationRestriction{{Timing: core.TimesEachTurn, Times: n}}, nil
	}
	rest, ok = trimPrefixWords(rest, "only")
	if !ok {
		return nil, unsupportedf(whole, ErrUnsupportedLine)
	}

	var out []core.ActivationRestriction
	for len(rest) > 0 {
		// Conditions run to the end of the sentence.
		if r, ok := trimPrefixWords(rest, "if"); ok {
			pred, err := lp.parsePredicate(r)
			if err != nil {
				return nil, err
			}
			return append(out, core.ActivationRestriction{Timing: core.OnlyIf, Condition: pred}), nil
		}
		end := indexSeq(rest, "and", "only")
		piece, next := rest, []token.Token(nil)
		if end >= 0 {
			piece, next = rest[:end], rest[end+2:]
		}
		r, err := restrictionTiming(piece, whole)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
		rest = next
	}
	if len(out) == 0 {
		return nil, unsupportedf(whole, ErrUnsupportedLine)
	}
	return out, nil
}

var restrictionTimings = []struct {
	ph phrase
	r  core.ActivationRestriction
}{
	{mustPhrase("as a sorcery"), core.ActivationRestriction{Timing: core.SorcerySpeed}},
	{mustPhrase("any time you could cast a sorcery"), core.ActivationRestriction{Timing: core.SorcerySpeed}},
	{mustPhrase("once each turn"), core.ActivationRestriction{Timing: core.OncePerTurn}},
	{mustPhrase("twice each turn"), core.ActivationRestriction{Timing: core.TimesEachTurn, Times: 2}},
	{mustPhrase("during your turn"), core.ActivationRestriction{Timing: core.DuringYourTurn}},
	{mustPhrase("during combat"), core.ActivationRestriction{Timing: core.DuringCombat}},
	{mustPhrase("during your upkeep"), core.ActivationRestriction{Timing: core.DuringUpkeep}},
	{mustPhrase("from your graveyard"), core.ActivationRestriction{Timing: core.OnlyFromGrave}},
	{mustPhrase("while this card is in your graveyard"), core.ActivationRestriction{Timing: core.OnlyFromGrave}},
}

func restrictionTiming(toks, whole []token.Token) (core.ActivationRestriction, error) {
	toks = trimPunct(toks)
	for _, rt := range restrictionTimings {
		if rt.ph.matches(toks) {
			return rt.r, nil
		}
	}
	return core.ActivationRestriction{}, unsupportedf(whole, "%s: activation restriction", ErrUnsupportedLine)
}

// ---------- sagas and modal headers ----------

var chapterNumbers = map[string]int{"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5, "vi": 6}

// classifySagaChapter parses "I, II — <effects>"; the lexer has already
// dropped the dash.
func classifySagaChapter(lp *lineParser, toks []token.Token) (core.LineAst, error) {
	if _, ok := chapterNumbers[toks[0].Text]; !ok || toks[0].Kind != token.Word {
		return nil, nil
	}
	var chapters []int
	i := 0
	for i < len(toks) {
		if toks[i].Kind == token.Comma {
			i++
			continue
		}
		n, ok := chapterNumbers[toks[i].Text]
		if !ok || toks[i].Kind != token.Word {
			break
		}
		chapters = append(chapters, n)
		i++
	}
	body := trimPunct(toks[i:])
	if len(body) == 0 {
		return nil, unsupportedf(toks, "%s: chapter without effects", ErrUnsupportedLine)
	}
	effects, err := lp.parseEffects(body)
	if err != nil {
		return nil, err
	}
	return &core.TriggeredLine{Trigger: &core.SagaChapter{Chapters: chapters}, Effects: effects}, nil
}

func classifyModalHeader(_ *lineParser, toks []token.Token) (core.LineAst, error) {
	rest, ok := trimPrefixWords(toks, "choose")
	if !ok {
		return nil, nil
	}
	lo, hi, ok := parseModeCount(rest)
	if !ok {
		return nil, nil
	}
	return &core.ModalLine{Min: lo, Max: hi}, nil
}

// ---------- casting costs ----------

var (
	phAdditionalCost  = mustPhrase("as an additional cost to cast this spell , *")
	phAlternativeCost = mustPhrase("you may * rather than pay this spell's mana cost")
)

// classifyAdditionalCost parses "As an additional cost to cast this spell,
// sacrifice a creature or discard a card."
func classifyAdditionalCost(lp *lineParser, toks []token.Token) (core.LineAst, error) {
	caps, ok := phAdditionalCost.match(toks)
	if !ok {
		return nil, nil
	}
	body := caps[0]
	optional := false
	if r, ok := trimPrefixWords(body, "you", "may"); ok {
		body, optional = r, true
	}
	if options := splitCostOptions(body); len(options) > 1 {
		if optional {
			return nil, unsupportedf(toks, "%s: optional cost choice", ErrUnsupportedCost)
		}
		line := &core.AdditionalCostChoiceLine{}
		for _, opt := range options {
			effects, err := lp.parseCostEffects(opt)
			if err != nil {
				return nil, err
			}
			line.Options = append(line.Options, effects)
		}
		return line, nil
	}
	effects, err := lp.parseCostEffects(body)
	if err != nil {
		return nil, err
	}
	if optional {
		effects = []core.Effect{&core.May{Effects: effects}}
	}
	return &core.AdditionalCostLine{Effects: effects}, nil
}

// splitCostOptions splits "sacrifice a creature or discard a card" where the
// word after "or" starts another cost.
func splitCostOptions(toks []token.Token) [][]token.Token {
	for i := 1; i+1 < len(toks); i++ {
		if !toks[i].IsWord("or") {
			continue
		}
		if j, _ := findVerb(toks[i+1:]); j == 0 || (toks[i+1].IsWord("pay") && i+2 < len(toks)) {
			return append([][]token.Token{trimPunct(toks[:i])}, splitCostOptions(toks[i+1:])...)
		}
	}
	return [][]token.Token{toks}
}

// classifyAlternativeCost parses "You may pay {1}{W} rather than pay this
// spell's mana cost" and "You may exile a blue card from your hand rather
// than pay this spell's mana cost".
func classifyAlternativeCost(lp *lineParser, toks []token.Token) (core.LineAst, error) {
	caps, ok := phAlternativeCost.match(toks)
	if !ok {
		return nil, nil
	}
	what := trimPunct(caps[0])
	if r, ok := trimPrefixWords(what, "pay"); ok {
		if mana, rest := parseManaWords(r); len(mana) > 0 && len(trimPunct(rest)) == 0 {
			return &core.AlternativeCostLine{ManaCost: &core.ManaCost{Symbols: mana}}, nil
		}
	}
	effects, err := lp.parseCostEffects(what)
	if err != nil {
		return nil, err
	}
	return &core.AlternativeCostLine{CostEffects: effects}, nil
}

// ---------- triggered abilities ----------

// classifyTriggered parses "When/Whenever <event>, <effects>" and "At <step>,
// <effects>". The intro word may follow a short prefix only when the
// prefix is nothing at all; anything else is an unsupported trigger.
func classifyTriggered(lp *lineParser, toks []token.Token) (core.LineAst, error) {
	intro := -1
	for i := 0; i < len(toks) && i < 3; i++ {
		if toks[i].IsAnyWord("when", "whenever") || (i == 0 && toks[i].IsWord("at")) {
			intro = i
			break
		}
	}
	if intro < 0 {
		return nil, nil
	}
	if intro > 0 {
		return nil, unsupportedf(toks, "%s: words before the trigger", ErrUnsupportedTrigger)
	}
	isStep := toks[0].IsWord("at")
	if isStep && (hasPrefixWords(toks[1:], "the", "beginning", "of", "the", "next") ||
		hasPrefixWords(toks[1:], "the", "beginning", "of", "your", "next")) {
		// Delayed triggers are effects.
		return nil, nil
	}

	var lastErr error
	for c := 2; c < len(toks); c++ {
		if toks[c].Kind != token.Comma || toks[c].Quoted {
			continue
		}
		var (
			trigger core.TriggerSpec
			err     error
		)
		if isStep {
			trigger, err = parseStepTrigger(toks[1:c], toks)
		} else {
			trigger, err = lp.parseTriggerEvent(toks[1:c])
		}
		if err != nil {
			lastErr = err
			continue
		}
		return lp.triggeredBody(trigger, toks[c+1:])
	}
	if lastErr == nil {
		lastErr = unsupportedf(toks, "%s: trigger without effects", ErrUnsupportedTrigger)
	}
	return nil, lastErr
}

// triggeredBody parses the effects of a triggered ability. A leading "if"
// condition is an intervening-if clause.
func (lp *lineParser) triggeredBody(trigger core.TriggerSpec, body []token.Token) (core.LineAst, error) {
	line := &core.TriggeredLine{Trigger: trigger}
	var kept []token.Token
	for _, sentence := range splitSentences(body) {
		if phOnceEachTurn.matches(sentence) {
			line.OnceEachTurn = true
			continue
		}
		if len(kept) > 0 {
			kept = append(kept, token.Token{Kind: token.Period, Span: sentence[0].Span})
		}
		kept = append(kept, sentence...)
	}
	effects, err := lp.parseEffects(kept)
	if err != nil {
		return nil, err
	}
	if len(kept) > 0 && kept[0].IsWord("if") {
		if cond, ok := effects[0].(*core.Conditional); ok && cond.IfFalse == nil {
			line.InterveningIf = cond.Predicate
			effects = append(cond.IfTrue, effects[1:]...)
		}
	}
	line.Effects = effects
	return line, nil
}

// ---------- activated abilities ----------

// classifyActivated parses "<cost>: <effects>" lines, including loyalty
// abilities and mana abilities.
func classifyActivated(lp *lineParser, toks []token.Token) (core.LineAst, error) {
	colon := indexKind(toks, token.Colon)
	if colon <= 0 {
		return nil, nil
	}
	cost, err := lp.parseActivationCost(toks[:colon])
	if err != nil {
		return nil, err
	}

	var (
		restrictions []core.ActivationRestriction
		effectToks   []token.Token
	)
	for _, sentence := range splitSentences(toks[colon+1:]) {
		if isRestrictionLine(sentence) {
			rs, err := lp.parseActivationRestrictions(sentence)
			if err != nil {
				return nil, err
			}
			restrictions = append(restrictions, rs...)
			continue
		}
		if len(effectToks) > 0 {
			effectToks = append(effectToks, token.Token{Kind: token.Period, Span: sentence[0].Span})
		}
		effectToks = append(effectToks, sentence...)
	}
	if len(effectToks) == 0 {
		return nil, unsupportedf(toks, "%s: ability without effects", ErrUnsupportedLine)
	}
	effects, err := lp.parseEffects(effectToks)
	if err != nil {
		return nil, err
	}

	ability := core.Ability{
		Kind:         core.ActivatedAbility,
		Cost:         cost,
		Effects:      effects,
		Restrictions: restrictions,
		Label:        lp.abilityLabel(),
	}
	switch {
	case cost.Loyalty != nil || cost.LoyaltyX:
		ability.Kind = core.LoyaltyAbility
	case allManaEffects(effects):
		ability.Kind = core.ManaAbility
		if split := splitColorChoice(ability); split != nil {
			return split, nil
		}
	}
	return &core.AbilityLine{Ability: ability}, nil
}

func allManaEffects(effects []core.Effect) bool {
	for _, e := range effects {
		if !core.IsManaEffect(e) {
			return false
		}
	}
	return len(effects) > 0
}

// splitColorChoice turns "{T}: Add {R} or {G}." into one mana ability per
// color.
func splitColorChoice(a core.Ability) core.LineAst {
	if len(a.Effects) != 1 {
		return nil
	}
	anyColor, ok := a.Effects[0].(*core.AddManaAnyColor)
	if !ok || len(anyColor.AvailableColors) < 2 {
		return nil
	}
	if f, ok := anyColor.Amount.(*core.Fixed); !ok || f.N != 1 {
		return nil
	}
	line := &core.AbilitiesLine{}
	for _, c := range anyColor.AvailableColors {
		ab := a
		ab.Effects = []core.Effect{&core.AddMana{Mana: []core.ManaSymbol{{Kind: core.ManaColored, Color: c}}, Player: anyColor.Player}}
		line.Abilities = append(line.Abilities, ab)
	}
	return line
}

// abilityLabel returns the ability word the normalizer stripped before the
// cost ("Boast — {1}{R}: ..."), if any.
func (lp *lineParser) abilityLabel() string {
	if lp.norm == nil || lp.depth > 1 {
		return ""
	}
	dash := strings.IndexRune(lp.norm.Original, '—')
	if dash <= 0 || lp.norm.OriginalOffset(0) <= dash {
		return ""
	}
	return strings.TrimSpace(lp.norm.Original[:dash])
}

// ---------- statements and keyword lists ----------

func classifyVerbFirst(lp *lineParser, toks []token.Token) (core.LineAst, error) {
	if i, _ := findVerb(toks); i != 0 {
		return nil, nil
	}
	effects, err := lp.parseEffects(toks)
	if err != nil {
		return nil, err
	}
	return &core.StatementLine{Effects: effects}, nil
}

func classifyKeywordList(lp *lineParser, toks []token.Token) (core.LineAst, error) {
	if _, n, err := lp.matchKeyword(toks, toks); err == nil && n == 0 {
		return nil, nil
	}
	abilities, err := lp.parseKeywordList(toks)
	if err != nil {
		return nil, err
	}
	return &core.StaticLine{Abilities: abilities}, nil
}

func classifyStatement(lp *lineParser, toks []token.Token) (core.LineAst, error) {
	effects, err := lp.parseEffects(toks)
	if err != nil {
		return nil, err
	}
	return &core.StatementLine{Effects: effects}, nil
}
