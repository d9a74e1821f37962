package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// ---------- mana ----------

var (
	phManaAnyOneColor   = mustPhrase("mana of any one color")
	phManaAnyColor      = mustPhrase("mana of any color")
	phManaCombination   = mustPhrase("mana in any combination of colors")
	phManaChosenColor   = mustPhrase("mana of the chosen color")
	phManaCommander     = mustPhrase("mana of any color in your commander's color identity")
	phManaLandCould     = mustPhrase("mana of any color that a land you control could produce")
	phManaLandCouldType = mustPhrase("mana of any type that a land you control could produce")
)

func (lp *lineParser) verbAdd(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	args := vc.args
	if len(args) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}

	if amount, rest, ok := parseCount(args); ok && hasPrefixWords(rest, "mana") {
		switch {
		case phManaAnyOneColor.matches(rest), phManaAnyColor.matches(rest):
			return []core.Effect{&core.AddManaAnyOneColor{Amount: amount, Player: player}}, nil
		case phManaCombination.matches(rest):
			return []core.Effect{&core.AddManaAnyColor{Amount: amount, Player: player}}, nil
		case phManaChosenColor.matches(rest):
			return []core.Effect{&core.AddManaChosenColor{Amount: amount, Player: player}}, nil
		case phManaCommander.matches(rest):
			return []core.Effect{&core.AddManaCommanderIdentity{Amount: amount, Player: player}}, nil
		case phManaLandCould.matches(rest), phManaLandCouldType.matches(rest):
			land := core.Permanent().WithType(core.Land).YouControl()
			anyType := rest[3].IsWord("type")
			return []core.Effect{&core.AddManaLandCouldProduce{
				Amount: amount, Player: player, LandFilter: land,
				AllowColorless: anyType, SameType: anyType,
			}}, nil
		}
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}

	if rest, ok := trimPrefixWords(args, "an", "amount", "of"); ok {
		mana, tail := parseManaWords(rest)
		if len(mana) == 0 {
			return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
		}
		v, err := lp.parseAmountTail(trimPunct(tail))
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.AddManaScaled{Mana: mana, Amount: v, Player: player}}, nil
	}

	mana, rest := parseManaWords(args)
	if len(mana) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	rest = trimPunct(rest)
	switch {
	case len(rest) == 0:
		return []core.Effect{&core.AddMana{Mana: mana, Player: player}}, nil
	case hasPrefixWords(rest, "for", "each"):
		v, err := lp.parseAmountTail(rest)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.AddManaScaled{Mana: mana, Amount: v, Player: player}}, nil
	}

	// "{R} or {G}", "{W}, {U}, or {B}"
	colors, ok := manaChoiceColors(args)
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	return []core.Effect{&core.AddManaAnyColor{Amount: core.FixedValue(1), Player: player, AvailableColors: colors}}, nil
}

// manaChoiceColors parses a disjunction of single colored symbols.
func manaChoiceColors(toks []token.Token) ([]core.Color, bool) {
	parts := splitList(toks, "or")
	if len(parts) < 2 {
		return nil, false
	}
	var colors []core.Color
	for _, p := range parts {
		if len(p) != 1 {
			return nil, false
		}
		ms, ok := manaSymbolWord(p[0])
		if !ok || ms.Kind != core.ManaColored {
			return nil, false
		}
		colors = append(colors, ms.Color)
	}
	return colors, true
}

// ---------- damage ----------

func (lp *lineParser) verbDeal(vc *verbClause) ([]core.Effect, error) {
	var source core.TargetAst
	switch {
	case vc.subj.isObject():
		source = vc.subj.objectTarget()
	case vc.subj.kind == subjectGroup:
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	args := vc.args
	if indexWord(args, "divided") >= 0 {
		return nil, unsupportedf(vc.whole, "%s: divided damage", ErrUnsupportedValue)
	}

	var (
		amount core.Value
		to     []token.Token
	)
	switch {
	case hasPrefixWords(args, "damage", "equal", "to"):
		// "damage equal to <value> to <target>": the value may itself
		// contain "to", so try each split from the left.
		for i := 4; i < len(args); i++ {
			if !args[i].IsWord("to") {
				continue
			}
			v, err := lp.parseValueExpr(args[3:i])
			if err != nil {
				continue
			}
			amount, to = v, args[i+1:]
			break
		}
		if amount == nil {
			return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
		}
	case hasPrefixWords(args, "damage", "to"):
		to = args[2:]
		i := indexSeq(to, "equal", "to")
		if i < 0 {
			return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
		}
		v, err := lp.parseValueExpr(to[i+2:])
		if err != nil {
			return nil, err
		}
		amount, to = v, trimPunct(to[:i])
	default:
		v, rest, ok := parseCount(args)
		if !ok || !hasPrefixWords(rest, "damage") {
			return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
		}
		amount = v
		rest = rest[1:]
		r, ok := trimPrefixWords(rest, "to")
		if !ok {
			return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
		}
		to = r
		if i := indexSeq(to, "for", "each"); i > 0 {
			each, err := lp.parseAmountTail(to[i:])
			if err != nil {
				return nil, err
			}
			amount, to = scaledCount(amount, each), trimPunct(to[:i])
		}
	}
	to = trimPunct(to)
	if len(to) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}

	if to[0].IsWord("each") {
		return lp.dealDamageEach(source, amount, to, vc.whole)
	}

	if pv, ok := amount.(*core.PowerOf); ok && vc.subj.kind == subjectObject {
		if tt, ok := pv.Target.(*core.TaggedTarget); ok && tt.Tag == core.ItTag {
			t, err := lp.parseTarget(to)
			if err != nil {
				return nil, err
			}
			return []core.Effect{&core.DealDamageEqualToPower{Source: source, Target: t}}, nil
		}
	}

	var out []core.Effect
	for _, part := range splitTargets(to) {
		t, err := lp.parseTarget(part)
		if err != nil {
			return nil, err
		}
		out = append(out, &core.DealDamage{Source: source, Amount: amount, Target: t})
	}
	return out, nil
}

// dealDamageEach parses "each creature and each opponent",
// "each creature without flying", "each player".
func (lp *lineParser) dealDamageEach(source core.TargetAst, amount core.Value, to, whole []token.Token) ([]core.Effect, error) {
	e := &core.DealDamageEach{Source: source, Amount: amount}
	for _, part := range splitWords(to, "and") {
		part = trimPunct(part)
		if len(part) == 0 {
			return nil, unsupportedf(whole, ErrUnsupportedTarget)
		}
		if pp, ok := parsePlayerPhrase(part); ok {
			if e.Players != nil {
				return nil, unsupportedf(whole, ErrUnsupportedTarget)
			}
			pf := pp.filter
			e.Players = &pf
			continue
		}
		if e.Filter != nil || !part[0].IsWord("each") {
			return nil, unsupportedf(whole, ErrUnsupportedTarget)
		}
		f, err := lp.parseObjectFilter(part[1:])
		if err != nil {
			return nil, err
		}
		e.Filter = &f
	}
	return []core.Effect{e}, nil
}

// ---------- cards ----------

// parseCardCount parses "a card", "two cards", "cards equal to <value>",
// "a card for each <filter>", "that many cards".
func (lp *lineParser) parseCardCount(args, whole []token.Token) (core.Value, error) {
	args = trimPunct(args)
	if r, ok := trimPrefixWords(args, "cards", "equal", "to"); ok {
		return lp.parseValueExpr(r)
	}
	count, rest, ok := parseCount(args)
	if !ok {
		return nil, unsupportedf(whole, ErrUnsupportedValue)
	}
	if r, ok := trimPrefixWords(rest, "additional"); ok {
		rest = r
	}
	if len(rest) == 0 || !rest[0].IsAnyWord("card", "cards") {
		return nil, unsupportedf(whole, ErrUnsupportedValue)
	}
	tail := trimPunct(rest[1:])
	switch {
	case len(tail) == 0:
		return count, nil
	case hasPrefixWords(tail, "for", "each"):
		each, err := lp.parseAmountTail(tail)
		if err != nil {
			return nil, err
		}
		return scaledCount(count, each), nil
	}
	return nil, unsupportedf(whole, ErrUnsupportedValue)
}

func (lp *lineParser) verbDraw(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	count, err := lp.parseCardCount(vc.args, vc.whole)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.Draw{Count: count, Player: player}}, nil
}

func (lp *lineParser) verbDiscard(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	args := vc.args
	if len(args) == 2 && args[0].IsAnyWord("your", "their", "his", "her") && args[1].IsWord("hand") {
		return []core.Effect{&core.DiscardHand{Player: player}}, nil
	}
	random := false
	if r, ok := trimSuffixWords(args, "at", "random"); ok {
		args, random = r, true
	}
	count, err := lp.parseCardCount(args, vc.whole)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.Discard{Count: count, Player: player, Random: random}}, nil
}

func (lp *lineParser) verbLibraryCount(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	var count core.Value
	if vc.verb == "mill" {
		count, err = lp.parseCardCount(vc.args, vc.whole)
		if err != nil {
			return nil, err
		}
	} else {
		v, rest, ok := parseCount(vc.args)
		if !ok || len(rest) > 0 {
			return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
		}
		count = v
	}
	switch vc.verb {
	case "scry":
		return []core.Effect{&core.Scry{Count: count, Player: player}}, nil
	case "surveil":
		return []core.Effect{&core.Surveil{Count: count, Player: player}}, nil
	}
	return []core.Effect{&core.Mill{Count: count, Player: player}}, nil
}

var (
	phRevealHand  = mustPhrase("your|their|his|her hand")
	phRevealTop   = mustPhrase("the top card of your|their library")
	phLookAtTopOf = mustPhrase("at the top * of your|their library")
	phLookAtHand  = mustPhrase("at * hand")
)

func (lp *lineParser) verbReveal(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	switch {
	case phRevealHand.matches(vc.args):
		return []core.Effect{&core.RevealHand{Player: player}}, nil
	case phRevealTop.matches(vc.args):
		return []core.Effect{&core.RevealTop{Player: player}}, nil
	}
	return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
}

func (lp *lineParser) verbLook(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	if caps, ok := phLookAtTopOf.match(vc.args); ok {
		what := caps[0]
		var count core.Value
		switch {
		case len(what) == 1 && what[0].IsWord("card"):
			count = core.FixedValue(1)
		default:
			v, rest, ok := parseCount(what)
			if !ok || len(rest) != 1 || !rest[0].IsAnyWord("card", "cards") {
				return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
			}
			count = v
		}
		return []core.Effect{&core.LookAtTopCards{Player: player, Count: count, Tag: core.ItTag}}, nil
	}
	if caps, ok := phLookAtHand.match(vc.args); ok {
		owner := caps[0]
		pf, n, ok := possessivePlayer(owner)
		if !ok || n != len(owner) {
			return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
		}
		var ts *token.TextSpan
		if owner[0].IsWord("target") {
			ts = spanPtr(owner[0])
		}
		return []core.Effect{&core.LookAtHand{Target: &core.PlayerTarget{Filter: pf, TargetSpan: ts}}}, nil
	}
	return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
}

// ---------- life ----------

// parseLifeAmount parses "3 life", "x life", "life equal to <value>", "1
// life for each <filter>", "that much life".
func (lp *lineParser) parseLifeAmount(args, whole []token.Token) (core.Value, error) {
	args = trimPunct(args)
	if r, ok := trimPrefixWords(args, "life", "equal", "to"); ok {
		return lp.parseValueExpr(r)
	}
	if hasPrefixWords(args, "half") {
		return nil, unsupportedf(whole, ErrArithmeticCompare)
	}
	count, rest, ok := parseCount(args)
	if !ok || !hasPrefixWords(rest, "life") {
		return nil, unsupportedf(whole, ErrUnsupportedValue)
	}
	tail := trimPunct(rest[1:])
	switch {
	case len(tail) == 0:
		return count, nil
	case hasPrefixWords(tail, "for", "each"):
		each, err := lp.parseAmountTail(tail)
		if err != nil {
			return nil, err
		}
		return scaledCount(count, each), nil
	}
	return nil, unsupportedf(whole, ErrUnsupportedValue)
}

func (lp *lineParser) verbGain(vc *verbClause) ([]core.Effect, error) {
	args := vc.args
	switch {
	case hasPrefixWords(args, "control", "of"):
		rest, d := splitDuration(args[2:])
		if d == core.Immediate {
			d = core.Forever
		}
		t, err := lp.parseTarget(rest)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.GainControl{Target: t, Duration: d}}, nil
	case vc.subj.kind == subjectGroup:
		rest, d := splitDuration(args)
		abilities, err := lp.parseGrantedAbilities(rest, vc.whole)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.GrantAbilitiesAll{Filter: vc.subj.filter, Abilities: abilities, Duration: d}}, nil
	case vc.subj.isObject():
		rest, d := splitDuration(args)
		target := vc.subj.objectTarget()
		if hasPrefixWords(rest, "protection", "from", "the", "color", "of", "your", "choice", "or", "from", "colorless") {
			return []core.Effect{&core.GrantProtectionChoice{Target: target, AllowColorless: true, Duration: d}}, nil
		}
		if hasPrefixWords(rest, "protection", "from", "the", "color", "of", "your", "choice") {
			return []core.Effect{&core.GrantProtectionChoice{Target: target, Duration: d}}, nil
		}
		abilities, err := lp.parseGrantedAbilities(rest, vc.whole)
		if err != nil {
			return nil, err
		}
		return []core.Effect{&core.GrantAbilitiesToTarget{Target: target, Abilities: abilities, Duration: d}}, nil
	}

	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	if energy, ok := countEnergy(args); ok {
		return []core.Effect{&core.PlayerCounters{Counter: "energy", Count: core.FixedValue(energy), Player: player}}, nil
	}
	amount, err := lp.parseLifeAmount(args, vc.whole)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.GainLife{Amount: amount, Player: player}}, nil
}

// countEnergy counts a run of {E} symbols.
func countEnergy(toks []token.Token) (int, bool) {
	if len(toks) == 0 {
		return 0, false
	}
	for _, t := range toks {
		if !t.IsWord("e") {
			return 0, false
		}
	}
	return len(toks), true
}

func (lp *lineParser) verbLose(vc *verbClause) ([]core.Effect, error) {
	args := vc.args
	if vc.subj.isObject() || vc.subj.kind == subjectGroup {
		rest, d := splitDuration(args)
		if hasPrefixWords(rest, "all", "abilities") && len(rest) == 2 {
			if vc.subj.kind == subjectGroup {
				return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
			}
			return []core.Effect{&core.LoseAllAbilities{Target: vc.subj.objectTarget(), Duration: d}}, nil
		}
		return nil, unsupportedf(vc.whole, ErrUnsupportedStatic)
	}
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	if len(args) == 2 && hasPrefixWords(args, "the", "game") {
		return []core.Effect{&core.LoseGame{Player: player}}, nil
	}
	amount, err := lp.parseLifeAmount(args, vc.whole)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.LoseLife{Amount: amount, Player: player}}, nil
}

func (lp *lineParser) verbPay(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	args := vc.args
	if energy, ok := countEnergy(args); ok {
		return []core.Effect{&core.PayEnergy{Amount: core.FixedValue(energy), Player: player}}, nil
	}
	if mana, rest := parseManaWords(args); len(mana) > 0 && len(rest) == 0 {
		return []core.Effect{&core.PayMana{Cost: core.ManaCost{Symbols: mana}, Player: player}}, nil
	}
	amount, err := lp.parseLifeAmount(args, vc.whole)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.PayLife{Amount: amount, Player: player}}, nil
}

// ---------- turns and game ----------

var (
	phSkipTurn   = mustPhrase("your|their|his|her next turn")
	phSkipCombat = mustPhrase("all combat phases of your|their|his|her next turn")
	phSkipDraw   = mustPhrase("your|their|his|her next draw step")
	phSkipUntap  = mustPhrase("your|their|his|her next untap step")
	phExtraTurn  = mustPhrase("an extra turn after this one")
	phTheGame    = mustPhrase("the game")
)

func (lp *lineParser) verbSkip(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	switch {
	case phSkipTurn.matches(vc.args):
		return []core.Effect{&core.SkipTurn{Player: player}}, nil
	case phSkipCombat.matches(vc.args):
		return []core.Effect{&core.SkipCombatPhases{Player: player}}, nil
	case phSkipDraw.matches(vc.args):
		return []core.Effect{&core.SkipDrawStep{Player: player}}, nil
	case phSkipUntap.matches(vc.args):
		return []core.Effect{&core.SkipUntapStep{Player: player}}, nil
	}
	return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
}

func (lp *lineParser) verbTake(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	if !phExtraTurn.matches(vc.args) {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	return []core.Effect{&core.ExtraTurn{Player: player}}, nil
}

func (lp *lineParser) verbWin(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	if !phTheGame.matches(vc.args) {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	return []core.Effect{&core.WinGame{Player: player}}, nil
}

// repeatCount parses "", "twice" or "N times".
func repeatCount(toks []token.Token) (core.Value, bool) {
	switch {
	case len(toks) == 0:
		return core.FixedValue(1), true
	case len(toks) == 1 && toks[0].IsWord("twice"):
		return core.FixedValue(2), true
	case len(toks) == 2 && toks[1].IsWord("times"):
		v, rest, ok := parseCount(toks[:1])
		return v, ok && len(rest) == 0
	}
	return nil, false
}

func (lp *lineParser) verbInvestigate(vc *verbClause) ([]core.Effect, error) {
	count, ok := repeatCount(vc.args)
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	return []core.Effect{&core.Investigate{Count: count}}, nil
}

func (lp *lineParser) verbProliferate(vc *verbClause) ([]core.Effect, error) {
	count, ok := repeatCount(vc.args)
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	n := 1
	if f, ok := count.(*core.Fixed); ok {
		n = f.N
	} else {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	out := make([]core.Effect, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &core.Proliferate{})
	}
	return out, nil
}
