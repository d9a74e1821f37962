package parser

import (
	"strings"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// ---------- power and toughness ----------

func (lp *lineParser) verbGet(vc *verbClause) ([]core.Effect, error) {
	args := vc.args
	if len(args) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}

	// Player counters: "you get {E}{E}", "each opponent gets a poison counter".
	if !vc.subj.isObject() && vc.subj.kind != subjectGroup {
		player, err := vc.subj.actor()
		if err != nil {
			return nil, err
		}
		if n, ok := countEnergy(args); ok {
			return []core.Effect{&core.PlayerCounters{Counter: "energy", Count: core.FixedValue(n), Player: player}}, nil
		}
		if count, rest, ok := parseCount(args); ok && len(rest) == 2 && rest[1].IsAnyWord("counter", "counters") {
			ct, ok := core.LookupCounterType(rest[0].Text)
			if !ok {
				return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
			}
			return []core.Effect{&core.PlayerCounters{Counter: ct, Count: count, Player: player}}, nil
		}
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}

	rest, d := splitDuration(args)
	if len(rest) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	power, toughness, ok := parsePowerToughness(rest[0].Text)
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	tail := trimPunct(rest[1:])
	if d == core.Immediate {
		// Printed order puts the duration before the "for each" count.
		if r, dd, ok := cutLeadingDuration(tail); ok && hasPrefixWords(r, "for", "each") {
			tail, d = r, dd
		}
	}

	if hasPrefixWords(tail, "for", "each") {
		filter, err := lp.parseObjectFilter(tail[2:])
		if err != nil {
			return nil, err
		}
		pf, pok := power.(*core.Fixed)
		tf, tok := toughness.(*core.Fixed)
		if !pok || !tok {
			return nil, unsupportedf(vc.whole, ErrArithmeticCompare)
		}
		if vc.subj.kind == subjectGroup {
			return []core.Effect{&core.PumpAll{
				Filter:    vc.subj.filter,
				Power:     perCount(pf.N, filter),
				Toughness: perCount(tf.N, filter),
				Duration:  d,
			}}, nil
		}
		return []core.Effect{&core.PumpForEach{
			PowerPer: pf.N, ToughnessPer: tf.N,
			Target: vc.subj.objectTarget(), CountFilter: filter, Duration: d,
		}}, nil
	}
	if len(tail) > 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	if vc.subj.kind == subjectGroup {
		return []core.Effect{&core.PumpAll{Filter: vc.subj.filter, Power: power, Toughness: toughness, Duration: d}}, nil
	}
	return []core.Effect{&core.Pump{Power: power, Toughness: toughness, Target: vc.subj.objectTarget(), Duration: d}}, nil
}

// perCount is n for each matching object; zero stays fixed.
func perCount(n int, f core.ObjectFilter) core.Value {
	if n == 0 {
		return core.FixedValue(0)
	}
	return &core.Count{Filter: f, Multiplier: n}
}

func (lp *lineParser) verbBecome(vc *verbClause) ([]core.Effect, error) {
	if vc.subj.kind == subjectLife {
		amount, rest, ok := parseCount(vc.args)
		if !ok || len(rest) > 0 {
			v, err := lp.parseValueExpr(vc.args)
			if err != nil {
				return nil, err
			}
			amount = v
		}
		return []core.Effect{&core.SetLifeTotal{Amount: amount, Player: playerAstFor(vc.subj.lifeOf)}}, nil
	}
	if !vc.subj.isObject() {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	rest, d := splitDuration(vc.args)
	if r, ok := trimPrefixWords(rest, "a"); ok {
		rest = r
	}
	if len(rest) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	power, toughness, ok := parsePowerToughness(rest[0].Text)
	if !ok || strings.HasPrefix(rest[0].Text, "+") || strings.HasPrefix(rest[0].Text, "-") {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	if tail := rest[1:]; len(tail) > 1 || len(tail) == 1 && !tail[0].IsWord("creature") {
		return nil, unsupportedf(vc.whole, "%s: type-changing become", ErrUnsupportedStatic)
	}
	return []core.Effect{&core.SetBasePowerToughness{Power: power, Toughness: toughness, Target: vc.subj.objectTarget(), Duration: d}}, nil
}

// ---------- counters ----------

func (lp *lineParser) verbRemove(vc *verbClause) ([]core.Effect, error) {
	args := vc.args
	from := indexWord(args, "from")
	if from <= 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	head, on := args[:from], args[from+1:]
	target, err := lp.parseTarget(on)
	if err != nil {
		return nil, err
	}
	if !head[len(head)-1].IsAnyWord("counter", "counters") {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	head = head[:len(head)-1]

	upTo := false
	if r, ok := trimPrefixWords(head, "up", "to"); ok {
		head, upTo = r, true
	}
	if r, ok := trimPrefixWords(head, "all"); ok {
		counter := core.AnyCounter
		if len(r) == 1 {
			ct, ok := core.LookupCounterType(r[0].Text)
			if !ok {
				return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
			}
			counter = ct
		} else if len(r) > 1 {
			return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
		}
		return []core.Effect{&core.RemoveCounters{Counter: counter, Count: &core.CountersOn{Target: target, Counter: counter}, Target: target}}, nil
	}
	counter := core.AnyCounter
	if len(head) > 1 {
		if ct, ok := core.LookupCounterType(head[len(head)-1].Text); ok {
			counter, head = ct, head[:len(head)-1]
		}
	}
	count, rest, ok := parseCount(head)
	if !ok || len(rest) > 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	return []core.Effect{&core.RemoveCounters{Counter: counter, Count: count, Target: target, UpTo: upTo}}, nil
}

var phMoveAllCounters = mustPhrase("all counters from * onto *")

func (lp *lineParser) verbMove(vc *verbClause) ([]core.Effect, error) {
	caps, ok := phMoveAllCounters.match(vc.args)
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	from, err := lp.parseTarget(caps[0])
	if err != nil {
		return nil, err
	}
	to, err := lp.parseTarget(caps[1])
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.MoveAllCounters{From: from, To: to}}, nil
}

var phDoubleCounters = mustPhrase("the number of * on *")

func (lp *lineParser) verbDouble(vc *verbClause) ([]core.Effect, error) {
	caps, ok := phDoubleCounters.match(vc.args)
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	kind, on := caps[0], caps[1]
	counter := core.AnyCounter
	switch {
	case hasPrefixWords(kind, "each", "kind", "of", "counter") && len(kind) == 4:
	case len(kind) == 2 && kind[1].IsWord("counters"):
		ct, ok := core.LookupCounterType(kind[0].Text)
		if !ok {
			return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
		}
		counter = ct
	default:
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	var filter core.ObjectFilter
	switch {
	case isGroupPhrase(on):
		f, err := lp.parseGroupFilter(on)
		if err != nil {
			return nil, err
		}
		filter = f
	case isSelfReference(on):
		filter = core.ObjectFilter{Source: true}
	default:
		t, err := lp.parseTarget(on)
		if err != nil {
			return nil, err
		}
		ot, ok := t.(*core.ObjectTarget)
		if !ok {
			return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
		}
		filter = ot.Filter
	}
	return []core.Effect{&core.DoubleCounters{Counter: counter, Filter: filter}}, nil
}

// ---------- object actions ----------

func (lp *lineParser) verbObjectAction(vc *verbClause) ([]core.Effect, error) {
	build := func(t core.TargetAst) core.Effect {
		switch vc.verb {
		case "tap":
			return &core.Tap{Target: t}
		case "untap":
			return &core.Untap{Target: t}
		case "regenerate":
			return &core.Regenerate{Target: t}
		case "transform":
			return &core.Transform{Target: t}
		case "goad":
			return &core.Goad{Target: t}
		case "explore":
			return &core.Explore{Target: t}
		}
		return &core.Connive{Target: t}
	}
	var buildAll func(core.ObjectFilter) core.Effect
	switch vc.verb {
	case "tap":
		buildAll = func(f core.ObjectFilter) core.Effect { return &core.TapAll{Filter: f} }
	case "untap":
		buildAll = func(f core.ObjectFilter) core.Effect { return &core.UntapAll{Filter: f} }
	case "regenerate":
		buildAll = func(f core.ObjectFilter) core.Effect { return &core.RegenerateAll{Filter: f} }
	}

	if len(vc.args) == 0 {
		switch {
		case vc.subj.kind == subjectGroup && buildAll != nil:
			return []core.Effect{buildAll(vc.subj.filter)}, nil
		case vc.subj.isObject():
			return []core.Effect{build(vc.subj.objectTarget())}, nil
		case vc.subj.kind == subjectNone && (vc.verb == "explore" || vc.verb == "connive" || vc.verb == "transform"):
			return []core.Effect{build(&core.SourceTarget{})}, nil
		}
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	if vc.subj.kind != subjectNone && !(vc.subj.kind == subjectPlayer && vc.subj.player.ast == core.PlayerAstYou) {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	return lp.targetsOrGroup(vc.args, build, buildAll)
}

func (lp *lineParser) verbFight(vc *verbClause) ([]core.Effect, error) {
	if !vc.subj.isObject() {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	other, err := lp.parseTarget(vc.args)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.Fight{Creature1: vc.subj.objectTarget(), Creature2: other}}, nil
}

func (lp *lineParser) verbExchange(vc *verbClause) ([]core.Effect, error) {
	rest, ok := trimPrefixWords(vc.args, "control", "of")
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	// "target artifact and target creature" names each object separately.
	if parts := splitTargets(rest); len(parts) == 2 {
		var filters []core.ObjectFilter
		for _, p := range parts {
			t, err := lp.parseTarget(p)
			if err != nil {
				return nil, err
			}
			ot, ok := t.(*core.ObjectTarget)
			if !ok {
				return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
			}
			filters = append(filters, ot.Filter)
		}
		return []core.Effect{&core.ExchangeControl{Filter: core.ObjectFilter{AnyOf: filters}, Count: 2}}, nil
	}

	t, err := lp.parseTarget(rest)
	if err != nil {
		return nil, err
	}
	if ct, ok := t.(*core.CountedTarget); ok && ct.Count.Min == 2 && ct.Count.Max == 2 && !ct.Count.Unbounded && !ct.Count.DynamicX {
		if ot, ok := ct.Target.(*core.ObjectTarget); ok {
			return []core.Effect{&core.ExchangeControl{Filter: ot.Filter, Count: 2}}, nil
		}
	}
	return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
}

func (lp *lineParser) verbKeywordAction(vc *verbClause) ([]core.Effect, error) {
	if vc.verb == "manifest" {
		if len(vc.args) == 1 && vc.args[0].IsWord("dread") {
			return []core.Effect{&core.ManifestDread{}}, nil
		}
		return nil, unsupportedf(vc.whole, ErrUnsupportedTarget)
	}
	if len(vc.args) != 1 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	n, ok := parseNumberWord(vc.args[0].Text)
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	switch vc.verb {
	case "bolster":
		return []core.Effect{&core.Bolster{Amount: n}}, nil
	case "support":
		return []core.Effect{&core.Support{Amount: n}}, nil
	case "adapt":
		return []core.Effect{&core.Adapt{Amount: n}}, nil
	}
	return []core.Effect{&core.Earthbend{Counters: n}}, nil
}

// ---------- copies and tokens ----------

func (lp *lineParser) verbCopy(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	args := vc.args
	count := core.Value(core.FixedValue(1))
	if r, ok := trimSuffixWords(args, "twice"); ok {
		args, count = r, core.FixedValue(2)
	} else if i := indexSeq(args, "for", "each"); i > 0 {
		v, err := lp.parseAmountTail(args[i:])
		if err != nil {
			return nil, err
		}
		args, count = trimPunct(args[:i]), v
	}
	t, err := lp.parseTarget(args)
	if err != nil {
		return nil, err
	}
	return []core.Effect{&core.CopySpell{Target: t, Count: count, Player: player}}, nil
}

var phTokenCopy = mustPhrase("* that's|that|which a|are copy|copies of *")

func (lp *lineParser) verbCreate(vc *verbClause) ([]core.Effect, error) {
	player, err := vc.subj.actor()
	if err != nil {
		return nil, err
	}
	args := vc.args
	if len(args) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	if indexWord(args, "copy", "copies") >= 0 {
		return lp.createTokenCopy(args, player, vc.whole)
	}

	count, rest, ok := parseCount(args)
	if !ok {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	var tokenAt = -1
	for i, t := range rest {
		if t.IsAnyWord("token", "tokens") && !t.Quoted {
			tokenAt = i
			break
		}
	}
	if tokenAt < 0 {
		return nil, unsupportedf(vc.whole, "%s: no token noun", ErrUnsupportedValue)
	}
	ct := &core.CreateToken{Count: count, Player: player}
	desc := rest[:tokenAt]
	for len(desc) > 0 && desc[0].IsAnyWord("tapped", "attacking", "and") {
		switch desc[0].Text {
		case "tapped":
			ct.Tapped = true
		case "attacking":
			ct.Attacking = true
		}
		desc = desc[1:]
	}
	if len(desc) == 0 {
		return nil, unsupportedf(vc.whole, ErrUnsupportedValue)
	}
	name := strings.Join(wordsOf(desc), " ")

	tail := trimPunct(rest[tokenAt+1:])
	if i := indexSeq(tail, "for", "each"); i >= 0 {
		each, err := lp.parseAmountTail(tail[i:])
		if err != nil {
			return nil, err
		}
		ct.Count = scaledCount(count, each)
		tail = trimPunct(tail[:i])
	}
	for _, w := range [][]string{{"that", "are", "tapped", "and", "attacking"}, {"that's", "tapped", "and", "attacking"}, {"tapped", "and", "attacking"}} {
		if r, ok := trimSuffixWords(tail, w...); ok {
			ct.Tapped, ct.Attacking, tail = true, true, trimPunct(r)
		}
	}
	for _, w := range [][]string{{"that", "are", "tapped"}, {"that's", "tapped"}, {"tapped"}} {
		if r, ok := trimSuffixWords(tail, w...); ok {
			ct.Tapped, tail = true, trimPunct(r)
		}
	}
	if r, ok := trimSuffixWords(tail, "attacking"); ok {
		ct.Attacking, tail = true, trimPunct(r)
	}

	if len(tail) > 0 {
		with, ok := trimPrefixWords(tail, "with")
		if !ok {
			return nil, unsupportedf(vc.whole, "%s: token tail", ErrUnsupportedValue)
		}
		quoted, plain := quotedRun(with)
		plain = trimPunct(plain)
		if len(plain) > 0 {
			if r, ok := trimSuffixWords(plain, "and"); ok {
				plain = r
			}
			if _, err := lp.parseKeywordList(plain); err != nil {
				return nil, err
			}
			name += " with " + strings.Join(wordsOf(plain), " ")
		}
		if len(quoted) > 0 {
			ct.GrantedText = token.Join(quoted)
			granted, err := lp.parseLine(unquote(quoted))
			if err != nil {
				return nil, err
			}
			ct.Granted = granted
		}
	}
	ct.Name = name
	return []core.Effect{ct}, nil
}

// createTokenCopy parses "a token that's a copy of target creature" and
// "two tokens that are copies of it".
func (lp *lineParser) createTokenCopy(args []token.Token, player core.PlayerAst, whole []token.Token) ([]core.Effect, error) {
	caps, ok := phTokenCopy.match(args)
	if !ok {
		return nil, unsupportedf(whole, "%s: token copy", ErrUnsupportedValue)
	}
	head, of := caps[0], caps[1]
	if i := indexWord(of, "except"); i >= 0 {
		return nil, unsupportedf(whole, "%s: token copy exception", ErrUnsupportedValue)
	}
	count, rest, ok := parseCount(head)
	if !ok {
		return nil, unsupportedf(whole, ErrUnsupportedValue)
	}
	tc := &core.CreateTokenCopy{Count: count, Player: player}
	for len(rest) > 0 && rest[0].IsAnyWord("tapped", "attacking", "and") {
		switch rest[0].Text {
		case "tapped":
			tc.Tapped = true
		case "attacking":
			tc.Attacking = true
		}
		rest = rest[1:]
	}
	if len(rest) != 1 || !rest[0].IsAnyWord("token", "tokens") {
		return nil, unsupportedf(whole, ErrUnsupportedValue)
	}
	src, err := lp.parseTarget(of)
	if err != nil {
		return nil, err
	}
	tc.Source = src
	return []core.Effect{tc}, nil
}
