package parser

import (
	"reflect"
	"strconv"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11,
	"twelve": 12, "thirteen": 13, "fifteen": 15, "twenty": 20,
	"single": 1, "no": 0, "zero": 0,
}

// parseNumberWord parses digits or a number word.
func parseNumberWord(w string) (int, bool) {
	if w == "" {
		return 0, false
	}
	allDigits := true
	for i := 0; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		n, err := strconv.Atoi(w)
		return n, err == nil
	}
	n, ok := numberWords[w]
	return n, ok
}

// parseSignedInt parses "+2", "-1", "0" and "+x"/"-x" (x reported separately).
func parseSignedInt(w string) (n int, isX bool, ok bool) {
	if w == "" {
		return 0, false, false
	}
	sign := 1
	switch w[0] {
	case '+':
		w = w[1:]
	case '-':
		sign = -1
		w = w[1:]
	}
	if w == "x" {
		return 0, true, true
	}
	v, ok := parseNumberWord(w)
	if !ok || w == "a" || w == "an" {
		return 0, false, false
	}
	return sign * v, false, true
}

// parsePowerToughness parses "+2/+1", "-1/-1" or "2/2".
func parsePowerToughness(w string) (core.Value, core.Value, bool) {
	for i := 0; i < len(w); i++ {
		if w[i] != '/' {
			continue
		}
		p, px, ok1 := parseSignedInt(w[:i])
		t, tx, ok2 := parseSignedInt(w[i+1:])
		if !ok1 || !ok2 {
			return nil, nil, false
		}
		return signedValue(p, px, w[0] == '-'), signedValue(t, tx, len(w) > i+1 && w[i+1] == '-'), true
	}
	return nil, nil, false
}

func signedValue(n int, isX, negative bool) core.Value {
	if isX {
		if negative {
			return &core.XTimes{Factor: -1}
		}
		return &core.XValue{}
	}
	return core.FixedValue(n)
}

// parseCount parses a leading count: a number, "x", "twice x", "that many"
// or "that much". It returns the value and the remaining tokens.
func parseCount(toks []token.Token) (core.Value, []token.Token, bool) {
	if len(toks) == 0 {
		return nil, toks, false
	}
	switch {
	case hasPrefixWords(toks, "that", "many"):
		return &core.EffectResult{}, toks[2:], true
	case hasPrefixWords(toks, "that", "much"):
		return &core.EventAmount{}, toks[2:], true
	case hasPrefixWords(toks, "twice", "x"):
		return &core.XTimes{Factor: 2}, toks[2:], true
	case toks[0].IsWord("x"):
		return &core.XValue{}, toks[1:], true
	}
	if n, ok := parseNumberWord(toks[0].Text); ok && toks[0].Kind == token.Word {
		return core.FixedValue(n), toks[1:], true
	}
	return nil, toks, false
}

// parseValueExpr parses a quantity phrase such as "the number of creatures
// you control", "its power" or "your life total".
func (lp *lineParser) parseValueExpr(toks []token.Token) (core.Value, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrUnsupportedValue)
	}
	for _, w := range wordsOf(toks) {
		if w == "plus" || w == "minus" || w == "times" || w == "half" {
			return nil, unsupportedf(toks, ErrArithmeticCompare)
		}
	}
	if v, rest, ok := parseCount(toks); ok && len(rest) == 0 {
		return v, nil
	}

	switch {
	case hasPrefixWords(toks, "the", "number", "of", "cards", "in"):
		rest := toks[5:]
		switch {
		case hasPrefixWords(rest, "your", "hand"):
			return &core.CardsInHand{Player: core.You}, nil
		case hasPrefixWords(rest, "that", "player's", "hand"), hasPrefixWords(rest, "their", "hand"):
			return &core.CardsInHand{Player: core.TaggedPlayer(core.ItTag)}, nil
		case hasPrefixWords(rest, "target", "player's", "hand"):
			return &core.CardsInHand{Player: core.TargetPlayer}, nil
		}
	case hasPrefixWords(toks, "the", "number", "of", "opponents", "you", "have"):
		return &core.CountPlayers{Filter: core.Opponent}, nil
	case hasPrefixWords(toks, "the", "number", "of", "spells", "you've", "cast", "this", "turn"):
		return &core.SpellsCastThisTurn{Player: core.You}, nil
	case hasPrefixWords(toks, "your", "life", "total"):
		return &core.LifeTotal{Player: core.You}, nil
	case hasPrefixWords(toks, "that", "player's", "life", "total"), hasPrefixWords(toks, "their", "life", "total"):
		return &core.LifeTotal{Player: core.TaggedPlayer(core.ItTag)}, nil
	case hasPrefixWords(toks, "your", "devotion", "to") && len(toks) == 4:
		c, ok := core.LookupColor(toks[3].Text)
		if ok {
			return &core.Devotion{Player: core.You, Color: c}, nil
		}
	case hasPrefixWords(toks, "the", "damage", "dealt", "this", "way"), hasPrefixWords(toks, "the", "amount", "of", "damage"):
		return &core.EventAmount{}, nil
	case hasPrefixWords(toks, "the", "amount", "of", "life", "you", "gained"):
		return &core.EffectResult{}, nil
	}

	if hasPrefixWords(toks, "the", "number", "of") {
		rest := toks[3:]
		// "the number of +1/+1 counters on it"
		if on := indexWord(rest, "on"); on > 1 && rest[on-1].IsAnyWord("counter", "counters") {
			counter := core.AnyCounter
			if on == 2 {
				c, ok := core.LookupCounterType(rest[0].Text)
				if !ok {
					return nil, unsupportedf(toks, ErrUnsupportedValue)
				}
				counter = c
			} else if on != 1 {
				return nil, unsupportedf(toks, ErrUnsupportedValue)
			}
			target, err := lp.parseTarget(rest[on+1:])
			if err != nil {
				return nil, err
			}
			return &core.CountersOn{Target: target, Counter: counter}, nil
		}
		filter, err := lp.parseObjectFilter(rest)
		if err != nil {
			return nil, err
		}
		return &core.Count{Filter: filter, Multiplier: 1}, nil
	}

	if v, ok, err := lp.parseCharacteristicOf(toks); ok || err != nil {
		return v, err
	}
	return nil, unsupportedf(toks, ErrUnsupportedValue)
}

// parseCharacteristicOf parses "its power", "this creature's toughness",
// "the sacrificed creature's mana value" and similar possessives.
func (lp *lineParser) parseCharacteristicOf(toks []token.Token) (core.Value, bool, error) {
	var (
		stat  string
		owner []token.Token
	)
	switch {
	case hasSuffixWords(toks, "mana", "value"):
		stat, owner = "mana value", toks[:len(toks)-2]
	case hasSuffixWords(toks, "converted", "mana", "cost"):
		stat, owner = "mana value", toks[:len(toks)-3]
	case hasSuffixWords(toks, "power"):
		stat, owner = "power", toks[:len(toks)-1]
	case hasSuffixWords(toks, "toughness"):
		stat, owner = "toughness", toks[:len(toks)-1]
	default:
		return nil, false, nil
	}
	if len(owner) == 0 {
		return nil, false, nil
	}
	target, isSource, err := lp.parsePossessor(owner)
	if err != nil {
		return nil, true, err
	}
	switch stat {
	case "power":
		if isSource {
			return &core.SourcePower{}, true, nil
		}
		return &core.PowerOf{Target: target}, true, nil
	case "toughness":
		if isSource {
			return &core.SourceToughness{}, true, nil
		}
		return &core.ToughnessOf{Target: target}, true, nil
	}
	if isSource {
		return &core.ManaValueOf{Target: &core.SourceTarget{Span: spanPtr(owner...)}}, true, nil
	}
	return &core.ManaValueOf{Target: target}, true, nil
}

// parsePossessor resolves "its", "this creature's", "target creature's",
// "the sacrificed creature's" to a target.
func (lp *lineParser) parsePossessor(owner []token.Token) (core.TargetAst, bool, error) {
	if len(owner) == 1 && owner[0].IsAnyWord("its", "their") {
		return &core.TaggedTarget{Tag: core.ItTag, Span: spanPtr(owner...)}, false, nil
	}
	last := owner[len(owner)-1]
	base, ok := stripPossessive(last.Text)
	if !ok {
		return nil, false, unsupportedf(owner, ErrUnsupportedValue)
	}
	phrase := concat(owner[:len(owner)-1], []token.Token{synthWord(base, last.Span)})
	if hasPrefixWords(phrase, "the", "sacrificed") {
		return &core.TaggedTarget{Tag: core.SacrificedTag, Span: spanPtr(owner...)}, false, nil
	}
	if hasPrefixWords(phrase, "the", "exiled") || hasPrefixWords(phrase, "that") {
		return &core.TaggedTarget{Tag: core.ItTag, Span: spanPtr(owner...)}, false, nil
	}
	target, err := lp.parseTarget(phrase)
	if err != nil {
		return nil, false, err
	}
	_, isSource := target.(*core.SourceTarget)
	return target, isSource, nil
}

// stripPossessive turns "creature's" into "creature" and "owners'" into "owners".
func stripPossessive(w string) (string, bool) {
	switch {
	case len(w) > 2 && w[len(w)-2:] == "'s":
		return w[:len(w)-2], true
	case len(w) > 1 && w[len(w)-1] == '\'':
		return w[:len(w)-1], true
	}
	return w, false
}

// parseAmountTail parses what follows a verb's object when the amount is
// given afterwards: "equal to <value>" or "for each <filter>".
func (lp *lineParser) parseAmountTail(toks []token.Token) (core.Value, error) {
	switch {
	case hasPrefixWords(toks, "equal", "to"):
		return lp.parseValueExpr(toks[2:])
	case hasPrefixWords(toks, "for", "each"):
		filter, err := lp.parseObjectFilter(toks[2:])
		if err != nil {
			return nil, err
		}
		return &core.Count{Filter: filter, Multiplier: 1}, nil
	}
	return nil, unsupportedf(toks, ErrUnsupportedValue)
}

// scaledCount applies a leading fixed count to a "for each" tail: "two
// damage for each" counts each match twice.
func scaledCount(lead, each core.Value) core.Value {
	c, ok := each.(*core.Count)
	if !ok {
		return each
	}
	if f, ok := lead.(*core.Fixed); ok && f.N > 1 {
		c.Multiplier = f.N
	}
	return c
}

// splitWhereX splits a trailing "where x is <value>" clause.
func (lp *lineParser) splitWhereX(toks []token.Token) ([]token.Token, core.Value, error) {
	i := indexSeq(toks, "where", "x", "is")
	if i < 0 {
		return toks, nil, nil
	}
	head := trimPunct(toks[:i])
	v, err := lp.parseValueExpr(toks[i+3:])
	if err != nil {
		return nil, nil, err
	}
	return head, v, nil
}

// substituteX replaces X values with a bound value.
func substituteX(v, x core.Value) core.Value {
	if x == nil {
		return v
	}
	if _, ok := v.(*core.XValue); ok {
		return x
	}
	return v
}

var (
	valueType  = reflect.TypeOf((*core.Value)(nil)).Elem()
	effectType = reflect.TypeOf((*core.Effect)(nil)).Elem()
)

// bindX replaces every X value inside an effect tree with x ("where X is
// ..."). Nested effects are visited; filters and targets are not.
func bindX(e core.Effect, x core.Value) {
	bindXValue(reflect.ValueOf(e), x)
}

func bindXValue(v reflect.Value, x core.Value) {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if !v.IsNil() {
			bindXValue(v.Elem(), x)
		}
	case reflect.Slice:
		if v.Type().Elem() == effectType {
			for i := 0; i < v.Len(); i++ {
				bindXValue(v.Index(i), x)
			}
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			switch {
			case f.Type() == valueType && f.CanSet():
				if _, ok := f.Interface().(*core.XValue); ok {
					f.Set(reflect.ValueOf(x))
				}
			case f.Type() == effectType || (f.Kind() == reflect.Slice && f.Type().Elem() == effectType):
				bindXValue(f, x)
			}
		}
	}
}

type durationPhrase struct {
	words []string
	d     core.Duration
}

var durationPhrases = []durationPhrase{
	{[]string{"until", "end", "of", "turn"}, core.UntilEndOfTurn},
	{[]string{"until", "your", "next", "turn"}, core.UntilYourNextTurn},
	{[]string{"until", "end", "of", "combat"}, core.UntilEndOfCombat},
	{[]string{"for", "as", "long", "as", "you", "control", "this", "creature"}, core.WhileControlled},
	{[]string{"for", "as", "long", "as", "you", "control", "this"}, core.WhileControlled},
	{[]string{"during", "your", "next", "turn"}, core.DuringNextTurn},
	{[]string{"this", "turn"}, core.ThisTurn},
}

// splitDuration removes a leading or trailing duration phrase.
func splitDuration(toks []token.Token) ([]token.Token, core.Duration) {
	toks = trimPunct(toks)
	for _, dp := range durationPhrases {
		if rest, ok := trimSuffixWords(toks, dp.words...); ok {
			return trimPunct(rest), dp.d
		}
		if rest, ok := trimPrefixWords(toks, dp.words...); ok {
			return trimPunct(rest), dp.d
		}
	}
	return toks, core.Immediate
}

// cutLeadingDuration removes a duration phrase at the start of toks
// ("until end of turn for each creature you control").
func cutLeadingDuration(toks []token.Token) ([]token.Token, core.Duration, bool) {
	for _, dp := range durationPhrases {
		if rest, ok := trimPrefixWords(toks, dp.words...); ok {
			return trimPunct(rest), dp.d, true
		}
	}
	return toks, core.Immediate, false
}
