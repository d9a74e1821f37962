package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// verbForms maps every recognized verb form to its base form. The
// vocabulary is closed: a clause without one of these words has no verb.
var verbForms = map[string]string{
	"add": "add", "adds": "add",
	"deal": "deal", "deals": "deal",
	"draw": "draw", "draws": "draw",
	"destroy": "destroy", "destroys": "destroy",
	"exile": "exile", "exiles": "exile",
	"counter": "counter", "counters": "counter",
	"sacrifice": "sacrifice", "sacrifices": "sacrifice",
	"create": "create", "creates": "create",
	"put": "put", "puts": "put",
	"get": "get", "gets": "get",
	"return": "return", "returns": "return",
	"tap": "tap", "taps": "tap",
	"untap": "untap", "untaps": "untap",
	"scry": "scry", "scries": "scry",
	"discard": "discard", "discards": "discard",
	"mill": "mill", "mills": "mill",
	"reveal": "reveal", "reveals": "reveal",
	"look": "look", "looks": "look",
	"lose": "lose", "loses": "lose",
	"gain": "gain", "gains": "gain",
	"remove": "remove", "removes": "remove",
	"regenerate": "regenerate", "regenerates": "regenerate",
	"transform": "transform", "transforms": "transform",
	"become": "become", "becomes": "become",
	"skip": "skip", "skips": "skip",
	"surveil": "surveil", "surveils": "surveil",
	"pay": "pay", "pays": "pay",
	"goad": "goad", "goads": "goad",
	"proliferate": "proliferate",
	"investigate": "investigate",
	"exchange": "exchange", "exchanges": "exchange",
	"move": "move", "moves": "move",
	"fight": "fight", "fights": "fight",
	"explore": "explore", "explores": "explore",
	"connive": "connive", "connives": "connive",
	"attach": "attach", "attaches": "attach",
	"shuffle": "shuffle", "shuffles": "shuffle",
	"search": "search", "searches": "search",
	"take": "take", "takes": "take",
	"win": "win", "wins": "win",
	"copy": "copy", "copies": "copy",
	"double": "double", "doubles": "double",
	"bolster": "bolster", "support": "support", "adapt": "adapt",
	"earthbend": "earthbend", "manifest": "manifest",
}

// findVerb returns the index and base form of the first verb in toks, or -1.
func findVerb(toks []token.Token) (int, string) {
	for i, t := range toks {
		if t.Kind != token.Word || t.Quoted {
			continue
		}
		base, ok := verbForms[t.Text]
		if !ok || isNounUse(toks, i, base) {
			continue
		}
		return i, base
	}
	return -1, ""
}

// isNounUse recognizes verb words used as nouns ("a +1/+1 counter on",
// "cards in exile", "your draw step", "a copy of", "double strike").
func isNounUse(toks []token.Token, i int, base string) bool {
	next := func(ws ...string) bool { return i+1 < len(toks) && toks[i+1].IsAnyWord(ws...) }
	prev := func(ws ...string) bool { return i > 0 && toks[i-1].IsAnyWord(ws...) }
	switch base {
	case "counter":
		return next("on", "from", "among", "of") || i+1 == len(toks) && i > 0
	case "exile":
		return prev("in", "from", "into", "to")
	case "draw":
		return next("step")
	case "copy":
		return prev("a", "the") || next("of")
	case "double":
		return next("strike")
	case "support", "adapt", "manifest":
		return i > 0 && !prev("then", "and", "you", "may")
	case "tap", "untap":
		return prev("the")
	}
	return false
}

type subjectKind uint8

const (
	subjectNone subjectKind = iota
	subjectPlayer
	subjectEachPlayer
	subjectSource
	subjectObject
	subjectGroup
	subjectLife
)

// subject is what precedes the verb: nothing, a player, every player, the
// source, an object reference, a group of objects or a life total.
type subject struct {
	kind   subjectKind
	player playerPhrase
	target core.TargetAst
	// filter is set for group subjects; lifeOf for life-total subjects.
	filter core.ObjectFilter
	lifeOf core.PlayerFilter
	toks   []token.Token
}

func (lp *lineParser) parseSubject(toks []token.Token) (subject, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return subject{kind: subjectNone}, nil
	}
	if pp, ok := parsePlayerPhrase(toks); ok {
		if toks[0].IsWord("each") && (pp.filter == core.Opponent || pp.filter == core.AnyPlayer) {
			return subject{kind: subjectEachPlayer, player: pp, toks: toks}, nil
		}
		return subject{kind: subjectPlayer, player: pp, toks: toks}, nil
	}
	if owner, ok := trimSuffixWords(toks, "life", "total"); ok {
		if pf, n, ok := possessivePlayer(owner); ok && n == len(owner) {
			return subject{kind: subjectLife, lifeOf: pf, toks: toks}, nil
		}
	}
	if isGroupPhrase(toks) {
		f, err := lp.parseGroupFilter(toks)
		if err != nil {
			return subject{}, err
		}
		return subject{kind: subjectGroup, filter: f, toks: toks}, nil
	}
	if isSelfReference(toks) {
		return subject{kind: subjectSource, target: &core.SourceTarget{Span: spanPtr(toks...)}, toks: toks}, nil
	}
	t, err := lp.parseTarget(toks)
	if err != nil {
		return subject{}, err
	}
	return subject{kind: subjectObject, target: t, toks: toks}, nil
}

// actor returns the player performing a player action.
func (s subject) actor() (core.PlayerAst, error) {
	switch s.kind {
	case subjectNone:
		return core.PlayerAstYou, nil
	case subjectPlayer:
		return s.player.ast, nil
	case subjectEachPlayer:
		return core.PlayerAstImplicit, nil
	}
	return "", unsupportedf(s.toks, "%s: an object cannot perform this action", ErrUnknownVerb)
}

// objectTarget returns the object an object action applies to: the subject
// when there is one, the source otherwise. A "they" subject refers back to
// tagged objects here rather than to a player.
func (s subject) objectTarget() core.TargetAst {
	switch s.kind {
	case subjectObject, subjectSource:
		return s.target
	case subjectPlayer:
		if len(s.toks) == 1 && s.toks[0].IsWord("they") {
			return &core.TaggedTarget{Tag: core.ItTag, Span: spanPtr(s.toks...)}
		}
	}
	return &core.SourceTarget{}
}

// isObject reports whether the subject names objects rather than players.
func (s subject) isObject() bool {
	switch s.kind {
	case subjectObject, subjectSource:
		return true
	case subjectPlayer:
		return len(s.toks) == 1 && s.toks[0].IsWord("they")
	}
	return false
}

// verbClause is one verb-led clause ready for dispatch.
type verbClause struct {
	subj  subject
	verb  string
	args  []token.Token
	whole []token.Token
}

// parseVerbClause finds the verb of a single clause and dispatches it.
func (lp *lineParser) parseVerbClause(toks []token.Token) ([]core.Effect, error) {
	toks = trimPunct(toks)
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrEmptyClause)
	}
	i, verb := findVerb(toks)
	if i < 0 {
		return nil, lp.checkpoint("verb", unsupportedf(toks, ErrUnknownVerb))
	}
	subj, err := lp.parseSubject(toks[:i])
	if err != nil {
		return nil, err
	}
	lp.trace("verb:"+verb, toks)

	args, x, err := lp.splitWhereX(toks[i+1:])
	if err != nil {
		return nil, err
	}
	vc := &verbClause{subj: subj, verb: verb, args: trimPunct(args), whole: toks}
	effects, err := lp.dispatchVerb(vc)
	if err != nil {
		return nil, lp.checkpoint("verb:"+verb, err)
	}
	if x != nil {
		for _, e := range effects {
			bindX(e, x)
		}
	}
	if subj.kind == subjectEachPlayer {
		if subj.player.filter == core.Opponent {
			return []core.Effect{&core.ForEachOpponent{Effects: effects}}, nil
		}
		return []core.Effect{&core.ForEachPlayer{Effects: effects}}, nil
	}
	return effects, nil
}

func (lp *lineParser) dispatchVerb(vc *verbClause) ([]core.Effect, error) {
	switch vc.verb {
	case "add":
		return lp.verbAdd(vc)
	case "deal":
		return lp.verbDeal(vc)
	case "draw":
		return lp.verbDraw(vc)
	case "destroy":
		return lp.verbDestroy(vc)
	case "exile":
		return lp.verbExile(vc)
	case "counter":
		return lp.verbCounter(vc)
	case "sacrifice":
		return lp.verbSacrifice(vc)
	case "create":
		return lp.verbCreate(vc)
	case "put":
		return lp.verbPut(vc)
	case "get":
		return lp.verbGet(vc)
	case "return":
		return lp.verbReturn(vc)
	case "tap", "untap", "regenerate", "transform", "goad", "explore", "connive":
		return lp.verbObjectAction(vc)
	case "scry", "surveil", "mill":
		return lp.verbLibraryCount(vc)
	case "discard":
		return lp.verbDiscard(vc)
	case "reveal":
		return lp.verbReveal(vc)
	case "look":
		return lp.verbLook(vc)
	case "lose":
		return lp.verbLose(vc)
	case "gain":
		return lp.verbGain(vc)
	case "remove":
		return lp.verbRemove(vc)
	case "become":
		return lp.verbBecome(vc)
	case "skip":
		return lp.verbSkip(vc)
	case "pay":
		return lp.verbPay(vc)
	case "proliferate":
		return lp.verbProliferate(vc)
	case "investigate":
		return lp.verbInvestigate(vc)
	case "exchange":
		return lp.verbExchange(vc)
	case "move":
		return lp.verbMove(vc)
	case "fight":
		return lp.verbFight(vc)
	case "attach":
		return lp.verbAttach(vc)
	case "shuffle":
		return lp.verbShuffle(vc)
	case "search":
		return lp.verbSearch(vc)
	case "take":
		return lp.verbTake(vc)
	case "win":
		return lp.verbWin(vc)
	case "copy":
		return lp.verbCopy(vc)
	case "double":
		return lp.verbDouble(vc)
	case "bolster", "support", "adapt", "earthbend", "manifest":
		return lp.verbKeywordAction(vc)
	}
	return nil, unsupportedf(vc.whole, ErrUnknownVerb)
}

// isGroupPhrase reports whether a noun phrase names every matching object
// ("all creatures", "each creature you control", "other Elves you control")
// rather than a single reference.
func isGroupPhrase(toks []token.Token) bool {
	if len(toks) == 0 {
		return false
	}
	if toks[0].IsAnyWord("all", "each") {
		_, isPlayer := parsePlayerPhrase(toks)
		return !isPlayer
	}
	if indexWord(toks, "target") >= 0 || toks[0].IsAnyWord("up", "any", "it", "them", "that", "those", "this") {
		return false
	}
	if _, ok := parseNumberWord(toks[0].Text); ok {
		return false
	}
	for _, t := range toks[:qualifierStart(toks)] {
		if isPluralNoun(t.Text) {
			return true
		}
	}
	return false
}

func isPluralNoun(w string) bool {
	switch w {
	case "permanents", "tokens", "spells", "cards", "creatures":
		return true
	}
	if t, ok := core.LookupCardType(w); ok {
		return string(t) != w && w != "tribal"
	}
	if s, ok := core.LookupSubtype(w); ok {
		return string(s) != w
	}
	return false
}

// parseGroupFilter parses "all creatures", "each nonland permanent".
func (lp *lineParser) parseGroupFilter(toks []token.Token) (core.ObjectFilter, error) {
	if r, ok := trimPrefixWords(toks, "all"); ok {
		toks = r
	} else if r, ok := trimPrefixWords(toks, "each"); ok {
		toks = r
	}
	return lp.parseObjectFilter(toks)
}

// splitTargets splits "target artifact and target enchantment" into
// separate references. Phrases without a second target stay whole.
func splitTargets(toks []token.Token) [][]token.Token {
	for i, t := range toks {
		if !t.IsWord("and") || i+1 >= len(toks) {
			continue
		}
		if rest := toks[i+1:]; rest[0].IsAnyWord("target", "up") || (len(rest) > 1 && rest[0].IsWord("another") && rest[1].IsWord("target")) {
			return append([][]token.Token{trimPunct(toks[:i])}, splitTargets(rest)...)
		}
	}
	return [][]token.Token{toks}
}

// targetsOrGroup applies build to each target in toks, or buildAll when
// toks names a group.
func (lp *lineParser) targetsOrGroup(toks []token.Token, build func(core.TargetAst) core.Effect, buildAll func(core.ObjectFilter) core.Effect) ([]core.Effect, error) {
	if len(toks) == 0 {
		return nil, parseErrorf("%s (clause: '')", ErrUnsupportedTarget)
	}
	if isGroupPhrase(toks) {
		if buildAll == nil {
			return nil, unsupportedf(toks, ErrUnsupportedTarget)
		}
		f, err := lp.parseGroupFilter(toks)
		if err != nil {
			return nil, err
		}
		return []core.Effect{buildAll(f)}, nil
	}
	var out []core.Effect
	for _, part := range splitTargets(toks) {
		t, err := lp.parseTarget(part)
		if err != nil {
			return nil, err
		}
		out = append(out, build(t))
	}
	return out, nil
}

// unquote returns a copy of toks with the quoted flag cleared, for
// parsing quoted ability text as a line.
func unquote(toks []token.Token) []token.Token {
	out := make([]token.Token, len(toks))
	for i, t := range toks {
		t.Quoted = false
		out[i] = t
	}
	return out
}

// quotedRun returns the quoted tokens in toks and the unquoted rest.
func quotedRun(toks []token.Token) (quoted, rest []token.Token) {
	for _, t := range toks {
		if t.Quoted {
			quoted = append(quoted, t)
		} else {
			rest = append(rest, t)
		}
	}
	return quoted, rest
}
