package parser

import (
	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

type playerPhrase struct {
	words  []string
	filter core.PlayerFilter
	ast    core.PlayerAst
}

// playerPhrases lists player references, longest first within a prefix.
var playerPhrases = []playerPhrase{
	{[]string{"you"}, core.You, core.PlayerAstYou},
	{[]string{"your", "opponents"}, core.Opponent, core.PlayerAstOpponent},
	{[]string{"each", "opponent"}, core.Opponent, core.PlayerAstOpponent},
	{[]string{"an", "opponent"}, core.Opponent, core.PlayerAstOpponent},
	{[]string{"opponents"}, core.Opponent, core.PlayerAstOpponent},
	{[]string{"target", "opponent"}, core.TargetOpp, core.PlayerAstTargetOpponent},
	{[]string{"target", "player"}, core.TargetPlayer, core.PlayerAstTarget},
	{[]string{"that", "player"}, core.TaggedPlayer(core.ItTag), core.PlayerAstThat},
	{[]string{"they"}, core.TaggedPlayer(core.ItTag), core.PlayerAstThat},
	{[]string{"defending", "player"}, core.Defending, core.PlayerAstDefending},
	{[]string{"attacking", "player"}, core.PlayerFilter{Kind: core.PlayerAttacking}, core.PlayerAstAttacking},
	{[]string{"its", "controller"}, core.ControllerOf(core.ItTag), core.PlayerAstItsController},
	{[]string{"its", "owner"}, core.OwnerOf(core.ItTag), core.PlayerAstItsOwner},
	{[]string{"that", "spell's", "controller"}, core.ControllerOf(core.ItTag), core.PlayerAstItsController},
	{[]string{"that", "creature's", "controller"}, core.ControllerOf(core.ItTag), core.PlayerAstItsController},
	{[]string{"the", "active", "player"}, core.ActivePlayer, core.PlayerAstAny},
	{[]string{"each", "player"}, core.AnyPlayer, core.PlayerAstAny},
	{[]string{"a", "player"}, core.AnyPlayer, core.PlayerAstAny},
	{[]string{"any", "player"}, core.AnyPlayer, core.PlayerAstAny},
	{[]string{"players"}, core.AnyPlayer, core.PlayerAstAny},
	{[]string{"another", "player"}, core.NotYou, core.PlayerAstAny},
	{[]string{"each", "other", "player"}, core.NotYou, core.PlayerAstAny},
}

// parsePlayerPhrase matches a whole clause as a player reference.
func parsePlayerPhrase(toks []token.Token) (playerPhrase, bool) {
	toks = trimPunct(toks)
	for _, pp := range playerPhrases {
		if len(toks) == len(pp.words) && hasPrefixWords(toks, pp.words...) {
			return pp, true
		}
	}
	return playerPhrase{}, false
}

// matchPlayerPrefix matches a player reference at the start of toks.
func matchPlayerPrefix(toks []token.Token) (playerPhrase, []token.Token, bool) {
	best := -1
	for i, pp := range playerPhrases {
		if hasPrefixWords(toks, pp.words...) && (best < 0 || len(pp.words) > len(playerPhrases[best].words)) {
			best = i
		}
	}
	if best < 0 {
		return playerPhrase{}, toks, false
	}
	pp := playerPhrases[best]
	return pp, toks[len(pp.words):], true
}

// possessivePlayer resolves "your", "their", "target player's" and similar
// possessives to a player filter. It returns the number of words consumed.
func possessivePlayer(toks []token.Token) (core.PlayerFilter, int, bool) {
	switch {
	case hasPrefixWords(toks, "your"):
		return core.You, 1, true
	case hasPrefixWords(toks, "its", "owner's"), hasPrefixWords(toks, "their", "owner's"), hasPrefixWords(toks, "its", "owners'"), hasPrefixWords(toks, "their", "owners'"):
		return core.OwnerOf(core.ItTag), 2, true
	case hasPrefixWords(toks, "that", "player's"):
		return core.TaggedPlayer(core.ItTag), 2, true
	case hasPrefixWords(toks, "their"):
		return core.TaggedPlayer(core.ItTag), 1, true
	case hasPrefixWords(toks, "its", "controller's"):
		return core.ControllerOf(core.ItTag), 2, true
	case hasPrefixWords(toks, "target", "player's"):
		return core.TargetPlayer, 2, true
	case hasPrefixWords(toks, "target", "opponent's"):
		return core.TargetOpp, 2, true
	case hasPrefixWords(toks, "an", "opponent's"), hasPrefixWords(toks, "each", "opponent's"), hasPrefixWords(toks, "opponents'"):
		if toks[0].IsWord("opponents'") {
			return core.Opponent, 1, true
		}
		return core.Opponent, 2, true
	case hasPrefixWords(toks, "a", "player's"), hasPrefixWords(toks, "each", "player's"):
		return core.AnyPlayer, 2, true
	case hasPrefixWords(toks, "defending", "player's"):
		return core.Defending, 2, true
	}
	return core.PlayerFilter{}, 0, false
}

// playerAstFor converts a player filter to the acting-player form.
func playerAstFor(f core.PlayerFilter) core.PlayerAst {
	switch f.Kind {
	case core.PlayerYou:
		return core.PlayerAstYou
	case core.PlayerOpponent:
		return core.PlayerAstOpponent
	case core.PlayerTargeted:
		return core.PlayerAstTarget
	case core.PlayerTargetOpponent:
		return core.PlayerAstTargetOpponent
	case core.PlayerTagged:
		return core.PlayerAstThat
	case core.PlayerDefending:
		return core.PlayerAstDefending
	case core.PlayerAttacking:
		return core.PlayerAstAttacking
	case core.PlayerControllerOf:
		return core.PlayerAstItsController
	case core.PlayerOwnerOf:
		return core.PlayerAstItsOwner
	}
	return core.PlayerAstAny
}
