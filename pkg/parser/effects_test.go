package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
)

func parseEffectsText(t *testing.T, text string) []core.Effect {
	t.Helper()
	effects, err := newTestParser().ParseEffects(text, 0)
	require.NoError(t, err, "text: %s", text)
	return effects
}

func TestParseEffects_MayIfYouDo(t *testing.T) {
	effects := parseEffectsText(t, "You may discard a card. If you do, draw two cards.")

	require.Len(t, effects, 2)
	may, ok := effects[0].(*core.May)
	require.True(t, ok)
	require.Len(t, may.Effects, 1)
	assert.IsType(t, &core.Discard{}, may.Effects[0])

	res, ok := effects[1].(*core.IfResult)
	require.True(t, ok)
	assert.Equal(t, core.IfDid, res.Predicate)
	assert.Equal(t, []core.Effect{&core.Draw{Count: core.FixedValue(2), Player: core.PlayerAstYou}}, res.Effects)
}

func TestParseEffects_Otherwise(t *testing.T) {
	t.Run("conditional", func(t *testing.T) {
		effects := parseEffectsText(t, "If you control an artifact, draw two cards. Otherwise, draw a card.")
		require.Len(t, effects, 1)
		cond, ok := effects[0].(*core.Conditional)
		require.True(t, ok)
		assert.Equal(t, []core.Effect{&core.Draw{Count: core.FixedValue(2), Player: core.PlayerAstYou}}, cond.IfTrue)
		assert.Equal(t, []core.Effect{&core.Draw{Count: core.FixedValue(1), Player: core.PlayerAstYou}}, cond.IfFalse)
	})
	t.Run("if you do", func(t *testing.T) {
		effects := parseEffectsText(t, "You may discard a card. If you do, draw two cards. Otherwise, draw a card.")
		require.Len(t, effects, 3)
		res, ok := effects[2].(*core.IfResult)
		require.True(t, ok)
		assert.Equal(t, core.IfDidNot, res.Predicate)
	})
	t.Run("dangling", func(t *testing.T) {
		_, err := newTestParser().ParseEffects("Otherwise, draw a card.", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "otherwise without a condition")
	})
}

func TestParseEffects_ThenChain(t *testing.T) {
	effects := parseEffectsText(t, "Draw two cards, then discard a card.")

	require.Len(t, effects, 2)
	assert.IsType(t, &core.Draw{}, effects[0])
	assert.IsType(t, &core.Discard{}, effects[1])
}

func TestParseEffects_SubjectInheritance(t *testing.T) {
	effects := parseEffectsText(t, "Target player draws a card and loses 1 life.")

	require.Len(t, effects, 2)
	draw, ok := effects[0].(*core.Draw)
	require.True(t, ok)
	assert.Equal(t, core.PlayerAstTarget, draw.Player)

	lose, ok := effects[1].(*core.LoseLife)
	require.True(t, ok)
	assert.Equal(t, core.PlayerAstThat, lose.Player, "the second clause refers back to the targeted player")
}

func TestParseEffects_AndNewSubject(t *testing.T) {
	effects := parseEffectsText(t, "Target player loses 2 life and you gain 2 life.")

	require.Len(t, effects, 2)
	assert.IsType(t, &core.LoseLife{}, effects[0])
	gain, ok := effects[1].(*core.GainLife)
	require.True(t, ok)
	assert.Equal(t, core.PlayerAstYou, gain.Player)
}

func TestParseEffects_UnlessPays(t *testing.T) {
	effects := parseEffectsText(t, "Draw a card unless any player pays {2}.")

	require.Len(t, effects, 1)
	up, ok := effects[0].(*core.UnlessPays)
	require.True(t, ok)
	assert.Equal(t, core.PlayerAstAny, up.Player)
	assert.Equal(t, "{2}", up.Mana.String())
	require.Len(t, up.Effects, 1)
	assert.IsType(t, &core.Draw{}, up.Effects[0])
}

func TestParseEffects_LeadingUnless(t *testing.T) {
	t.Run("pays", func(t *testing.T) {
		effects := parseEffectsText(t, "Unless target player pays {3}, draw two cards.")
		require.Len(t, effects, 1)
		up, ok := effects[0].(*core.UnlessPays)
		require.True(t, ok)
		assert.Equal(t, core.PlayerAstTarget, up.Player)
		assert.Equal(t, "{3}", up.Mana.String())
		require.Len(t, up.Effects, 1)
		assert.IsType(t, &core.Draw{}, up.Effects[0])
	})
	t.Run("you pay", func(t *testing.T) {
		effects := parseEffectsText(t, "Unless you pay {2}, draw a card.")
		require.Len(t, effects, 1)
		up, ok := effects[0].(*core.UnlessPays)
		require.True(t, ok)
		assert.Equal(t, core.PlayerAstYou, up.Player)
		assert.Equal(t, "{2}", up.Mana.String())
	})
	t.Run("action", func(t *testing.T) {
		effects := parseEffectsText(t, "Unless target player discards a card, draw a card.")
		require.Len(t, effects, 1)
		ua, ok := effects[0].(*core.UnlessAction)
		require.True(t, ok)
		assert.Equal(t, core.PlayerAstTarget, ua.Player)
		require.Len(t, ua.Alternative, 1)
		assert.IsType(t, &core.Discard{}, ua.Alternative[0])
		require.Len(t, ua.Effects, 1)
		assert.IsType(t, &core.Draw{}, ua.Effects[0])
	})
	t.Run("unknown condition", func(t *testing.T) {
		_, err := newTestParser().ParseEffects("Unless the moon rises, draw a card.", 0)
		require.Error(t, err)
		assert.True(t, IsParseError(err))
		assert.ErrorContains(t, err, ErrUnsupportedPredicate)
	})
}

func TestParseEffects_MayByPlayer(t *testing.T) {
	effects := parseEffectsText(t, "Target player may draw a card.")

	require.Len(t, effects, 1)
	mbp, ok := effects[0].(*core.MayByPlayer)
	require.True(t, ok)
	assert.Equal(t, core.PlayerAstTarget, mbp.Player)
	require.Len(t, mbp.Effects, 1)
	assert.IsType(t, &core.Draw{}, mbp.Effects[0])
}

func TestSplitChain(t *testing.T) {
	tests := []struct {
		text string
		want [][]string
	}{
		{"draw a card, then discard a card", [][]string{{"draw", "a", "card"}, {"discard", "a", "card"}}},
		{"target player loses 2 life and you gain 2 life", [][]string{
			{"target", "player", "loses", "2", "life"},
			{"you", "gain", "2", "life"},
		}},
		{"target creature gets +2/+0 and gains flying until end of turn", [][]string{
			{"target", "creature", "gets", "+2/+0", "until", "end", "of", "turn"},
			{"it", "gains", "flying", "until", "end", "of", "turn"},
		}},
		{"destroy target artifact or enchantment", [][]string{{"destroy", "target", "artifact", "or", "enchantment"}}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			lp := newTestParser().newLineParser(0, nil)
			var got [][]string
			for _, seg := range lp.splitChain(Tokenize(tt.text, 0)) {
				got = append(got, wordsOf(seg))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// A primitive's claim does not depend on the primitives after it.
func TestPrimitiveIndependence(t *testing.T) {
	tests := []struct {
		primitive string
		clause    string
	}{
		{"vote", "starting with you, each player votes for grace or condemnation"},
		{"search_library", "search your library for a basic land card, put it onto the battlefield tapped, then shuffle"},
		{"prevent_damage", "prevent all combat damage that would be dealt this turn"},
		{"monstrosity", "monstrosity 3"},
		{"choose", "choose one"},
	}
	for _, tt := range tests {
		t.Run(tt.primitive, func(t *testing.T) {
			toks := Tokenize(tt.clause, 0)

			full, err := newTestParser().newLineParser(0, nil).parseSentence(toks, nil)
			require.NoError(t, err)

			var claimed bool
			for i, p := range prePrimitives {
				if p.name != tt.primitive {
					continue
				}
				alone, err := p.parse(newTestParser().newLineParser(0, nil), toks, nil)
				require.NoError(t, err)
				require.NotNil(t, alone)
				assert.Empty(t, cmp.Diff(full, alone))

				// No earlier primitive claims the clause.
				for _, earlier := range prePrimitives[:i] {
					got, err := earlier.parse(newTestParser().newLineParser(0, nil), toks, nil)
					assert.NoError(t, err, earlier.name)
					assert.Nil(t, got, earlier.name)
				}
				claimed = true
			}
			assert.True(t, claimed, "unknown primitive %s", tt.primitive)
		})
	}
}

func TestParseEffects_PrimitiveOutcomes(t *testing.T) {
	t.Run("vote", func(t *testing.T) {
		effects := parseEffectsText(t, "Starting with you, each player votes for grace or condemnation.")
		assert.Equal(t, []core.Effect{&core.VoteStart{Options: []string{"grace", "condemnation"}}}, effects)
	})
	t.Run("choose mode", func(t *testing.T) {
		effects := parseEffectsText(t, "Choose one or both")
		assert.Equal(t, []core.Effect{&core.ChooseMode{Min: 1, Max: 2}}, effects)
	})
	t.Run("search", func(t *testing.T) {
		effects := parseEffectsText(t, "Search your library for a basic land card, put it onto the battlefield tapped, then shuffle.")
		require.Len(t, effects, 1)
		s, ok := effects[0].(*core.SearchLibrary)
		require.True(t, ok)
		assert.Equal(t, core.ZoneBattlefield, s.Destination)
		assert.True(t, s.Tapped)
		assert.True(t, s.Shuffle)
		assert.Contains(t, s.Filter.CardTypes, core.Land)
	})
}
