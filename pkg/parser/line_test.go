package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
)

func TestParseLine_ActivatedAbility(t *testing.T) {
	line := parseLine(t, "{2}{B}, {T}, Sacrifice a creature: Draw two cards.")

	al, ok := line.(*core.AbilityLine)
	require.True(t, ok)
	a := al.Ability
	assert.Equal(t, core.ActivatedAbility, a.Kind)
	require.NotNil(t, a.Cost.Mana)
	assert.Equal(t, "{2}{B}", a.Cost.Mana.String())
	assert.True(t, a.Cost.Tap)
	require.Len(t, a.Cost.Effects, 1)
	sac, ok := a.Cost.Effects[0].(*core.Sacrifice)
	require.True(t, ok)
	assert.Contains(t, sac.Filter.CardTypes, core.Creature)
	assert.Equal(t, []core.Effect{&core.Draw{Count: core.FixedValue(2), Player: core.PlayerAstYou}}, a.Effects)
	assert.Empty(t, a.Label)
}

func TestParseLine_LoyaltyAbility(t *testing.T) {
	tests := []struct {
		line    string
		loyalty *int
		x       bool
	}{
		{"+1: Draw a card.", intPtr(1), false},
		{"−2: Draw two cards.", intPtr(-2), false},
		{"0: Draw a card.", intPtr(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			al, ok := parseLine(t, tt.line).(*core.AbilityLine)
			require.True(t, ok)
			assert.Equal(t, core.LoyaltyAbility, al.Ability.Kind)
			assert.Equal(t, tt.loyalty, al.Ability.Cost.Loyalty)
			assert.Equal(t, tt.x, al.Ability.Cost.LoyaltyX)
		})
	}
}

func intPtr(n int) *int { return &n }

func TestParseLine_ManaColorChoiceSplits(t *testing.T) {
	line := parseLine(t, "{T}: Add {R} or {G}.")

	al, ok := line.(*core.AbilitiesLine)
	require.True(t, ok)
	require.Len(t, al.Abilities, 2)
	for i, color := range []core.Color{core.Red, core.Green} {
		a := al.Abilities[i]
		assert.Equal(t, core.ManaAbility, a.Kind)
		assert.True(t, a.Cost.Tap)
		require.Len(t, a.Effects, 1)
		add, ok := a.Effects[0].(*core.AddMana)
		require.True(t, ok)
		assert.Equal(t, []core.ManaSymbol{{Kind: core.ManaColored, Color: color}}, add.Mana)
	}
}

func TestParseLine_RestrictionInsideAbility(t *testing.T) {
	line := parseLine(t, "{1}: Draw a card. Activate only as a sorcery and only once each turn.")

	al, ok := line.(*core.AbilityLine)
	require.True(t, ok)
	assert.Len(t, al.Ability.Effects, 1)
	assert.Equal(t, []core.ActivationRestriction{
		{Timing: core.SorcerySpeed},
		{Timing: core.OncePerTurn},
	}, al.Ability.Restrictions)
}

func TestParseActivationRestrictions(t *testing.T) {
	tests := []struct {
		text string
		want []core.ActivationRestriction
	}{
		{"Activate only as a sorcery.", []core.ActivationRestriction{{Timing: core.SorcerySpeed}}},
		{"Activate only any time you could cast a sorcery.", []core.ActivationRestriction{{Timing: core.SorcerySpeed}}},
		{"Activate this ability only once each turn.", []core.ActivationRestriction{{Timing: core.OncePerTurn}}},
		{"Activate only during your turn and only once each turn.", []core.ActivationRestriction{
			{Timing: core.DuringYourTurn}, {Timing: core.OncePerTurn},
		}},
		{"Activate only during combat.", []core.ActivationRestriction{{Timing: core.DuringCombat}}},
		{"Activate only during your upkeep.", []core.ActivationRestriction{{Timing: core.DuringUpkeep}}},
		{"Activate no more than twice each turn.", []core.ActivationRestriction{{Timing: core.TimesEachTurn, Times: 2}}},
		{"Activate no more than three times each turn.", []core.ActivationRestriction{{Timing: core.TimesEachTurn, Times: 3}}},
		{"Activate only from your graveyard.", []core.ActivationRestriction{{Timing: core.OnlyFromGrave}}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			lp := newTestParser().newLineParser(0, nil)
			got, err := lp.parseActivationRestrictions(Tokenize(tt.text, 0))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseActivationRestrictions_OnlyIf(t *testing.T) {
	lp := newTestParser().newLineParser(0, nil)
	got, err := lp.parseActivationRestrictions(Tokenize("Activate only if you control an artifact.", 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.OnlyIf, got[0].Timing)
	pc, ok := got[0].Condition.(*core.PlayerControls)
	require.True(t, ok)
	assert.Contains(t, pc.Filter.CardTypes, core.Artifact)
}

func TestParseActivationRestrictions_Unknown(t *testing.T) {
	lp := newTestParser().newLineParser(0, nil)
	_, err := lp.parseActivationRestrictions(Tokenize("Activate only while you're monarch.", 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrUnsupportedLine)
}

func TestParseLine_SagaChapter(t *testing.T) {
	line := parseLine(t, "I, II — Draw a card.")

	tl, ok := line.(*core.TriggeredLine)
	require.True(t, ok)
	assert.Equal(t, &core.SagaChapter{Chapters: []int{1, 2}}, tl.Trigger)
	require.Len(t, tl.Effects, 1)
	assert.IsType(t, &core.Draw{}, tl.Effects[0])
}

func TestParseLine_ModalHeader(t *testing.T) {
	tests := []struct {
		line     string
		min, max int
	}{
		{"Choose one —", 1, 1},
		{"Choose two —", 2, 2},
		{"Choose one or more —", 1, -1},
		{"Choose one or both —", 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, &core.ModalLine{Min: tt.min, Max: tt.max}, parseLine(t, tt.line))
		})
	}
}

func TestParseLine_AdditionalCost(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		line := parseLine(t, "As an additional cost to cast this spell, sacrifice a creature.")
		ac, ok := line.(*core.AdditionalCostLine)
		require.True(t, ok)
		require.Len(t, ac.Effects, 1)
		assert.IsType(t, &core.Sacrifice{}, ac.Effects[0])
	})
	t.Run("choice", func(t *testing.T) {
		line := parseLine(t, "As an additional cost to cast this spell, sacrifice a creature or discard a card.")
		ac, ok := line.(*core.AdditionalCostChoiceLine)
		require.True(t, ok)
		require.Len(t, ac.Options, 2)
		require.Len(t, ac.Options[0], 1)
		assert.IsType(t, &core.Sacrifice{}, ac.Options[0][0])
		require.Len(t, ac.Options[1], 1)
		assert.IsType(t, &core.Discard{}, ac.Options[1][0])
	})
	t.Run("optional", func(t *testing.T) {
		line := parseLine(t, "As an additional cost to cast this spell, you may pay 3 life.")
		ac, ok := line.(*core.AdditionalCostLine)
		require.True(t, ok)
		require.Len(t, ac.Effects, 1)
		may, ok := ac.Effects[0].(*core.May)
		require.True(t, ok)
		require.Len(t, may.Effects, 1)
	})
}

func TestParseLine_AlternativeCost(t *testing.T) {
	line := parseLine(t, "You may pay {1}{W} rather than pay this spell's mana cost.")

	alt, ok := line.(*core.AlternativeCostLine)
	require.True(t, ok)
	require.NotNil(t, alt.ManaCost)
	assert.Equal(t, "{1}{W}", alt.ManaCost.String())
	assert.Empty(t, alt.CostEffects)
}

func TestParseLine_InterveningIf(t *testing.T) {
	line := parseLine(t, "At the beginning of your upkeep, if you control an artifact, draw a card.")

	tl, ok := line.(*core.TriggeredLine)
	require.True(t, ok)
	assert.Equal(t, &core.BeginningOfStep{Step: core.StepUpkeep, Player: core.You}, tl.Trigger)
	require.NotNil(t, tl.InterveningIf)
	assert.IsType(t, &core.PlayerControls{}, tl.InterveningIf)
	require.Len(t, tl.Effects, 1)
	assert.IsType(t, &core.Draw{}, tl.Effects[0])
}

func TestParseLine_OnceEachTurn(t *testing.T) {
	line := parseLine(t, "Whenever a creature you control dies, draw a card. This ability triggers only once each turn.")

	tl, ok := line.(*core.TriggeredLine)
	require.True(t, ok)
	assert.True(t, tl.OnceEachTurn)
	require.Len(t, tl.Effects, 1)
	assert.IsType(t, &core.Draw{}, tl.Effects[0])
}

func TestParseLine_TriggerErrors(t *testing.T) {
	p := newTestParser()
	for _, line := range []string{
		"Whenever a flumph blorps, draw a card.",
		"This ability triggers only once each turn.",
	} {
		t.Run(line, func(t *testing.T) {
			_, err := p.ParseLine(line, 0)
			require.Error(t, err)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestParseCardLine_AbilityLabel(t *testing.T) {
	res, err := newTestParser().ParseCardLine("Boast — {1}: Draw a card.", 0, "Varragoth", "")
	require.NoError(t, err)
	require.NotNil(t, res)

	al, ok := res.Line.(*core.AbilityLine)
	require.True(t, ok)
	assert.Equal(t, "Boast", al.Ability.Label)
}

func TestParseLine_FirstClassifierWins(t *testing.T) {
	// A keyword cost line is a keyword activation, not a keyword list.
	line := parseLine(t, "Equip {2}")
	al, ok := line.(*core.AbilityLine)
	require.True(t, ok)
	require.NotNil(t, al.Ability.Keyword)
	assert.Equal(t, core.Equip, al.Ability.Keyword.Keyword)
	assert.Equal(t, "{2}", al.Ability.Cost.Mana.String())
}
