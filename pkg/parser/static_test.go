package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
)

func parseStatic(t *testing.T, line string) []core.StaticAbility {
	t.Helper()
	st, ok := parseLine(t, line).(*core.StaticLine)
	require.True(t, ok, "expected a static line for %q", line)
	return st.Abilities
}

func TestStatic_Anthem(t *testing.T) {
	abilities := parseStatic(t, "Creatures you control get +1/+1.")

	require.Len(t, abilities, 1)
	a, ok := abilities[0].(*core.Anthem)
	require.True(t, ok)
	assert.Equal(t, 1, a.Power)
	assert.Equal(t, 1, a.Toughness)
	assert.Contains(t, a.Filter.CardTypes, core.Creature)
}

func TestStatic_Enchant(t *testing.T) {
	abilities := parseStatic(t, "Enchant creature")

	require.Len(t, abilities, 1)
	e, ok := abilities[0].(*core.Enchant)
	require.True(t, ok)
	assert.Contains(t, e.Filter.CardTypes, core.Creature)
}

func TestStatic_EntersTapped(t *testing.T) {
	for _, line := range []string{"This land enters tapped.", "This creature enters the battlefield tapped."} {
		t.Run(line, func(t *testing.T) {
			assert.Equal(t, []core.StaticAbility{&core.EntersTapped{}}, parseStatic(t, line))
		})
	}
}

func TestStatic_CostModifier(t *testing.T) {
	abilities := parseStatic(t, "Creature spells you cast cost {1} less to cast.")

	require.Len(t, abilities, 1)
	cm, ok := abilities[0].(*core.CostModifier)
	require.True(t, ok)
	assert.Equal(t, core.You, cm.Caster)
	assert.Equal(t, -1, cm.Amount)
	assert.Empty(t, cm.Colored)
	assert.False(t, cm.Abilities)
}

func TestStatic_CostModifierSelf(t *testing.T) {
	abilities := parseStatic(t, "This spell costs {2} more to cast.")

	require.Len(t, abilities, 1)
	cm, ok := abilities[0].(*core.CostModifier)
	require.True(t, ok)
	assert.Equal(t, 2, cm.Amount)
	assert.True(t, cm.Filter.Source)
}

func TestStatic_NoMaximumHandSize(t *testing.T) {
	assert.Equal(t, []core.StaticAbility{&core.NoMaximumHandSize{}}, parseStatic(t, "You have no maximum hand size."))
}

func TestStatic_AttachedBoost(t *testing.T) {
	abilities := parseStatic(t, "Enchanted creature gets +2/+2.")

	require.Len(t, abilities, 1)
	b, ok := abilities[0].(*core.AttachedBoost)
	require.True(t, ok)
	assert.Equal(t, core.EnchantedTag, b.Attachment)
	assert.Equal(t, 2, b.Power)
	assert.Equal(t, 2, b.Toughness)
}

func TestStatic_Restricted(t *testing.T) {
	tests := []struct {
		line string
		want core.RestrictionKind
	}{
		{"This creature can't block.", core.CantBlock},
		{"This creature can't attack or block.", core.CantAttackOrBlock},
		{"This spell can't be countered.", core.CantBeCountered},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			abilities := parseStatic(t, tt.line)
			require.Len(t, abilities, 1)
			r, ok := abilities[0].(*core.Restricted)
			require.True(t, ok)
			assert.Equal(t, tt.want, r.Restriction)
			assert.Nil(t, r.Filter, "the source restricts itself")
		})
	}
}

func TestStatic_AdditionalLand(t *testing.T) {
	assert.Equal(t,
		[]core.StaticAbility{&core.AdditionalLandPlay{Count: 1}},
		parseStatic(t, "You may play an additional land on each of your turns."))
}

func TestStatic_SentenceOutsideLibrary(t *testing.T) {
	lp := newTestParser().newLineParser(0, nil)
	got, err := lp.parseStaticLine(Tokenize("Blorp the flumph.", 0))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStatic_LaterSentenceMustMatch(t *testing.T) {
	lp := newTestParser().newLineParser(0, nil)
	_, err := lp.parseStaticLine(Tokenize("You have no maximum hand size. Blorp the flumph.", 0))
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}
