package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
)

func newClauseParser() *lineParser {
	return newTestParser().newLineParser(0, nil)
}

func parseTargetText(t *testing.T, text string) core.TargetAst {
	t.Helper()
	target, err := newClauseParser().parseTarget(Tokenize(text, 0))
	require.NoError(t, err, "target: %s", text)
	return target
}

func parseFilterText(t *testing.T, text string) core.ObjectFilter {
	t.Helper()
	f, err := newClauseParser().parseObjectFilter(Tokenize(text, 0))
	require.NoError(t, err, "filter: %s", text)
	return f
}

func TestParseTarget_Object(t *testing.T) {
	target := parseTargetText(t, "target creature")

	ot, ok := target.(*core.ObjectTarget)
	require.True(t, ok)
	require.NotNil(t, ot.TargetSpan)
	assert.Equal(t, 0, ot.TargetSpan.Start)
	assert.Equal(t, 6, ot.TargetSpan.End)
	assert.Equal(t, core.ZoneBattlefield, ot.Filter.Zone)
	assert.Equal(t, []core.CardType{core.Creature}, ot.Filter.CardTypes)
	assert.True(t, core.IsTargeted(target))
}

func TestParseTarget_Untargeted(t *testing.T) {
	target := parseTargetText(t, "creature you control")

	ot, ok := target.(*core.ObjectTarget)
	require.True(t, ok)
	assert.Nil(t, ot.TargetSpan)
	require.NotNil(t, ot.Filter.Controller)
	assert.Equal(t, core.You, *ot.Filter.Controller)
	assert.False(t, core.IsTargeted(target))
}

func TestParseTarget_Another(t *testing.T) {
	ot, ok := parseTargetText(t, "another target creature").(*core.ObjectTarget)
	require.True(t, ok)
	assert.True(t, ot.Filter.Other)
	assert.NotNil(t, ot.TargetSpan)
}

func TestParseTarget_Counted(t *testing.T) {
	tests := []struct {
		text  string
		count core.ChoiceCount
	}{
		{"up to two target creatures", core.UpTo(2)},
		{"any number of target creatures", core.AnyNumber()},
		{"X target creatures", core.ChoiceCount{DynamicX: true}},
		{"two target creatures", core.Exactly(2)},
		{"one or two target creatures", core.ChoiceCount{Min: 1, Max: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ct, ok := parseTargetText(t, tt.text).(*core.CountedTarget)
			require.True(t, ok)
			assert.Equal(t, tt.count, ct.Count)
			inner, ok := ct.Target.(*core.ObjectTarget)
			require.True(t, ok)
			assert.Equal(t, []core.CardType{core.Creature}, inner.Filter.CardTypes)
		})
	}
}

func TestParseTarget_References(t *testing.T) {
	tests := []struct {
		text string
		tag  core.TagKey
	}{
		{"it", core.ItTag},
		{"them", core.ItTag},
		{"that creature", core.ItTag},
		{"those cards", core.ItTag},
		{"the exiled card", core.ItTag},
		{"the sacrificed creature", core.SacrificedTag},
		{"enchanted creature", core.EnchantedTag},
		{"equipped creature", core.EquippedTag},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tt2, ok := parseTargetText(t, tt.text).(*core.TaggedTarget)
			require.True(t, ok)
			assert.Equal(t, tt.tag, tt2.Tag)
			assert.NotNil(t, tt2.Span)
		})
	}
}

func TestParseTarget_Source(t *testing.T) {
	for _, text := range []string{"this", "this creature", "this spell", "this artifact"} {
		t.Run(text, func(t *testing.T) {
			_, ok := parseTargetText(t, text).(*core.SourceTarget)
			assert.True(t, ok)
		})
	}
}

func TestParseTarget_Players(t *testing.T) {
	pt, ok := parseTargetText(t, "target player").(*core.PlayerTarget)
	require.True(t, ok)
	assert.Equal(t, core.TargetPlayer, pt.Filter)
	assert.NotNil(t, pt.TargetSpan)

	pt, ok = parseTargetText(t, "each opponent").(*core.PlayerTarget)
	require.True(t, ok)
	assert.Equal(t, core.Opponent, pt.Filter)
	assert.Nil(t, pt.TargetSpan)

	pp, ok := parseTargetText(t, "target opponent or planeswalker").(*core.PlayerOrPlaneswalkerTarget)
	require.True(t, ok)
	assert.Equal(t, core.Opponent, pp.Filter)
}

func TestParseTarget_AnyAndSpell(t *testing.T) {
	_, ok := parseTargetText(t, "any target").(*core.AnyTarget)
	assert.True(t, ok)
	_, ok = parseTargetText(t, "target creature or player").(*core.AnyTarget)
	assert.True(t, ok)
	st, ok := parseTargetText(t, "target spell").(*core.SpellTarget)
	require.True(t, ok)
	assert.True(t, core.IsTargeted(st))
}

func TestParseTarget_Errors(t *testing.T) {
	for _, text := range []string{"", "up to two", "target", "target flumph"} {
		t.Run(text, func(t *testing.T) {
			_, err := newClauseParser().parseTarget(Tokenize(text, 0))
			require.Error(t, err)
			assert.True(t, IsParseError(err))
		})
	}
}

func TestParseTarget_RecordsTags(t *testing.T) {
	lp := newClauseParser()
	_, err := lp.parseTarget(Tokenize("target creature", 0))
	require.NoError(t, err)
	assert.Len(t, lp.tags[core.TargetTag], 1)
}

func TestParseObjectFilter(t *testing.T) {
	t.Run("type union", func(t *testing.T) {
		f := parseFilterText(t, "artifact or enchantment")
		assert.Equal(t, []core.CardType{core.Artifact, core.Enchantment}, f.CardTypes)
		assert.True(t, f.TypeOrSubtypeUnion)
		assert.Equal(t, core.ZoneBattlefield, f.Zone)
	})
	t.Run("all types", func(t *testing.T) {
		f := parseFilterText(t, "artifact creature")
		assert.Equal(t, []core.CardType{core.Artifact, core.Creature}, f.AllCardTypes)
		assert.Empty(t, f.CardTypes)
	})
	t.Run("excluded type", func(t *testing.T) {
		f := parseFilterText(t, "nonland permanent an opponent controls")
		assert.Equal(t, []core.CardType{core.Land}, f.ExcludedCardTypes)
		require.NotNil(t, f.Controller)
		assert.Equal(t, core.Opponent, *f.Controller)
	})
	t.Run("instant or sorcery spell", func(t *testing.T) {
		f := parseFilterText(t, "instant or sorcery spell")
		assert.Equal(t, core.ZoneStack, f.Zone)
		assert.True(t, f.Spell)
	})
	t.Run("card keeps zone open", func(t *testing.T) {
		f := parseFilterText(t, "creature card")
		assert.Equal(t, core.ZoneAny, f.Zone)
	})
	t.Run("keyword", func(t *testing.T) {
		f := parseFilterText(t, "creature with flying")
		assert.Equal(t, []core.Keyword{core.Flying}, f.Keywords)
	})
	t.Run("counter", func(t *testing.T) {
		f := parseFilterText(t, "creature with a counter on it")
		require.NotNil(t, f.WithCounter)
		assert.Equal(t, core.CounterConstraint{Counter: core.AnyCounter, AtLeast: 1}, *f.WithCounter)
	})
}

func TestParseObjectFilter_Comparisons(t *testing.T) {
	tests := []struct {
		text string
		want core.Comparison
	}{
		{"creature with power 2 or less", core.Comparison{Op: core.OpLessOrEqual, Value: 2}},
		{"creature with power 4 or greater", core.Comparison{Op: core.OpGreaterOrEqual, Value: 4}},
		{"creature with power less than 3", core.Comparison{Op: core.OpLess, Value: 3}},
		{"creature with power 5", core.Comparison{Op: core.OpEqual, Value: 5}},
		{"creature with power X or less", core.Comparison{Op: core.OpLessOrEqual, X: true}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			f := parseFilterText(t, tt.text)
			require.NotNil(t, f.Power)
			assert.Equal(t, tt.want, *f.Power)
		})
	}
}

func TestParseObjectFilter_RejectsArithmetic(t *testing.T) {
	for _, text := range []string{
		"creature with power 2 or 3",
		"creature with total power 4 or greater",
		"creature with power or toughness 2 or less",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := newClauseParser().parseObjectFilter(Tokenize(text, 0))
			require.Error(t, err)
			assert.ErrorContains(t, err, ErrArithmeticCompare)
		})
	}
}
