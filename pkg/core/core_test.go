package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterBuildersDoNotAlias(t *testing.T) {
	base := CreatureFilter()
	a := base.WithSubtype("elf")
	b := base.WithSubtype("goblin")

	assert.Empty(t, base.Subtypes)
	assert.Equal(t, []Subtype{"elf"}, a.Subtypes)
	assert.Equal(t, []Subtype{"goblin"}, b.Subtypes)
	assert.True(t, a.HasType(Creature))
	assert.False(t, a.HasType(Land))
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, ObjectFilter{}.IsZero())
	assert.False(t, Permanent().IsZero())
	assert.False(t, ObjectFilter{}.AsOther().IsZero())
	assert.False(t, ObjectFilter{}.YouControl().IsZero())
}

func TestLookupSubtype(t *testing.T) {
	tests := []struct {
		word string
		want Subtype
		ok   bool
	}{
		{"wizard", "wizard", true},
		{"wizards", "wizard", true},
		{"elves", "elf", true},
		{"forests", "forest", true},
		{"creature", "", false},
		{"target", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := LookupSubtype(tt.word)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManaCost(t *testing.T) {
	cost := ManaCost{Symbols: []ManaSymbol{
		{Kind: ManaGeneric, Generic: 2},
		{Kind: ManaHybrid, Color: White, Color2: Blue},
		{Kind: ManaX},
		{Kind: ManaColored, Color: Green},
	}}
	assert.Equal(t, "{2}{W/U}{X}{G}", cost.String())
	assert.Equal(t, 4, cost.ManaValue())
	assert.False(t, cost.IsEmpty())
	assert.True(t, ManaCost{}.IsEmpty())
}

func TestMatchSimpleKeyword(t *testing.T) {
	kw, n := MatchSimpleKeyword([]string{"first", "strike", "and", "trample"})
	assert.Equal(t, FirstStrike, kw)
	assert.Equal(t, 2, n)

	kw, n = MatchSimpleKeyword([]string{"flying"})
	assert.Equal(t, Flying, kw)
	assert.Equal(t, 1, n)

	_, n = MatchSimpleKeyword([]string{"first"})
	assert.Zero(t, n)

	kw, ok := LookupNumericKeyword("toxic")
	require.True(t, ok)
	assert.Equal(t, Toxic, kw)
}

func TestIsTargeted(t *testing.T) {
	assert.False(t, IsTargeted(&ObjectTarget{Filter: CreatureFilter()}))
	assert.True(t, IsTargeted(&AnyTarget{}))
	assert.False(t, IsTargeted(&TaggedTarget{Tag: ItTag}))
	assert.False(t, IsTargeted(&SourceTarget{}))
}

func TestChoiceCount(t *testing.T) {
	assert.True(t, Exactly(1).IsSingle())
	assert.False(t, UpTo(1).IsSingle())
	assert.False(t, AnyNumber().IsSingle())
	assert.True(t, AnyNumber().Unbounded)
}

func TestIsManaEffect(t *testing.T) {
	assert.True(t, IsManaEffect(&AddMana{}))
	assert.True(t, IsManaEffect(&AddManaAnyColor{}))
	assert.False(t, IsManaEffect(&Draw{}))
}
