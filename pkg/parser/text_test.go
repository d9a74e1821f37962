package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
)

func TestSplitTextLines(t *testing.T) {
	got := splitTextLines("Flying\n\nChoose one — • Draw a card. • You gain 3 life.\n")
	assert.Equal(t, []string{"Flying", "Choose one —", "• Draw a card.", "• You gain 3 life."}, got)
}

func TestParseText_ModalSpell(t *testing.T) {
	text := "Choose one —\n• Draw a card.\n• You gain 3 life."
	results, err := newTestParser().ParseText(text, "Test Charm", "")
	require.NoError(t, err)
	require.Len(t, results, 3)

	ml, ok := results[0].Ast.(*core.ModalLine)
	require.True(t, ok)
	assert.Equal(t, 1, ml.Min)
	assert.Equal(t, 1, ml.Max)
	require.Len(t, ml.Modes, 2)
	assert.Equal(t, "Draw a card.", ml.Modes[0].Text)
	assert.IsType(t, &core.Draw{}, ml.Modes[0].Effects[0])
	assert.IsType(t, &core.GainLife{}, ml.Modes[1].Effects[0])

	for _, r := range results[1:] {
		assert.True(t, r.Attached)
		assert.Nil(t, r.Ast)
	}
}

func TestParseText_TriggeredChoice(t *testing.T) {
	text := "When Test Beast enters, choose one —\n• Draw a card.\n• You gain 3 life."
	results, err := newTestParser().ParseText(text, "Test Beast", "")
	require.NoError(t, err)
	require.Len(t, results, 3)

	tl, ok := results[0].Ast.(*core.TriggeredLine)
	require.True(t, ok)
	cm := trailingChooseMode(tl.Effects)
	require.NotNil(t, cm)
	assert.Len(t, cm.Modes, 2)
}

func TestParseText_AttachesRestriction(t *testing.T) {
	text := "{1}: Draw a card.\nActivate only as a sorcery."
	results, err := newTestParser().ParseText(text, "Test Relic", "")
	require.NoError(t, err)
	require.Len(t, results, 2)

	al, ok := results[0].Ast.(*core.AbilityLine)
	require.True(t, ok)
	assert.Equal(t, []core.ActivationRestriction{{Timing: core.SorcerySpeed}}, al.Ability.Restrictions)
	assert.True(t, results[1].Attached)
}

func TestParseText_AttachesOnceEachTurn(t *testing.T) {
	text := "Whenever you cast a creature spell, draw a card.\nThis ability triggers only once each turn."
	results, err := newTestParser().ParseText(text, "Test Muse", "")
	require.NoError(t, err)

	tl, ok := results[0].Ast.(*core.TriggeredLine)
	require.True(t, ok)
	assert.True(t, tl.OnceEachTurn)
}

func TestParseText_SkipsReminderLines(t *testing.T) {
	results, err := newTestParser().ParseText("Flying\n(This is reminder text.)\nTrample", "Test Drake", "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 1, results[1].Index)
}

func TestParseText_JoinsErrors(t *testing.T) {
	text := "Blorp the flumph.\nFlying\n• Draw a card."
	results, err := newTestParser().ParseText(text, "Test Oddity", "")
	require.Error(t, err)
	require.Len(t, results, 3)

	assert.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "line 0")
	assert.NoError(t, results[1].Err)
	assert.IsType(t, &core.StaticLine{}, results[1].Ast)

	// A bullet after a non-modal line has nothing to attach to.
	assert.Error(t, results[2].Err)
	assert.False(t, results[2].Attached)

	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), "line 2")
}
