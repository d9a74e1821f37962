package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
)

func parseTrigger(t *testing.T, line string) core.TriggerSpec {
	t.Helper()
	tl, ok := parseLine(t, line).(*core.TriggeredLine)
	require.True(t, ok, "expected a triggered line for %q", line)
	return tl.Trigger
}

func TestParseTrigger_CombatDamage(t *testing.T) {
	tests := []struct {
		line     string
		toPlayer bool
	}{
		{"Whenever this creature deals combat damage to a player, draw a card.", true},
		{"Whenever this creature deals combat damage, draw a card.", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			oe, ok := parseTrigger(t, tt.line).(*core.ObjectEvent)
			require.True(t, ok)
			assert.Equal(t, core.EventDealsCombatDmg, oe.Event)
			assert.True(t, oe.Self)
			assert.Equal(t, tt.toPlayer, oe.ToPlayer)
		})
	}
}

func TestParseTrigger_AttacksAlone(t *testing.T) {
	oe, ok := parseTrigger(t, "Whenever this creature attacks alone, draw a card.").(*core.ObjectEvent)
	require.True(t, ok)
	assert.Equal(t, core.EventAttacks, oe.Event)
	assert.True(t, oe.Alone)
}

func TestParseTrigger_Dies(t *testing.T) {
	zc, ok := parseTrigger(t, "When this creature dies, draw a card.").(*core.ZoneChange)
	require.True(t, ok)
	assert.Equal(t, core.ZoneBattlefield, zc.From)
	assert.Equal(t, core.ZoneGraveyard, zc.To)
	assert.True(t, zc.Self)
}

func TestParseTrigger_BeginningOfStep(t *testing.T) {
	tests := []struct {
		line   string
		step   core.Step
		player core.PlayerFilter
	}{
		{"At the beginning of your upkeep, draw a card.", core.StepUpkeep, core.You},
		{"At the beginning of each end step, draw a card.", core.StepEnd, core.AnyPlayer},
		{"At the beginning of combat on your turn, draw a card.", core.StepCombat, core.You},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			bs, ok := parseTrigger(t, tt.line).(*core.BeginningOfStep)
			require.True(t, ok)
			assert.Equal(t, tt.step, bs.Step)
			assert.Equal(t, tt.player, bs.Player)
		})
	}
}

func TestParseTrigger_Errors(t *testing.T) {
	for _, line := range []string{
		"At the beginning of the next end step, draw a card.",
		"Whenever the moon rises, draw a card.",
	} {
		t.Run(line, func(t *testing.T) {
			_, err := newTestParser().ParseLine(line, 0)
			require.Error(t, err)
			assert.True(t, IsParseError(err))
		})
	}
}
