package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
)

func TestVerbGet_PumpForEach(t *testing.T) {
	t.Run("duration before count", func(t *testing.T) {
		effects := parseStatement(t, "Target creature gets +1/+1 until end of turn for each creature you control.")
		require.Len(t, effects, 1)
		pump, ok := effects[0].(*core.PumpForEach)
		require.True(t, ok)
		assert.Equal(t, 1, pump.PowerPer)
		assert.Equal(t, 1, pump.ToughnessPer)
		assert.Equal(t, core.UntilEndOfTurn, pump.Duration)
		assert.Equal(t, []core.CardType{core.Creature}, pump.CountFilter.CardTypes)
		require.NotNil(t, pump.CountFilter.Controller)
		assert.Equal(t, core.You, *pump.CountFilter.Controller)
		assert.True(t, core.IsTargeted(pump.Target))
	})
	t.Run("duration after count", func(t *testing.T) {
		effects := parseStatement(t, "Target creature gets +1/+1 for each creature you control until end of turn.")
		require.Len(t, effects, 1)
		pump, ok := effects[0].(*core.PumpForEach)
		require.True(t, ok)
		assert.Equal(t, core.UntilEndOfTurn, pump.Duration)
	})
	t.Run("triggered", func(t *testing.T) {
		tl, ok := parseLine(t, "Whenever this creature attacks, it gets +3/+0 until end of turn for each other attacking Beast.").(*core.TriggeredLine)
		require.True(t, ok)
		require.Len(t, tl.Effects, 1)
		pump, ok := tl.Effects[0].(*core.PumpForEach)
		require.True(t, ok)
		assert.Equal(t, 3, pump.PowerPer)
		assert.Equal(t, 0, pump.ToughnessPer)
		assert.Equal(t, core.UntilEndOfTurn, pump.Duration)
		assert.True(t, pump.CountFilter.Other)
		assert.True(t, pump.CountFilter.Attacking)
		assert.Equal(t, []core.Subtype{"beast"}, pump.CountFilter.Subtypes)
	})
	t.Run("plain pump keeps its duration", func(t *testing.T) {
		effects := parseStatement(t, "Target creature gets +2/+2 until end of turn.")
		require.Len(t, effects, 1)
		pump, ok := effects[0].(*core.Pump)
		require.True(t, ok)
		assert.Equal(t, core.UntilEndOfTurn, pump.Duration)
	})
}

func TestVerbExchange(t *testing.T) {
	t.Run("two named targets", func(t *testing.T) {
		effects := parseStatement(t, "Exchange control of target artifact and target creature.")
		require.Len(t, effects, 1)
		ex, ok := effects[0].(*core.ExchangeControl)
		require.True(t, ok)
		assert.Equal(t, 2, ex.Count)
		require.Len(t, ex.Filter.AnyOf, 2)
		assert.Equal(t, []core.CardType{core.Artifact}, ex.Filter.AnyOf[0].CardTypes)
		assert.Equal(t, []core.CardType{core.Creature}, ex.Filter.AnyOf[1].CardTypes)
	})
	t.Run("targets with controllers", func(t *testing.T) {
		effects := parseStatement(t, "Exchange control of target creature you control and target creature an opponent controls.")
		require.Len(t, effects, 1)
		ex, ok := effects[0].(*core.ExchangeControl)
		require.True(t, ok)
		require.Len(t, ex.Filter.AnyOf, 2)
		require.NotNil(t, ex.Filter.AnyOf[0].Controller)
		assert.Equal(t, core.You, *ex.Filter.AnyOf[0].Controller)
		require.NotNil(t, ex.Filter.AnyOf[1].Controller)
		assert.Equal(t, core.Opponent, *ex.Filter.AnyOf[1].Controller)
	})
	t.Run("counted", func(t *testing.T) {
		effects := parseStatement(t, "Exchange control of two target creatures.")
		require.Len(t, effects, 1)
		ex, ok := effects[0].(*core.ExchangeControl)
		require.True(t, ok)
		assert.Equal(t, 2, ex.Count)
		assert.Equal(t, []core.CardType{core.Creature}, ex.Filter.CardTypes)
	})
	t.Run("single target", func(t *testing.T) {
		_, err := newTestParser().ParseLine("Exchange control of target creature.", 0)
		require.Error(t, err)
		assert.ErrorContains(t, err, ErrUnsupportedTarget)
	})
}

func TestDistributeCounters(t *testing.T) {
	tests := []struct {
		line    string
		counter core.CounterType
		amount  int
		count   core.ChoiceCount
	}{
		{"Distribute three +1/+1 counters among one, two, or three target creatures you control.", core.PlusOneCounter, 3, core.ChoiceCount{Min: 1, Max: 3}},
		{"Distribute four -1/-1 counters among one, two, three, or four target creatures.", core.MinusOneCounter, 4, core.ChoiceCount{Min: 1, Max: 4}},
		{"Distribute two +1/+1 counters among one or two target creatures.", core.PlusOneCounter, 2, core.ChoiceCount{Min: 1, Max: 2}},
		{"Distribute three +1/+1 counters among any number of target creatures.", core.PlusOneCounter, 3, core.AnyNumber()},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			effects := parseStatement(t, tt.line)
			require.Len(t, effects, 1)
			put, ok := effects[0].(*core.PutCounters)
			require.True(t, ok)
			assert.True(t, put.Distributed)
			assert.Equal(t, tt.counter, put.Counter)
			assert.Equal(t, core.FixedValue(tt.amount), put.Count)
			ct, ok := put.Target.(*core.CountedTarget)
			require.True(t, ok)
			assert.Equal(t, tt.count, ct.Count)
			assert.True(t, core.IsTargeted(ct))
		})
	}
}

func TestParseChoiceCount_Series(t *testing.T) {
	tests := []struct {
		text string
		want core.ChoiceCount
		ok   bool
	}{
		{"one, two, or three target creatures", core.ChoiceCount{Min: 1, Max: 3}, true},
		{"one, two or three target creatures", core.ChoiceCount{Min: 1, Max: 3}, true},
		{"two, three, or four target creatures", core.ChoiceCount{Min: 2, Max: 4}, true},
		{"one, three, or four target creatures", core.ChoiceCount{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			count, rest, ok := parseChoiceCount(Tokenize(tt.text, 0))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, count)
				assert.Equal(t, []string{"target", "creatures"}, wordsOf(rest))
			}
		})
	}
}
