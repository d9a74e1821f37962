package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
)

func newTestParser() *Parser {
	return New(Config{}, nil)
}

func parseLine(t *testing.T, line string) core.LineAst {
	t.Helper()
	ast, err := newTestParser().ParseLine(line, 0)
	require.NoError(t, err, "line: %s", line)
	require.NotNil(t, ast)
	return ast
}

func parseStatement(t *testing.T, line string) []core.Effect {
	t.Helper()
	st, ok := parseLine(t, line).(*core.StatementLine)
	require.True(t, ok, "expected a statement line for %q", line)
	return st.Effects
}

func TestParseLine_KeywordList(t *testing.T) {
	line := parseLine(t, "Flying, trample")

	st, ok := line.(*core.StaticLine)
	require.True(t, ok)
	require.Len(t, st.Abilities, 2)
	assert.Equal(t, core.KeywordOf(core.Flying), st.Abilities[0])
	assert.Equal(t, core.KeywordOf(core.Trample), st.Abilities[1])
}

func TestParseLine_CastTrigger(t *testing.T) {
	line := parseLine(t, "Whenever you cast a creature spell, draw a card.")

	tl, ok := line.(*core.TriggeredLine)
	require.True(t, ok)
	cast, ok := tl.Trigger.(*core.SpellCast)
	require.True(t, ok)
	assert.Equal(t, core.You, cast.Caster)
	require.NotNil(t, cast.Filter)
	assert.Contains(t, cast.Filter.CardTypes, core.Creature)

	require.Len(t, tl.Effects, 1)
	assert.Equal(t, &core.Draw{Count: core.FixedValue(1), Player: core.PlayerAstYou}, tl.Effects[0])
	assert.False(t, tl.OnceEachTurn)
	assert.Nil(t, tl.InterveningIf)
}

func TestParseLine_TapForMana(t *testing.T) {
	line := parseLine(t, "{T}: Add {G}.")

	al, ok := line.(*core.AbilityLine)
	require.True(t, ok)
	assert.Equal(t, core.ManaAbility, al.Ability.Kind)
	assert.True(t, al.Ability.Cost.Tap)
	assert.Nil(t, al.Ability.Cost.Mana)
	assert.Empty(t, al.Ability.Cost.Effects)
	require.Len(t, al.Ability.Effects, 1)
	add, ok := al.Ability.Effects[0].(*core.AddMana)
	require.True(t, ok)
	assert.Equal(t, []core.ManaSymbol{{Kind: core.ManaColored, Color: core.Green}}, add.Mana)
}

func TestParseLine_DestroyTarget(t *testing.T) {
	effects := parseStatement(t, "Destroy target creature.")

	require.Len(t, effects, 1)
	d, ok := effects[0].(*core.Destroy)
	require.True(t, ok)
	ot, ok := d.Target.(*core.ObjectTarget)
	require.True(t, ok)
	assert.Contains(t, ot.Filter.CardTypes, core.Creature)
	require.NotNil(t, ot.TargetSpan, "a 'target' phrase records its span")
	assert.True(t, core.IsTargeted(d.Target))
}

func TestParseLine_LeadingIf(t *testing.T) {
	effects := parseStatement(t, "If you control a Wizard, counter target spell.")

	require.Len(t, effects, 1)
	cond, ok := effects[0].(*core.Conditional)
	require.True(t, ok)
	pc, ok := cond.Predicate.(*core.PlayerControls)
	require.True(t, ok)
	assert.Equal(t, core.You, pc.Player)
	assert.Contains(t, pc.Filter.Subtypes, core.Subtype("wizard"))
	require.Len(t, cond.IfTrue, 1)
	counter, ok := cond.IfTrue[0].(*core.Counter)
	require.True(t, ok)
	assert.IsType(t, &core.SpellTarget{}, counter.Target)
	assert.Empty(t, cond.IfFalse)
}

func TestParseLine_SacrificeAnother(t *testing.T) {
	effects := parseStatement(t, "Sacrifice another creature.")

	require.Len(t, effects, 1)
	s, ok := effects[0].(*core.Sacrifice)
	require.True(t, ok)
	assert.True(t, s.Filter.Other)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, core.PlayerAstYou, s.Player)
	assert.Contains(t, s.Filter.CardTypes, core.Creature)
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantMsg string
	}{
		{"empty", "", ErrEmptyClause},
		{"punctuation only", ", .", ErrEmptyClause},
		{"no verb", "Blorp the flumph.", "blorp the flumph"},
		{"standalone restriction", "Activate only as a sorcery.", "activate only as a sorcery"},
	}
	p := newTestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseLine(tt.line, 0)
			require.Error(t, err)
			assert.True(t, IsParseError(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseLine_Deterministic(t *testing.T) {
	lines := []string{
		"Whenever you cast a creature spell, draw a card.",
		"{2}{B}, {T}, Sacrifice a creature: Target player loses 2 life. You gain 2 life.",
		"Creatures you control get +1/+1.",
		"If you control a Wizard, counter target spell.",
		"Destroy all creatures. They can't be regenerated.",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			first, err := newTestParser().ParseLine(line, 0)
			require.NoError(t, err)
			for i := 0; i < 5; i++ {
				again, err := newTestParser().ParseLine(line, 0)
				require.NoError(t, err)
				if diff := cmp.Diff(first, again); diff != "" {
					t.Fatalf("parse %d differs (-first +again):\n%s", i, diff)
				}
			}
		})
	}
}

func TestParseCardLine_SubstitutesName(t *testing.T) {
	p := newTestParser()

	res, err := p.ParseCardLine("When Grizzly Bears enters, draw a card.", 0, "Grizzly Bears", "")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "When this enters, draw a card.", res.Normalized.Normalized)

	tl, ok := res.Line.(*core.TriggeredLine)
	require.True(t, ok)
	zc, ok := tl.Trigger.(*core.ZoneChange)
	require.True(t, ok)
	assert.True(t, zc.Self)
	assert.Equal(t, core.ZoneBattlefield, zc.To)
}

func TestParseCardLine_ReminderOnly(t *testing.T) {
	res, err := newTestParser().ParseCardLine("(This creature can't block.)", 0, "X", "")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestParseCardLine_TagSpans(t *testing.T) {
	line := "Exile target creature. You gain 3 life."
	res, err := newTestParser().ParseCardLine(line, 0, "Swords to Plowshares", "")
	require.NoError(t, err)
	require.NotNil(t, res)

	spans := res.Tags[core.TargetTag]
	require.Len(t, spans, 1)
	assert.Equal(t, "target", line[spans[0].Start:spans[0].End])
}

func TestParseEffects(t *testing.T) {
	effects, err := newTestParser().ParseEffects("Draw a card. Then discard a card.", 0)
	require.NoError(t, err)
	require.Len(t, effects, 2)
	assert.IsType(t, &core.Draw{}, effects[0])
	assert.IsType(t, &core.Discard{}, effects[1])
}

func TestConfigFromEnv(t *testing.T) {
	env := map[string]string{
		EnvTrace:            "yes",
		EnvStackTrace:       "0",
		EnvAllowUnsupported: "TRUE",
	}
	cfg := ConfigFromEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.Equal(t, Config{Trace: true, StackTrace: false, AllowUnsupported: true}, cfg)

	for _, v := range []string{"1", "true", "TRUE", "yes", "YES"} {
		assert.True(t, FlagEnabled(v), v)
	}
	for _, v := range []string{"", "0", "True", "on", "y"} {
		assert.False(t, FlagEnabled(v), v)
	}
}

func TestTraceDoesNotChangeOutcome(t *testing.T) {
	line := "Whenever you cast a creature spell, draw a card."
	plain, err := New(Config{}, nil).ParseLine(line, 0)
	require.NoError(t, err)
	traced, err := New(Config{Trace: true, StackTrace: true}, nil).ParseLine(line, 0)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(plain, traced))
}
