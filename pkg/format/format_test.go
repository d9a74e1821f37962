package format

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/parser"
	"github.com/maigus-labs/maigus/pkg/token"
)

func tapForGreen() core.LineAst {
	return &core.AbilityLine{Ability: core.Ability{
		Kind: core.ManaAbility,
		Cost: core.Cost{Tap: true},
		Effects: []core.Effect{&core.AddMana{
			Mana:   []core.ManaSymbol{{Kind: core.ManaColored, Color: core.Green}},
			Player: core.PlayerAstYou,
		}},
	}}
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		line     core.LineAst
		expected string
	}{
		{
			name: "inline statement",
			line: &core.StatementLine{Effects: []core.Effect{
				&core.Draw{Count: core.FixedValue(1), Player: core.PlayerAstYou},
			}},
			expected: `StatementLine
  effects: [Draw{count: Fixed{n: 1}, player: you}]
`,
		},
		{
			name: "nested block",
			line: tapForGreen(),
			expected: `AbilityLine
  ability: Ability
    kind: mana
    cost: Cost{tap: true}
    effects: [AddMana{mana: [{G}], player: you}]
`,
		},
		{
			name: "zero fields dropped",
			line: &core.TriggeredLine{
				Trigger: &core.SagaChapter{Chapters: []int{1}},
				Effects: []core.Effect{&core.Proliferate{}},
			},
			expected: `TriggeredLine
  trigger: SagaChapter{chapters: [1]}
  effects: [Proliferate{}]
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Text(tt.line))
		})
	}
}

func TestText_ListOfBlocks(t *testing.T) {
	long := &core.Mode{Text: "Target player draws two cards and loses two life this turn.", Effects: []core.Effect{
		&core.Draw{Count: core.FixedValue(2), Player: core.PlayerAstTarget},
	}}
	line := &core.ModalLine{Min: 1, Max: 1, Modes: []core.Mode{*long}}

	expected := `ModalLine
  min: 1
  max: 1
  modes:
    - Mode
      text: "Target player draws two cards and loses two life this turn."
      effects: [Draw{count: Fixed{n: 2}, player: target}]
`
	assert.Equal(t, expected, Text(line))
}

func TestEffects(t *testing.T) {
	out := Effects([]core.Effect{
		&core.Draw{Count: core.FixedValue(1), Player: core.PlayerAstYou},
		&core.Discard{Count: core.FixedValue(1), Player: core.PlayerAstYou},
	})
	assert.Equal(t, "- Draw{count: Fixed{n: 1}, player: you}\n- Discard{count: Fixed{n: 1}, player: you}\n", out)
}

func TestJSON(t *testing.T) {
	b, err := JSON(tapForGreen())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "AbilityLine", got["type"])
	ability, ok := got["ability"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mana", ability["kind"])
	effects, ok := ability["effects"].([]any)
	require.True(t, ok)
	require.Len(t, effects, 1)
	add := effects[0].(map[string]any)
	assert.Equal(t, "AddMana", add["type"])
	assert.Equal(t, []any{"{G}"}, add["mana"])
}

func TestJSON_FieldOrder(t *testing.T) {
	b, err := json.Marshal(Tree(&core.Draw{Count: core.FixedValue(3), Player: core.PlayerAstYou}))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"Draw","count":{"type":"Fixed","n":3},"player":"you"}`, string(b))
}

func TestFieldName(t *testing.T) {
	tests := map[string]string{
		"IfTrue":        "if_true",
		"LoyaltyX":      "loyalty_x",
		"N":             "n",
		"TargetSpan":    "target_span",
		"InterveningIf": "intervening_if",
		"Color2":        "color2",
	}
	for in, want := range tests {
		assert.Equal(t, want, fieldName(in), in)
	}
}

func TestText_Deterministic(t *testing.T) {
	p := parser.New(parser.Config{}, nil)
	for _, line := range []string{
		"Whenever you cast a creature spell, draw a card.",
		"{2}{B}, {T}, Sacrifice a creature: Draw two cards.",
		"Creatures you control get +1/+1.",
	} {
		first, err := p.ParseLine(line, 0)
		require.NoError(t, err)
		again, err := p.ParseLine(line, 0)
		require.NoError(t, err)
		assert.Equal(t, Text(first), Text(again), line)
	}
}

func TestTags(t *testing.T) {
	original := "Exile target creature."
	tags := map[core.TagKey][]token.TextSpan{
		core.TargetTag: {{Start: 6, End: 12}},
		core.ItTag:     {{}},
	}
	assert.Equal(t, "__it__ [0,0)\ntarget [6,12) \"target\"\n", Tags(original, tags))
	assert.Empty(t, Tags(original, nil))
}
