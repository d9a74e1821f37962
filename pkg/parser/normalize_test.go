package parser

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maigus-labs/maigus/pkg/token"
)

func TestNormalizeLineForParse(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		fullName  string
		shortName string
		want      string
		skip      bool
	}{
		{name: "full name", line: "When Grizzly Bears enters, draw a card.", fullName: "Grizzly Bears", want: "When this enters, draw a card."},
		{name: "short name", line: "Ragavan deals 1 damage to any target.", fullName: "Ragavan, Nimble Pilferer", shortName: "Ragavan", want: "this deals 1 damage to any target."},
		{name: "name inside word", line: "Bearsong is not Bears.", fullName: "Bears", want: "Bearsong is not this."},
		{name: "reminder text", line: "Flying (This creature can't be blocked except by creatures with flying or reach.)", want: "Flying"},
		{name: "ability word", line: "Landfall — Whenever a land you control enters, you gain 1 life.", want: "Whenever a land you control enters, you gain 1 life."},
		{name: "payload label kept", line: "Equip — {2}", want: "Equip — {2}"},
		{name: "saga chapters kept", line: "I, II — Draw a card.", want: "I, II — Draw a card."},
		{name: "inline mana ability", line: "({T}: Add {G}.)", want: "{T}: Add {G}."},
		{name: "blank", line: "   ", skip: true},
		{name: "reminder only", line: "(Exile it at end of turn.)", skip: true},
		{name: "rules-word name at sentence start", line: "Counter target spell.", fullName: "Counter", want: "Counter target spell."},
		{name: "rules-word name mid sentence", line: "Sacrifice Counter.", fullName: "Counter", want: "Sacrifice this."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nl, ok := NormalizeLineForParse(tt.line, tt.fullName, tt.shortName)
			if tt.skip {
				assert.False(t, ok)
				assert.Nil(t, nl)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, nl.Normalized)
			assert.Equal(t, tt.line, nl.Original)
			assert.Len(t, nl.CharMap, utf8.RuneCountInString(nl.Normalized))
		})
	}
}

func TestNormalizedLine_CharMapMonotonic(t *testing.T) {
	nl, ok := NormalizeLineForParse("When Grizzly Bears enters, Grizzly Bears deals 2 damage.", "Grizzly Bears", "")
	require.True(t, ok)
	for i := 1; i < len(nl.CharMap); i++ {
		assert.Less(t, nl.CharMap[i-1], nl.CharMap[i], "index %d", i)
	}
}

func TestNormalizedLine_MapSpan(t *testing.T) {
	line := "When Grizzly Bears enters, destroy target creature."
	nl, ok := NormalizeLineForParse(line, "Grizzly Bears", "")
	require.True(t, ok)

	for _, tok := range Tokenize(nl.Normalized, 0) {
		mapped := nl.MapSpan(tok.Span)
		require.GreaterOrEqual(t, mapped.Start, 0)
		require.LessOrEqual(t, mapped.End, len(line))
		require.LessOrEqual(t, mapped.Start, mapped.End)
	}

	// "this" covers the whole substituted name.
	toks := Tokenize(nl.Normalized, 0)
	require.True(t, toks[1].IsWord("this"))
	mapped := nl.MapSpan(toks[1].Span)
	assert.Equal(t, "Grizzly Bears", line[mapped.Start:mapped.End])

	// Words after the substitution map back onto themselves.
	mapped = nl.MapSpan(toks[len(toks)-2].Span)
	assert.Equal(t, "creature", line[mapped.Start:mapped.End])
}

func TestNormalizedLine_MapSpanAfterStrip(t *testing.T) {
	line := "Landfall — Whenever a land you control enters, draw a card."
	nl, ok := NormalizeLineForParse(line, "", "")
	require.True(t, ok)

	toks := Tokenize(nl.Normalized, 0)
	mapped := nl.MapSpan(toks[0].Span)
	assert.Equal(t, "Whenever", line[mapped.Start:mapped.End])
	assert.Equal(t, len("Landfall — "), nl.OriginalOffset(0))

	invalid := token.TextSpan{}
	assert.Equal(t, invalid, nl.MapSpan(invalid))
}
