package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	toks := []Token{
		NewWord("destroy", TextSpan{Start: 0, End: 7}),
		NewWord("target", TextSpan{Start: 8, End: 14}),
		NewWord("creature", TextSpan{Start: 15, End: 23}),
		{Kind: Period, Span: TextSpan{Start: 23, End: 24}},
	}

	assert.Equal(t, "destroy target creature.", Join(toks))
	assert.Equal(t, []string{"destroy", "target", "creature"}, Words(toks))
	assert.Equal(t, TextSpan{Start: 0, End: 24}, SpanOf(toks))
}

func TestTokenPredicates(t *testing.T) {
	tok := NewWord("counter", TextSpan{})

	assert.True(t, tok.IsWord("counter"))
	assert.True(t, tok.IsAnyWord("draw", "counter"))
	assert.False(t, Token{Kind: Comma}.IsWord("counter"))

	w, ok := tok.AsWord()
	assert.True(t, ok)
	assert.Equal(t, "counter", w)
}

func TestSpanCover(t *testing.T) {
	a := TextSpan{Line: 1, Start: 4, End: 8}
	b := TextSpan{Line: 1, Start: 2, End: 5}

	assert.Equal(t, TextSpan{Line: 1, Start: 2, End: 8}, a.Cover(b))
	assert.Equal(t, a, a.Cover(Synthetic()))
	assert.True(t, a.Contains(4))
	assert.False(t, a.Contains(8))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "WORD", Word.String())
	assert.Equal(t, ";", Semicolon.String())
	assert.Equal(t, "KIND(9)", Kind(9).String())
}
