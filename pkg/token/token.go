// Package token defines the lexical tokens of oracle text.
//
// A line of rules text is reduced to a flat stream of lower-cased words and
// the four punctuation marks the grammar cares about. Everything else is
// dropped by the tokenizer.
package token

import (
	"fmt"
	"strings"
)

// Kind represents the type of a lexical token.
type Kind uint8

const (
	// Word is a lower-cased run of letters, digits, and the inner
	// punctuation of counters ("+1/+1") and hybrid mana ("w/u").
	Word Kind = iota
	Comma
	Period
	Colon
	Semicolon
)

var kindNames = [...]string{
	Word:      "WORD",
	Comma:     ",",
	Period:    ".",
	Colon:     ":",
	Semicolon: ";",
}

// String returns a human-readable representation of the token kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("KIND(%d)", k)
}

// Token is a single lexical token.
//
// Tokens are produced once per line and shared read-only by every later
// stage; clauses are sub-slices of the line's token slice.
type Token struct {
	Kind Kind
	Text string // lower-cased word text; empty for punctuation
	Span TextSpan
	// Quoted is set for tokens inside a double-quoted granted ability, so
	// sentence splitting can leave "..." bodies intact.
	Quoted bool
}

// NewWord creates a word token.
func NewWord(text string, span TextSpan) Token {
	return Token{Kind: Word, Text: text, Span: span}
}

// IsWord reports whether the token is the given word.
func (t Token) IsWord(w string) bool {
	return t.Kind == Word && t.Text == w
}

// IsAnyWord reports whether the token is one of the given words.
func (t Token) IsAnyWord(words ...string) bool {
	if t.Kind != Word {
		return false
	}
	for _, w := range words {
		if t.Text == w {
			return true
		}
	}
	return false
}

// AsWord returns the word text and whether the token is a word.
func (t Token) AsWord() (string, bool) {
	if t.Kind != Word {
		return "", false
	}
	return t.Text, true
}

// String renders the token for diagnostics.
func (t Token) String() string {
	if t.Kind == Word {
		return t.Text
	}
	return t.Kind.String()
}

// Words returns the word texts of the tokens, skipping punctuation.
func Words(toks []Token) []string {
	words := make([]string, 0, len(toks))
	for _, t := range toks {
		if t.Kind == Word {
			words = append(words, t.Text)
		}
	}
	return words
}

// Join renders tokens back into a readable clause, used in error messages.
func Join(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if t.Kind == Word {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.Text)
			continue
		}
		b.WriteString(t.Kind.String())
	}
	return b.String()
}
