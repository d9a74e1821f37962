package parser

import (
	"github.com/maigus-labs/maigus/pkg/token"
)

// Clause helpers. Clauses are sub-slices of a line's token slice and are
// never mutated; helpers that need new tokens build new slices.

func wordsOf(toks []token.Token) []string {
	return token.Words(toks)
}

// hasPrefixWords reports whether toks begin with the given words.
func hasPrefixWords(toks []token.Token, ws ...string) bool {
	if len(toks) < len(ws) {
		return false
	}
	for i, w := range ws {
		if !toks[i].IsWord(w) {
			return false
		}
	}
	return true
}

// trimPrefixWords removes the given leading words.
func trimPrefixWords(toks []token.Token, ws ...string) ([]token.Token, bool) {
	if !hasPrefixWords(toks, ws...) {
		return toks, false
	}
	return toks[len(ws):], true
}

// hasSuffixWords reports whether toks end with the given words.
func hasSuffixWords(toks []token.Token, ws ...string) bool {
	if len(toks) < len(ws) {
		return false
	}
	off := len(toks) - len(ws)
	for i, w := range ws {
		if !toks[off+i].IsWord(w) {
			return false
		}
	}
	return true
}

// trimSuffixWords removes the given trailing words.
func trimSuffixWords(toks []token.Token, ws ...string) ([]token.Token, bool) {
	if !hasSuffixWords(toks, ws...) {
		return toks, false
	}
	return toks[:len(toks)-len(ws)], true
}

// indexWord returns the index of the first token equal to any of ws, or -1.
func indexWord(toks []token.Token, ws ...string) int {
	for i, t := range toks {
		if t.IsAnyWord(ws...) {
			return i
		}
	}
	return -1
}

// indexSeq returns the index where the word sequence ws begins, or -1.
func indexSeq(toks []token.Token, ws ...string) int {
	for i := 0; i+len(ws) <= len(toks); i++ {
		if hasPrefixWords(toks[i:], ws...) {
			return i
		}
	}
	return -1
}

// lastIndexSeq returns the last index where ws begins, or -1.
func lastIndexSeq(toks []token.Token, ws ...string) int {
	for i := len(toks) - len(ws); i >= 0; i-- {
		if hasPrefixWords(toks[i:], ws...) {
			return i
		}
	}
	return -1
}

func indexKind(toks []token.Token, kind token.Kind) int {
	for i, t := range toks {
		if t.Kind == kind && !t.Quoted {
			return i
		}
	}
	return -1
}

// trimPunct removes leading and trailing punctuation.
func trimPunct(toks []token.Token) []token.Token {
	for len(toks) > 0 && toks[0].Kind != token.Word {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].Kind != token.Word {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// splitOnKind splits at unquoted punctuation of the given kind, dropping
// empty pieces.
func splitOnKind(toks []token.Token, kind token.Kind) [][]token.Token {
	var out [][]token.Token
	start := 0
	for i, t := range toks {
		if t.Kind == kind && !t.Quoted {
			if piece := trimPunct(toks[start:i]); len(piece) > 0 {
				out = append(out, piece)
			}
			start = i + 1
		}
	}
	if piece := trimPunct(toks[start:]); len(piece) > 0 {
		out = append(out, piece)
	}
	return out
}

// splitSentences splits a line into sentences at unquoted periods.
func splitSentences(toks []token.Token) [][]token.Token {
	return splitOnKind(toks, token.Period)
}

// splitWords splits at each occurrence of any of the separator words.
func splitWords(toks []token.Token, seps ...string) [][]token.Token {
	var out [][]token.Token
	start := 0
	for i, t := range toks {
		if t.IsAnyWord(seps...) && !t.Quoted {
			out = append(out, toks[start:i])
			start = i + 1
		}
	}
	return append(out, toks[start:])
}

// splitList splits "a, b, or c" / "a and b" / "a or b" lists into items.
// Empty items are dropped.
func splitList(toks []token.Token, conj ...string) [][]token.Token {
	var out [][]token.Token
	start := 0
	flush := func(end int) {
		if piece := trimPunct(toks[start:end]); len(piece) > 0 {
			out = append(out, piece)
		}
	}
	for i, t := range toks {
		if (t.Kind == token.Comma && !t.Quoted) || t.IsAnyWord(conj...) {
			flush(i)
			start = i + 1
		}
	}
	flush(len(toks))
	return out
}

// synthWord creates a word token that stands in for a phrase, carrying the
// phrase's span.
func synthWord(text string, span token.TextSpan) token.Token {
	return token.NewWord(text, span)
}

// concat joins token slices into a new slice.
func concat(parts ...[]token.Token) []token.Token {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]token.Token, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// spanPtr returns a pointer to the span covering toks.
func spanPtr(toks ...token.Token) *token.TextSpan {
	s := token.SpanOf(toks)
	return &s
}
