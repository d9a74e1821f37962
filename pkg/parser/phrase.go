package parser

import (
	"fmt"
	"strings"

	"github.com/maigus-labs/maigus/pkg/token"
)

// phrase is a compiled word pattern matched against a whole clause.
//
// Pattern syntax (space separated):
//
//	word      the literal word
//	a|b       either word
//	(a|b)     optional word
//	?         any one word (captured)
//	#         a number word (captured)
//	*         one or more tokens (captured, shortest first)
//	, . : ;   literal punctuation
type phrase struct {
	src   string
	parts []phrasePart
}

type partKind uint8

const (
	partLit partKind = iota
	partAny
	partNum
	partRest
	partPunct
)

type phrasePart struct {
	kind     partKind
	alts     []string
	optional bool
	punct    token.Kind
}

// mustPhrase compiles a pattern; it panics on malformed patterns and is
// meant for package-level tables.
func mustPhrase(src string) phrase {
	ph := phrase{src: src}
	for _, f := range strings.Fields(src) {
		switch f {
		case "?":
			ph.parts = append(ph.parts, phrasePart{kind: partAny})
		case "#":
			ph.parts = append(ph.parts, phrasePart{kind: partNum})
		case "*":
			ph.parts = append(ph.parts, phrasePart{kind: partRest})
		case ",":
			ph.parts = append(ph.parts, phrasePart{kind: partPunct, punct: token.Comma})
		case ".":
			ph.parts = append(ph.parts, phrasePart{kind: partPunct, punct: token.Period})
		case ":":
			ph.parts = append(ph.parts, phrasePart{kind: partPunct, punct: token.Colon})
		case ";":
			ph.parts = append(ph.parts, phrasePart{kind: partPunct, punct: token.Semicolon})
		default:
			optional := strings.HasPrefix(f, "(") && strings.HasSuffix(f, ")")
			if optional {
				f = f[1 : len(f)-1]
			}
			if f == "" || strings.ContainsAny(f, "()") {
				panic(fmt.Sprintf("parser: malformed phrase %q", src))
			}
			ph.parts = append(ph.parts, phrasePart{kind: partLit, alts: strings.Split(f, "|"), optional: optional})
		}
	}
	return ph
}

// match matches the whole clause and returns the captures in order.
func (ph phrase) match(toks []token.Token) ([][]token.Token, bool) {
	var caps [][]token.Token
	if matchParts(ph.parts, toks, &caps) {
		return caps, true
	}
	return nil, false
}

// matches reports whether the clause matches.
func (ph phrase) matches(toks []token.Token) bool {
	_, ok := ph.match(toks)
	return ok
}

func matchParts(parts []phrasePart, toks []token.Token, caps *[][]token.Token) bool {
	if len(parts) == 0 {
		return len(toks) == 0
	}
	p := parts[0]
	switch p.kind {
	case partLit:
		if len(toks) > 0 && toks[0].IsAnyWord(p.alts...) && matchParts(parts[1:], toks[1:], caps) {
			return true
		}
		return p.optional && matchParts(parts[1:], toks, caps)
	case partPunct:
		return len(toks) > 0 && toks[0].Kind == p.punct && matchParts(parts[1:], toks[1:], caps)
	case partAny, partNum:
		if len(toks) == 0 || toks[0].Kind != token.Word {
			return false
		}
		if p.kind == partNum {
			if _, ok := parseNumberWord(toks[0].Text); !ok {
				return false
			}
		}
		saved := len(*caps)
		*caps = append(*caps, toks[:1])
		if matchParts(parts[1:], toks[1:], caps) {
			return true
		}
		*caps = (*caps)[:saved]
		return false
	case partRest:
		for n := 1; n <= len(toks); n++ {
			saved := len(*caps)
			*caps = append(*caps, toks[:n])
			if matchParts(parts[1:], toks[n:], caps) {
				return true
			}
			*caps = (*caps)[:saved]
		}
		return false
	}
	return false
}

// firstMatch returns the index of the first phrase in the list matching
// toks, with its captures.
func firstMatch(phrases []phrase, toks []token.Token) (int, [][]token.Token) {
	for i, ph := range phrases {
		if caps, ok := ph.match(toks); ok {
			return i, caps
		}
	}
	return -1, nil
}
