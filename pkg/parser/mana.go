package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/maigus-labs/maigus/pkg/core"
	"github.com/maigus-labs/maigus/pkg/token"
)

// Printed mana-cost grammar:
//
//	cost   → symbol*
//	symbol → '{' part ( '/' part )? '}'
//	part   → Int | Letter
type manaCostAST struct {
	Symbols []*manaSymbolAST `parser:"@@*"`
}

type manaSymbolAST struct {
	First  string `parser:"'{' @(Int | Letter)"`
	Second string `parser:"( '/' @(Int | Letter) )? '}'"`
}

var manaCostParser = participle.MustBuild[manaCostAST](
	participle.Lexer(plexer.MustSimple([]plexer.SimpleRule{
		{Name: "Int", Pattern: `\d+`},
		{Name: "Letter", Pattern: `[A-Za-z]`},
		{Name: "Punct", Pattern: `[{}/]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// ParseManaCost parses a printed mana cost such as "{2}{W/U}{X}". An empty
// string is an empty cost.
func ParseManaCost(s string) (core.ManaCost, error) {
	if strings.TrimSpace(s) == "" {
		return core.ManaCost{}, nil
	}
	ast, err := manaCostParser.ParseString("", s)
	if err != nil {
		return core.ManaCost{}, parseErrorf("%s: %v (clause: '%s')", ErrUnsupportedCost, err, s)
	}
	cost := core.ManaCost{Symbols: make([]core.ManaSymbol, 0, len(ast.Symbols))}
	for _, sym := range ast.Symbols {
		ms, ok := manaSymbolFromParts(strings.ToLower(sym.First), strings.ToLower(sym.Second))
		if !ok {
			return core.ManaCost{}, parseErrorf("%s: bad mana symbol (clause: '%s')", ErrUnsupportedCost, s)
		}
		cost.Symbols = append(cost.Symbols, ms)
	}
	return cost, nil
}

// manaSymbolFromParts builds a symbol from the lower-cased halves of a
// braced symbol.
func manaSymbolFromParts(first, second string) (core.ManaSymbol, bool) {
	if second == "" {
		switch first {
		case "c":
			return core.ManaSymbol{Kind: core.ManaColorless}, true
		case "x":
			return core.ManaSymbol{Kind: core.ManaX}, true
		case "s":
			return core.ManaSymbol{Kind: core.ManaSnow}, true
		}
		if c, ok := core.ColorFromLetter(first); ok && len(first) == 1 {
			return core.ManaSymbol{Kind: core.ManaColored, Color: c}, true
		}
		if n, err := strconv.Atoi(first); err == nil {
			return core.ManaSymbol{Kind: core.ManaGeneric, Generic: n}, true
		}
		return core.ManaSymbol{}, false
	}

	c2, ok2 := core.ColorFromLetter(second)
	switch {
	case first == "2" && ok2:
		return core.ManaSymbol{Kind: core.ManaTwoHybrid, Color: c2}, true
	case first == "c" && ok2:
		return core.ManaSymbol{Kind: core.ManaColorlessHyb, Color: c2}, true
	}
	c1, ok1 := core.ColorFromLetter(first)
	switch {
	case ok1 && second == "p":
		return core.ManaSymbol{Kind: core.ManaPhyrexian, Color: c1}, true
	case ok1 && ok2 && c1 != c2:
		return core.ManaSymbol{Kind: core.ManaHybrid, Color: c1, Color2: c2}, true
	}
	return core.ManaSymbol{}, false
}

// manaSymbolWord interprets a tokenized mana symbol ("g", "2", "w/u").
// Single letters other than mana letters are not symbols.
func manaSymbolWord(t token.Token) (core.ManaSymbol, bool) {
	if t.Kind != token.Word {
		return core.ManaSymbol{}, false
	}
	first, second, _ := strings.Cut(t.Text, "/")
	if second == "" && len(first) > 2 {
		return core.ManaSymbol{}, false
	}
	return manaSymbolFromParts(first, second)
}

// parseManaWords consumes a run of mana symbols at the start of toks.
func parseManaWords(toks []token.Token) ([]core.ManaSymbol, []token.Token) {
	var out []core.ManaSymbol
	for len(toks) > 0 {
		ms, ok := manaSymbolWord(toks[0])
		if !ok {
			break
		}
		out = append(out, ms)
		toks = toks[1:]
	}
	return out, toks
}

// isTapSymbol reports whether t is the tokenized {T}.
func isTapSymbol(t token.Token) bool { return t.IsWord("t") }

// isUntapSymbol reports whether t is the tokenized {Q}.
func isUntapSymbol(t token.Token) bool { return t.IsWord("q") }
