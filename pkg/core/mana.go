package core

import (
	"strconv"
	"strings"
)

// ManaSymbolKind classifies a mana symbol.
type ManaSymbolKind uint8

// ManaSymbolKind constants.
const (
	ManaColored ManaSymbolKind = iota
	ManaGeneric
	ManaColorless
	ManaHybrid        // {W/U}
	ManaTwoHybrid     // {2/W}
	ManaPhyrexian     // {W/P}
	ManaColorlessHyb  // {C/W}
	ManaX
	ManaSnow
)

// ManaSymbol is one printed mana symbol.
type ManaSymbol struct {
	Kind    ManaSymbolKind
	Color   Color // primary color for colored, hybrid and phyrexian symbols
	Color2  Color // second color of a two-color hybrid
	Generic int   // amount for generic symbols
}

// String renders the symbol in brace notation.
func (s ManaSymbol) String() string {
	switch s.Kind {
	case ManaColored:
		return "{" + colorLetter(s.Color) + "}"
	case ManaGeneric:
		return "{" + strconv.Itoa(s.Generic) + "}"
	case ManaColorless:
		return "{C}"
	case ManaHybrid:
		return "{" + colorLetter(s.Color) + "/" + colorLetter(s.Color2) + "}"
	case ManaTwoHybrid:
		return "{2/" + colorLetter(s.Color) + "}"
	case ManaPhyrexian:
		return "{" + colorLetter(s.Color) + "/P}"
	case ManaColorlessHyb:
		return "{C/" + colorLetter(s.Color) + "}"
	case ManaX:
		return "{X}"
	case ManaSnow:
		return "{S}"
	}
	return "{?}"
}

func colorLetter(c Color) string {
	switch c {
	case White:
		return "W"
	case Blue:
		return "U"
	case Black:
		return "B"
	case Red:
		return "R"
	case Green:
		return "G"
	}
	return "?"
}

// ColorFromLetter resolves a single WUBRG letter.
func ColorFromLetter(letter string) (Color, bool) {
	switch strings.ToLower(letter) {
	case "w":
		return White, true
	case "u":
		return Blue, true
	case "b":
		return Black, true
	case "r":
		return Red, true
	case "g":
		return Green, true
	}
	return "", false
}

// ManaCost is an ordered list of mana symbols.
type ManaCost struct {
	Symbols []ManaSymbol
}

// String renders the cost in brace notation.
func (c ManaCost) String() string {
	var b strings.Builder
	for _, s := range c.Symbols {
		b.WriteString(s.String())
	}
	return b.String()
}

// ManaValue returns the converted mana value, counting X as zero.
func (c ManaCost) ManaValue() int {
	total := 0
	for _, s := range c.Symbols {
		switch s.Kind {
		case ManaGeneric:
			total += s.Generic
		case ManaTwoHybrid:
			total += 2
		case ManaX:
		default:
			total++
		}
	}
	return total
}

// IsEmpty reports whether the cost has no symbols.
func (c ManaCost) IsEmpty() bool {
	return len(c.Symbols) == 0
}
