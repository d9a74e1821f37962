package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/maigus-labs/maigus/pkg/token"
)

// selfReference replaces the card's own name in normalized text.
const selfReference = "this"

// NormalizedLine is a line prepared for parsing together with a map back to
// the original text. CharMap[i] is the index of the original character that
// normalized character i came from.
type NormalizedLine struct {
	Original   string
	Normalized string
	CharMap    []int

	origOffsets []int // byte offset of each original rune, plus len(Original)
	normOffsets []int // byte offset of each normalized rune, plus len(Normalized)
}

// NormalizeLineForParse prepares one line of card text: it substitutes the
// card's full and short names with "this", strips a leading ability-word
// label and removes parenthesized reminder text. It returns false for blank
// lines and lines that were only reminder text.
func NormalizeLineForParse(line, fullName, shortName string) (*NormalizedLine, bool) {
	if strings.TrimSpace(line) == "" {
		return nil, false
	}

	rs := newRuneText(line)
	rs = rs.replaceName(fullName)
	if shortName != "" && shortName != fullName {
		rs = rs.replaceName(shortName)
	}
	rs = rs.stripAbilityWord()
	labeled := rs

	stripped := rs.stripReminders().trimSpace()
	if len(stripped.runes) == 0 {
		// A fully parenthesized line survives only when it is an inline
		// ability such as "({T}: Add {G}.)".
		inner, ok := labeled.trimSpace().unwrapParens()
		if !ok || !strings.ContainsRune(string(inner.runes), ':') {
			return nil, false
		}
		stripped = inner.trimSpace()
		if len(stripped.runes) == 0 {
			return nil, false
		}
	}
	return newNormalizedLine(line, stripped), true
}

func newNormalizedLine(original string, rt runeText) *NormalizedLine {
	nl := &NormalizedLine{
		Original:   original,
		Normalized: string(rt.runes),
		CharMap:    rt.cmap,
	}
	if len(nl.CharMap) != utf8.RuneCountInString(nl.Normalized) {
		panic("parser: char map length does not match normalized text")
	}
	nl.origOffsets = runeOffsets(original)
	nl.normOffsets = runeOffsets(nl.Normalized)
	return nl
}

func runeOffsets(s string) []int {
	offs := make([]int, 0, len(s)+1)
	for i := range s {
		offs = append(offs, i)
	}
	return append(offs, len(s))
}

// normRuneIndex converts a normalized byte offset to a rune index.
func (nl *NormalizedLine) normRuneIndex(byteOff int) int {
	lo, hi := 0, len(nl.normOffsets)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if nl.normOffsets[mid] < byteOff {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// OriginalOffset maps a byte offset in Normalized to a byte offset in Original.
func (nl *NormalizedLine) OriginalOffset(normByte int) int {
	idx := nl.normRuneIndex(normByte)
	if idx >= len(nl.CharMap) {
		if len(nl.CharMap) == 0 {
			return 0
		}
		return nl.origOffsets[nl.CharMap[len(nl.CharMap)-1]+1]
	}
	return nl.origOffsets[nl.CharMap[idx]]
}

// MapSpan maps a span over Normalized to the corresponding span over Original.
func (nl *NormalizedLine) MapSpan(s token.TextSpan) token.TextSpan {
	if !s.IsValid() || len(nl.CharMap) == 0 {
		return s
	}
	startIdx := nl.normRuneIndex(s.Start)
	endIdx := nl.normRuneIndex(s.End) - 1
	if startIdx >= len(nl.CharMap) {
		startIdx = len(nl.CharMap) - 1
	}
	if endIdx >= len(nl.CharMap) {
		endIdx = len(nl.CharMap) - 1
	}
	if endIdx < startIdx {
		endIdx = startIdx
	}
	return token.TextSpan{
		Line:  s.Line,
		Start: nl.origOffsets[nl.CharMap[startIdx]],
		End:   nl.origOffsets[nl.CharMap[endIdx]+1],
	}
}

// runeText is text under normalization with its character map.
type runeText struct {
	runes []rune
	cmap  []int
}

func newRuneText(s string) runeText {
	rs := []rune(s)
	cmap := make([]int, len(rs))
	for i := range cmap {
		cmap[i] = i
	}
	return runeText{runes: rs, cmap: cmap}
}

func (rt runeText) slice(from, to int) runeText {
	return runeText{runes: rt.runes[from:to], cmap: rt.cmap[from:to]}
}

func (rt runeText) trimSpace() runeText {
	from, to := 0, len(rt.runes)
	for from < to && unicode.IsSpace(rt.runes[from]) {
		from++
	}
	for to > from && unicode.IsSpace(rt.runes[to-1]) {
		to--
	}
	return rt.slice(from, to)
}

// replaceName substitutes whole-word occurrences of name with "this". The
// four replacement characters map onto the matched name in non-decreasing
// order, the last one onto the name's final character.
func (rt runeText) replaceName(name string) runeText {
	name = strings.TrimSpace(name)
	if name == "" {
		return rt
	}
	nameRunes := []rune(name)
	guarded := collidesWithRulesWord(name)

	out := runeText{runes: make([]rune, 0, len(rt.runes)), cmap: make([]int, 0, len(rt.cmap))}
	for i := 0; i < len(rt.runes); {
		if rt.matchesNameAt(i, nameRunes, guarded) {
			L := len(nameRunes)
			n := len(selfReference)
			base := rt.cmap[i]
			last := rt.cmap[i+L-1]
			for j, r := range selfReference {
				out.runes = append(out.runes, r)
				out.cmap = append(out.cmap, base+j*(last-base)/(n-1))
			}
			i += L
			continue
		}
		out.runes = append(out.runes, rt.runes[i])
		out.cmap = append(out.cmap, rt.cmap[i])
		i++
	}
	return out
}

func (rt runeText) matchesNameAt(i int, name []rune, guarded bool) bool {
	if i+len(name) > len(rt.runes) {
		return false
	}
	if i > 0 && isWordRune(rt.runes[i-1]) {
		return false
	}
	if end := i + len(name); end < len(rt.runes) && isWordRune(rt.runes[end]) {
		return false
	}
	for j, r := range name {
		got := rt.runes[i+j]
		if guarded {
			if got != r {
				return false
			}
		} else if unicode.ToLower(got) != unicode.ToLower(r) {
			return false
		}
	}
	// A name that is also a rules word only counts mid-sentence, where the
	// capital letter cannot come from sentence case.
	return !guarded || !rt.atSentenceStart(i)
}

func (rt runeText) atSentenceStart(i int) bool {
	for j := i - 1; j >= 0; j-- {
		r := rt.runes[j]
		if unicode.IsSpace(r) {
			continue
		}
		return r == '.' || r == ':' || r == '—' || r == '•' || r == '"' || r == '“' || r == '('
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// collidesWithRulesWord reports whether a single-word name is also a verb or
// keyword of the rules vocabulary ("Counter", "Fight", "Flash").
func collidesWithRulesWord(name string) bool {
	if strings.ContainsAny(name, " ,-'") {
		return false
	}
	w := strings.ToLower(name)
	if _, ok := verbForms[w]; ok {
		return true
	}
	switch w {
	case "flash", "flying", "haste", "reach", "ward", "counter", "target", "this", "it":
		return true
	}
	return false
}

// payloadLabels are em-dash labels that carry parseable payload and must not
// be stripped as ability words.
var payloadLabels = map[string]bool{
	"buyback": true, "cycling": true, "flashback": true, "escape": true,
	"kicker": true, "multikicker": true, "ward": true, "equip": true,
	"madness": true, "miracle": true, "jump-start": true, "retrace": true,
	"overload": true, "spectacle": true, "surge": true, "dash": true,
	"evoke": true, "prowl": true, "morph": true, "megamorph": true,
	"echo": true, "entwine": true, "unearth": true, "cumulative": true,
	"level": true, "ninjutsu": true, "crew": true, "choose": true,
	"enchant": true, "protection": true, "emerge": true, "embalm": true,
	"eternalize": true, "disturb": true, "foretell": true,
}

var romanNumerals = map[string]bool{
	"i": true, "ii": true, "iii": true, "iv": true, "v": true, "vi": true,
}

// stripAbilityWord removes a leading "Label — " ability word.
func (rt runeText) stripAbilityWord() runeText {
	dash := -1
	for i, r := range rt.runes {
		if r == '—' {
			dash = i
			break
		}
	}
	if dash <= 0 {
		return rt
	}
	label := strings.TrimSpace(string(rt.runes[:dash]))
	if label == "" || strings.ContainsAny(label, "{}:()0123456789\"+") {
		return rt
	}
	words := strings.Fields(strings.ToLower(label))
	if len(words) > 4 {
		return rt
	}
	first := strings.Trim(words[0], ",")
	if payloadLabels[first] || strings.HasSuffix(first, "cycling") || strings.HasSuffix(first, "walk") {
		return rt
	}
	allRoman := true
	for _, w := range words {
		if !romanNumerals[strings.Trim(w, ",")] {
			allRoman = false
			break
		}
	}
	if allRoman {
		return rt
	}
	rest := rt.slice(dash+1, len(rt.runes)).trimSpace()
	if len(rest.runes) == 0 {
		return rt
	}
	return rest
}

// stripReminders removes parenthesized text with depth tracking, together
// with the space before it. An unbalanced "(" strips to the end of the line.
func (rt runeText) stripReminders() runeText {
	out := runeText{runes: make([]rune, 0, len(rt.runes)), cmap: make([]int, 0, len(rt.cmap))}
	depth := 0
	for i, r := range rt.runes {
		switch {
		case r == '(':
			if depth == 0 {
				for len(out.runes) > 0 && out.runes[len(out.runes)-1] == ' ' {
					out.runes = out.runes[:len(out.runes)-1]
					out.cmap = out.cmap[:len(out.cmap)-1]
				}
			}
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			out.runes = append(out.runes, r)
			out.cmap = append(out.cmap, rt.cmap[i])
		}
	}
	return out
}

// unwrapParens returns the interior of text wrapped in one pair of parentheses.
func (rt runeText) unwrapParens() (runeText, bool) {
	n := len(rt.runes)
	if n < 2 || rt.runes[0] != '(' || rt.runes[n-1] != ')' {
		return rt, false
	}
	depth := 0
	for i, r := range rt.runes {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != n-1 {
				return rt, false
			}
		}
	}
	return rt.slice(1, n-1), true
}
