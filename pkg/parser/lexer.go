package parser

import (
	"unicode/utf8"

	"github.com/maigus-labs/maigus/pkg/token"
)

// Tokenize splits one line of card text into tokens whose spans are byte
// offsets into line. ASCII letter and digit runs become lower-cased words,
// apostrophes stay inside the word they follow, mana braces are stripped
// (their slash stays in the word) and counter shapes such as "+1/+1" stay
// whole. Punctuation other than , . : ; is dropped. It never fails.
func Tokenize(line string, lineIndex int) []token.Token {
	lx := &lexer{line: line, lineIndex: lineIndex, start: -1}
	lx.run()
	return lx.toks
}

type lexer struct {
	line      string
	lineIndex int

	toks    []token.Token
	buf     []byte
	start   int
	end     int
	inBrace bool
	quoted  bool
}

func (lx *lexer) run() {
	for i := 0; i < len(lx.line); {
		r, w := utf8.DecodeRuneInString(lx.line[i:])
		next, _ := utf8.DecodeRuneInString(lx.line[i+w:])
		if next == '−' {
			next = '-'
		}

		switch {
		case isASCIIAlnum(r):
			lx.push(i, w, toLowerASCII(byte(r)))
		case r == '\'' || r == '’':
			if lx.start >= 0 && !lx.inBrace {
				lx.push(i, w, '\'')
			}
		case r == '+':
			lx.sign(i, w, '+', next)
		case r == '-' || r == '−':
			lx.sign(i, w, '-', next)
		case r == '/':
			lx.slash(i, w, next)
		case r == '{':
			lx.flush()
			lx.inBrace = true
		case r == '}':
			lx.flush()
			lx.inBrace = false
		case r == ',':
			lx.punct(token.Comma, i, w)
		case r == '.':
			lx.punct(token.Period, i, w)
		case r == ':':
			lx.punct(token.Colon, i, w)
		case r == ';':
			lx.punct(token.Semicolon, i, w)
		case r == '"' || r == '“' || r == '”':
			lx.flush()
			switch r {
			case '“':
				lx.quoted = true
			case '”':
				lx.quoted = false
			default:
				lx.quoted = !lx.quoted
			}
		default:
			lx.flush()
		}
		i += w
	}
	lx.flush()
}

func (lx *lexer) push(i, w int, b byte) {
	if lx.start < 0 {
		lx.start = i
	}
	lx.buf = append(lx.buf, b)
	lx.end = i + w
}

// sign keeps '+' and '-' that begin a number ("+1", "-2", "+x") or join two
// halves of a counter or a hyphenated word ("jump-start").
func (lx *lexer) sign(i, w int, ch byte, next rune) {
	var last byte
	if len(lx.buf) > 0 {
		last = lx.buf[len(lx.buf)-1]
	}
	switch {
	case lx.start < 0 && (isASCIIDigit(next) || next == 'x' || next == 'X'):
		lx.push(i, w, ch)
	case lx.start >= 0 && last == '/':
		lx.push(i, w, ch)
	case lx.start >= 0 && ch == '-' && isASCIILetter(rune(last)) && isASCIILetter(next):
		lx.push(i, w, ch)
	default:
		lx.flush()
	}
}

func (lx *lexer) slash(i, w int, next rune) {
	if lx.start < 0 {
		return
	}
	last := lx.buf[len(lx.buf)-1]
	if lx.inBrace {
		lx.push(i, w, '/')
		return
	}
	if (isASCIIDigit(rune(last)) || last == 'x') &&
		(isASCIIDigit(next) || next == '+' || next == '-' || next == '−' || next == 'x' || next == 'X') {
		lx.push(i, w, '/')
		return
	}
	lx.flush()
}

func (lx *lexer) punct(kind token.Kind, i, w int) {
	lx.flush()
	lx.toks = append(lx.toks, token.Token{
		Kind:   kind,
		Span:   token.TextSpan{Line: lx.lineIndex, Start: i, End: i + w},
		Quoted: lx.quoted,
	})
}

func (lx *lexer) flush() {
	if lx.start >= 0 && len(lx.buf) > 0 {
		lx.toks = append(lx.toks, token.Token{
			Kind:   token.Word,
			Text:   string(lx.buf),
			Span:   token.TextSpan{Line: lx.lineIndex, Start: lx.start, End: lx.end},
			Quoted: lx.quoted,
		})
	}
	lx.buf = lx.buf[:0]
	lx.start = -1
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
func isASCIILetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

func isASCIIAlnum(r rune) bool {
	return isASCIIDigit(r) || isASCIILetter(r)
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
