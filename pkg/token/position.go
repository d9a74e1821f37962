package token

// TextSpan is a byte range in the original (pre-normalization) text of a line.
type TextSpan struct {
	Line  int // 0-based line index within the card text
	Start int // inclusive byte offset
	End   int // exclusive byte offset
}

// Synthetic returns the zero span used for nodes that have no source text.
func Synthetic() TextSpan {
	return TextSpan{}
}

// IsValid returns true if the span covers at least one byte.
func (s TextSpan) IsValid() bool {
	return s.End > s.Start
}

// Contains returns true if the span contains the given offset.
func (s TextSpan) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Cover returns the smallest span containing both spans.
func (s TextSpan) Cover(o TextSpan) TextSpan {
	if !s.IsValid() {
		return o
	}
	if !o.IsValid() {
		return s
	}
	out := s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

// SpanOf returns the span covering a token slice.
func SpanOf(toks []Token) TextSpan {
	if len(toks) == 0 {
		return Synthetic()
	}
	return toks[0].Span.Cover(toks[len(toks)-1].Span)
}
