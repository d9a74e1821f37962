package format

import (
	"bytes"
	"strconv"
	"strings"
)

const (
	indentSize = 2
	// maxInline is the widest node or list printed on one line.
	maxInline = 72
)

// Printer lays out a Node tree with indentation.
type Printer struct {
	output      *bytes.Buffer
	depth       int
	atLineStart bool
}

func newPrinter() *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n") + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// formatRoot prints the top node as a block even when it would fit inline.
func (p *Printer) formatRoot(v any) {
	n, ok := v.(*Node)
	if !ok {
		p.write(inline(v))
		p.writeln()
		return
	}
	p.write(n.Type)
	p.writeln()
	p.formatFields(n)
}

func (p *Printer) formatFields(n *Node) {
	p.indent()
	for _, f := range n.Fields {
		p.formatField(f)
	}
	p.dedent()
}

func (p *Printer) formatField(f Field) {
	if s, ok := fitInline(f.Value); ok {
		p.write(f.Name + ": " + s)
		p.writeln()
		return
	}
	switch v := f.Value.(type) {
	case []any:
		p.write(f.Name + ":")
		p.writeln()
		p.indent()
		for _, item := range v {
			p.formatItem(item)
		}
		p.dedent()
	case *Node:
		p.write(f.Name + ": " + v.Type)
		p.writeln()
		p.formatFields(v)
	}
}

// formatItem prints one list element behind a "- " marker.
func (p *Printer) formatItem(v any) {
	if s, ok := fitInline(v); ok {
		p.write("- " + s)
		p.writeln()
		return
	}
	switch v := v.(type) {
	case *Node:
		p.write("- " + v.Type)
		p.writeln()
		p.formatFields(v)
	case []any:
		p.write("-")
		p.writeln()
		p.indent()
		for _, item := range v {
			p.formatItem(item)
		}
		p.dedent()
	}
}

// fitInline renders v on one line when it is a scalar or short enough.
func fitInline(v any) (string, bool) {
	switch v.(type) {
	case *Node, []any:
		s := inline(v)
		return s, len(s) <= maxInline
	}
	return inline(v), true
}

func inline(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		if v == "" || (strings.ContainsAny(v, " ,{}[]:") && !isSymbol(v)) {
			return strconv.Quote(v)
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []any:
		var b strings.Builder
		b.WriteByte('[')
		formatList(&b, len(v), func(i int) { b.WriteString(inline(v[i])) }, ", ")
		b.WriteByte(']')
		return b.String()
	case *Node:
		var b strings.Builder
		b.WriteString(v.Type)
		b.WriteByte('{')
		formatList(&b, len(v.Fields), func(i int) {
			b.WriteString(v.Fields[i].Name)
			b.WriteString(": ")
			b.WriteString(inline(v.Fields[i].Value))
		}, ", ")
		b.WriteByte('}')
		return b.String()
	}
	return "?"
}

// isSymbol reports whether s is brace notation such as "{2}{W/U}".
func isSymbol(s string) bool {
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") && !strings.ContainsAny(s, " ,")
}

// formatList writes count items with sep between them.
func formatList(b *strings.Builder, count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			b.WriteString(sep)
		}
	}
}
