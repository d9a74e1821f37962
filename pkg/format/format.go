// Package format renders the parser's IR as indented text or JSON.
//
// Both renderings walk the same Node tree, so the field order of the core
// types is the order of the output and the output of two structurally equal
// trees is byte-identical.
package format

import (
	"encoding/json"

	"github.com/maigus-labs/maigus/pkg/core"
)

// Text formats a parsed line as an indented tree.
func Text(line core.LineAst) string {
	p := newPrinter()
	p.formatRoot(Tree(line))
	return p.String()
}

// Effects formats an effect list, one item per effect.
func Effects(effects []core.Effect) string {
	p := newPrinter()
	for _, e := range effects {
		p.formatItem(Tree(e))
	}
	return p.String()
}

// JSON formats any IR value. Nodes carry their Go type under "type".
func JSON(v any) ([]byte, error) {
	return json.MarshalIndent(Tree(v), "", "  ")
}
