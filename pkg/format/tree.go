package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/maigus-labs/maigus/pkg/core"
)

// Node is one IR struct: its type name and its non-zero exported fields in
// declaration order.
type Node struct {
	Type   string
	Fields []Field
}

// Field is a named child of a Node.
type Field struct {
	Name  string
	Value any
}

// Get returns the value of the named field.
func (n *Node) Get(name string) (any, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes "type" first and the fields in order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	sep := ""
	write := func(name string, v any) error {
		buf.WriteString(sep)
		sep = ","
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
	if n.Type != "" {
		if err := write("type", n.Type); err != nil {
			return nil, err
		}
	}
	for _, f := range n.Fields {
		if err := write(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// symbolTypes render through their brace notation.
var symbolTypes = map[reflect.Type]bool{
	reflect.TypeOf(core.ManaCost{}):   true,
	reflect.TypeOf(core.ManaSymbol{}): true,
}

// Tree converts an IR value into Nodes, lists and scalars. Nil pointers,
// nil interfaces and zero fields are dropped.
func Tree(v any) any {
	if v == nil {
		return nil
	}
	return tree(reflect.ValueOf(v))
}

func tree(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return tree(v.Elem())
	case reflect.Struct:
		if symbolTypes[v.Type()] {
			return v.Interface().(fmt.Stringer).String()
		}
		return structNode(v)
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = tree(v.Index(i))
		}
		return out
	case reflect.Map:
		return mapNode(v)
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return fmt.Sprint(v.Interface())
}

func structNode(v reflect.Value) *Node {
	t := v.Type()
	n := &Node{Type: t.Name()}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		// A lone field is kept even when zero so Fixed{0} reads as n: 0.
		if fv.IsZero() && t.NumField() > 1 {
			continue
		}
		n.Fields = append(n.Fields, Field{Name: fieldName(f.Name), Value: tree(fv)})
	}
	return n
}

func mapNode(v reflect.Value) *Node {
	keys := v.MapKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = fmt.Sprint(k.Interface())
	}
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return names[order[a]] < names[order[b]] })

	n := &Node{}
	for _, i := range order {
		n.Fields = append(n.Fields, Field{Name: names[i], Value: tree(v.MapIndex(keys[i]))})
	}
	return n
}

// fieldName converts a Go field name to snake case: IfTrue → if_true,
// LoyaltyX → loyalty_x.
func fieldName(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
