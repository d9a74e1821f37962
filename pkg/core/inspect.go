package core

import "reflect"

// Inspect traverses an IR tree in depth-first order, calling fn for every
// node reachable through pointers, interfaces, slices and struct fields.
// If fn returns false, Inspect does not descend into the node's children.
func Inspect(node any, fn func(any) bool) {
	if node == nil {
		return
	}
	inspectValue(reflect.ValueOf(node), fn)
}

func inspectValue(v reflect.Value, fn func(any) bool) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		inspectValue(v.Elem(), fn)
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		if v.Elem().Kind() == reflect.Struct && v.CanInterface() {
			if !fn(v.Interface()) {
				return
			}
		}
		inspectValue(v.Elem(), fn)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			inspectValue(v.Index(i), fn)
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				inspectValue(v.Field(i), fn)
			}
		}
	}
}

// Effects returns every effect in the tree rooted at node, including nested
// effects of wrapper variants, in depth-first order.
func Effects(node any) []Effect {
	var out []Effect
	Inspect(node, func(n any) bool {
		if e, ok := n.(Effect); ok {
			out = append(out, e)
		}
		return true
	})
	return out
}
