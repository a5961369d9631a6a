package bencoding

import (
	"fmt"
	"reflect"
	"sort"
)

type Kind uint8

const (
	Invalid Kind = iota
	Int
	String
	List
	Dict
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case String:
		return "string"
	case List:
		return "list"
	case Dict:
		return "dict"
	default:
		return "invalid"
	}
}

// Value is one decoded bencode value. The zero Value has Kind Invalid.
//
// Accessors follow the comma-ok idiom: they report false when the value holds a different kind.
type Value struct {
	kind Kind
	i    int64
	s    []byte
	l    []Value
	d    map[string]Value
}

func NewInt(i int64) Value {
	return Value{kind: Int, i: i}
}

func NewString(s []byte) Value {
	return Value{kind: String, s: s}
}

func NewList(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: List, l: items}
}

func NewDict(d map[string]Value) Value {
	if d == nil {
		d = map[string]Value{}
	}
	return Value{kind: Dict, d: d}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Int() (int64, bool) {
	return v.i, v.kind == Int
}

func (v Value) Bytes() ([]byte, bool) {
	return v.s, v.kind == String
}

func (v Value) List() ([]Value, bool) {
	return v.l, v.kind == List
}

func (v Value) Dict() (map[string]Value, bool) {
	return v.d, v.kind == Dict
}

// Get looks up key in a dictionary. It reports false for missing keys and for non-dictionaries.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Dict {
		return Value{}, false
	}
	elem, ok := v.d[key]
	return elem, ok
}

// Keys returns the dictionary keys in raw byte order, or nil for non-dictionaries.
func (v Value) Keys() []string {
	if v.kind != Dict {
		return nil
	}
	keys := make([]string, 0, len(v.d))
	for k := range v.d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether v and o hold the same tree.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Int:
		return v.i == o.i
	case String:
		return string(v.s) == string(o.s)
	case List:
		if len(v.l) != len(o.l) {
			return false
		}
		for i := range v.l {
			if !v.l[i].Equal(o.l[i]) {
				return false
			}
		}
		return true
	case Dict:
		if len(v.d) != len(o.d) {
			return false
		}
		for k, elem := range v.d {
			other, ok := o.d[k]
			if !ok || !elem.Equal(other) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case Int:
		return fmt.Sprintf("%d", v.i)
	case String:
		return fmt.Sprintf("%q", v.s)
	case List:
		return fmt.Sprintf("%v", v.l)
	case Dict:
		s := "map["
		for i, k := range v.Keys() {
			if i > 0 {
				s += " "
			}
			s += fmt.Sprintf("%q:%v", k, v.d[k])
		}
		return s + "]"
	default:
		return "<invalid>"
	}
}

// ValueOf converts Go natives into a Value. It panics on types it can't represent.
func ValueOf(input any) Value {
	switch in := input.(type) {
	case Value:
		return in
	case string:
		return NewString([]byte(in))
	case []byte:
		return NewString(in)
	case int:
		return NewInt(int64(in))
	case int64:
		return NewInt(in)
	case []string:
		return listOf(in)
	case []int:
		return listOf(in)
	case []any:
		return listOf(in)
	case []Value:
		return NewList(in...)
	case map[string]any:
		return dictOf(in)
	case map[string]string:
		return dictOf(in)
	case map[string]int:
		return dictOf(in)
	case map[string]Value:
		return NewDict(in)
	default:
		panic("unable to convert type: " + reflect.TypeOf(input).String())
	}
}

func listOf[T any](l []T) Value {
	items := make([]Value, 0, len(l))
	for _, elem := range l {
		items = append(items, ValueOf(elem))
	}
	return NewList(items...)
}

func dictOf[T any](m map[string]T) Value {
	d := make(map[string]Value, len(m))
	for k, elem := range m {
		d[k] = ValueOf(elem)
	}
	return NewDict(d)
}
