// Package value holds the dynamic JSON tree: a tagged Value over null,
// boolean, number, string, array and object, plus the bridge that lets
// a tree act as a source for the de package's typed-deserialization
// protocol.
package value

// Kind tags the runtime shape of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is one node of a decoded JSON document. The zero Value is null.
// Once a tree is built it is immutable by convention; the bridge only
// ever reads it.
type Value struct {
	kind Kind
	b    bool
	num  Number
	str  string
	arr  []Value
	obj  *Map
}

func Null() Value {
	return Value{}
}

func NewBool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func NewNumber(n Number) Value {
	return Value{kind: KindNumber, num: n}
}

func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}

func NewArray(items []Value) Value {
	return Value{kind: KindArray, arr: items}
}

func NewObject(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindObject, obj: m}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns the boolean content; false for any other kind.
func (v Value) Bool() bool {
	return v.kind == KindBool && v.b
}

func (v Value) Number() Number {
	return v.num
}

// Str returns the string content; empty for any other kind.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Array returns the element slice; nil for any other kind.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Object returns the ordered member map; nil for any other kind.
func (v Value) Object() *Map {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Get looks a key up in an object value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Index returns the i-th element of an array value, or null when out of
// range or not an array.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Interface converts the tree to plain Go values: nil, bool, Number,
// string, []any and map[string]any. Object iteration order is lost in
// the Go map; use Object directly when order matters.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, m := range v.obj.Entries() {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// Unexpected describes the node's runtime shape for error messages,
// e.g. "boolean `true`" or "sequence". Numbers delegate to their own
// description.
func (v Value) Unexpected() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "boolean `true`"
		}
		return "boolean `false`"
	case KindNumber:
		return v.num.Unexpected()
	case KindString:
		return "string " + quote(v.str)
	case KindArray:
		return "sequence"
	case KindObject:
		return "map"
	default:
		return "invalid value"
	}
}
