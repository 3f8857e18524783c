package jsonvalue

import (
	"errors"
	"io"
	"strings"

	"github.com/goccy/go-reflect"
	"github.com/oarkflow/expr"

	"github.com/oarkflow/jsonvalue/bind"
	"github.com/oarkflow/jsonvalue/marshaler"
	"github.com/oarkflow/jsonvalue/parser"
	"github.com/oarkflow/jsonvalue/unmarshaler"
	"github.com/oarkflow/jsonvalue/value"
)

// Marshal encodes data with the currently registered marshaler.
func Marshal(data any) ([]byte, error) {
	return marshaler.Instance()(data)
}

// Unmarshal decodes data into dst with the currently registered
// unmarshaler. The default engine parses once into a value tree and
// binds it, with no second text pass.
func Unmarshal(data []byte, dst any) error {
	if reflect.ValueOf(dst).Kind() != reflect.Ptr {
		return errors.New("dst is not pointer type")
	}
	return unmarshaler.Instance()(data, dst)
}

// SetMarshaler replaces the encode engine process-wide.
func SetMarshaler(m marshaler.Marshaler) {
	marshaler.SetMarshaler(m)
}

// SetUnmarshaler replaces the decode engine process-wide.
func SetUnmarshaler(u unmarshaler.Unmarshaler) {
	unmarshaler.SetUnmarshaler(u)
}

// Parse decodes one document into a value tree. String values may
// alias data; do not modify it while the tree is in use.
func Parse(data []byte) (value.Value, error) {
	return parser.Parse(data)
}

func ParseString(s string) (value.Value, error) {
	return parser.ParseString(s)
}

func ParseReader(r io.Reader) (value.Value, error) {
	return parser.ParseReader(r)
}

// Decode populates dst from an already-parsed tree.
func Decode(v value.Value, dst any) error {
	return bind.Decode(value.NewDeserializer(v), dst)
}

// DecodeRef populates dst from a tree the caller keeps.
func DecodeRef(v *value.Value, dst any) error {
	return bind.Decode(value.NewRefDeserializer(v), dst)
}

// Valid reports whether data is one syntactically valid JSON document.
// It walks the full grammar without building a tree.
func Valid(data []byte) bool {
	return parser.Check(data) == nil
}

// Query evaluates an expression against a parsed tree, e.g.
// Query(v, `user.age > 18`).
func Query(v value.Value, expression string) (any, error) {
	return expr.Eval(expression, plain(v))
}

// plain converts a tree to expression-friendly Go values, with numbers
// as int64 or float64 instead of value.Number.
func plain(v value.Value) any {
	switch v.Kind() {
	case value.KindNumber:
		if i, err := v.Number().Int64(); err == nil {
			return i
		}
		f, _ := v.Number().Float64()
		return f
	case value.KindArray:
		arr := v.Array()
		out := make([]any, len(arr))
		for i, item := range arr {
			out[i] = plain(item)
		}
		return out
	case value.KindObject:
		out := make(map[string]any, v.Object().Len())
		for _, m := range v.Object().Entries() {
			out[m.Key] = plain(m.Value)
		}
		return out
	default:
		return v.Interface()
	}
}

// Is is a cheap structural precheck: balanced braces and brackets
// outside string literals. It does not replace Valid.
func Is(s string) bool {
	if len(s) == 0 {
		return false
	}
	s = strings.TrimSpace(s)
	if len(s) == 0 || (s[0] != '{' && s[0] != '[') {
		return false
	}
	if s[len(s)-1] != '}' && s[len(s)-1] != ']' {
		return false
	}
	const maxDepth = 1024
	var stack [maxDepth]byte
	sp := 0

	for i := 0; i < len(s); i++ {
		char := s[i]
		switch char {
		case '{', '[':
			if sp >= maxDepth {
				return false
			}
			stack[sp] = char
			sp++
		case '}', ']':
			if sp == 0 {
				return false
			}
			sp--
			opening := stack[sp]
			if (char == '}' && opening != '{') || (char == ']' && opening != '[') {
				return false
			}
		case '"':
			i++
			for i < len(s) {
				if s[i] == '\\' {
					i++
				} else if s[i] == '"' {
					break
				}
				i++
			}
		}
	}

	return sp == 0
}
