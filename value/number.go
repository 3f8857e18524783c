package value

import (
	"strconv"

	"github.com/oarkflow/jsonvalue/de"
)

// Number is the opaque numeric type. It keeps the literal text exactly
// as written, so precision is whatever the text carries; typed access
// parses on demand.
type Number struct {
	text string
}

// NumberFromLiteral wraps already-validated JSON number text.
func NumberFromLiteral(text string) Number {
	return Number{text: text}
}

func NumberFromInt64(v int64) Number {
	return Number{text: strconv.FormatInt(v, 10)}
}

func NumberFromUint64(v uint64) Number {
	return Number{text: strconv.FormatUint(v, 10)}
}

func NumberFromFloat64(v float64) Number {
	return Number{text: strconv.FormatFloat(v, 'g', -1, 64)}
}

func (n Number) String() string {
	return n.text
}

func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(n.text, 10, 64)
}

func (n Number) Uint64() (uint64, error) {
	return strconv.ParseUint(n.text, 10, 64)
}

func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(n.text, 64)
}

// Unexpected describes the number for error messages.
func (n Number) Unexpected() string {
	if i, err := n.Int64(); err == nil {
		return "integer `" + strconv.FormatInt(i, 10) + "`"
	}
	if u, err := n.Uint64(); err == nil {
		return "integer `" + strconv.FormatUint(u, 10) + "`"
	}
	if f, err := n.Float64(); err == nil {
		return "floating point `" + strconv.FormatFloat(f, 'g', -1, 64) + "`"
	}
	return "number"
}

// DeserializeAny dispatches to the narrowest visit that holds the value
// exactly: signed, then unsigned, then floating point.
func (n Number) DeserializeAny(vis de.Visitor) (any, error) {
	if i, err := n.Int64(); err == nil {
		return vis.VisitInt64(i)
	}
	if u, err := n.Uint64(); err == nil {
		return vis.VisitUint64(u)
	}
	if f, err := n.Float64(); err == nil {
		return vis.VisitFloat64(f)
	}
	return nil, &de.InvalidValueError{Unexpected: "string " + quote(n.text), Expected: "a JSON number"}
}

func (n Number) DeserializeInt(vis de.Visitor) (any, error) {
	i, err := n.Int64()
	if err != nil {
		return nil, &de.InvalidTypeError{Unexpected: n.Unexpected(), Expected: vis.Expecting()}
	}
	return vis.VisitInt64(i)
}

func (n Number) DeserializeUint(vis de.Visitor) (any, error) {
	u, err := n.Uint64()
	if err != nil {
		return nil, &de.InvalidTypeError{Unexpected: n.Unexpected(), Expected: vis.Expecting()}
	}
	return vis.VisitUint64(u)
}

func (n Number) DeserializeFloat(vis de.Visitor) (any, error) {
	f, err := n.Float64()
	if err != nil {
		return nil, &de.InvalidTypeError{Unexpected: n.Unexpected(), Expected: vis.Expecting()}
	}
	return vis.VisitFloat64(f)
}

func quote(s string) string {
	return strconv.Quote(s)
}
