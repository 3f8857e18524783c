package value

import (
	"strconv"

	"github.com/oarkflow/jsonvalue/de"
)

// Deserializer adapts a Value tree to the de protocol. Two entry points
// exist for the two ownership styles of the original design: an owned
// tree handed over wholesale and a tree accessed by reference. Go
// strings are immutable views, so both modes are zero-copy and share
// all logic; the reference form additionally promises the caller keeps
// the tree and that it is never modified.
type Deserializer struct {
	v *Value
}

// NewDeserializer consumes v as the decode source.
func NewDeserializer(v Value) *Deserializer {
	return &Deserializer{v: &v}
}

// NewRefDeserializer reads through v without taking it; the tree stays
// usable afterwards.
func NewRefDeserializer(v *Value) *Deserializer {
	return &Deserializer{v: v}
}

func (d *Deserializer) invalidType(vis de.Visitor) error {
	return &de.InvalidTypeError{Unexpected: d.v.Unexpected(), Expected: vis.Expecting()}
}

// DeserializeAny dispatches purely on the node's runtime tag.
func (d *Deserializer) DeserializeAny(vis de.Visitor) (any, error) {
	switch d.v.kind {
	case KindNull:
		return vis.VisitNull()
	case KindBool:
		return vis.VisitBool(d.v.b)
	case KindNumber:
		return d.v.num.DeserializeAny(vis)
	case KindString:
		return vis.VisitString(d.v.str)
	case KindArray:
		return visitArray(d.v.arr, vis)
	default:
		return visitObject(d.v.obj, vis)
	}
}

func (d *Deserializer) DeserializeBool(vis de.Visitor) (any, error) {
	if d.v.kind != KindBool {
		return nil, d.invalidType(vis)
	}
	return vis.VisitBool(d.v.b)
}

func (d *Deserializer) DeserializeInt(vis de.Visitor) (any, error) {
	if d.v.kind != KindNumber {
		return nil, d.invalidType(vis)
	}
	return d.v.num.DeserializeInt(vis)
}

func (d *Deserializer) DeserializeUint(vis de.Visitor) (any, error) {
	if d.v.kind != KindNumber {
		return nil, d.invalidType(vis)
	}
	return d.v.num.DeserializeUint(vis)
}

func (d *Deserializer) DeserializeFloat(vis de.Visitor) (any, error) {
	if d.v.kind != KindNumber {
		return nil, d.invalidType(vis)
	}
	return d.v.num.DeserializeFloat(vis)
}

func (d *Deserializer) DeserializeString(vis de.Visitor) (any, error) {
	if d.v.kind != KindString {
		return nil, d.invalidType(vis)
	}
	return vis.VisitString(d.v.str)
}

func (d *Deserializer) DeserializeBytes(vis de.Visitor) (any, error) {
	switch d.v.kind {
	case KindString:
		return vis.VisitBytes([]byte(d.v.str))
	case KindArray:
		return visitArray(d.v.arr, vis)
	default:
		return nil, d.invalidType(vis)
	}
}

func (d *Deserializer) DeserializeUnit(vis de.Visitor) (any, error) {
	if d.v.kind != KindNull {
		return nil, d.invalidType(vis)
	}
	return vis.VisitNull()
}

func (d *Deserializer) DeserializeOption(vis de.Visitor) (any, error) {
	if d.v.kind == KindNull {
		return vis.VisitNull()
	}
	return d.DeserializeAny(vis)
}

func (d *Deserializer) DeserializeSeq(vis de.Visitor) (any, error) {
	if d.v.kind != KindArray {
		return nil, d.invalidType(vis)
	}
	return visitArray(d.v.arr, vis)
}

func (d *Deserializer) DeserializeTuple(n int, vis de.Visitor) (any, error) {
	return d.DeserializeSeq(vis)
}

func (d *Deserializer) DeserializeMap(vis de.Visitor) (any, error) {
	if d.v.kind != KindObject {
		return nil, d.invalidType(vis)
	}
	return visitObject(d.v.obj, vis)
}

// DeserializeStruct accepts an array (positional fields) or an object
// (named fields).
func (d *Deserializer) DeserializeStruct(name string, fields []string, vis de.Visitor) (any, error) {
	switch d.v.kind {
	case KindArray:
		return visitArray(d.v.arr, vis)
	case KindObject:
		return visitObject(d.v.obj, vis)
	default:
		return nil, d.invalidType(vis)
	}
}

// DeserializeEnum accepts a bare string naming a unit variant, or an
// object with exactly one key naming the variant whose value is the
// payload.
func (d *Deserializer) DeserializeEnum(name string, variants []string, vis de.Visitor) (any, error) {
	switch d.v.kind {
	case KindObject:
		if d.v.obj.Len() != 1 {
			return nil, &de.InvalidValueError{Unexpected: "map", Expected: "map with a single key"}
		}
		entry := &d.v.obj.entries[0]
		return vis.VisitEnum(&enumAccess{variant: entry.Key, payload: &entry.Value})
	case KindString:
		return vis.VisitEnum(&enumAccess{variant: d.v.str})
	default:
		return nil, &de.InvalidTypeError{Unexpected: d.v.Unexpected(), Expected: "string or map"}
	}
}

func (d *Deserializer) DeserializeIgnoredAny(vis de.Visitor) (any, error) {
	return vis.VisitNull()
}

// visitArray hands the elements to the visitor and then checks the
// iterator was fully drained: a consumer taking fewer elements than are
// present is an invalid-length error.
func visitArray(arr []Value, vis de.Visitor) (any, error) {
	seq := &seqAccess{items: arr}
	out, err := vis.VisitSeq(seq)
	if err != nil {
		return nil, err
	}
	if seq.pos < len(arr) {
		return nil, &de.InvalidLengthError{Len: len(arr), Expected: "fewer elements in array"}
	}
	return out, nil
}

func visitObject(obj *Map, vis de.Visitor) (any, error) {
	m := &mapAccess{entries: obj.Entries()}
	out, err := vis.VisitMap(m)
	if err != nil {
		return nil, err
	}
	if m.pos < len(m.entries) {
		return nil, &de.InvalidLengthError{Len: len(m.entries), Expected: "fewer elements in map"}
	}
	return out, nil
}

type seqAccess struct {
	items []Value
	pos   int
}

func (s *seqAccess) NextElement() (de.Deserializer, bool, error) {
	if s.pos >= len(s.items) {
		return nil, false, nil
	}
	d := NewRefDeserializer(&s.items[s.pos])
	s.pos++
	return d, true, nil
}

func (s *seqAccess) SizeHint() (int, bool) {
	return len(s.items) - s.pos, true
}

type mapAccess struct {
	entries []Member
	pos     int
	value   *Value
}

func (m *mapAccess) NextKey() (de.Deserializer, bool, error) {
	if m.pos >= len(m.entries) {
		return nil, false, nil
	}
	entry := &m.entries[m.pos]
	m.pos++
	m.value = &entry.Value
	return &mapKeyDeserializer{key: entry.Key}, true, nil
}

func (m *mapAccess) NextValue() (de.Deserializer, error) {
	if m.value == nil {
		return nil, &de.MissingValueError{}
	}
	v := m.value
	m.value = nil
	return NewRefDeserializer(v), nil
}

func (m *mapAccess) SizeHint() (int, bool) {
	return len(m.entries) - m.pos, true
}

type enumAccess struct {
	variant string
	payload *Value
}

func (e *enumAccess) Variant() (string, de.VariantAccess, error) {
	return e.variant, &variantAccess{payload: e.payload}, nil
}

type variantAccess struct {
	payload *Value
}

func (va *variantAccess) UnitVariant() error {
	if va.payload == nil {
		return nil
	}
	// A present payload must itself decode to unit.
	if va.payload.kind != KindNull {
		return &de.InvalidTypeError{Unexpected: va.payload.Unexpected(), Expected: "unit"}
	}
	return nil
}

func (va *variantAccess) NewtypeVariant() (de.Deserializer, error) {
	if va.payload == nil {
		return nil, de.ErrUnitVariant
	}
	return NewRefDeserializer(va.payload), nil
}

func (va *variantAccess) TupleVariant(n int, vis de.Visitor) (any, error) {
	if va.payload == nil {
		return nil, &de.InvalidTypeError{Unexpected: "unit variant", Expected: "tuple variant"}
	}
	if va.payload.kind != KindArray {
		return nil, &de.InvalidTypeError{Unexpected: va.payload.Unexpected(), Expected: "tuple variant"}
	}
	if len(va.payload.arr) == 0 {
		// A zero-element tuple payload is visited as unit.
		return vis.VisitNull()
	}
	return visitArray(va.payload.arr, vis)
}

func (va *variantAccess) StructVariant(fields []string, vis de.Visitor) (any, error) {
	if va.payload == nil {
		return nil, &de.InvalidTypeError{Unexpected: "unit variant", Expected: "struct variant"}
	}
	if va.payload.kind != KindObject {
		return nil, &de.InvalidTypeError{Unexpected: va.payload.Unexpected(), Expected: "struct variant"}
	}
	return visitObject(va.payload.obj, vis)
}

// mapKeyDeserializer delivers object keys, which are stored as text.
// When the consumer asks for an integer the text is tentatively parsed;
// on failure the original text is delivered unchanged, so one object
// representation serves both string-keyed and integer-keyed targets.
type mapKeyDeserializer struct {
	key string
}

func (d *mapKeyDeserializer) DeserializeAny(vis de.Visitor) (any, error) {
	return vis.VisitString(d.key)
}

func (d *mapKeyDeserializer) DeserializeInt(vis de.Visitor) (any, error) {
	if i, err := strconv.ParseInt(d.key, 10, 64); err == nil {
		return vis.VisitInt64(i)
	}
	return vis.VisitString(d.key)
}

func (d *mapKeyDeserializer) DeserializeUint(vis de.Visitor) (any, error) {
	if u, err := strconv.ParseUint(d.key, 10, 64); err == nil {
		return vis.VisitUint64(u)
	}
	return vis.VisitString(d.key)
}

func (d *mapKeyDeserializer) DeserializeBool(vis de.Visitor) (any, error) {
	return d.DeserializeAny(vis)
}

func (d *mapKeyDeserializer) DeserializeFloat(vis de.Visitor) (any, error) {
	return d.DeserializeAny(vis)
}

func (d *mapKeyDeserializer) DeserializeString(vis de.Visitor) (any, error) {
	return vis.VisitString(d.key)
}

func (d *mapKeyDeserializer) DeserializeBytes(vis de.Visitor) (any, error) {
	return vis.VisitBytes([]byte(d.key))
}

func (d *mapKeyDeserializer) DeserializeUnit(vis de.Visitor) (any, error) {
	return d.DeserializeAny(vis)
}

func (d *mapKeyDeserializer) DeserializeOption(vis de.Visitor) (any, error) {
	return d.DeserializeAny(vis)
}

func (d *mapKeyDeserializer) DeserializeSeq(vis de.Visitor) (any, error) {
	return d.DeserializeAny(vis)
}

func (d *mapKeyDeserializer) DeserializeTuple(n int, vis de.Visitor) (any, error) {
	return d.DeserializeAny(vis)
}

func (d *mapKeyDeserializer) DeserializeMap(vis de.Visitor) (any, error) {
	return d.DeserializeAny(vis)
}

func (d *mapKeyDeserializer) DeserializeStruct(name string, fields []string, vis de.Visitor) (any, error) {
	return d.DeserializeAny(vis)
}

// DeserializeEnum treats the key as a unit variant name.
func (d *mapKeyDeserializer) DeserializeEnum(name string, variants []string, vis de.Visitor) (any, error) {
	return vis.VisitEnum(&enumAccess{variant: d.key})
}

func (d *mapKeyDeserializer) DeserializeIgnoredAny(vis de.Visitor) (any, error) {
	return vis.VisitNull()
}
