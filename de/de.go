// Package de defines the visitor-based typed-deserialization protocol.
// A Deserializer drives decoding of one value; a Visitor is the typed
// consumer that receives each scalar, sequence or mapping and turns it
// into whatever the caller is building. Shape mismatches are reported
// as typed errors carrying the expected and found shape descriptions.
package de

// Visitor is implemented by typed consumers. Expecting describes the
// shape the visitor wants; it ends up in "invalid type" messages.
type Visitor interface {
	Expecting() string
	VisitNull() (any, error)
	VisitBool(v bool) (any, error)
	VisitInt64(v int64) (any, error)
	VisitUint64(v uint64) (any, error)
	VisitFloat64(v float64) (any, error)
	VisitString(v string) (any, error)
	VisitBytes(v []byte) (any, error)
	VisitSeq(seq SeqAccess) (any, error)
	VisitMap(m MapAccess) (any, error)
	VisitEnum(e EnumAccess) (any, error)
}

// Deserializer is implemented by data sources. The hint methods let a
// consumer state what it wants; DeserializeAny dispatches purely on the
// source's own runtime shape.
type Deserializer interface {
	DeserializeAny(vis Visitor) (any, error)
	DeserializeBool(vis Visitor) (any, error)
	DeserializeInt(vis Visitor) (any, error)
	DeserializeUint(vis Visitor) (any, error)
	DeserializeFloat(vis Visitor) (any, error)
	DeserializeString(vis Visitor) (any, error)
	DeserializeBytes(vis Visitor) (any, error)
	DeserializeUnit(vis Visitor) (any, error)
	// DeserializeOption visits null directly and anything else as the
	// inner value; pointer-like targets hang off this.
	DeserializeOption(vis Visitor) (any, error)
	DeserializeSeq(vis Visitor) (any, error)
	DeserializeTuple(n int, vis Visitor) (any, error)
	DeserializeMap(vis Visitor) (any, error)
	// DeserializeStruct accepts either a mapping keyed by field name or
	// a sequence matched positionally.
	DeserializeStruct(name string, fields []string, vis Visitor) (any, error)
	DeserializeEnum(name string, variants []string, vis Visitor) (any, error)
	// DeserializeIgnoredAny discards the value and visits null.
	DeserializeIgnoredAny(vis Visitor) (any, error)
}

// SeqAccess iterates the elements of a sequence. NextElement reports
// ok=false once the sequence is exhausted.
type SeqAccess interface {
	NextElement() (d Deserializer, ok bool, err error)
	// SizeHint returns the remaining element count when it is exactly
	// known.
	SizeHint() (int, bool)
}

// MapAccess iterates the entries of a mapping. NextValue may only be
// called after a successful NextKey.
type MapAccess interface {
	NextKey() (d Deserializer, ok bool, err error)
	NextValue() (Deserializer, error)
	SizeHint() (int, bool)
}

// EnumAccess hands over the variant name and the access object for its
// payload.
type EnumAccess interface {
	Variant() (name string, va VariantAccess, err error)
}

// VariantAccess decodes the payload of one enum variant. Exactly one of
// its methods is called, matching the shape the consumer expects.
type VariantAccess interface {
	UnitVariant() error
	NewtypeVariant() (Deserializer, error)
	TupleVariant(n int, vis Visitor) (any, error)
	StructVariant(fields []string, vis Visitor) (any, error)
}

// BaseVisitor is an embeddable default that answers every visit with an
// invalid-type error built from its expectation string. Visitors embed
// it and override only the shapes they accept.
type BaseVisitor struct {
	Exp string
}

func (b BaseVisitor) Expecting() string {
	if b.Exp == "" {
		return "a value"
	}
	return b.Exp
}

func (b BaseVisitor) refuse(unexpected string) (any, error) {
	return nil, &InvalidTypeError{Unexpected: unexpected, Expected: b.Expecting()}
}

func (b BaseVisitor) VisitNull() (any, error) {
	return b.refuse("null")
}

func (b BaseVisitor) VisitBool(v bool) (any, error) {
	return b.refuse(unexpectedBool(v))
}

func (b BaseVisitor) VisitInt64(v int64) (any, error) {
	return b.refuse(unexpectedInt(v))
}

func (b BaseVisitor) VisitUint64(v uint64) (any, error) {
	return b.refuse(unexpectedUint(v))
}

func (b BaseVisitor) VisitFloat64(v float64) (any, error) {
	return b.refuse(unexpectedFloat(v))
}

func (b BaseVisitor) VisitString(v string) (any, error) {
	return b.refuse(unexpectedString(v))
}

func (b BaseVisitor) VisitBytes(v []byte) (any, error) {
	return b.refuse("byte array")
}

func (b BaseVisitor) VisitSeq(seq SeqAccess) (any, error) {
	return b.refuse("sequence")
}

func (b BaseVisitor) VisitMap(m MapAccess) (any, error) {
	return b.refuse("map")
}

func (b BaseVisitor) VisitEnum(e EnumAccess) (any, error) {
	return b.refuse("enum")
}
