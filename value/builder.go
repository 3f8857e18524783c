package value

import (
	"errors"

	"github.com/oarkflow/jsonvalue/de"
)

// Builder is a de.Visitor that materializes whatever a Deserializer
// produces into a Value tree. Object keys run through ClassifyKey: a
// sentinel key means the single paired value is not a field but a
// special encoding of the whole map.
type Builder struct {
	// RawFunc reinterprets a pre-serialized sub-document carried under
	// RawToken. Left nil, such input is an error; the reinterpretation
	// itself is outside this package.
	RawFunc func(text string) (Value, error)
}

// Build runs d through the builder and returns the resulting tree.
func Build(d de.Deserializer) (Value, error) {
	var b Builder
	out, err := d.DeserializeAny(&b)
	if err != nil {
		return Value{}, err
	}
	return out.(Value), nil
}

func (b *Builder) Expecting() string {
	return "any valid JSON value"
}

func (b *Builder) VisitNull() (any, error) {
	return Null(), nil
}

func (b *Builder) VisitBool(v bool) (any, error) {
	return NewBool(v), nil
}

func (b *Builder) VisitInt64(v int64) (any, error) {
	return NewNumber(NumberFromInt64(v)), nil
}

func (b *Builder) VisitUint64(v uint64) (any, error) {
	return NewNumber(NumberFromUint64(v)), nil
}

func (b *Builder) VisitFloat64(v float64) (any, error) {
	return NewNumber(NumberFromFloat64(v)), nil
}

func (b *Builder) VisitString(v string) (any, error) {
	return NewString(v), nil
}

func (b *Builder) VisitBytes(v []byte) (any, error) {
	return NewString(string(v)), nil
}

func (b *Builder) VisitSeq(seq de.SeqAccess) (any, error) {
	var items []Value
	if n, exact := seq.SizeHint(); exact {
		items = make([]Value, 0, n)
	}
	for {
		d, ok, err := seq.NextElement()
		if err != nil {
			return nil, err
		}
		if !ok {
			return NewArray(items), nil
		}
		elem, err := d.DeserializeAny(b)
		if err != nil {
			return nil, err
		}
		items = append(items, elem.(Value))
	}
}

func (b *Builder) VisitMap(m de.MapAccess) (any, error) {
	obj := NewMap()
	first := true
	for {
		kd, ok, err := m.NextKey()
		if err != nil {
			return nil, err
		}
		if !ok {
			return NewObject(obj), nil
		}
		key, err := keyString(kd)
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			switch ClassifyKey(key) {
			case KeyNumberLiteral:
				vd, err := m.NextValue()
				if err != nil {
					return nil, err
				}
				text, err := keyString(vd)
				if err != nil {
					return nil, err
				}
				return NewNumber(NumberFromLiteral(text)), nil
			case KeyRawDocument:
				vd, err := m.NextValue()
				if err != nil {
					return nil, err
				}
				text, err := keyString(vd)
				if err != nil {
					return nil, err
				}
				if b.RawFunc == nil {
					return nil, errors.New("raw value sentinel is not supported here")
				}
				return b.RawFunc(text)
			}
		}
		vd, err := m.NextValue()
		if err != nil {
			return nil, err
		}
		v, err := vd.DeserializeAny(b)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v.(Value))
	}
}

func (b *Builder) VisitEnum(e de.EnumAccess) (any, error) {
	return nil, &de.InvalidTypeError{Unexpected: "enum", Expected: b.Expecting()}
}

// stringKeyVisitor pulls one string out of a key deserializer.
type stringKeyVisitor struct {
	de.BaseVisitor
}

func (stringKeyVisitor) VisitString(v string) (any, error) {
	return v, nil
}

func (stringKeyVisitor) VisitBytes(v []byte) (any, error) {
	return string(v), nil
}

func keyString(d de.Deserializer) (string, error) {
	out, err := d.DeserializeString(stringKeyVisitor{BaseVisitor: de.BaseVisitor{Exp: "a string key"}})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
