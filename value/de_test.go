package value_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/oarkflow/jsonvalue/de"
	"github.com/oarkflow/jsonvalue/parser"
	"github.com/oarkflow/jsonvalue/value"
)

func mustParse(t *testing.T, doc string) value.Value {
	t.Helper()
	v, err := parser.ParseString(doc)
	if err != nil {
		t.Fatalf("parse %q: %v", doc, err)
	}
	return v
}

// intVisitor accepts integers only.
type intVisitor struct {
	de.BaseVisitor
}

func (intVisitor) VisitInt64(v int64) (any, error)   { return v, nil }
func (intVisitor) VisitUint64(v uint64) (any, error) { return int64(v), nil }

func newIntVisitor() intVisitor {
	return intVisitor{BaseVisitor: de.BaseVisitor{Exp: "an integer"}}
}

// boolVisitor accepts booleans only.
type boolVisitor struct {
	de.BaseVisitor
}

func (boolVisitor) VisitBool(v bool) (any, error) { return v, nil }

// pairVisitor consumes exactly two integers from a sequence.
type pairVisitor struct {
	de.BaseVisitor
}

func (pairVisitor) VisitSeq(seq de.SeqAccess) (any, error) {
	var out [2]int64
	for i := range out {
		d, ok, err := seq.NextElement()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &de.InvalidLengthError{Len: i, Expected: "a pair"}
		}
		n, err := d.DeserializeInt(newIntVisitor())
		if err != nil {
			return nil, err
		}
		out[i] = n.(int64)
	}
	return out, nil
}

// enumVisitor records the variant name and decodes a possible newtype
// payload as an integer.
type enumVisitor struct {
	de.BaseVisitor
	wantUnit bool
}

func (v enumVisitor) VisitEnum(e de.EnumAccess) (any, error) {
	name, va, err := e.Variant()
	if err != nil {
		return nil, err
	}
	if v.wantUnit {
		if err := va.UnitVariant(); err != nil {
			return nil, err
		}
		return name, nil
	}
	d, err := va.NewtypeVariant()
	if err != nil {
		return nil, err
	}
	payload, err := d.DeserializeInt(newIntVisitor())
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%s=%d", name, payload.(int64)), nil
}

func TestEnumUnitFromString(t *testing.T) {
	v := mustParse(t, `"Active"`)
	d := value.NewRefDeserializer(&v)
	out, err := d.DeserializeEnum("Status", []string{"Active", "Closed"}, enumVisitor{wantUnit: true})
	if err != nil {
		t.Fatalf("DeserializeEnum: %v", err)
	}
	if out != "Active" {
		t.Errorf("variant = %v, want Active", out)
	}
}

func TestEnumNewtypeFromObject(t *testing.T) {
	v := mustParse(t, `{"Code": 42}`)
	d := value.NewRefDeserializer(&v)
	out, err := d.DeserializeEnum("Status", []string{"Code"}, enumVisitor{})
	if err != nil {
		t.Fatalf("DeserializeEnum: %v", err)
	}
	if out != "Code=42" {
		t.Errorf("got %v, want Code=42", out)
	}
}

func TestEnumRejectsMultiKeyObject(t *testing.T) {
	v := mustParse(t, `{"A": 1, "B": 2}`)
	d := value.NewRefDeserializer(&v)
	_, err := d.DeserializeEnum("E", nil, enumVisitor{})
	var ive *de.InvalidValueError
	if !errors.As(err, &ive) {
		t.Fatalf("expected *InvalidValueError, got %T: %v", err, err)
	}
	if ive.Expected != "map with a single key" {
		t.Errorf("Expected = %q", ive.Expected)
	}
}

func TestEnumRejectsWrongShape(t *testing.T) {
	v := mustParse(t, `17`)
	d := value.NewRefDeserializer(&v)
	_, err := d.DeserializeEnum("E", nil, enumVisitor{})
	var ite *de.InvalidTypeError
	if !errors.As(err, &ite) {
		t.Fatalf("expected *InvalidTypeError, got %T: %v", err, err)
	}
	if ite.Expected != "string or map" {
		t.Errorf("Expected = %q", ite.Expected)
	}
}

// tupleEnumVisitor decodes a two-element tuple payload.
type tupleEnumVisitor struct {
	de.BaseVisitor
}

func (tupleEnumVisitor) VisitEnum(e de.EnumAccess) (any, error) {
	name, va, err := e.Variant()
	if err != nil {
		return nil, err
	}
	pair, err := va.TupleVariant(2, pairVisitor{})
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%s%v", name, pair), nil
}

func TestEnumTupleVariant(t *testing.T) {
	v := mustParse(t, `{"Point": [3, 4]}`)
	d := value.NewRefDeserializer(&v)
	out, err := d.DeserializeEnum("E", nil, tupleEnumVisitor{})
	if err != nil {
		t.Fatalf("DeserializeEnum: %v", err)
	}
	if out != "Point[3 4]" {
		t.Errorf("got %v", out)
	}
}

// structEnumVisitor decodes a struct-shaped payload with one field "x".
type structEnumVisitor struct {
	de.BaseVisitor
}

func (structEnumVisitor) VisitEnum(e de.EnumAccess) (any, error) {
	name, va, err := e.Variant()
	if err != nil {
		return nil, err
	}
	out, err := va.StructVariant([]string{"x"}, keyCollector{})
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%s%v", name, out), nil
}

func TestEnumStructVariant(t *testing.T) {
	v := mustParse(t, `{"Named": {"x": 5}}`)
	d := value.NewRefDeserializer(&v)
	out, err := d.DeserializeEnum("E", nil, structEnumVisitor{})
	if err != nil {
		t.Fatalf("DeserializeEnum: %v", err)
	}
	if out != "Named[s:x]" {
		t.Errorf("got %v", out)
	}
}

func TestEnumNewtypeWithoutPayload(t *testing.T) {
	v := mustParse(t, `"Active"`)
	d := value.NewRefDeserializer(&v)
	_, err := d.DeserializeEnum("E", nil, enumVisitor{})
	if !errors.Is(err, de.ErrUnitVariant) {
		t.Fatalf("err = %v, want de.ErrUnitVariant", err)
	}
}

func TestEnumUnitRejectsPayload(t *testing.T) {
	v := mustParse(t, `{"Active": 1}`)
	d := value.NewRefDeserializer(&v)
	_, err := d.DeserializeEnum("E", nil, enumVisitor{wantUnit: true})
	if err == nil {
		t.Fatal("unit variant with non-null payload should fail")
	}
}

func TestSeqUnconsumedElements(t *testing.T) {
	v := mustParse(t, `[1, 2, 3]`)
	d := value.NewRefDeserializer(&v)
	_, err := d.DeserializeTuple(2, pairVisitor{})
	var ile *de.InvalidLengthError
	if !errors.As(err, &ile) {
		t.Fatalf("expected *InvalidLengthError, got %T: %v", err, err)
	}
	if ile.Len != 3 || ile.Expected != "fewer elements in array" {
		t.Errorf("error = %v", ile)
	}
}

// oneEntryVisitor reads a single map entry and stops.
type oneEntryVisitor struct {
	de.BaseVisitor
}

func (oneEntryVisitor) VisitMap(m de.MapAccess) (any, error) {
	kd, ok, err := m.NextKey()
	if err != nil || !ok {
		return nil, err
	}
	if _, err := kd.DeserializeIgnoredAny(ignoreVisitor{}); err != nil {
		return nil, err
	}
	vd, err := m.NextValue()
	if err != nil {
		return nil, err
	}
	return vd.DeserializeIgnoredAny(ignoreVisitor{})
}

type ignoreVisitor struct {
	de.BaseVisitor
}

func (ignoreVisitor) VisitNull() (any, error) { return nil, nil }

func TestMapUnconsumedEntries(t *testing.T) {
	v := mustParse(t, `{"a": 1, "b": 2}`)
	d := value.NewRefDeserializer(&v)
	_, err := d.DeserializeMap(oneEntryVisitor{})
	var ile *de.InvalidLengthError
	if !errors.As(err, &ile) {
		t.Fatalf("expected *InvalidLengthError, got %T: %v", err, err)
	}
	if ile.Expected != "fewer elements in map" {
		t.Errorf("Expected = %q", ile.Expected)
	}
}

// keyCollector gathers map keys through integer-first coercion.
type keyCollector struct {
	de.BaseVisitor
}

func (keyCollector) VisitMap(m de.MapAccess) (any, error) {
	var keys []string
	for {
		kd, ok, err := m.NextKey()
		if err != nil {
			return nil, err
		}
		if !ok {
			return keys, nil
		}
		key, err := kd.DeserializeUint(coercedKeyVisitor{})
		if err != nil {
			return nil, err
		}
		keys = append(keys, key.(string))
		vd, err := m.NextValue()
		if err != nil {
			return nil, err
		}
		if _, err := vd.DeserializeIgnoredAny(ignoreVisitor{}); err != nil {
			return nil, err
		}
	}
}

// coercedKeyVisitor tags whether the key arrived as a number or text.
type coercedKeyVisitor struct {
	de.BaseVisitor
}

func (coercedKeyVisitor) VisitUint64(v uint64) (any, error) {
	return fmt.Sprintf("u:%d", v), nil
}

func (coercedKeyVisitor) VisitString(v string) (any, error) {
	return "s:" + v, nil
}

func TestMapKeyIntegerCoercion(t *testing.T) {
	v := mustParse(t, `{"3": "x", "abc": "y"}`)
	d := value.NewRefDeserializer(&v)
	out, err := d.DeserializeMap(keyCollector{})
	if err != nil {
		t.Fatalf("DeserializeMap: %v", err)
	}
	keys := out.([]string)
	want := []string{"u:3", "s:abc"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestDeserializeOption(t *testing.T) {
	v := mustParse(t, `null`)
	out, err := value.NewRefDeserializer(&v).DeserializeOption(ignoreVisitor{})
	if err != nil || out != nil {
		t.Errorf("null option = %v, %v", out, err)
	}

	v = mustParse(t, `5`)
	out, err = value.NewRefDeserializer(&v).DeserializeOption(newIntVisitor())
	if err != nil || out != int64(5) {
		t.Errorf("present option = %v, %v", out, err)
	}
}

func TestInvalidTypeMessage(t *testing.T) {
	v := mustParse(t, `"x"`)
	_, err := value.NewRefDeserializer(&v).DeserializeBool(boolVisitor{BaseVisitor: de.BaseVisitor{Exp: "a boolean"}})
	want := `invalid type: string "x", expected a boolean`
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}

func TestRefDeserializerKeepsTree(t *testing.T) {
	v := mustParse(t, `true`)
	if _, err := value.NewRefDeserializer(&v).DeserializeBool(boolVisitor{}); err != nil {
		t.Fatal(err)
	}
	if v.Kind() != value.KindBool || !v.Bool() {
		t.Error("tree should survive a reference decode")
	}
}

func TestBuilderRoundTrip(t *testing.T) {
	doc := `{"name": "x", "nums": [1, 2.5, -3], "ok": true, "none": null, "nested": {"k": "v"}}`
	v := mustParse(t, doc)
	rebuilt, err := value.Build(value.NewRefDeserializer(&v))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(rebuilt.Interface(), v.Interface()) {
		t.Errorf("round trip mismatch:\n got %#v\nwant %#v", rebuilt.Interface(), v.Interface())
	}
	// Object ordering survives the rebuild too.
	if !reflect.DeepEqual(rebuilt.Object().Keys(), v.Object().Keys()) {
		t.Errorf("key order mismatch: %v vs %v", rebuilt.Object().Keys(), v.Object().Keys())
	}
}

func TestBuilderNumberSentinel(t *testing.T) {
	obj := value.NewMap()
	obj.Set(value.NumberToken, value.NewString("123.456e789"))
	src := value.NewObject(obj)

	out, err := value.Build(value.NewRefDeserializer(&src))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if out.Kind() != value.KindNumber {
		t.Fatalf("Kind = %v, want number", out.Kind())
	}
	if got := out.Number().String(); got != "123.456e789" {
		t.Errorf("literal = %q", got)
	}
}

func TestBuilderRawSentinel(t *testing.T) {
	obj := value.NewMap()
	obj.Set(value.RawToken, value.NewString(`{"inner": 1}`))
	src := value.NewObject(obj)

	// Without a hook the sentinel is an error.
	if _, err := value.Build(value.NewRefDeserializer(&src)); err == nil {
		t.Fatal("raw sentinel without a hook should fail")
	}

	b := value.Builder{RawFunc: func(text string) (value.Value, error) {
		return parser.ParseString(text)
	}}
	out, err := value.NewRefDeserializer(&src).DeserializeAny(&b)
	if err != nil {
		t.Fatalf("DeserializeAny: %v", err)
	}
	inner, ok := out.(value.Value)
	if !ok {
		t.Fatalf("got %T", out)
	}
	got, _ := inner.Get("inner")
	if i, err := got.Number().Int64(); err != nil || i != 1 {
		t.Errorf("inner = %v, %v", i, err)
	}
}
