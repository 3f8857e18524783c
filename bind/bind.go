// Package bind materializes any de.Deserializer into ordinary Go
// targets: primitives, maps, slices, pointers and structs with `json`
// tags. Struct field metadata is cached per type.
package bind

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/oarkflow/date"

	"github.com/oarkflow/jsonvalue/de"
)

var timeType = reflect.TypeOf(time.Time{})

// Decode drives d once and assigns the result into target, which must
// be a non-nil pointer.
func Decode(d de.Deserializer, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("bind: target must be a non-nil pointer")
	}
	raw, err := d.DeserializeAny(anyVisitor{})
	if err != nil {
		return err
	}
	return assignValue(rv.Elem(), raw)
}

// ----------------------
// Generic materialization
// ----------------------

// anyVisitor converts whatever the source holds into plain Go values:
// nil, bool, int64, uint64, float64, string, []any, map[string]any.
type anyVisitor struct{}

func (anyVisitor) Expecting() string {
	return "any valid value"
}

func (anyVisitor) VisitNull() (any, error) {
	return nil, nil
}

func (anyVisitor) VisitBool(v bool) (any, error) {
	return v, nil
}

func (anyVisitor) VisitInt64(v int64) (any, error) {
	return v, nil
}

func (anyVisitor) VisitUint64(v uint64) (any, error) {
	return v, nil
}

func (anyVisitor) VisitFloat64(v float64) (any, error) {
	return v, nil
}

func (anyVisitor) VisitString(v string) (any, error) {
	return v, nil
}

func (anyVisitor) VisitBytes(v []byte) (any, error) {
	return string(v), nil
}

func (anyVisitor) VisitSeq(seq de.SeqAccess) (any, error) {
	var out []any
	if n, exact := seq.SizeHint(); exact {
		out = make([]any, 0, n)
	}
	for {
		d, ok, err := seq.NextElement()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		elem, err := d.DeserializeAny(anyVisitor{})
		if err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
}

func (anyVisitor) VisitMap(m de.MapAccess) (any, error) {
	out := make(map[string]any)
	for {
		kd, ok, err := m.NextKey()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		key, err := kd.DeserializeAny(anyVisitor{})
		if err != nil {
			return nil, err
		}
		ks, ok := key.(string)
		if !ok {
			ks = fmt.Sprint(key)
		}
		vd, err := m.NextValue()
		if err != nil {
			return nil, err
		}
		v, err := vd.DeserializeAny(anyVisitor{})
		if err != nil {
			return nil, err
		}
		out[ks] = v
	}
}

func (anyVisitor) VisitEnum(e de.EnumAccess) (any, error) {
	name, va, err := e.Variant()
	if err != nil {
		return nil, err
	}
	d, err := va.NewtypeVariant()
	if errors.Is(err, de.ErrUnitVariant) {
		// No payload: just the name.
		return name, nil
	}
	if err != nil {
		return nil, err
	}
	payload, err := d.DeserializeAny(anyVisitor{})
	if err != nil {
		return nil, err
	}
	return map[string]any{name: payload}, nil
}

// ----------------------
// Struct field metadata cache
// ----------------------

type fieldInfo struct {
	index []int
	name  string
}

var structCache sync.Map // map[reflect.Type][]fieldInfo

func getStructFields(t reflect.Type) []fieldInfo {
	if cached, ok := structCache.Load(t); ok {
		return cached.([]fieldInfo)
	}
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		key := field.Name
		if tag := field.Tag.Get("json"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				key = parts[0]
			}
		}
		fields = append(fields, fieldInfo{index: field.Index, name: key})
	}
	structCache.Store(t, fields)
	return fields
}

// ----------------------
// Assignment
// ----------------------

func assignValue(fv reflect.Value, raw any) error {
	if raw == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}

	if fv.Type() == timeType {
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("expected string for time.Time, got %T", raw)
		}
		parsed, err := date.Parse(s)
		if err != nil {
			return fmt.Errorf("cannot parse %q as time: %w", s, err)
		}
		fv.Set(reflect.ValueOf(parsed))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", raw)
		}
		fv.SetString(s)
	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", raw)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := coerceInt64(raw)
		if err != nil {
			return err
		}
		if fv.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, fv.Type())
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := coerceUint64(raw)
		if err != nil {
			return err
		}
		if fv.OverflowUint(n) {
			return fmt.Errorf("value %d overflows %s", n, fv.Type())
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := coerceFloat64(raw)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			if s, ok := raw.(string); ok {
				fv.SetBytes([]byte(s))
				return nil
			}
		}
		arr, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("expected array, got %T", raw)
		}
		slice := reflect.MakeSlice(fv.Type(), len(arr), len(arr))
		for i := range arr {
			if err := assignValue(slice.Index(i), arr[i]); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		fv.Set(slice)
	case reflect.Map:
		m, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("expected object, got %T", raw)
		}
		out := reflect.MakeMapWithSize(fv.Type(), len(m))
		for k, v := range m {
			kv, err := mapKey(fv.Type().Key(), k)
			if err != nil {
				return err
			}
			ev := reflect.New(fv.Type().Elem()).Elem()
			if err := assignValue(ev, v); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			out.SetMapIndex(kv, ev)
		}
		fv.Set(out)
	case reflect.Struct:
		m, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("expected object for struct, got %T", raw)
		}
		return decodeStruct(fv, m)
	case reflect.Ptr:
		ptr := reflect.New(fv.Type().Elem())
		if err := assignValue(ptr.Elem(), raw); err != nil {
			return err
		}
		fv.Set(ptr)
	case reflect.Interface:
		fv.Set(reflect.ValueOf(raw))
	default:
		return fmt.Errorf("unsupported target type %s", fv.Type())
	}
	return nil
}

func decodeStruct(v reflect.Value, data map[string]any) error {
	for _, info := range getStructFields(v.Type()) {
		raw, exists := data[info.name]
		if !exists {
			continue
		}
		fv := v.FieldByIndex(info.index)
		if !fv.CanSet() {
			continue
		}
		if err := assignValue(fv, raw); err != nil {
			return fmt.Errorf("field %q: %w", info.name, err)
		}
	}
	return nil
}

// mapKey converts decoded key text into the target map's key type.
// Integer-keyed maps parse the text; anything unparsable is an error at
// this level, since the Go map cannot hold the text form.
func mapKey(t reflect.Type, key string) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(t), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot use %q as %s map key", key, t)
		}
		out := reflect.New(t).Elem()
		out.SetInt(n)
		return out, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot use %q as %s map key", key, t)
		}
		out := reflect.New(t).Elem()
		out.SetUint(n)
		return out, nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported map key type %s", t)
	}
}

func coerceInt64(raw any) (int64, error) {
	switch n := raw.(type) {
	case int64:
		return n, nil
	case uint64:
		if n > 1<<63-1 {
			return 0, fmt.Errorf("value %d overflows int64", n)
		}
		return int64(n), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("value %v is not an integer", n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}

func coerceUint64(raw any) (uint64, error) {
	switch n := raw.(type) {
	case int64:
		if n < 0 {
			return 0, fmt.Errorf("value %d is negative", n)
		}
		return uint64(n), nil
	case uint64:
		return n, nil
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, fmt.Errorf("value %v is not an unsigned integer", n)
		}
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}

func coerceFloat64(raw any) (float64, error) {
	switch n := raw.(type) {
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}
