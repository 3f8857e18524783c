package bind_test

import (
	"strings"
	"testing"
	"time"

	"github.com/oarkflow/jsonvalue/bind"
	"github.com/oarkflow/jsonvalue/parser"
	"github.com/oarkflow/jsonvalue/value"
)

func source(t *testing.T, doc string) *value.Deserializer {
	t.Helper()
	v, err := parser.ParseString(doc)
	if err != nil {
		t.Fatalf("parse %q: %v", doc, err)
	}
	return value.NewDeserializer(v)
}

type address struct {
	City string `json:"city"`
	Zip  string `json:"zip"`
}

type account struct {
	ID        uint64         `json:"id"`
	Name      string         `json:"name"`
	Balance   float64        `json:"balance"`
	Active    bool           `json:"active"`
	Tags      []string       `json:"tags"`
	Address   address        `json:"address"`
	Parent    *address       `json:"parent"`
	Meta      map[string]any `json:"meta"`
	Secret    string         `json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	internal  string
}

func TestDecodeStruct(t *testing.T) {
	doc := `{
		"id": 7,
		"name": "anita",
		"balance": 12.5,
		"active": true,
		"tags": ["a", "b"],
		"address": {"city": "ktm", "zip": "44600"},
		"parent": {"city": "pkr", "zip": "33700"},
		"meta": {"k": "v", "n": 2},
		"-": "should not land anywhere",
		"created_at": "2024-01-15 10:30:00"
	}`
	var acc account
	if err := bind.Decode(source(t, doc), &acc); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if acc.ID != 7 || acc.Name != "anita" || acc.Balance != 12.5 || !acc.Active {
		t.Errorf("scalars = %+v", acc)
	}
	if len(acc.Tags) != 2 || acc.Tags[1] != "b" {
		t.Errorf("tags = %v", acc.Tags)
	}
	if acc.Address.City != "ktm" {
		t.Errorf("address = %+v", acc.Address)
	}
	if acc.Parent == nil || acc.Parent.Zip != "33700" {
		t.Errorf("parent = %+v", acc.Parent)
	}
	if acc.Meta["k"] != "v" || acc.Meta["n"] != int64(2) {
		t.Errorf("meta = %#v", acc.Meta)
	}
	if acc.Secret != "" || acc.internal != "" {
		t.Error("skipped fields should stay zero")
	}
	if acc.CreatedAt.Year() != 2024 || acc.CreatedAt.Month() != time.January || acc.CreatedAt.Day() != 15 {
		t.Errorf("created_at = %v", acc.CreatedAt)
	}
}

func TestDecodeMissingFieldsUntouched(t *testing.T) {
	acc := account{Name: "keep"}
	if err := bind.Decode(source(t, `{"id": 1}`), &acc); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if acc.Name != "keep" || acc.ID != 1 {
		t.Errorf("got %+v", acc)
	}
}

func TestDecodeScalars(t *testing.T) {
	var s string
	if err := bind.Decode(source(t, `"hi"`), &s); err != nil || s != "hi" {
		t.Errorf("string = %q, %v", s, err)
	}
	var n int8
	if err := bind.Decode(source(t, `-3`), &n); err != nil || n != -3 {
		t.Errorf("int8 = %d, %v", n, err)
	}
	var f float32
	if err := bind.Decode(source(t, `0.25`), &f); err != nil || f != 0.25 {
		t.Errorf("float32 = %v, %v", f, err)
	}
	var b []byte
	if err := bind.Decode(source(t, `"raw"`), &b); err != nil || string(b) != "raw" {
		t.Errorf("bytes = %q, %v", b, err)
	}
	var anything any
	if err := bind.Decode(source(t, `[1, "x"]`), &anything); err != nil {
		t.Fatal(err)
	}
	arr := anything.([]any)
	if arr[0] != int64(1) || arr[1] != "x" {
		t.Errorf("any = %#v", anything)
	}
}

func TestDecodeNullZeroes(t *testing.T) {
	s := "pre"
	if err := bind.Decode(source(t, `null`), &s); err != nil || s != "" {
		t.Errorf("null should zero the target, got %q, %v", s, err)
	}
	p := &address{City: "x"}
	if err := bind.Decode(source(t, `null`), &p); err != nil || p != nil {
		t.Errorf("null should nil the pointer, got %v, %v", p, err)
	}
}

func TestDecodeIntegerKeyedMap(t *testing.T) {
	var m map[int]string
	if err := bind.Decode(source(t, `{"1": "a", "2": "b"}`), &m); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m[1] != "a" || m[2] != "b" {
		t.Errorf("m = %v", m)
	}

	var bad map[int]string
	err := bind.Decode(source(t, `{"x": "a"}`), &bad)
	if err == nil || !strings.Contains(err.Error(), "map key") {
		t.Errorf("non-numeric key should fail, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	var n int
	if err := bind.Decode(source(t, `1`), n); err == nil {
		t.Error("non-pointer target should fail")
	}
	if err := bind.Decode(source(t, `"text"`), &n); err == nil {
		t.Error("string into int should fail")
	}
	if err := bind.Decode(source(t, `1.5`), &n); err == nil {
		t.Error("fractional number into int should fail")
	}
	var small int8
	if err := bind.Decode(source(t, `300`), &small); err == nil {
		t.Error("overflowing int8 should fail")
	}
	var u uint
	if err := bind.Decode(source(t, `-1`), &u); err == nil {
		t.Error("negative into uint should fail")
	}
	var tm time.Time
	if err := bind.Decode(source(t, `"not a date at all ???"`), &tm); err == nil {
		t.Error("unparsable time should fail")
	}
}

func TestDecodeErrorNamesField(t *testing.T) {
	var acc account
	err := bind.Decode(source(t, `{"balance": "oops"}`), &acc)
	if err == nil || !strings.Contains(err.Error(), `field "balance"`) {
		t.Errorf("error should name the field, got %v", err)
	}
}

func BenchmarkDecodeStruct(b *testing.B) {
	doc := `{"id": 7, "name": "anita", "balance": 12.5, "active": true, "tags": ["a", "b"]}`
	v, err := parser.ParseString(doc)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var acc account
		if err := bind.Decode(value.NewRefDeserializer(&v), &acc); err != nil {
			b.Fatal(err)
		}
	}
}
