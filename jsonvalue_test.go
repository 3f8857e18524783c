package jsonvalue_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	json "github.com/oarkflow/jsonvalue"
	"github.com/oarkflow/jsonvalue/marshaler"
	"github.com/oarkflow/jsonvalue/unmarshaler"
	"github.com/oarkflow/jsonvalue/value"
)

type profile struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Age     uint8    `json:"age"`
	Active  bool     `json:"active"`
	Hobbies []string `json:"hobbies"`
}

func fakeProfile() profile {
	return profile{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Age:     uint8(gofakeit.Number(18, 90)),
		Active:  gofakeit.Bool(),
		Hobbies: []string{gofakeit.Hobby(), gofakeit.Hobby()},
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	in := fakeProfile()
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out profile
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestUnmarshalRequiresPointer(t *testing.T) {
	var p profile
	err := json.Unmarshal([]byte(`{}`), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pointer")
}

func TestSwappableEngines(t *testing.T) {
	unmarshalCalls := 0
	json.SetUnmarshaler(func(data []byte, dst any) error {
		unmarshalCalls++
		return unmarshaler.Native(data, dst)
	})
	defer json.SetUnmarshaler(unmarshaler.Native)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1}`), &out))
	assert.Equal(t, 1, unmarshalCalls)

	original := marshaler.Instance()
	json.SetMarshaler(func(any) ([]byte, error) {
		return []byte(`"stub"`), nil
	})
	defer json.SetMarshaler(original)
	data, err := json.Marshal(map[string]int{"ignored": 1})
	require.NoError(t, err)
	assert.Equal(t, `"stub"`, string(data))

	m, u := json.Engines()
	assert.NotEmpty(t, m)
	assert.NotEmpty(t, u)
}

func TestParseAndQuery(t *testing.T) {
	v, err := json.ParseString(`{"user": {"age": 27, "scores": [5, 9]}, "ratio": 0.5}`)
	require.NoError(t, err)

	adult, err := json.Query(v, `user.age > 18`)
	require.NoError(t, err)
	assert.Equal(t, true, adult)

	total, err := json.Query(v, `user.scores[0] + user.scores[1]`)
	require.NoError(t, err)
	assert.EqualValues(t, 14, total)

	_, err = json.Query(v, `no such expression ^^^`)
	assert.Error(t, err)
}

func TestDecodeFromTree(t *testing.T) {
	v, err := json.Parse([]byte(`{"name": "x", "email": "x@y.z", "age": 3, "active": true, "hobbies": []}`))
	require.NoError(t, err)

	var p profile
	require.NoError(t, json.Decode(v, &p))
	assert.Equal(t, "x", p.Name)

	// The reference form leaves the tree intact for a second decode.
	var q profile
	require.NoError(t, json.DecodeRef(&v, &q))
	assert.Equal(t, p, q)
	assert.Equal(t, value.KindObject, v.Kind())
}

func TestValid(t *testing.T) {
	assert.True(t, json.Valid([]byte(`{"a": [1, 2.5, "s\n"], "b": null}`)))
	assert.True(t, json.Valid([]byte(`"scalar"`)))
	assert.False(t, json.Valid([]byte(`{"a": }`)))
	assert.False(t, json.Valid([]byte(`{"a": 1} extra`)))
	assert.False(t, json.Valid(nil))
}

func TestIs(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`{"name": "John", "age": 30}`, true},
		{`[{"name": "John"}, {"name": "Jane"}]`, true},
		{`  {"padded": true}  `, true},
		{`{"quote": "a \" b"}`, true},
		{``, false},
		{`"bare string"`, false},
		{`{"unbalanced": [}`, false},
		{`{"open": [1, 2`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, json.Is(tt.in), "Is(%q)", tt.in)
	}
}

func TestStreamingDecoder(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`{"seq": 1} {"seq": 2}`))
	var seen []int64
	for dec.More() {
		var m map[string]int64
		require.NoError(t, dec.Decode(&m))
		seen = append(seen, m["seq"])
	}
	assert.Equal(t, []int64{1, 2}, seen)
}

func TestStreamingEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	require.NoError(t, enc.Encode(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func BenchmarkIs(b *testing.B) {
	tests := []string{
		`{"name": "John", "age": 30, "city": "New York"}`,
		`[{"name": "John"}, {"name": "Jane"}]`,
		`{name: "John", age: 30, city: "New York"}`,
		``,
		`"name": "John", "age": 30, "city": "New York"}`,
	}
	for _, test := range tests {
		b.Run(test, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				json.Is(test)
			}
		})
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	data := []byte(`{"name": "John", "email": "j@d.com", "age": 30, "active": true, "hobbies": ["x", "y"]}`)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var p profile
		if err := json.Unmarshal(data, &p); err != nil {
			b.Fatal(err)
		}
	}
}
