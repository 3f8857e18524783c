package unmarshaler

import (
	"github.com/oarkflow/jsonvalue/bind"
	"github.com/oarkflow/jsonvalue/parser"
	"github.com/oarkflow/jsonvalue/value"
)

type Unmarshaler func([]byte, any) error

var (
	unmarshaler Unmarshaler
)

func init() {
	unmarshaler = Native
}

// Native parses data into a value tree and binds the tree onto dst.
// The text is scanned exactly once.
func Native(data []byte, dst any) error {
	v, err := parser.Parse(data)
	if err != nil {
		return err
	}
	return bind.Decode(value.NewDeserializer(v), dst)
}

func SetUnmarshaler(m Unmarshaler) {
	unmarshaler = m
}

func Instance() Unmarshaler {
	return unmarshaler
}
