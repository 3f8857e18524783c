package marshaler

import (
	goccy "github.com/goccy/go-json"
)

type Marshaler func(any) ([]byte, error)

var (
	marshaler Marshaler
)

func init() {
	marshaler = goccy.Marshal
}

func SetMarshaler(m Marshaler) {
	marshaler = m
}

func Instance() Marshaler {
	return marshaler
}
