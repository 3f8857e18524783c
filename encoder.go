package jsonvalue

import (
	"io"

	goccy "github.com/goccy/go-json"
)

type IEncoder interface {
	Encode(any) error
	SetIndent(prefix, indent string)
	SetEscapeHTML(on bool)
}

type EncoderFactory func(io.Writer) IEncoder

var encoderFactory EncoderFactory

func init() {
	DefaultEncoder()
}

// DefaultEncoder restores the stock streaming encoder.
func DefaultEncoder() {
	encoderFactory = func(w io.Writer) IEncoder {
		return goccy.NewEncoder(w)
	}
}

// SetEncoder allows you to set a custom encoder factory.
func SetEncoder(factory EncoderFactory) {
	encoderFactory = factory
}

// NewEncoder creates a new encoder using the currently set encoder factory.
func NewEncoder(w io.Writer) IEncoder {
	return encoderFactory(w)
}
