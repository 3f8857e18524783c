package jsonvalue

import (
	"io"

	"github.com/oarkflow/jsonvalue/bind"
	"github.com/oarkflow/jsonvalue/parser"
	"github.com/oarkflow/jsonvalue/reader"
	"github.com/oarkflow/jsonvalue/value"
)

type IDecoder interface {
	Decode(any) error
	More() bool
}

type DecoderFactory func(io.Reader) IDecoder

var decoderFactory DecoderFactory

func init() {
	DefaultDecoder()
}

// DefaultDecoder restores the stock streaming decoder. It decodes
// successive whitespace-separated documents from the reader and fuses
// after the first error.
func DefaultDecoder() {
	decoderFactory = func(r io.Reader) IDecoder {
		return &streamDecoder{s: parser.NewStream(reader.NewStreamReader(r))}
	}
}

// SetDecoder allows you to set a custom decoder factory.
func SetDecoder(factory DecoderFactory) {
	decoderFactory = factory
}

// NewDecoder creates a new decoder using the currently set decoder factory.
func NewDecoder(r io.Reader) IDecoder {
	return decoderFactory(r)
}

type streamDecoder struct {
	s *parser.Stream
}

func (d *streamDecoder) Decode(dst any) error {
	v, err := d.s.Next()
	if err != nil {
		return err
	}
	return bind.Decode(value.NewDeserializer(v), dst)
}

func (d *streamDecoder) More() bool {
	return d.s.More()
}
