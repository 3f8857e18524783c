package parser

import (
	"io"

	"github.com/oarkflow/jsonvalue/reader"
	"github.com/oarkflow/jsonvalue/value"
)

// Check validates one document without building a tree. Strings are
// skipped with IgnoreStr, so the walk rejects exactly what Parse
// rejects while allocating nothing.
func Check(data []byte) error {
	p := New(reader.NewSliceReader(data))
	if err := p.checkValue(0); err != nil {
		return err
	}
	if _, ok, err := p.peekNonWS(); err != nil {
		return err
	} else if ok {
		return reader.SyntaxErrorAt(p.r, reader.ErrTrailingCharacters)
	}
	return nil
}

func (p *Parser) checkValue(depth int) error {
	if depth >= maxDepth {
		return reader.SyntaxErrorAt(p.r, reader.ErrRecursionLimitExceeded)
	}
	ch, ok, err := p.peekNonWS()
	if err != nil {
		return err
	}
	if !ok {
		return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingValue)
	}
	switch {
	case ch == '"':
		p.r.Discard()
		return p.r.IgnoreStr()
	case ch == '{':
		p.r.Discard()
		return p.checkObject(depth)
	case ch == '[':
		p.r.Discard()
		return p.checkArray(depth)
	case ch == 't':
		_, err := p.parseLiteral("true", value.Null())
		return err
	case ch == 'f':
		_, err := p.parseLiteral("false", value.Null())
		return err
	case ch == 'n':
		_, err := p.parseLiteral("null", value.Null())
		return err
	case ch == '-' || (ch >= '0' && ch <= '9'):
		return p.scanNumber(func(byte) {})
	default:
		return reader.SyntaxErrorAt(p.r, reader.ErrExpectedSomeValue)
	}
}

func (p *Parser) checkObject(depth int) error {
	ch, ok, err := p.peekNonWS()
	if err != nil {
		return err
	}
	if !ok {
		return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingObject)
	}
	if ch == '}' {
		p.r.Discard()
		return nil
	}
	for {
		ch, ok, err := p.peekNonWS()
		if err != nil {
			return err
		}
		if !ok {
			return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingObject)
		}
		if ch != '"' {
			return reader.SyntaxErrorAt(p.r, reader.ErrKeyMustBeAString)
		}
		p.r.Discard()
		if err := p.r.IgnoreStr(); err != nil {
			return err
		}
		ch, ok, err = p.peekNonWS()
		if err != nil {
			return err
		}
		if !ok {
			return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingObject)
		}
		if ch != ':' {
			return reader.SyntaxErrorAt(p.r, reader.ErrExpectedColon)
		}
		p.r.Discard()
		if err := p.checkValue(depth + 1); err != nil {
			return err
		}
		ch, ok, err = p.peekNonWS()
		if err != nil {
			return err
		}
		if !ok {
			return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingObject)
		}
		switch ch {
		case ',':
			p.r.Discard()
		case '}':
			p.r.Discard()
			return nil
		default:
			return reader.SyntaxErrorAt(p.r, reader.ErrExpectedObjectCommaOrEnd)
		}
	}
}

func (p *Parser) checkArray(depth int) error {
	ch, ok, err := p.peekNonWS()
	if err != nil {
		return err
	}
	if !ok {
		return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingList)
	}
	if ch == ']' {
		p.r.Discard()
		return nil
	}
	for {
		if err := p.checkValue(depth + 1); err != nil {
			return err
		}
		ch, ok, err := p.peekNonWS()
		if err != nil {
			return err
		}
		if !ok {
			return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingList)
		}
		switch ch {
		case ',':
			p.r.Discard()
		case ']':
			p.r.Discard()
			return nil
		default:
			return reader.SyntaxErrorAt(p.r, reader.ErrExpectedListCommaOrEnd)
		}
	}
}

// Stream decodes a sequence of whitespace-separated top-level values
// from one reader. After the first error the stream is fused: stream
// backends set a failed flag, slice backends truncate their input.
type Stream struct {
	p      *Parser
	failed bool
}

func NewStream(r reader.Reader) *Stream {
	return &Stream{p: New(r)}
}

// More reports whether another value is pending, skipping whitespace.
func (s *Stream) More() bool {
	if s.failed && s.p.r.EarlyReturnOnFail() {
		return false
	}
	_, ok, err := s.p.peekNonWS()
	return err == nil && ok
}

// Next returns the next document, or io.EOF once the input is
// exhausted or a previous call failed.
func (s *Stream) Next() (value.Value, error) {
	if s.failed && s.p.r.EarlyReturnOnFail() {
		return value.Value{}, io.EOF
	}
	_, ok, peekErr := s.p.peekNonWS()
	if peekErr != nil {
		return value.Value{}, peekErr
	}
	if !ok {
		return value.Value{}, io.EOF
	}
	v, err := s.p.parseValue(0)
	if err != nil {
		s.p.r.SetFailed(&s.failed)
		return value.Value{}, err
	}
	return v, nil
}
