// Package parser drives a reader over JSON text and assembles a
// value.Value tree. One scratch buffer is reused across every string in
// a document, so strings without escapes decode without any copying:
// for slice- and string-backed input the resulting tree aliases the
// input buffer, which therefore must not be modified while the tree is
// in use.
package parser

import (
	"io"

	"github.com/oarkflow/jsonvalue/reader"
	"github.com/oarkflow/jsonvalue/value"
)

const maxDepth = 1024

type Parser struct {
	r       reader.Reader
	scratch []byte
}

func New(r reader.Reader) *Parser {
	return &Parser{r: r}
}

// Parse decodes one document from a byte slice. String values alias the
// slice wherever possible.
func Parse(data []byte) (value.Value, error) {
	return New(reader.NewSliceReader(data)).Document()
}

// ParseString decodes one document from a string.
func ParseString(s string) (value.Value, error) {
	return New(reader.NewStringReader(s)).Document()
}

// ParseReader decodes one document from a stream. All string content is
// copied; an I/O failure aborts the parse.
func ParseReader(rd io.Reader) (value.Value, error) {
	return New(reader.NewStreamReader(rd)).Document()
}

// Document parses exactly one value and requires only whitespace to
// follow it.
func (p *Parser) Document() (value.Value, error) {
	v, err := p.parseValue(0)
	if err != nil {
		return value.Value{}, err
	}
	if _, ok, err := p.peekNonWS(); err != nil {
		return value.Value{}, err
	} else if ok {
		return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrTrailingCharacters)
	}
	return v, nil
}

// peekNonWS skips insignificant whitespace and peeks the next byte.
// ok=false means clean end of input.
func (p *Parser) peekNonWS() (byte, bool, error) {
	for {
		ch, err := p.r.Peek()
		if err == io.EOF {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		switch ch {
		case ' ', '\t', '\n', '\r':
			p.r.Discard()
		default:
			return ch, true, nil
		}
	}
}

func (p *Parser) parseValue(depth int) (value.Value, error) {
	if depth >= maxDepth {
		return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrRecursionLimitExceeded)
	}
	ch, ok, err := p.peekNonWS()
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingValue)
	}
	switch {
	case ch == '"':
		p.r.Discard()
		s, err := p.parseString()
		if err != nil {
			return value.Value{}, err
		}
		return value.NewString(s), nil
	case ch == '{':
		p.r.Discard()
		return p.parseObject(depth)
	case ch == '[':
		p.r.Discard()
		return p.parseArray(depth)
	case ch == 't':
		return p.parseLiteral("true", value.NewBool(true))
	case ch == 'f':
		return p.parseLiteral("false", value.NewBool(false))
	case ch == 'n':
		return p.parseLiteral("null", value.Null())
	case ch == '-' || (ch >= '0' && ch <= '9'):
		return p.parseNumber()
	default:
		return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrExpectedSomeValue)
	}
}

// parseString decodes a string literal whose opening quote has been
// consumed. A borrowed result is viewed in place; a copied result is
// snapshotted out of the scratch buffer before the next reuse.
func (p *Parser) parseString() (string, error) {
	p.scratch = p.scratch[:0]
	ref, err := p.r.ParseStr(&p.scratch)
	if err != nil {
		return "", err
	}
	if ref.IsBorrowed() {
		return ref.String(), nil
	}
	return string(ref.Bytes()), nil
}

func (p *Parser) parseLiteral(lit string, v value.Value) (value.Value, error) {
	for i := 0; i < len(lit); i++ {
		ch, err := p.r.Next()
		if err == io.EOF {
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingValue)
		}
		if err != nil {
			return value.Value{}, err
		}
		if ch != lit[i] {
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrExpectedSomeValue)
		}
	}
	return v, nil
}

func (p *Parser) parseObject(depth int) (value.Value, error) {
	obj := value.NewMap()
	ch, ok, err := p.peekNonWS()
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingObject)
	}
	if ch == '}' {
		p.r.Discard()
		return value.NewObject(obj), nil
	}
	for {
		ch, ok, err := p.peekNonWS()
		if err != nil {
			return value.Value{}, err
		}
		if !ok {
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingObject)
		}
		if ch != '"' {
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrKeyMustBeAString)
		}
		p.r.Discard()
		key, err := p.parseString()
		if err != nil {
			return value.Value{}, err
		}
		ch, ok, err = p.peekNonWS()
		if err != nil {
			return value.Value{}, err
		}
		if !ok {
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingObject)
		}
		if ch != ':' {
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrExpectedColon)
		}
		p.r.Discard()
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		// Duplicate keys: last write wins.
		obj.Set(key, v)
		ch, ok, err = p.peekNonWS()
		if err != nil {
			return value.Value{}, err
		}
		if !ok {
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingObject)
		}
		switch ch {
		case ',':
			p.r.Discard()
		case '}':
			p.r.Discard()
			return value.NewObject(obj), nil
		default:
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrExpectedObjectCommaOrEnd)
		}
	}
}

func (p *Parser) parseArray(depth int) (value.Value, error) {
	var items []value.Value
	ch, ok, err := p.peekNonWS()
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingList)
	}
	if ch == ']' {
		p.r.Discard()
		return value.NewArray(items), nil
	}
	for {
		v, err := p.parseValue(depth + 1)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
		ch, ok, err := p.peekNonWS()
		if err != nil {
			return value.Value{}, err
		}
		if !ok {
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingList)
		}
		switch ch {
		case ',':
			p.r.Discard()
		case ']':
			p.r.Discard()
			return value.NewArray(items), nil
		default:
			return value.Value{}, reader.SyntaxErrorAt(p.r, reader.ErrExpectedListCommaOrEnd)
		}
	}
}

func (p *Parser) parseNumber() (value.Value, error) {
	p.scratch = p.scratch[:0]
	if err := p.scanNumber(func(ch byte) {
		p.scratch = append(p.scratch, ch)
	}); err != nil {
		return value.Value{}, err
	}
	return value.NewNumber(value.NumberFromLiteral(string(p.scratch))), nil
}

// scanNumber walks the JSON number grammar, feeding each accepted byte
// to emit. The first byte is known to be '-' or a digit.
func (p *Parser) scanNumber(emit func(byte)) error {
	ch, err := p.r.Next()
	if err != nil {
		return err
	}
	emit(ch)
	if ch == '-' {
		ch, err = p.r.Next()
		if err == io.EOF {
			return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingValue)
		}
		if err != nil {
			return err
		}
		if ch < '0' || ch > '9' {
			return reader.SyntaxErrorAt(p.r, reader.ErrInvalidNumber)
		}
		emit(ch)
	}
	if ch == '0' {
		// A leading zero takes no more integer digits.
		if _, ok, err := p.peekDigit(); err != nil {
			return err
		} else if ok {
			return reader.SyntaxErrorAt(p.r, reader.ErrInvalidNumber)
		}
	} else {
		if err := p.scanDigits(emit); err != nil {
			return err
		}
	}
	ch, err = p.r.Peek()
	if err != nil && err != io.EOF {
		return err
	}
	if err == nil && ch == '.' {
		p.r.Discard()
		emit('.')
		if err := p.requireDigits(emit); err != nil {
			return err
		}
		ch, err = p.r.Peek()
		if err != nil && err != io.EOF {
			return err
		}
	}
	if err == nil && (ch == 'e' || ch == 'E') {
		p.r.Discard()
		emit(ch)
		ch, err = p.r.Peek()
		if err == io.EOF {
			return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingValue)
		}
		if err != nil {
			return err
		}
		if ch == '+' || ch == '-' {
			p.r.Discard()
			emit(ch)
		}
		if err := p.requireDigits(emit); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) peekDigit() (byte, bool, error) {
	ch, err := p.r.Peek()
	if err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if ch < '0' || ch > '9' {
		return 0, false, nil
	}
	return ch, true, nil
}

func (p *Parser) scanDigits(emit func(byte)) error {
	for {
		ch, ok, err := p.peekDigit()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		p.r.Discard()
		emit(ch)
	}
}

func (p *Parser) requireDigits(emit func(byte)) error {
	ch, ok, err := p.peekDigit()
	if err != nil {
		return err
	}
	if !ok {
		if _, peekErr := p.r.Peek(); peekErr == io.EOF {
			return reader.SyntaxErrorAt(p.r, reader.ErrEOFWhileParsingValue)
		}
		return reader.SyntaxErrorAt(p.r, reader.ErrInvalidNumber)
	}
	p.r.Discard()
	emit(ch)
	return p.scanDigits(emit)
}
