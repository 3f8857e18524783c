package reader

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// StreamReader reads JSON text from an io.Reader. String content is
// always copied into scratch; a streaming source can never hand out
// borrowed views. An error from the underlying reader is wrapped in
// *IOError and is fatal for the current decode.
type StreamReader struct {
	br      *bufio.Reader
	peeked  byte
	hasPeek bool
	offset  int
	line    int
	column  int
}

func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{br: bufio.NewReader(r), line: 1}
}

func (r *StreamReader) advance(ch byte) {
	r.offset++
	if ch == '\n' {
		r.line++
		r.column = 0
	} else {
		r.column++
	}
}

func (r *StreamReader) readByte() (byte, error) {
	ch, err := r.br.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, &IOError{Err: err}
	}
	return ch, nil
}

func (r *StreamReader) Next() (byte, error) {
	if r.hasPeek {
		r.hasPeek = false
		r.advance(r.peeked)
		return r.peeked, nil
	}
	ch, err := r.readByte()
	if err != nil {
		return 0, err
	}
	r.advance(ch)
	return ch, nil
}

func (r *StreamReader) Peek() (byte, error) {
	if r.hasPeek {
		return r.peeked, nil
	}
	ch, err := r.readByte()
	if err != nil {
		return 0, err
	}
	r.peeked = ch
	r.hasPeek = true
	return ch, nil
}

func (r *StreamReader) Discard() {
	if r.hasPeek {
		r.hasPeek = false
		r.advance(r.peeked)
	}
}

func (r *StreamReader) Position() Position {
	return Position{Line: r.line, Column: r.column}
}

func (r *StreamReader) PeekPosition() Position {
	return Position{Line: r.line, Column: r.column}
}

func (r *StreamReader) ByteOffset() int {
	return r.offset
}

func (r *StreamReader) parseStrBytes(scratch *[]byte, validate bool) (Reference, error) {
	for {
		ch, err := nextOrEOF(r)
		if err != nil {
			return Reference{}, err
		}
		switch strClass[ch] {
		case classPlain:
			*scratch = append(*scratch, ch)
		case classQuote:
			return Copied(*scratch), nil
		case classBackslash:
			if err := parseEscape(r, validate, scratch); err != nil {
				return Reference{}, err
			}
		default:
			if validate {
				return Reference{}, SyntaxErrorAt(r, ErrControlCharacterWhileParsingString)
			}
			*scratch = append(*scratch, ch)
		}
	}
}

func (r *StreamReader) ParseStr(scratch *[]byte) (Reference, error) {
	ref, err := r.parseStrBytes(scratch, true)
	if err != nil {
		return Reference{}, err
	}
	if !utf8.Valid(ref.Bytes()) {
		return Reference{}, SyntaxErrorAt(r, ErrInvalidUnicodeCodePoint)
	}
	return ref, nil
}

func (r *StreamReader) ParseStrRaw(scratch *[]byte) (Reference, error) {
	return r.parseStrBytes(scratch, false)
}

func (r *StreamReader) IgnoreStr() error {
	for {
		ch, err := nextOrEOF(r)
		if err != nil {
			return err
		}
		switch strClass[ch] {
		case classPlain:
		case classQuote:
			return nil
		case classBackslash:
			if err := ignoreEscape(r); err != nil {
				return err
			}
		default:
			return SyntaxErrorAt(r, ErrControlCharacterWhileParsingString)
		}
	}
}

func (r *StreamReader) DecodeHexEscape() (uint16, error) {
	var n uint16
	for i := 0; i < 4; i++ {
		ch, err := nextOrEOF(r)
		if err != nil {
			return 0, err
		}
		v := hexVal[ch]
		if v == 0xFF {
			return 0, SyntaxErrorAt(r, ErrInvalidEscape)
		}
		n = n<<4 | uint16(v)
	}
	return n, nil
}

func (r *StreamReader) EarlyReturnOnFail() bool {
	return true
}

func (r *StreamReader) SetFailed(failed *bool) {
	*failed = true
}
