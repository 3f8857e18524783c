package reader

import (
	"io"
	"unicode/utf8"
)

// SliceReader reads JSON text from a byte slice. Strings without escape
// sequences are returned as borrowed slices of the input, avoiding the
// copy into scratch.
type SliceReader struct {
	slice []byte
	// Index of the next byte that will be returned by Next or Peek.
	index int
}

func NewSliceReader(b []byte) *SliceReader {
	return &SliceReader{slice: b}
}

func (r *SliceReader) Next() (byte, error) {
	if r.index < len(r.slice) {
		ch := r.slice[r.index]
		r.index++
		return ch, nil
	}
	return 0, io.EOF
}

func (r *SliceReader) Peek() (byte, error) {
	if r.index < len(r.slice) {
		return r.slice[r.index], nil
	}
	return 0, io.EOF
}

func (r *SliceReader) Discard() {
	if r.index < len(r.slice) {
		r.index++
	}
}

func (r *SliceReader) Position() Position {
	return r.positionOfIndex(r.index)
}

func (r *SliceReader) PeekPosition() Position {
	i := r.index + 1
	if i > len(r.slice) {
		i = len(r.slice)
	}
	return r.positionOfIndex(i)
}

func (r *SliceReader) ByteOffset() int {
	return r.index
}

// positionOfIndex derives the line and column from the byte offset.
// Only error paths call this, so the rescan does not matter.
func (r *SliceReader) positionOfIndex(i int) Position {
	pos := Position{Line: 1}
	for _, ch := range r.slice[:i] {
		if ch == '\n' {
			pos.Line++
			pos.Column = 0
		} else {
			pos.Column++
		}
	}
	return pos
}

// parseStrBytes scans to the closing quote. Plain runs advance the
// index only; the first escape or control byte flushes everything seen
// so far into scratch and the string is accumulated there from then on.
func (r *SliceReader) parseStrBytes(scratch *[]byte, validate bool) (Reference, error) {
	start := r.index
	for {
		for r.index < len(r.slice) && strClass[r.slice[r.index]] == classPlain {
			r.index++
		}
		if r.index == len(r.slice) {
			return Reference{}, SyntaxErrorAt(r, ErrEOFWhileParsingString)
		}
		switch strClass[r.slice[r.index]] {
		case classQuote:
			if len(*scratch) == 0 {
				// Nothing was ever copied: the whole content is one
				// plain run inside the input buffer.
				borrowed := r.slice[start:r.index]
				r.index++
				return Borrowed(borrowed), nil
			}
			*scratch = append(*scratch, r.slice[start:r.index]...)
			r.index++
			return Copied(*scratch), nil
		case classBackslash:
			*scratch = append(*scratch, r.slice[start:r.index]...)
			r.index++
			if err := parseEscape(r, validate, scratch); err != nil {
				return Reference{}, err
			}
			start = r.index
		default:
			if validate {
				r.index++
				return Reference{}, SyntaxErrorAt(r, ErrControlCharacterWhileParsingString)
			}
			// Raw mode: the control byte stays part of the plain run.
			r.index++
		}
	}
}

func (r *SliceReader) ParseStr(scratch *[]byte) (Reference, error) {
	ref, err := r.parseStrBytes(scratch, true)
	if err != nil {
		return Reference{}, err
	}
	if !utf8.Valid(ref.Bytes()) {
		return Reference{}, SyntaxErrorAt(r, ErrInvalidUnicodeCodePoint)
	}
	return ref, nil
}

func (r *SliceReader) ParseStrRaw(scratch *[]byte) (Reference, error) {
	return r.parseStrBytes(scratch, false)
}

func (r *SliceReader) IgnoreStr() error {
	for {
		for r.index < len(r.slice) && strClass[r.slice[r.index]] == classPlain {
			r.index++
		}
		if r.index == len(r.slice) {
			return SyntaxErrorAt(r, ErrEOFWhileParsingString)
		}
		switch strClass[r.slice[r.index]] {
		case classQuote:
			r.index++
			return nil
		case classBackslash:
			r.index++
			if err := ignoreEscape(r); err != nil {
				return err
			}
		default:
			return SyntaxErrorAt(r, ErrControlCharacterWhileParsingString)
		}
	}
}

func (r *SliceReader) DecodeHexEscape() (uint16, error) {
	if r.index+4 > len(r.slice) {
		// Clamp so the error position stays inside the buffer.
		r.index = len(r.slice)
		return 0, SyntaxErrorAt(r, ErrEOFWhileParsingString)
	}
	var n uint16
	for i := 0; i < 4; i++ {
		v := hexVal[r.slice[r.index]]
		r.index++
		if v == 0xFF {
			return 0, SyntaxErrorAt(r, ErrInvalidEscape)
		}
		n = n<<4 | uint16(v)
	}
	return n, nil
}

func (r *SliceReader) EarlyReturnOnFail() bool {
	return false
}

// SetFailed truncates the remaining input so every later Next or Peek
// reports end of input without a separate flag check.
func (r *SliceReader) SetFailed(failed *bool) {
	r.slice = r.slice[:r.index]
}

// StringReader reads JSON text from a string. It delegates to a
// SliceReader over the string's bytes and additionally guarantees that
// borrowed output needs no UTF-8 re-validation, since the input is
// already known to be valid text.
type StringReader struct {
	delegate SliceReader
}

// NewStringReader wraps s without copying. The caller must supply
// valid UTF-8: the string path skips the byte-level validation that
// SliceReader performs, so malformed sequences in s pass through
// undetected instead of failing with ErrInvalidUnicodeCodePoint.
func NewStringReader(s string) *StringReader {
	return &StringReader{delegate: SliceReader{slice: s2b(s)}}
}

func (r *StringReader) Next() (byte, error)  { return r.delegate.Next() }
func (r *StringReader) Peek() (byte, error)  { return r.delegate.Peek() }
func (r *StringReader) Discard()             { r.delegate.Discard() }
func (r *StringReader) Position() Position   { return r.delegate.Position() }
func (r *StringReader) PeekPosition() Position {
	return r.delegate.PeekPosition()
}
func (r *StringReader) ByteOffset() int { return r.delegate.ByteOffset() }

// ParseStr skips the UTF-8 check: borrowed content is a slice of a
// valid string, and the copy path only appends validated escapes and
// plain runs of that same string.
func (r *StringReader) ParseStr(scratch *[]byte) (Reference, error) {
	return r.delegate.parseStrBytes(scratch, true)
}

func (r *StringReader) ParseStrRaw(scratch *[]byte) (Reference, error) {
	return r.delegate.ParseStrRaw(scratch)
}

func (r *StringReader) IgnoreStr() error {
	return r.delegate.IgnoreStr()
}

func (r *StringReader) DecodeHexEscape() (uint16, error) {
	return r.delegate.DecodeHexEscape()
}

func (r *StringReader) EarlyReturnOnFail() bool {
	return false
}

func (r *StringReader) SetFailed(failed *bool) {
	r.delegate.SetFailed(failed)
}
