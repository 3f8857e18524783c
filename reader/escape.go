package reader

import "unicode/utf8"

// Byte classes for the string scanning loop.
const (
	classPlain byte = iota
	classQuote
	classBackslash
	classControl
)

// strClass classifies every byte a string literal can contain. Anything
// outside `"` , `\` and the C0 controls passes through untouched.
var strClass = func() [256]byte {
	var t [256]byte
	for i := 0; i < 0x20; i++ {
		t[i] = classControl
	}
	t['"'] = classQuote
	t['\\'] = classBackslash
	return t
}()

// hexVal maps an ASCII byte to its hex digit value, 0xFF if not a digit.
var hexVal = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 0xFF
	}
	for c := byte('0'); c <= '9'; c++ {
		t[c] = c - '0'
	}
	for c := byte('a'); c <= 'f'; c++ {
		t[c] = c - 'a' + 10
	}
	for c := byte('A'); c <= 'F'; c++ {
		t[c] = c - 'A' + 10
	}
	return t
}()

// parseEscape decodes one escape sequence into scratch. The previous
// byte read was a backslash. In validating mode lone surrogates and
// unexpected escape tails are errors; otherwise they are re-encoded as
// raw three-byte sequences and scanning continues.
func parseEscape(r Reader, validate bool, scratch *[]byte) error {
	ch, err := nextOrEOF(r)
	if err != nil {
		return err
	}
	switch ch {
	case '"':
		*scratch = append(*scratch, '"')
	case '\\':
		*scratch = append(*scratch, '\\')
	case '/':
		*scratch = append(*scratch, '/')
	case 'b':
		*scratch = append(*scratch, '\b')
	case 'f':
		*scratch = append(*scratch, '\f')
	case 'n':
		*scratch = append(*scratch, '\n')
	case 'r':
		*scratch = append(*scratch, '\r')
	case 't':
		*scratch = append(*scratch, '\t')
	case 'u':
		return parseUnicodeEscape(r, validate, scratch)
	default:
		return SyntaxErrorAt(r, ErrInvalidEscape)
	}
	return nil
}

func parseUnicodeEscape(r Reader, validate bool, scratch *[]byte) error {
	n, err := r.DecodeHexEscape()
	if err != nil {
		return err
	}
	switch {
	case n >= 0xDC00 && n <= 0xDFFF:
		// Lone low surrogate.
		if validate {
			return SyntaxErrorAt(r, ErrLoneLeadingSurrogateInHexEscape)
		}
		appendRawSurrogate(scratch, n)
		return nil
	case n >= 0xD800 && n <= 0xDBFF:
		n1 := n
		ch, err := peekOrEOF(r)
		if err != nil {
			return err
		}
		if ch != '\\' {
			if validate {
				r.Discard()
				return SyntaxErrorAt(r, ErrUnexpectedEndOfHexEscape)
			}
			appendRawSurrogate(scratch, n1)
			return nil
		}
		r.Discard()
		ch, err = peekOrEOF(r)
		if err != nil {
			return err
		}
		if ch != 'u' {
			if validate {
				r.Discard()
				return SyntaxErrorAt(r, ErrUnexpectedEndOfHexEscape)
			}
			appendRawSurrogate(scratch, n1)
			// The backslash we just consumed may start a different
			// escape, so keep decoding from here.
			return parseEscape(r, validate, scratch)
		}
		r.Discard()
		n2, err := r.DecodeHexEscape()
		if err != nil {
			return err
		}
		if n2 < 0xDC00 || n2 > 0xDFFF {
			return SyntaxErrorAt(r, ErrLoneLeadingSurrogateInHexEscape)
		}
		c := (rune(n1-0xD800)<<10 | rune(n2-0xDC00)) + 0x10000
		*scratch = utf8.AppendRune(*scratch, c)
		return nil
	default:
		*scratch = utf8.AppendRune(*scratch, rune(n))
		return nil
	}
}

// appendRawSurrogate emits an unpaired UTF-16 surrogate as the raw
// three-byte sequence a UTF-8 encoder would produce for it. The result
// is deliberately not valid Unicode; only the raw mode does this.
func appendRawSurrogate(scratch *[]byte, n uint16) {
	*scratch = append(*scratch,
		byte(n>>12&0x0F)|0xE0,
		byte(n>>6&0x3F)|0x80,
		byte(n&0x3F)|0x80,
	)
}

// ignoreEscape validates one escape sequence without keeping the
// decoded byte. It must reject everything parseEscape rejects in
// validating mode.
func ignoreEscape(r Reader) error {
	ch, err := nextOrEOF(r)
	if err != nil {
		return err
	}
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return nil
	case 'u':
		n, err := r.DecodeHexEscape()
		if err != nil {
			return err
		}
		switch {
		case n >= 0xDC00 && n <= 0xDFFF:
			return SyntaxErrorAt(r, ErrLoneLeadingSurrogateInHexEscape)
		case n >= 0xD800 && n <= 0xDBFF:
			ch, err := peekOrEOF(r)
			if err != nil {
				return err
			}
			if ch != '\\' {
				r.Discard()
				return SyntaxErrorAt(r, ErrUnexpectedEndOfHexEscape)
			}
			r.Discard()
			ch, err = peekOrEOF(r)
			if err != nil {
				return err
			}
			if ch != 'u' {
				r.Discard()
				return SyntaxErrorAt(r, ErrUnexpectedEndOfHexEscape)
			}
			r.Discard()
			n2, err := r.DecodeHexEscape()
			if err != nil {
				return err
			}
			if n2 < 0xDC00 || n2 > 0xDFFF {
				return SyntaxErrorAt(r, ErrLoneLeadingSurrogateInHexEscape)
			}
		}
		return nil
	default:
		return SyntaxErrorAt(r, ErrInvalidEscape)
	}
}
