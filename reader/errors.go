package reader

import "fmt"

// ErrorCode identifies what went wrong while reading JSON text.
type ErrorCode int

const (
	// String and escape decoding.
	ErrEOFWhileParsingString ErrorCode = iota + 1
	ErrInvalidEscape
	ErrInvalidUnicodeCodePoint
	ErrLoneLeadingSurrogateInHexEscape
	ErrUnexpectedEndOfHexEscape
	ErrControlCharacterWhileParsingString

	// Grammar-level codes used by the parser driving this package.
	ErrEOFWhileParsingValue
	ErrEOFWhileParsingList
	ErrEOFWhileParsingObject
	ErrExpectedColon
	ErrExpectedListCommaOrEnd
	ErrExpectedObjectCommaOrEnd
	ErrExpectedSomeValue
	ErrKeyMustBeAString
	ErrInvalidNumber
	ErrTrailingCharacters
	ErrRecursionLimitExceeded
)

func (c ErrorCode) String() string {
	switch c {
	case ErrEOFWhileParsingString:
		return "EOF while parsing a string"
	case ErrInvalidEscape:
		return "invalid escape"
	case ErrInvalidUnicodeCodePoint:
		return "invalid unicode code point"
	case ErrLoneLeadingSurrogateInHexEscape:
		return "lone leading surrogate in hex escape"
	case ErrUnexpectedEndOfHexEscape:
		return "unexpected end of hex escape"
	case ErrControlCharacterWhileParsingString:
		return "control character (\\u0000-\\u001F) found while parsing a string"
	case ErrEOFWhileParsingValue:
		return "EOF while parsing a value"
	case ErrEOFWhileParsingList:
		return "EOF while parsing a list"
	case ErrEOFWhileParsingObject:
		return "EOF while parsing an object"
	case ErrExpectedColon:
		return "expected `:`"
	case ErrExpectedListCommaOrEnd:
		return "expected `,` or `]`"
	case ErrExpectedObjectCommaOrEnd:
		return "expected `,` or `}`"
	case ErrExpectedSomeValue:
		return "expected value"
	case ErrKeyMustBeAString:
		return "key must be a string"
	case ErrInvalidNumber:
		return "invalid number"
	case ErrTrailingCharacters:
		return "trailing characters"
	case ErrRecursionLimitExceeded:
		return "recursion limit exceeded"
	default:
		return "unknown error"
	}
}

// SyntaxError reports malformed JSON text together with a best-effort
// source position.
type SyntaxError struct {
	Code   ErrorCode
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d column %d", e.Code, e.Line, e.Column)
}

// IOError wraps a failure of the underlying byte source of a StreamReader.
// It is fatal for the current decode attempt and is never retried here.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "io error: " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// SyntaxErrorAt builds a SyntaxError at the reader's current position.
func SyntaxErrorAt(r Reader, code ErrorCode) error {
	p := r.Position()
	return &SyntaxError{Code: code, Line: p.Line, Column: p.Column}
}
