// Package reader provides the forward-only byte cursors used to decode
// JSON text. Three backends share one escape decoder: SliceReader over a
// byte slice, StringReader over a string, and StreamReader over an
// io.Reader. The slice-backed readers return borrowed views into the
// input whenever a string literal contains no escapes, so unescaped
// strings decode without copying.
package reader

import (
	"io"
	"unsafe"
)

// Position is a best-effort {line, column} used only in error messages.
type Position struct {
	Line   int
	Column int
}

// Reader is the uniform input capability. An instance is exclusively
// owned by one in-progress decode and is not safe for concurrent use.
type Reader interface {
	// Next consumes and returns the next byte. io.EOF signals the end of
	// input; a StreamReader may also return *IOError, which is fatal.
	Next() (byte, error)
	// Peek returns the next byte without consuming it. Idempotent until
	// Next or Discard is called.
	Peek() (byte, error)
	// Discard drops the byte a previous Peek returned.
	Discard()
	// Position of the most recent call to Next. Error paths only.
	Position() Position
	// PeekPosition of the most recent call to Peek. Error paths only.
	PeekPosition() Position
	// ByteOffset is the exact absolute offset of the next unread byte.
	ByteOffset() int
	// ParseStr scans from just after an opening quote to the matching
	// unescaped quote, decoding escapes into scratch as needed, and
	// returns the decoded UTF-8 validated string content. scratch must
	// have length zero on entry.
	ParseStr(scratch *[]byte) (Reference, error)
	// ParseStrRaw is ParseStr without UTF-8 validation: control bytes
	// pass through and lone surrogates are re-encoded as raw WTF-8.
	ParseStrRaw(scratch *[]byte) (Reference, error)
	// IgnoreStr scans a string literal for side effects only. It rejects
	// exactly the inputs ParseStr rejects but discards the content.
	IgnoreStr() error
	// DecodeHexEscape reads exactly four hex digits big-endian into a
	// UTF-16 code unit.
	DecodeHexEscape() (uint16, error)
	// EarlyReturnOnFail reports whether a caller decoding multiple
	// top-level values must consult its failed flag before every step.
	// True for StreamReader; the slice readers instead truncate their
	// input in SetFailed.
	EarlyReturnOnFail() bool
	// SetFailed marks a persistent failure of the current decode.
	SetFailed(failed *bool)
}

// Reference is the result of string decoding: either a view borrowed
// directly from the input buffer, or bytes copied into the caller's
// scratch buffer. A borrowed reference aliases the input and must not be
// used after the input buffer is gone; a copied reference aliases the
// scratch buffer and is invalidated when the scratch is reused.
type Reference struct {
	b        []byte
	borrowed bool
}

// Borrowed wraps a view into the original input buffer.
func Borrowed(b []byte) Reference {
	return Reference{b: b, borrowed: true}
}

// Copied wraps bytes accumulated in a scratch buffer.
func Copied(b []byte) Reference {
	return Reference{b: b}
}

// IsBorrowed reports whether the reference aliases the input buffer.
func (r Reference) IsBorrowed() bool {
	return r.borrowed
}

func (r Reference) Bytes() []byte {
	return r.b
}

// String returns the content as a string without copying. The result is
// only valid while the backing buffer is.
func (r Reference) String() string {
	return b2s(r.b)
}

// b2s converts []byte to string without extra copy.
// (Be sure that the underlying slice is not modified.)
func b2s(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

// s2b views a string's bytes without copying. The result must never be
// written to.
func s2b(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func nextOrEOF(r Reader) (byte, error) {
	ch, err := r.Next()
	if err == io.EOF {
		return 0, SyntaxErrorAt(r, ErrEOFWhileParsingString)
	}
	return ch, err
}

func peekOrEOF(r Reader) (byte, error) {
	ch, err := r.Peek()
	if err == io.EOF {
		return 0, SyntaxErrorAt(r, ErrEOFWhileParsingString)
	}
	return ch, err
}
