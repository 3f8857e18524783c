package value

// Reserved object keys. A single-entry object whose key is one of these
// is not an ordinary field: its value is meant to be reinterpreted by
// the collaborator that understands the marker. The classification is
// decided here; the reinterpretation is not.
const (
	// NumberToken marks a value carrying an arbitrary-precision numeric
	// literal as text.
	NumberToken = "$jsonvalue::private::Number"
	// RawToken marks a value carrying an opaque pre-serialized
	// sub-document.
	RawToken = "$jsonvalue::private::RawValue"
)

// KeyClass is the result of classifying a decoded object key.
type KeyClass int

const (
	// KeyOrdinary: a normal field name, stored as-is.
	KeyOrdinary KeyClass = iota
	// KeyNumberLiteral: the paired value is an arbitrary-precision
	// number literal carried as text.
	KeyNumberLiteral
	// KeyRawDocument: the paired value is an embedded raw sub-document.
	KeyRawDocument
)

// ClassifyKey decides whether a freshly-decoded key is an ordinary
// field name or one of the reserved sentinels.
func ClassifyKey(key string) KeyClass {
	switch key {
	case NumberToken:
		return KeyNumberLiteral
	case RawToken:
		return KeyRawDocument
	default:
		return KeyOrdinary
	}
}
