package de

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnitVariant is returned by VariantAccess.NewtypeVariant when the
// variant carries no payload. Consumers probing for a payload match it
// with errors.Is and fall back to the unit form; any other error is a
// genuine failure and must propagate.
var ErrUnitVariant = errors.New("invalid type: unit variant, expected newtype variant")

// InvalidTypeError reports that the source held a different shape than
// the consumer can accept. It carries no position: a materialized value
// tree has none.
type InvalidTypeError struct {
	Unexpected string
	Expected   string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type: %s, expected %s", e.Unexpected, e.Expected)
}

// InvalidValueError reports a value of the right shape but an
// unacceptable content, such as an enum map with more than one key.
type InvalidValueError struct {
	Unexpected string
	Expected   string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value: %s, expected %s", e.Unexpected, e.Expected)
}

// InvalidLengthError reports that a sequence or mapping held more
// elements than the consumer took. Unconsumed elements are a hard
// error, never silent truncation.
type InvalidLengthError struct {
	Len      int
	Expected string
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid length %d, expected %s", e.Len, e.Expected)
}

// MissingValueError reports NextValue called without a preceding
// successful NextKey.
type MissingValueError struct{}

func (e *MissingValueError) Error() string {
	return "value is missing"
}

// Shape descriptions used in error messages.

func unexpectedBool(v bool) string {
	return fmt.Sprintf("boolean `%t`", v)
}

func unexpectedInt(v int64) string {
	return fmt.Sprintf("integer `%d`", v)
}

func unexpectedUint(v uint64) string {
	return fmt.Sprintf("integer `%d`", v)
}

func unexpectedFloat(v float64) string {
	return "floating point `" + strconv.FormatFloat(v, 'g', -1, 64) + "`"
}

func unexpectedString(v string) string {
	return "string " + strconv.Quote(v)
}
