package bind

import (
	"errors"
	"testing"

	"github.com/oarkflow/jsonvalue/de"
)

type stubEnum struct {
	name string
	va   de.VariantAccess
}

func (e stubEnum) Variant() (string, de.VariantAccess, error) { return e.name, e.va, nil }

// stubVariant answers NewtypeVariant with a fixed error.
type stubVariant struct {
	err error
}

func (v stubVariant) UnitVariant() error { return nil }

func (v stubVariant) NewtypeVariant() (de.Deserializer, error) { return nil, v.err }

func (v stubVariant) TupleVariant(int, de.Visitor) (any, error) {
	return nil, errors.New("no tuple payload")
}

func (v stubVariant) StructVariant([]string, de.Visitor) (any, error) {
	return nil, errors.New("no struct payload")
}

func TestVisitEnumUnitFallback(t *testing.T) {
	out, err := anyVisitor{}.VisitEnum(stubEnum{name: "Active", va: stubVariant{err: de.ErrUnitVariant}})
	if err != nil {
		t.Fatalf("VisitEnum: %v", err)
	}
	if out != "Active" {
		t.Errorf("got %v, want Active", out)
	}
}

// An error other than the unit-variant marker is a real failure and
// must not be mistaken for an absent payload.
func TestVisitEnumPropagatesPayloadError(t *testing.T) {
	boom := errors.New("payload unavailable")
	_, err := anyVisitor{}.VisitEnum(stubEnum{name: "Active", va: stubVariant{err: boom}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the payload error", err)
	}
}
