package jsonvalue

import (
	"runtime"

	"github.com/goccy/go-reflect"

	"github.com/oarkflow/jsonvalue/marshaler"
	"github.com/oarkflow/jsonvalue/unmarshaler"
)

func FunctionPath(fn any) string {
	ptr := reflect.ValueOf(fn).Pointer()
	funcInfo := runtime.FuncForPC(ptr)
	if funcInfo != nil {
		return funcInfo.Name()
	}
	return ""
}

// Engines reports the symbol names of the registered marshal and
// unmarshal functions, useful when diagnosing which codec is active.
func Engines() (marshal, unmarshal string) {
	return FunctionPath(marshaler.Instance()), FunctionPath(unmarshaler.Instance())
}
