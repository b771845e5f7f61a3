package native

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	nerrors "github.com/i5heu/GoNativeCollections/pkg/errors"
)

// checked caches the validation result per element type.
var checked sync.Map // reflect.Type -> error

// SizeOf is the size in bytes of one element of T.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// ElementName is the Go type name of T as used in diagnostics.
func ElementName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// CheckElement reports whether T may be stored in native memory: it must have
// a non-zero size and contain no pointers, strings, slices, maps, channels,
// functions or interfaces anywhere in its layout.
func CheckElement[T any]() error {
	t := reflect.TypeFor[T]()
	if v, ok := checked.Load(t); ok {
		err, _ := v.(error)
		return err
	}

	var err error
	if t.Size() == 0 {
		err = nerrors.Unsupported(t.String(), "zero-size element")
	} else if detail := pointerFree(t); detail != "" {
		err = nerrors.Unsupported(t.String(), detail)
	}

	checked.Store(t, err)
	return err
}

// pointerFree returns an empty string when t holds plain bytes only,
// otherwise a description of the first offending component.
func pointerFree(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return ""
	case reflect.Array:
		return pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if detail := pointerFree(f.Type); detail != "" {
				return fmt.Sprintf("field %s: %s", f.Name, detail)
			}
		}
		return ""
	default:
		return fmt.Sprintf("%s holds references (kind %s)", t, t.Kind())
	}
}
