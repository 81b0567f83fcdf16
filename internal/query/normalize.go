// Package query prepares request parameters before they are sent.
package query

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
)

// Normalize returns a copy of params without falsy values: nil, false, "",
// and numeric zero. Everything else is kept as is.
func Normalize(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for key, value := range params {
		if truthy(value) {
			out[key] = value
		}
	}
	return out
}

// Encode normalizes params and formats them as query values.
func Encode(params map[string]any) url.Values {
	values := url.Values{}
	for key, value := range Normalize(params) {
		values.Set(key, format(value))
	}
	return values
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0 && !math.IsNaN(v)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.String:
		return rv.Len() != 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	default:
		return true
	}
}

func format(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
