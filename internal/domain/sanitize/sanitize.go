// Package sanitize normalizes arbitrary nested values into JSON-safe form.
//
// The rules, applied recursively:
//   - nil values are dropped from maps and sequences
//   - nested maps or sequences that clean to empty are omitted from their parent
//   - scalars (strings, booleans, integers, finite floats) pass through unchanged
//   - anything else is converted to its string representation
//
// Clean never panics: malformed input degrades to a best-effort partial
// structure. Cleaning an already-clean value returns it unchanged.
package sanitize

import (
	"fmt"
	"math"
	"reflect"
)

// maxDepth bounds recursion so cyclic input degrades to strings instead of
// overflowing the stack.
const maxDepth = 64

// Clean returns a JSON-safe rendition of v. A nil input cleans to nil;
// top-level non-map input is cleaned as a scalar or sequence and returned
// as-is, not wrapped.
func Clean(v any) any {
	return clean(v, 0)
}

func clean(v any, depth int) any {
	if v == nil {
		return nil
	}
	if depth >= maxDepth {
		// Printing a cyclic container would recurse again; its type name
		// is the best safe representation left.
		return fmt.Sprintf("%T", v)
	}

	switch val := v.(type) {
	case string:
		return val
	case bool:
		return val
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return val
	case float64:
		return cleanFloat(val, v)
	case float32:
		return cleanFloat(float64(val), v)
	case map[string]any:
		return cleanStringMap(val, depth)
	case []any:
		return cleanSlice(val, depth)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return clean(rv.Elem().Interface(), depth+1)
	case reflect.Map:
		return cleanReflectMap(rv, depth)
	case reflect.Slice, reflect.Array:
		return cleanReflectSeq(rv, depth)
	default:
		// Foreign values (structs, channels, funcs) degrade to their
		// string representation.
		return fmt.Sprint(v)
	}
}

// cleanFloat passes finite floats through. NaN and infinities have no JSON
// representation, so they degrade to strings.
func cleanFloat(f float64, orig any) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(orig)
	}
	return orig
}

func cleanStringMap(m map[string]any, depth int) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		cleaned := clean(v, depth+1)
		if dropped(cleaned) {
			continue
		}
		out[k] = cleaned
	}
	return out
}

func cleanReflectMap(rv reflect.Value, depth int) map[string]any {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		cleaned := clean(iter.Value().Interface(), depth+1)
		if dropped(cleaned) {
			continue
		}
		out[mapKey(iter.Key())] = cleaned
	}
	return out
}

func cleanSlice(s []any, depth int) []any {
	out := make([]any, 0, len(s))
	for _, v := range s {
		cleaned := clean(v, depth+1)
		if dropped(cleaned) {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

func cleanReflectSeq(rv reflect.Value, depth int) []any {
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		cleaned := clean(rv.Index(i).Interface(), depth+1)
		if dropped(cleaned) {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

// dropped reports whether a cleaned value is omitted from its parent:
// nils, empty maps, and empty sequences. Empty strings stay.
func dropped(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

// mapKey coerces an arbitrary map key to a string.
func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}
