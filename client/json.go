package client

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// MarshalCamel encodes v as JSON with camelCase property names. Struct
// fields without an explicit json tag are renamed from Go's exported
// PascalCase (Name -> name, HTTPStatus -> httpStatus, ID -> id); tagged
// fields keep their tag name. Map keys are data, not property names, and
// pass through untouched.
func MarshalCamel(v any) ([]byte, error) {
	return json.Marshal(camelValue(reflect.ValueOf(v)))
}

func camelValue(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}

	// Types with their own JSON representation keep it (time.Time, etc).
	if rv.CanInterface() {
		if m, ok := rv.Interface().(json.Marshaler); ok {
			return m
		}
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return camelValue(rv.Elem())
	case reflect.Struct:
		out := make(map[string]any)
		addStructFields(rv, out)
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte keeps encoding/json's base64 representation.
			return rv.Interface()
		}
		return camelSequence(rv)
	case reflect.Array:
		return camelSequence(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = camelValue(iter.Value())
		}
		return out
	default:
		return rv.Interface()
	}
}

func camelSequence(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = camelValue(rv.Index(i))
	}
	return out
}

func addStructFields(rv reflect.Value, out map[string]any) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}

		name, opts := parseJSONTag(f.Tag.Get("json"))
		if name == "-" {
			continue
		}

		fv := rv.Field(i)

		// Untagged embedded structs flatten, like encoding/json.
		if f.Anonymous && name == "" {
			ev := fv
			if ev.Kind() == reflect.Pointer {
				if ev.IsNil() {
					continue
				}
				ev = ev.Elem()
			}
			if ev.Kind() == reflect.Struct {
				addStructFields(ev, out)
				continue
			}
		}

		if strings.Contains(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}

		if name == "" {
			name = lowerCamel(f.Name)
		}
		out[name] = camelValue(fv)
	}
}

func parseJSONTag(tag string) (name, opts string) {
	if tag == "" {
		return "", ""
	}
	if idx := strings.Index(tag, ","); idx != -1 {
		return tag[:idx], tag[idx+1:]
	}
	return tag, ""
}

// lowerCamel converts an exported Go field name to lowerCamelCase,
// keeping the last letter of a leading initialism attached to the rest
// of the word (HTTPStatus -> httpStatus).
func lowerCamel(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n == 0 {
		return name
	}
	if n > 1 && n < len(runes) {
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
