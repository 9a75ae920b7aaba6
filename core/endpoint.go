package core

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

// Endpoint resolves the request path of an API action from the call arguments
type Endpoint interface {
	Resolve(method Method, args ...any) string
}

// Path is a literal endpoint.
// For PUT and DELETE the first call argument is appended as the item ID.
type Path string

// Resolve returns the literal, with "/<first argument>" appended for PUT and DELETE
func (p Path) Resolve(method Method, args ...any) string {
	if len(args) == 0 {
		return string(p)
	}

	switch {
	case method.is(MethodDelete), method.is(MethodPut):
		return fmt.Sprintf("%s/%v", p, args[0])
	default:
		return string(p)
	}
}

// EndpointFunc computes the endpoint from the full call argument list.
// Actions built with an EndpointFunc take their payload from the first argument.
type EndpointFunc func(args ...any) string

// Resolve calls the function with every call argument; the method is ignored
func (f EndpointFunc) Resolve(_ Method, args ...any) string {
	return f(args...)
}

// isDynamic reports whether the endpoint is computed rather than literal
func isDynamic(endpoint Endpoint) bool {
	_, literal := endpoint.(Path)
	return !literal
}

// Template builds an EndpointFunc from a pattern with ":name" segments,
// e.g. "/user/:id/account/:accountID".
//
// When the first argument is a map or a struct, segments are filled by name.
// Otherwise the arguments fill the segments in order. Values are path-escaped;
// a segment with no value is left empty.
func Template(pattern string) EndpointFunc {
	segments := strings.Split(pattern, "/")

	return func(args ...any) string {
		lookup := namedLookup(args)
		position := 0

		resolved := make([]string, len(segments))
		for i, segment := range segments {
			name, isParam := strings.CutPrefix(segment, ":")
			if !isParam || name == "" {
				resolved[i] = segment
				continue
			}

			var value any
			if lookup != nil {
				value, _ = lookup(name)
			} else if position < len(args) {
				value = args[position]
				position++
			}

			if value != nil {
				resolved[i] = url.PathEscape(fmt.Sprintf("%v", value))
			}
		}

		return strings.Join(resolved, "/")
	}
}

// namedLookup returns a by-name accessor when the first argument is a map
// with string keys or a struct (or pointer to one), nil otherwise
func namedLookup(args []any) func(name string) (any, bool) {
	if len(args) == 0 || args[0] == nil {
		return nil
	}

	v := reflect.ValueOf(args[0])
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		return func(name string) (any, bool) {
			return lookupMapKey(v, name)
		}
	case reflect.Struct:
		return func(name string) (any, bool) {
			return lookupStructField(v, name)
		}
	default:
		return nil
	}
}

// lookupMapKey finds a key exactly, falling back to a case-insensitive match
func lookupMapKey(m reflect.Value, name string) (any, bool) {
	key := reflect.ValueOf(name).Convert(m.Type().Key())
	if value := m.MapIndex(key); value.IsValid() {
		return value.Interface(), true
	}

	iter := m.MapRange()
	for iter.Next() {
		if strings.EqualFold(iter.Key().String(), name) {
			return iter.Value().Interface(), true
		}
	}
	return nil, false
}

// lookupStructField matches a segment name against exported fields.
// Priority order: json tag -> field name (case-insensitive) -> snake_case field name
func lookupStructField(s reflect.Value, name string) (any, bool) {
	t := s.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if jsonTag := field.Tag.Get("json"); jsonTag != "" && jsonTag != "-" {
			if tagName, _, _ := strings.Cut(jsonTag, ","); tagName == name {
				return s.Field(i).Interface(), true
			}
		}
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if strings.EqualFold(field.Name, name) || strcase.ToSnake(field.Name) == name {
			return s.Field(i).Interface(), true
		}
	}

	return nil, false
}
