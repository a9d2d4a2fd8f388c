package stache

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StandardRegistry returns a registry preloaded with the built-in filter
// library. Hosts typically install it as the outermost filter scope and
// shadow or extend it with their own registrations:
//
//	ctx := stache.NewContext().
//		WithRegistry(stache.StandardRegistry()).
//		WithValues(data)
func StandardRegistry() *Registry {
	r := NewRegistry()

	r.Register("uppercase", NewStringFilter(func(s string) (Value, error) {
		return strings.ToUpper(s), nil
	}))
	r.Register("lowercase", NewStringFilter(func(s string) (Value, error) {
		return strings.ToLower(s), nil
	}))
	r.Register("capitalized", NewStringFilter(func(s string) (Value, error) {
		return cases.Title(language.Und).String(s), nil
	}))
	r.Register("isBlank", NewStringFilter(func(s string) (Value, error) {
		return strings.TrimSpace(s) == "", nil
	}))

	r.Register("isEmpty", NewFilter(func(v Value) (Value, error) {
		return isEmptyValue(v), nil
	}))
	r.Register("count", NewFilter(func(v Value) (Value, error) {
		if v == nil {
			return 0, nil
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			return rv.Len(), nil
		}
		return nil, fmt.Errorf("count: cannot count %T", v)
	}))
	r.Register("first", NewFilter(func(v Value) (Value, error) {
		elems, ok := sequenceOf(v)
		if !ok {
			return nil, fmt.Errorf("first: not a sequence: %T", v)
		}
		if len(elems) == 0 {
			return nil, nil
		}
		return elems[0], nil
	}))
	r.Register("last", NewFilter(func(v Value) (Value, error) {
		elems, ok := sequenceOf(v)
		if !ok {
			return nil, fmt.Errorf("last: not a sequence: %T", v)
		}
		if len(elems) == 0 {
			return nil, nil
		}
		return elems[len(elems)-1], nil
	}))

	r.Register("join", NewVariadicFilter(func(args []Value) (Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, fmt.Errorf("join: want 1 or 2 arguments, got %d", len(args))
		}
		elems, ok := sequenceOf(args[0])
		if !ok {
			return nil, fmt.Errorf("join: not a sequence: %T", args[0])
		}
		sep := ""
		if len(args) == 2 {
			s, ok := args[1].(string)
			if !ok {
				return nil, fmt.Errorf("join: separator must be a string, got %T", args[1])
			}
			sep = s
		}
		parts := make([]string, len(elems))
		for i, el := range elems {
			parts[i] = fmt.Sprint(el)
		}
		return strings.Join(parts, sep), nil
	}))

	return r
}

// isEmptyValue reports whether v is nil, an empty string, or an empty
// collection.
func isEmptyValue(v Value) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len() == 0
	}
	return false
}
