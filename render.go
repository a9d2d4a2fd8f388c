package stache

import (
	"fmt"
	"reflect"
)

// Renderable is the capability every value can expose: given the tag being
// rendered and the current context, produce output text plus a flag telling
// the engine whether that text is already safe for the output format. The
// engine never recomputes a safe flag; text reported unsafe is escaped
// exactly once, at the point it is merged into the output.
type Renderable interface {
	Render(tag Tag, ctx *Context) (text string, safe bool, err error)
}

// RenderableFunc is the deferred Renderable variant: a closure invoked only
// at render time. Filters return these to post-process values that have not
// been rendered yet.
type RenderableFunc func(tag Tag, ctx *Context) (string, bool, error)

// Render implements Renderable.
func (f RenderableFunc) Render(tag Tag, ctx *Context) (string, bool, error) {
	return f(tag, ctx)
}

// SafeString is the eager Renderable variant: text the host already rendered
// and escaped, inserted verbatim without passing through the escaper.
type SafeString string

// Render implements Renderable.
func (s SafeString) Render(Tag, *Context) (string, bool, error) {
	return string(s), true, nil
}

// renderValue resolves a value to its pre-escape text. Renderables are
// invoked (recursively, since a deferred Renderable may resolve to another
// value); everything else goes through default stringification. This is the
// rendering the string-forcing adapter hands to its closure; the engine
// applies the escaping policy on top of it.
func renderValue(v Value, tag Tag, ctx *Context) (string, bool, error) {
	switch x := v.(type) {
	case nil:
		return "", true, nil
	case Renderable:
		return x.Render(tag, ctx)
	case string:
		return x, false, nil
	}
	return fmt.Sprint(v), false, nil
}

// isTruthy decides whether a section's controlling value produces any
// rendering at all. Mustache semantics: nil, false, empty strings and empty
// collections are falsy; zero numbers are falsy; everything else, Renderables
// included, is truthy.
func isTruthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case Renderable:
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// sequenceOf returns the elements of a slice or array value, and whether v
// was one. Strings are not sequences here: a section over a string renders
// once, not per byte.
func sequenceOf(v Value) ([]Value, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]Value, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
