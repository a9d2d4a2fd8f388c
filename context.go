package stache

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Context is the immutable, stack-shaped lookup structure rendering runs
// against. Each scope binds names to values and names to filters; the
// innermost scope shadows outer ones. Every WithX call returns a new Context
// sharing the existing scope chain, so a Context in hand is never mutated and
// may be used concurrently by any number of renders.
type Context struct {
	parent  *Context
	values  map[string]Value
	filters map[string]Filter
	top     Value
	hasTop  bool
}

// NewContext returns an empty root context.
func NewContext() *Context {
	return &Context{}
}

// WithValues pushes a scope binding every entry of m.
func (c *Context) WithValues(m map[string]Value) *Context {
	return &Context{parent: c, values: m}
}

// WithValue pushes a scope binding a single name.
func (c *Context) WithValue(name string, v Value) *Context {
	return &Context{parent: c, values: map[string]Value{name: v}}
}

// WithFilters pushes a scope binding filters into the filter namespace.
// Filters and values live in separate namespaces: a value binding never
// shadows a filter of the same name, and vice versa.
func (c *Context) WithFilters(m map[string]Filter) *Context {
	return &Context{parent: c, filters: m}
}

// WithRegistry pushes every filter of reg as one scope.
func (c *Context) WithRegistry(reg *Registry) *Context {
	return c.WithFilters(reg.all())
}

// BindStruct pushes a scope whose bindings are derived from the exported
// fields of v (a struct or pointer to struct), honoring "mapstructure" field
// tags. The struct itself becomes the scope's top value, so "." and section
// pushes see it unchanged.
func (c *Context) BindStruct(v Value) (*Context, error) {
	values := map[string]Value{}
	if err := mapstructure.Decode(v, &values); err != nil {
		return nil, err
	}
	return &Context{parent: c, values: values, top: v, hasTop: true}, nil
}

// push enters a section scope. The controlling value becomes the top value;
// when it is a mapping or struct its members are reachable by name as well.
func (c *Context) push(top Value) *Context {
	return &Context{parent: c, top: top, hasTop: true}
}

// Lookup resolves a possibly dotted name through the scope stack,
// innermost-first. The head segment is resolved against each scope in turn;
// remaining segments walk into the found value. The name "." resolves to the
// innermost pushed top value. The boolean result distinguishes "not found"
// from "found, bound to nil".
func (c *Context) Lookup(name string) (Value, bool) {
	if name == "." {
		for s := c; s != nil; s = s.parent {
			if s.hasTop {
				return s.top, true
			}
		}
		return nil, false
	}
	head, rest, _ := strings.Cut(name, ".")
	for s := c; s != nil; s = s.parent {
		if v, ok := s.lookupLocal(head); ok {
			if rest == "" {
				return v, true
			}
			return walkPath(v, strings.Split(rest, "."))
		}
	}
	return nil, false
}

// LookupFilter resolves a filter name through the filter namespace,
// innermost-first.
func (c *Context) LookupFilter(name string) (Filter, bool) {
	for s := c; s != nil; s = s.parent {
		if f, ok := s.filters[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// lookupLocal resolves a single segment in one scope: explicit bindings
// first, then the members of a pushed top value.
func (c *Context) lookupLocal(name string) (Value, bool) {
	if v, ok := c.values[name]; ok {
		return v, true
	}
	if c.hasTop {
		return member(c.top, name)
	}
	return nil, false
}

// walkPath follows the remaining segments of a dotted name into v.
func walkPath(v Value, path []string) (Value, bool) {
	for _, seg := range path {
		next, ok := member(v, seg)
		if !ok {
			return nil, false
		}
		v = next
	}
	return v, true
}

// member fetches a named member of an arbitrary value: a map entry for
// string-keyed maps, an exported field for structs. Struct fields match by
// exact name first; a case-insensitive match is only a fallback, so fields
// differing in case alone resolve unambiguously. Pointers are followed.
func member(v Value, name string) (Value, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(name))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		rt := rv.Type()
		fold := -1
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			if f.Name == name {
				return rv.Field(i).Interface(), true
			}
			if fold < 0 && strings.EqualFold(f.Name, name) {
				fold = i
			}
		}
		if fold >= 0 {
			return rv.Field(fold).Interface(), true
		}
	}
	return nil, false
}
