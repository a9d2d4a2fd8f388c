package stache

// Value is any datum from the host data model: scalars, maps, slices,
// structs, or Renderables. The engine never mutates values it is given.
type Value = any

// Filter is the capability behind call expressions like {{f(x)}}. Filters
// are opaque: the only way to build one is through NewFilter,
// NewStringFilter, or NewVariadicFilter, each wrapping a plain closure.
type Filter interface {
	// transform receives exactly the arguments the call site supplied, in
	// source order. Adapters never check arity; that belongs to the closure.
	transform(call filterCall) (Value, error)
}

// filterCall carries the invocation context so adapters can tag failures
// with their origin.
type filterCall struct {
	name string
	tag  Tag
	args []Value
}

// arg returns the first argument, or nil when the call site supplied none.
func (c filterCall) arg() Value {
	if len(c.args) == 0 {
		return nil
	}
	return c.args[0]
}

// ===== Generic adapter =====

type genericFilter struct {
	fn func(Value) (Value, error)
}

// NewFilter wraps a value transformation into a Filter. The closure receives
// the raw argument value, with no implicit stringification, so filters that
// need non-string inputs (numbers, slices, Renderables) see them unchanged.
// The result may itself be a Renderable, which keeps chained transformations
// lazy.
//
// Closures that process strings should almost always be built with
// NewStringFilter instead of stringifying the value themselves.
func NewFilter(fn func(Value) (Value, error)) Filter {
	return genericFilter{fn: fn}
}

func (f genericFilter) transform(call filterCall) (Value, error) {
	out, err := f.fn(call.arg())
	if err != nil {
		return nil, NewFilterInvocationError(call.name, call.tag.Pos, err)
	}
	return out, nil
}

// ===== String-forcing adapter =====

type stringFilter struct {
	fn func(string) (Value, error)
}

// NewStringFilter wraps a string transformation into a Filter. Unlike a
// generic filter, the closure is always given a string: the rendering of the
// argument value, before any output escaping has been applied. For {{f(x)}}
// with x bound to a number, the closure sees the number's rendering.
//
// The adapter defers that rendering: it returns a Renderable that, at render
// time, resolves the argument to its pre-escape string, applies the closure,
// and resolves the closure's result in turn. The final text flows through the
// engine's escaping policy exactly once, like any other value.
func NewStringFilter(fn func(string) (Value, error)) Filter {
	return stringFilter{fn: fn}
}

func (f stringFilter) transform(call filterCall) (Value, error) {
	arg := call.arg()
	return RenderableFunc(func(tag Tag, ctx *Context) (string, bool, error) {
		text, _, err := renderValue(arg, tag, ctx)
		if err != nil {
			return "", false, err
		}
		out, err := f.fn(text)
		if err != nil {
			return "", false, NewFilterInvocationError(call.name, tag.Pos, err)
		}
		return renderValue(out, tag, ctx)
	}), nil
}

// ===== Variadic adapter =====

type variadicFilter struct {
	fn func([]Value) (Value, error)
}

// NewVariadicFilter wraps a transformation over all call-site arguments.
// {{f(a)}}, {{f(a,b)}} and {{f(a,b,c)}} hand the closure slices of 1, 2 and 3
// values respectively; checking it received the count it expects is the
// closure's own responsibility.
func NewVariadicFilter(fn func([]Value) (Value, error)) Filter {
	return variadicFilter{fn: fn}
}

func (f variadicFilter) transform(call filterCall) (Value, error) {
	out, err := f.fn(call.args)
	if err != nil {
		return nil, NewFilterInvocationError(call.name, call.tag.Pos, err)
	}
	return out, nil
}

// ===== Registry =====

// Registry is a named set of filters, built once by the host and installed
// into contexts with Context.WithRegistry.
type Registry struct {
	byName map[string]Filter
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Filter{}}
}

// Register binds a filter under name, replacing any previous binding.
// Nil filters are ignored.
func (r *Registry) Register(name string, f Filter) {
	if f == nil {
		return
	}
	r.byName[name] = f
}

// Lookup returns the filter registered under name.
func (r *Registry) Lookup(name string) (Filter, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// all returns a copy of the registry's bindings, so that later Register
// calls do not leak into contexts already built from it.
func (r *Registry) all() map[string]Filter {
	m := make(map[string]Filter, len(r.byName))
	for name, f := range r.byName {
		m[name] = f
	}
	return m
}
