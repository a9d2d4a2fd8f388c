package stache

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// NewEngine builds a rendering engine. Defaults: HTML entity escaping,
// unresolved identifiers render as empty text.
func NewEngine(opts ...func(*Engine)) *Engine {
	e := &Engine{escaper: HTMLEscaper{}, missing: MissingKeyEmpty}
	for _, o := range opts {
		o(e)
	}
	return e
}

// WithEscaper sets the output-escaping policy.
func WithEscaper(esc Escaper) func(*Engine) {
	return func(e *Engine) { e.escaper = esc }
}

// WithSanitizer escapes by scrubbing unsafe text through p instead of
// entity-escaping it.
func WithSanitizer(p *bluemonday.Policy) func(*Engine) {
	return func(e *Engine) { e.escaper = SanitizerEscaper{Policy: p} }
}

// WithMissingKeyPolicy sets the treatment of unresolved identifiers in
// variable position.
func WithMissingKeyPolicy(p MissingKeyPolicy) func(*Engine) {
	return func(e *Engine) { e.missing = p }
}

// Render produces the output text for a tag tree against a root context. The
// walk is depth-first and left-to-right; filters and Renderables run in call
// order. A failure anywhere aborts the render: the error is returned and no
// partial output is produced.
//
// Render is safe to call concurrently on a shared engine, tree and context,
// provided the host data graph is not mutated underneath it.
func (e *Engine) Render(nodes []Node, ctx *Context) (string, error) {
	var sb strings.Builder
	if err := e.renderNodes(&sb, nodes, ctx); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *Engine) renderNodes(sb *strings.Builder, nodes []Node, ctx *Context) error {
	for _, n := range nodes {
		switch node := n.(type) {
		case TextNode:
			sb.WriteString(node.Text)
		case VariableNode:
			if err := e.renderVariable(sb, node, ctx); err != nil {
				return err
			}
		case SectionNode:
			if err := e.renderSection(sb, node, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderVariable takes one variable tag through its full lifecycle: evaluate
// the expression, render the resolved value, escape once if the rendering
// reported itself unsafe, append.
func (e *Engine) renderVariable(sb *strings.Builder, node VariableNode, ctx *Context) error {
	tag := Tag{Kind: TagVariable, Name: exprString(node.Expr), Pos: node.Pos}
	v, found, err := e.eval(node.Expr, ctx, tag)
	if err != nil {
		return err
	}
	if !found {
		if e.missing == MissingKeyError {
			return NewUnresolvedIdentifierError(exprString(node.Expr), node.Pos)
		}
		return nil
	}
	text, safe, err := renderValue(v, tag, ctx)
	if err != nil {
		return err
	}
	if !safe {
		text = e.escaper.Escape(text)
	}
	sb.WriteString(text)
	return nil
}

// renderSection re-enters the walk once per truthy context the controlling
// value produces, each time with a freshly pushed scope. A missing section
// name is simply falsy, whatever the missing-key policy; that matches how
// mustache sections behave everywhere.
func (e *Engine) renderSection(sb *strings.Builder, node SectionNode, ctx *Context) error {
	tag := Tag{Kind: TagSection, Name: exprString(node.Expr), Pos: node.Pos}
	v, found, err := e.eval(node.Expr, ctx, tag)
	if err != nil {
		return err
	}
	truthy := found && isTruthy(v)
	if node.Inverted {
		if truthy {
			return nil
		}
		return e.renderNodes(sb, node.Children, ctx)
	}
	if !truthy {
		return nil
	}
	if elems, ok := sequenceOf(v); ok {
		for _, el := range elems {
			if err := e.renderNodes(sb, node.Children, ctx.push(el)); err != nil {
				return err
			}
		}
		return nil
	}
	return e.renderNodes(sb, node.Children, ctx.push(v))
}

// eval resolves an expression to a value. The boolean result carries the
// found/not-found distinction for identifiers; calls always resolve to a
// value or fail. Arguments stay lazy: a Renderable argument is handed to the
// filter unrendered.
func (e *Engine) eval(x Expr, ctx *Context, tag Tag) (Value, bool, error) {
	switch expr := x.(type) {
	case Ident:
		v, ok := ctx.Lookup(expr.Name)
		return v, ok, nil
	case Call:
		callee, ok := expr.Callee.(Ident)
		if !ok {
			return nil, false, NewTypeMismatchError(exprString(expr.Callee), "filter name", "expression", exprPos(expr.Callee))
		}
		f, ok := ctx.LookupFilter(callee.Name)
		if !ok {
			return nil, false, NewUnresolvedIdentifierError(callee.Name, callee.Pos)
		}
		args := make([]Value, 0, len(expr.Args))
		for _, a := range expr.Args {
			v, found, err := e.eval(a, ctx, tag)
			if err != nil {
				return nil, false, err
			}
			if !found && e.missing == MissingKeyError {
				return nil, false, NewUnresolvedIdentifierError(exprString(a), exprPos(a))
			}
			args = append(args, v)
		}
		out, err := f.transform(filterCall{name: callee.Name, tag: tag, args: args})
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}
	return nil, false, nil
}
