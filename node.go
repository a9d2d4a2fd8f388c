package stache

import (
	"strings"
)

// The tag tree is the input surface of the rendering core. The surrounding
// parser produces it; hosts and tests may also build it by hand. Every node
// carries the source position the parser recorded, or the zero Position when
// positions are not tracked.

// TagKind distinguishes the placeholder kinds a template can contain.
type TagKind int

const (
	TagVariable TagKind = iota // {{expr}}
	TagSection                 // {{#expr}}...{{/expr}}
)

// String returns a human-readable name for the kind.
func (k TagKind) String() string {
	if k == TagSection {
		return "section"
	}
	return "variable"
}

// Tag identifies the template placeholder currently being rendered. It is
// passed into every Renderable invocation so that deferred values and error
// messages can refer back to their origin.
type Tag struct {
	Kind TagKind
	Name string // Source text of the tag's expression, e.g. "uppercase(name)"
	Pos  Position
}

// ===== Tag tree =====

type Node interface{ isNode() }

// TextNode is literal template text, inserted verbatim.
type TextNode struct {
	Text string
}

func (TextNode) isNode() {}

// VariableNode is a {{expr}} placeholder: the expression's value is rendered,
// escaped per the engine's policy, and inserted.
type VariableNode struct {
	Expr Expr
	Pos  Position
}

func (VariableNode) isNode() {}

// SectionNode is a {{#expr}}...{{/expr}} block. Its children render once per
// truthy context the controlling value produces: once per sequence element,
// once for a truthy scalar or mapping, zero times otherwise. When Inverted is
// true the logic flips: children render exactly once when the controlling
// value is falsy.
type SectionNode struct {
	Expr     Expr
	Inverted bool
	Children []Node
	Pos      Position
}

func (SectionNode) isNode() {}

// ===== Expressions =====

type Expr interface{ isExpr() }

// Ident references a name in the context's value namespace. Dotted names
// ("user.address.city") resolve the head through the scope stack and walk the
// rest into the found value; the single dot refers to the innermost pushed
// value.
type Ident struct {
	Name string
	Pos  Position
}

func (Ident) isExpr() {}

// Call is a filter invocation f(a1, a2, ...). The callee resolves in the
// context's filter namespace; arguments are evaluated left to right and
// handed to the filter unrendered.
type Call struct {
	Callee Expr
	Args   []Expr
	Pos    Position
}

func (Call) isExpr() {}

// exprPos returns the source position of an expression node.
func exprPos(e Expr) Position {
	switch x := e.(type) {
	case Ident:
		return x.Pos
	case Call:
		return x.Pos
	}
	return Position{}
}

// exprString reconstructs the source form of an expression for tag names and
// error messages.
func exprString(e Expr) string {
	switch x := e.(type) {
	case Ident:
		return x.Name
	case Call:
		var sb strings.Builder
		sb.WriteString(exprString(x.Callee))
		sb.WriteByte('(')
		for i, a := range x.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(exprString(a))
		}
		sb.WriteByte(')')
		return sb.String()
	}
	return ""
}
