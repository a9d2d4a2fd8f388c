package stache

import (
	"fmt"
)

// Position represents a position in the template source.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// IsZero reports whether the position is unset. Parsers that do not track
// source locations may leave tag positions zero; error messages then omit
// the location suffix.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// RenderError is the base error type for all rendering errors.
type RenderError struct {
	Pos     Position // Position of the tag where the error occurred
	Tag     string   // Name of the tag being rendered, if known
	Message string   // Error message
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	switch {
	case e.Tag != "" && !e.Pos.IsZero():
		return fmt.Sprintf("%s in tag {{%s}} at %s", e.Message, e.Tag, e.Pos)
	case e.Tag != "":
		return fmt.Sprintf("%s in tag {{%s}}", e.Message, e.Tag)
	case !e.Pos.IsZero():
		return fmt.Sprintf("%s at %s", e.Message, e.Pos)
	}
	return e.Message
}

// UnresolvedIdentifierError reports a name that no scope of the context
// defines. Whether it aborts the render depends on the engine's
// MissingKeyPolicy; filter names always fail hard.
type UnresolvedIdentifierError struct {
	RenderError
	Name string // The identifier that could not be resolved
}

// Error implements the error interface.
func (e *UnresolvedIdentifierError) Error() string {
	if e.Pos.IsZero() {
		return fmt.Sprintf("unresolved identifier %q", e.Name)
	}
	return fmt.Sprintf("unresolved identifier %q at %s", e.Name, e.Pos)
}

// FilterInvocationError reports a failure inside a filter closure. The
// closure's own error is preserved and can be recovered with errors.Unwrap.
type FilterInvocationError struct {
	RenderError
	FilterName string // Name the filter was registered under
	Err        error  // The error returned by the filter closure
}

// Error implements the error interface.
func (e *FilterInvocationError) Error() string {
	if e.Pos.IsZero() {
		return fmt.Sprintf("filter %q failed: %v", e.FilterName, e.Err)
	}
	return fmt.Sprintf("filter %q failed at %s: %v", e.FilterName, e.Pos, e.Err)
}

// Unwrap returns the closure's error.
func (e *FilterInvocationError) Unwrap() error {
	return e.Err
}

// TypeMismatchError reports a value of the wrong kind in a position that
// requires a specific one, e.g. a call whose callee is not a filter.
type TypeMismatchError struct {
	RenderError
	Name string // Name of the offending binding, if known
	Want string // Description of the expected kind
	Got  string // Description of the actual kind
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("%q is not a %s (got %s)", e.Name, e.Want, e.Got)
	if e.Pos.IsZero() {
		return msg
	}
	return fmt.Sprintf("%s at %s", msg, e.Pos)
}

// NewUnresolvedIdentifierError creates a new UnresolvedIdentifierError.
func NewUnresolvedIdentifierError(name string, pos Position) *UnresolvedIdentifierError {
	return &UnresolvedIdentifierError{
		RenderError: RenderError{Pos: pos, Message: "unresolved identifier"},
		Name:        name,
	}
}

// NewFilterInvocationError creates a new FilterInvocationError.
func NewFilterInvocationError(filterName string, pos Position, err error) *FilterInvocationError {
	return &FilterInvocationError{
		RenderError: RenderError{Pos: pos, Message: "filter invocation failed"},
		FilterName:  filterName,
		Err:         err,
	}
}

// NewTypeMismatchError creates a new TypeMismatchError.
func NewTypeMismatchError(name, want, got string, pos Position) *TypeMismatchError {
	return &TypeMismatchError{
		RenderError: RenderError{Pos: pos, Message: "type mismatch"},
		Name:        name,
		Want:        want,
		Got:         got,
	}
}
