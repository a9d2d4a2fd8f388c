package stache

// MissingKeyPolicy decides what a variable tag does when its identifier is
// not bound in any scope. Filter names are not covered: an unknown filter
// always aborts the render.
type MissingKeyPolicy int

const (
	MissingKeyEmpty MissingKeyPolicy = iota // render unresolved identifiers as ""
	MissingKeyError                         // abort with UnresolvedIdentifierError
)

type Engine struct {
	escaper Escaper
	missing MissingKeyPolicy
}
