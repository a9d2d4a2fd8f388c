package stache

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// Escaper is the output-escaping policy applied to unsafe text before it is
// merged into the output. It runs exactly once per rendered tag, never
// inside filters.
type Escaper interface {
	Escape(text string) string
}

// EscaperFunc adapts a plain function into an Escaper.
type EscaperFunc func(string) string

// Escape implements the Escaper interface.
func (f EscaperFunc) Escape(text string) string {
	return f(text)
}

// HTMLEscaper replaces HTML special characters with entities. It is the
// engine default.
type HTMLEscaper struct{}

// Escape implements the Escaper interface.
func (HTMLEscaper) Escape(text string) string {
	return html.EscapeString(text)
}

// NoEscaper inserts unsafe text verbatim, for plain-text output formats.
type NoEscaper struct{}

// Escape implements the Escaper interface.
func (NoEscaper) Escape(text string) string {
	return text
}

// SanitizerEscaper runs unsafe text through a bluemonday policy instead of
// entity-escaping it: markup the policy allows survives, everything else is
// stripped. Useful when template data legitimately carries limited HTML.
type SanitizerEscaper struct {
	Policy *bluemonday.Policy
}

// Escape implements the Escaper interface.
func (e SanitizerEscaper) Escape(text string) string {
	return e.Policy.Sanitize(text)
}
