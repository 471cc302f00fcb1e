package fetch

import (
	"strings"

	"github.com/abdul-hamid-achik/fetchkit/packages/transport"
)

// Headers is an insertion-ordered header collection. Append never replaces:
// repeating a name adds another line, matching fetch Headers.append semantics.
// Lookups are case-insensitive.
type Headers struct {
	fields []transport.Field
}

// NewHeaders returns an empty header collection.
func NewHeaders() *Headers {
	return &Headers{}
}

// HeadersFrom builds a collection from ordered fields, e.g. a completed
// exchange's response headers. A nil or empty slice yields an empty
// collection.
func HeadersFrom(fields []transport.Field) *Headers {
	h := &Headers{fields: make([]transport.Field, len(fields))}
	copy(h.fields, fields)
	return h
}

// Append adds a header line, keeping any existing lines with the same name.
func (h *Headers) Append(name, value string) *Headers {
	h.fields = append(h.fields, transport.Field{Name: name, Value: value})
	return h
}

// Get returns the first value for name, or "" when absent.
func (h *Headers) Get(name string) string {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// Has reports whether at least one line with name exists.
func (h *Headers) Has(name string) bool {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

// Values returns every value for name in insertion order.
func (h *Headers) Values(name string) []string {
	var values []string
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

// Len returns the number of header lines.
func (h *Headers) Len() int {
	return len(h.fields)
}

// Each calls fn for every header line in insertion order.
func (h *Headers) Each(fn func(name, value string)) {
	for _, f := range h.fields {
		fn(f.Name, f.Value)
	}
}

// Fields returns a copy of the underlying ordered lines.
func (h *Headers) Fields() []transport.Field {
	out := make([]transport.Field, len(h.fields))
	copy(out, h.fields)
	return out
}

// Clone returns an independent copy.
func (h *Headers) Clone() *Headers {
	return HeadersFrom(h.fields)
}
