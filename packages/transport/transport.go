// Package transport defines the HTTP transport capability that fetchkit
// clients are bound to, along with the default net/http-backed
// implementation.
//
// A Transport performs exactly one exchange per RoundTrip call: it sends the
// request described by a Request and fully reads the response into a Result.
// Streaming, retries and redirect policy are the transport's concern;
// fetchkit itself never inspects partial responses.
package transport

import "context"

// Field is a single header line. Requests and Results carry headers as
// ordered slices so duplicate names and insertion order survive the trip
// through the transport.
type Field struct {
	Name  string
	Value string
}

// Request describes one outgoing exchange. Built once per call by the fetch
// client and never reused.
type Request struct {
	Method string
	URL    string
	Header []Field

	// Body is the full request payload, nil when the request has none.
	// ContentType tags the body and takes precedence over any
	// Content-Type line in Header.
	Body        []byte
	ContentType string
}

// Result is a completed exchange: status line, headers and the fully
// buffered response body.
type Result struct {
	StatusCode int
	Status     string // reason text, e.g. "OK"
	Header     []Field
	Body       []byte
}

// Transport sends a Request and reads the complete response. It must be safe
// for concurrent use; fetch clients share one instance across calls.
type Transport interface {
	RoundTrip(ctx context.Context, req *Request) (*Result, error)
}

// Func adapts a plain function to the Transport interface, mostly useful in
// tests.
type Func func(ctx context.Context, req *Request) (*Result, error)

func (f Func) RoundTrip(ctx context.Context, req *Request) (*Result, error) {
	return f(ctx, req)
}
