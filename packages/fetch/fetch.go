package fetch

import (
	"context"
	neturl "net/url"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/fetchkit/packages/transport"
)

// BodyContentType is the content type every request body is sent with.
// Real fetch negotiates the content type from the body; this shim does not,
// and callers cannot override it through headers.
const BodyContentType = "text/plain"

// RequestOptions configures one call. The zero value (or nil) means a GET
// with no headers and no body.
type RequestOptions struct {
	// Method is upper-cased before use and defaults to GET. It is not
	// validated against a known verb set.
	Method string

	// Headers are appended onto the outgoing request in insertion order.
	// Duplicate names add additional lines rather than replacing.
	Headers *Headers

	// Body must be a string (sent as-is) or a []byte (decoded as UTF-8
	// text). Any other type rejects the promise with
	// *UnsupportedBodyError.
	Body any
}

// Client issues fetch-style requests through one injected transport. The
// transport is reused across calls; the Client itself holds no per-call
// state and is safe for concurrent use.
type Client struct {
	transport transport.Transport
}

// New binds a Client to the given transport. It fails with
// ErrMissingTransport when the transport is nil.
func New(t transport.Transport) (*Client, error) {
	if t == nil {
		return nil, ErrMissingTransport
	}
	return &Client{transport: t}, nil
}

// Fetch validates the call synchronously, then starts the exchange on its
// own goroutine and returns a Promise for the eventual Response.
//
// URL validation errors are returned directly, before any asynchronous work
// begins. Body type errors and transport failures surface through the
// returned Promise; transport errors are passed through unwrapped.
func (c *Client) Fetch(ctx context.Context, rawURL string, opts *RequestOptions) (*Promise, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &RequestOptions{}
	}

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = "GET"
	}

	var header []transport.Field
	if opts.Headers != nil {
		header = opts.Headers.Fields()
	}

	p := newPromise()
	go c.exchange(ctx, p, method, rawURL, header, opts.Body)
	return p, nil
}

// Do is the blocking form of Fetch.
func (c *Client) Do(ctx context.Context, rawURL string, opts *RequestOptions) (*Response, error) {
	p, err := c.Fetch(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}
	return p.Await(ctx)
}

func (c *Client) exchange(ctx context.Context, p *Promise, method, rawURL string, header []transport.Field, rawBody any) {
	var body []byte
	var contentType string

	if rawBody != nil {
		text, err := coerceBody(rawBody)
		if err != nil {
			p.reject(err)
			return
		}
		body = []byte(text)
		contentType = BodyContentType
	}

	req := &transport.Request{
		Method:      method,
		URL:         rawURL,
		Header:      header,
		Body:        body,
		ContentType: contentType,
	}

	start := time.Now()
	result, err := c.transport.RoundTrip(ctx, req)
	if err != nil {
		p.reject(err)
		return
	}

	resp := NewResponse(result.StatusCode, result.Status, rawURL, HeadersFrom(result.Header), string(result.Body))
	resp.Duration = time.Since(start)
	p.resolve(resp)
}

func coerceBody(body any) (string, error) {
	switch b := body.(type) {
	case string:
		return b, nil
	case []byte:
		return string(b), nil
	default:
		return "", &UnsupportedBodyError{Body: body}
	}
}

func validateURL(rawURL string) error {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return &InvalidURLError{Value: rawURL}
	}
	if u.Scheme == "" || u.Host == "" {
		return &InvalidURLError{Value: rawURL}
	}
	return nil
}
