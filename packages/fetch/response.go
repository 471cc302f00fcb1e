package fetch

import (
	"encoding/json"
	"io"
	neturl "net/url"
	"strings"
	"time"
)

// Response is the buffered, read-only view over one completed exchange.
// All body accessors are derived from the same buffered text and may be
// called repeatedly; none of them consume the body.
type Response struct {
	StatusCode int
	Status     string // reason text, e.g. "OK"
	URL        string
	Headers    *Headers
	Duration   time.Duration

	bodyText string
}

// NewResponse builds a Response over a fully buffered body. A nil headers
// collection is treated as empty.
func NewResponse(statusCode int, status, url string, headers *Headers, bodyText string) *Response {
	if headers == nil {
		headers = NewHeaders()
	}
	return &Response{
		StatusCode: statusCode,
		Status:     status,
		URL:        url,
		Headers:    headers,
		bodyText:   bodyText,
	}
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the full decoded body.
func (r *Response) Text() string {
	return r.bodyText
}

// JSON parses the body as JSON into a generic value.
func (r *Response) JSON() (any, error) {
	var result any
	if err := json.Unmarshal([]byte(r.bodyText), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// DecodeJSON parses the body as JSON into v.
func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal([]byte(r.bodyText), v)
}

// Blob returns a copy of the body bytes.
func (r *Response) Blob() []byte {
	return []byte(r.bodyText)
}

// ArrayBuffer returns a copy of the body bytes.
func (r *Response) ArrayBuffer() []byte {
	return []byte(r.bodyText)
}

// FormData parses the body as application/x-www-form-urlencoded.
func (r *Response) FormData() (neturl.Values, error) {
	return neturl.ParseQuery(r.bodyText)
}

// Body returns a fresh reader over the buffered body. Each call starts at
// the beginning.
func (r *Response) Body() io.Reader {
	return strings.NewReader(r.bodyText)
}

// Clone returns an independent copy sharing no mutable state.
func (r *Response) Clone() *Response {
	clone := *r
	clone.Headers = r.Headers.Clone()
	return &clone
}

// ContentType returns the Content-Type header, or "".
func (r *Response) ContentType() string {
	return r.Headers.Get("Content-Type")
}

// IsJSON reports whether the response declares a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType(), "application/json")
}

// DurationMs returns the exchange duration in milliseconds.
func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
