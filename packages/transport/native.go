package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	neturl "net/url"
	"time"
)

const (
	// DefaultTimeout is the default exchange timeout
	DefaultTimeout = 30 * time.Second
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// Native is the default Transport, backed by net/http. One instance holds one
// connection pool and is intended to be shared across fetch clients and calls.
type Native struct {
	httpClient     *http.Client
	timeout        time.Duration
	validateSSL    bool
	proxyURL       string
	defaultHeaders []Field
}

var _ Transport = (*Native)(nil)

type NativeOption func(*Native)

// NewNative builds a net/http-backed transport.
func NewNative(opts ...NativeOption) *Native {
	n := &Native{
		timeout:     DefaultTimeout,
		validateSSL: true,
	}

	for _, opt := range opts {
		opt(n)
	}

	t := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	if !n.validateSSL {
		t.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	if n.proxyURL != "" {
		proxyURL, err := neturl.Parse(n.proxyURL)
		if err == nil {
			t.Proxy = http.ProxyURL(proxyURL)
		}
	}

	n.httpClient = &http.Client{
		Transport: t,
		Timeout:   n.timeout,
	}

	return n
}

func WithTimeout(d time.Duration) NativeOption {
	return func(n *Native) {
		n.timeout = d
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) NativeOption {
	return func(n *Native) {
		n.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) NativeOption {
	return func(n *Native) {
		n.proxyURL = proxyURL
	}
}

func WithDefaultHeader(key, value string) NativeOption {
	return func(n *Native) {
		n.defaultHeaders = append(n.defaultHeaders, Field{Name: key, Value: value})
	}
}

// WithDefaultHeaders appends default headers sent on every exchange
func WithDefaultHeaders(headers []Field) NativeOption {
	return func(n *Native) {
		n.defaultHeaders = append(n.defaultHeaders, headers...)
	}
}

// RoundTrip sends the request and fully reads the response body into memory.
func (n *Native) RoundTrip(ctx context.Context, req *Request) (*Result, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}

	for _, f := range n.defaultHeaders {
		httpReq.Header.Set(f.Name, f.Value)
	}

	for _, f := range req.Header {
		httpReq.Header.Add(f.Name, f.Value)
	}

	// The content-type tag travels with the body and wins over any
	// caller-supplied Content-Type line.
	if req.Body != nil && req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	httpResp, err := n.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	header := make([]Field, 0, len(httpResp.Header))
	for name, values := range httpResp.Header {
		for _, v := range values {
			header = append(header, Field{Name: name, Value: v})
		}
	}

	return &Result{
		StatusCode: httpResp.StatusCode,
		Status:     reasonText(httpResp.Status, httpResp.StatusCode),
		Header:     header,
		Body:       respBody,
	}, nil
}

// reasonText strips the numeric code from a status line like "200 OK",
// falling back to the standard reason phrase when the line is bare.
func reasonText(statusLine string, code int) string {
	for i := 0; i < len(statusLine); i++ {
		if statusLine[i] == ' ' {
			return statusLine[i+1:]
		}
	}
	return http.StatusText(code)
}
