package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNative_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/test", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message": "hello"}`))
	}))
	defer server.Close()

	n := NewNative()
	result, err := n.RoundTrip(context.Background(), &Request{Method: "GET", URL: server.URL + "/test"})

	require.NoError(t, err)
	assert.Equal(t, 200, result.StatusCode)
	assert.Equal(t, "OK", result.Status)
	assert.Contains(t, string(result.Body), "hello")
}

func TestNative_SendsOrderedHeadersAndDuplicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"1", "2"}, r.Header.Values("X-Dup"))
		assert.Equal(t, "yes", r.Header.Get("X-Single"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNative()
	result, err := n.RoundTrip(context.Background(), &Request{
		Method: "GET",
		URL:    server.URL,
		Header: []Field{
			{Name: "X-Dup", Value: "1"},
			{Name: "X-Single", Value: "yes"},
			{Name: "X-Dup", Value: "2"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 200, result.StatusCode)
}

func TestNative_ContentTypeTagWinsOverHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	n := NewNative()
	result, err := n.RoundTrip(context.Background(), &Request{
		Method:      "POST",
		URL:         server.URL,
		Header:      []Field{{Name: "Content-Type", Value: "application/json"}},
		Body:        []byte("payload"),
		ContentType: "text/plain",
	})

	require.NoError(t, err)
	assert.Equal(t, 201, result.StatusCode)
}

func TestNative_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNative(WithTimeout(50 * time.Millisecond))
	_, err := n.RoundTrip(context.Background(), &Request{Method: "GET", URL: server.URL})

	assert.Error(t, err)
}

func TestNative_WithDefaultHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNative(WithDefaultHeader("Authorization", "test-token"))
	result, err := n.RoundTrip(context.Background(), &Request{Method: "GET", URL: server.URL})

	require.NoError(t, err)
	assert.Equal(t, 200, result.StatusCode)
}

func TestNative_ResponseHeadersIncludeDuplicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "a=1")
		w.Header().Add("Set-Cookie", "b=2")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNative()
	result, err := n.RoundTrip(context.Background(), &Request{Method: "GET", URL: server.URL})

	require.NoError(t, err)
	var cookies []string
	for _, f := range result.Header {
		if f.Name == "Set-Cookie" {
			cookies = append(cookies, f.Value)
		}
	}
	assert.ElementsMatch(t, []string{"a=1", "b=2"}, cookies)
}

func TestReasonText(t *testing.T) {
	assert.Equal(t, "OK", reasonText("200 OK", 200))
	assert.Equal(t, "Not Found", reasonText("404 Not Found", 404))
	assert.Equal(t, "No Content", reasonText("204", 204))
}

func TestFunc_ImplementsTransport(t *testing.T) {
	var tr Transport = Func(func(ctx context.Context, req *Request) (*Result, error) {
		return &Result{StatusCode: 204, Status: "No Content"}, nil
	})

	result, err := tr.RoundTrip(context.Background(), &Request{Method: "GET", URL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, 204, result.StatusCode)
}
