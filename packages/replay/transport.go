package replay

import (
	"context"
	"fmt"

	"github.com/abdul-hamid-achik/fetchkit/packages/transport"
)

// RecordTransport wraps another transport and records every successful
// exchange into a Store. Transport failures are passed through unrecorded.
type RecordTransport struct {
	inner transport.Transport
	store *Store
}

var _ transport.Transport = (*RecordTransport)(nil)

func NewRecordTransport(inner transport.Transport, store *Store) *RecordTransport {
	return &RecordTransport{inner: inner, store: store}
}

func (r *RecordTransport) RoundTrip(ctx context.Context, req *transport.Request) (*transport.Result, error) {
	result, err := r.inner.RoundTrip(ctx, req)
	if err != nil {
		return nil, err
	}

	ex := &Exchange{
		Method:         req.Method,
		URL:            req.URL,
		RequestHeader:  req.Header,
		RequestBody:    string(req.Body),
		ContentType:    req.ContentType,
		StatusCode:     result.StatusCode,
		Status:         result.Status,
		ResponseHeader: result.Header,
		ResponseBody:   string(result.Body),
	}
	if err := r.store.Save(ctx, ex); err != nil {
		return nil, fmt.Errorf("replay: failed to record exchange: %w", err)
	}

	return result, nil
}

// ReplayTransport serves recorded exchanges from a Store, matched by method
// and URL, latest recording first. It performs no network I/O, which makes
// it usable both for offline replay and as a deterministic test double.
type ReplayTransport struct {
	store *Store
}

var _ transport.Transport = (*ReplayTransport)(nil)

func NewReplayTransport(store *Store) *ReplayTransport {
	return &ReplayTransport{store: store}
}

func (r *ReplayTransport) RoundTrip(ctx context.Context, req *transport.Request) (*transport.Result, error) {
	ex, err := r.store.Find(ctx, req.Method, req.URL)
	if err != nil {
		return nil, err
	}

	return &transport.Result{
		StatusCode: ex.StatusCode,
		Status:     ex.Status,
		Header:     ex.ResponseHeader,
		Body:       []byte(ex.ResponseBody),
	}, nil
}
