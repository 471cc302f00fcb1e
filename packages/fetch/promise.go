package fetch

import "context"

// Promise is a single-resolution future for one in-flight exchange. It is
// resolved exactly once, by the goroutine running the exchange, and may be
// awaited any number of times afterwards.
type Promise struct {
	done chan struct{}
	resp *Response
	err  error
}

func newPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

func (p *Promise) resolve(resp *Response) {
	p.resp = resp
	close(p.done)
}

func (p *Promise) reject(err error) {
	p.err = err
	close(p.done)
}

// Await blocks until the exchange completes or ctx is done. The exchange
// itself is not cancelled by ctx expiring here; a later Await can still
// observe its outcome.
func (p *Promise) Await(ctx context.Context) (*Response, error) {
	select {
	case <-p.done:
		return p.resp, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed once the exchange has settled.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}
