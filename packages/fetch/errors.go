package fetch

import (
	"errors"
	"fmt"
)

// ErrMissingTransport is returned by New when no transport is supplied.
var ErrMissingTransport = errors.New("fetch: transport is required")

// InvalidURLError reports a URL that could not be parsed into an absolute
// URL. It is returned synchronously, before any exchange is started.
type InvalidURLError struct {
	Value any
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("fetch: invalid URL %v (%T)", e.Value, e.Value)
}

// UnsupportedBodyError reports a request body that is neither a string nor a
// byte slice. It carries the offending value so callers can inspect it.
type UnsupportedBodyError struct {
	Body any
}

func (e *UnsupportedBodyError) Error() string {
	return fmt.Sprintf("fetch: unsupported body type %T", e.Body)
}
