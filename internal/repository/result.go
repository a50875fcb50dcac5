package repository

import "errors"

var (
	// ErrUpstreamStatus is returned when an upstream answers with a non-2xx status.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	// ErrMalformedResponse is returned when an upstream body cannot be decoded
	// into the expected shape.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// Result is the outcome of a best-effort upstream read. Value is always
// usable: on failure it holds the documented default (empty or zero), and
// Err records why, so callers can tell "zero because empty" from "zero
// because failed".
type Result[T any] struct {
	Value T
	Err   error
}

// Degraded reports whether Value is a failure default rather than real data.
func (r Result[T]) Degraded() bool {
	return r.Err != nil
}
