package aggregate

import (
	"errors"
	"fmt"
)

// ErrFieldNotDetected means neither detection tier matched on the first
// sampled page. The remote schema has drifted or the sample was
// unrepresentative; the cycle fails and is not retried internally.
var ErrFieldNotDetected = errors.New("aggregate: fuel field not detected")

// TransportError wraps a network failure, timeout, or non-2xx status on a
// page request. The whole cycle aborts; no partial total is returned.
type TransportError struct {
	Page int
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("aggregate: page %d request failed: %v", e.Page, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TooManyPagesError means the remote kept returning full non-empty pages
// past the safety cap. Guards against a misbehaving server that would
// otherwise keep the pagination loop alive forever.
type TooManyPagesError struct {
	Pages int
}

func (e *TooManyPagesError) Error() string {
	return fmt.Sprintf("aggregate: exceeded %d pages without termination", e.Pages)
}
