package bridge

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned by actions invoked after Session.Close.
var ErrSessionClosed = errors.New("bridge: session is closed")

// TransportError reports a failed HTTP exchange with the host: a connection
// failure or a non-2xx status. StatusCode is zero when no response arrived.
type TransportError struct {
	Op         string // "load" or the action method name
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("bridge: %s %s: host returned status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("bridge: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a session payload that could not be decoded: invalid
// JSON or a body missing the data envelope.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bridge: decode session payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("bridge: decode session payload: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }
