package mapclient

import "fmt"

// TransportError is any network-level failure against the map backend:
// connection errors, timeouts, or a non-success status with no structured
// error body. The in-memory workspace is never touched by one.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FormatError is a rejected file: wrong extension, an unparseable document,
// or a structured error payload from the backend. Message is safe to show
// to the user as-is.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return e.Message
}
