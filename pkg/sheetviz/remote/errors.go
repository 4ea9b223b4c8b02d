package remote

import (
	"errors"
	"fmt"
)

// ErrRemoteFailure matches every error returned by Client.
var ErrRemoteFailure = errors.New("remote failure")

// RemoteError represents a failed call to the backend.
type RemoteError struct {
	// Op names the call, e.g. "upload" or "list".
	Op string
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Message is the server-supplied message, if any.
	Message string
	// Err is the underlying transport or decoding error, if any.
	Err error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("remote %s failed (%d): %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("remote %s failed (%d)", e.Op, e.Status)
	}
}

func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemoteFailure}
	}
	return []error{ErrRemoteFailure, e.Err}
}
