package randomuser

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/phd13/vue-infinite-scroll/internal/domain"
)

// TransportError reports a request that could not complete or was answered
// with a non-success status.
type TransportError struct {
	// StatusCode is zero when no response was received
	StatusCode int
	// Message is the error text reported by the service, if any
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("random user request failed: status %d", e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("random user request failed: %s", e.Message)
	default:
		return fmt.Sprintf("random user request failed: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == domain.ErrTransportFailure
}

// Timeout reports whether the request failed on a deadline
func (e *TransportError) Timeout() bool {
	var netErr net.Error
	if errors.As(e.Err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// MalformedResponseError reports a response body that does not have the expected shape
type MalformedResponseError struct {
	// Index is the offending element of results, or -1 for the envelope
	Index int
	Field string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("malformed random user response: %v", e.Err)
	case e.Index < 0:
		return fmt.Sprintf("malformed random user response: missing %s", e.Field)
	default:
		return fmt.Sprintf("malformed random user response: results[%d] missing %s", e.Index, e.Field)
	}
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == domain.ErrMalformedResponse
}
