package feed

import "fmt"

// ErrorKind classifies why a history fetch failed.
type ErrorKind string

// Fetch failure kinds.
const (
	KindTimeout        ErrorKind = "timeout"
	KindTransport      ErrorKind = "transport_error"
	KindBadStatus      ErrorKind = "non_200_status"
	KindDecode         ErrorKind = "decode_error"
	KindInvalidPayload ErrorKind = "invalid_payload"
)

// Error is a failed fetch. Every failure mode of a cycle maps onto one of
// the kinds above; the watcher recovers all of them locally and polls
// again, so an *Error never escapes as a crash.
type Error struct {
	Kind    ErrorKind
	Status  int    // HTTP status, set for KindBadStatus
	Preview string // leading bytes of an undecodable body, set for KindDecode
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindBadStatus:
		return fmt.Sprintf("feed: non-200 status: %d", e.Status)
	case KindTimeout:
		return fmt.Sprintf("feed: request timed out: %v", e.Err)
	case KindDecode:
		return fmt.Sprintf("feed: response is not valid JSON: %v", e.Err)
	case KindInvalidPayload:
		return "feed: payload has no truthy status flag"
	default:
		return fmt.Sprintf("feed: transport error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient. Only timeouts and
// transport faults are worth retrying; a bad status or payload will not
// improve by asking again immediately.
func (e *Error) Retryable() bool {
	return e.Kind == KindTimeout || e.Kind == KindTransport
}
