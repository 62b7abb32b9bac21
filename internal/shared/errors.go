package shared

import "errors"

// Kind classifies a domain failure so the HTTP boundary can map it to a status.
type Kind int

const (
	// KindInvalidArgument marks malformed or missing input.
	KindInvalidArgument Kind = iota
	// KindUnauthenticated marks requests carrying no credential at all.
	KindUnauthenticated
	// KindForbidden marks requests whose credential is present but insufficient.
	KindForbidden
	// KindNotFound marks references to absent entities.
	KindNotFound
	// KindInternal marks unclassified faults.
	KindInternal
)

// Error is the single classified error type threaded through service call
// chains and mapped to a status once at the HTTP boundary.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// InvalidArgument builds an InvalidArgument error.
func InvalidArgument(reason string) *Error {
	return &Error{Kind: KindInvalidArgument, Reason: reason}
}

// Unauthenticated builds an Unauthenticated error.
func Unauthenticated(reason string) *Error {
	return &Error{Kind: KindUnauthenticated, Reason: reason}
}

// Forbidden builds a Forbidden error.
func Forbidden(reason string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason}
}

// NotFound builds a NotFound error.
func NotFound(reason string) *Error {
	return &Error{Kind: KindNotFound, Reason: reason}
}

// Internal builds an Internal error.
func Internal(reason string) *Error {
	return &Error{Kind: KindInternal, Reason: reason}
}

// Classified extracts the classified error from err, if any.
func Classified(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
