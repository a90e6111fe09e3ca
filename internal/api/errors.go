package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation. Every error surfaced by the client or
// the controller carries exactly one kind.
type Kind string

const (
	// KindNotFound means the referenced domain, sub-domain or project is
	// absent server-side. Callers degrade gracefully rather than crash.
	KindNotFound Kind = "not_found"

	// KindValidationFailed means the server rejected the input. The server's
	// own message is surfaced verbatim when present.
	KindValidationFailed Kind = "validation_failed"

	// KindServerError covers any other non-2xx response.
	KindServerError Kind = "server_error"

	// KindTransport covers network and context failures before any response
	// was received.
	KindTransport Kind = "transport_error"

	// KindPrecondition means a local invariant check failed and no network
	// call was made, e.g. adding a project to a non-leaf sub-domain.
	KindPrecondition Kind = "precondition_violated"
)

// Error is the structured failure returned by the client and controller.
type Error struct {
	Kind    Kind
	Message string // human-readable; server text verbatim when available
	Err     error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an *Error with the given kind and formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a kind and message to an underlying cause.
func WrapError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, or KindServerError when err carries none.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServerError
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage returns the message meant for the user: the structured message
// when present, otherwise a generic fallback built from err.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fmt.Sprintf("operation failed: %v", err)
}
