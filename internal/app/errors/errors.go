package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure by the boundary it originated at.
type Kind string

const (
	KindPermission      Kind = "permission"
	KindUnsupportedType Kind = "unsupported_type"
	KindUpstream        Kind = "upstream"
	KindProxyTransport  Kind = "proxy_transport"
	KindInvalidState    Kind = "invalid_state"
	KindConfig          Kind = "config"
)

// Common error values
var (
	ErrNotRecording     = New(KindInvalidState, "not recording")
	ErrAlreadyRecording = New(KindInvalidState, "already recording")
	ErrMissingFile      = New(KindUnsupportedType, "Missing file")
)

// Error represents a standardized error
type Error struct {
	kind    Kind
	message string
	status  int
	cause   error
}

// New creates a new error
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates a new formatted error
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		kind:    kind,
		message: message,
		cause:   err,
	}
}

// PermissionError reports that microphone access was denied or unavailable.
func PermissionError(cause error) error {
	msg := "Microphone access denied"
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &Error{kind: KindPermission, message: msg, cause: cause}
}

// UnsupportedTypeError reports a local file that failed intake validation.
func UnsupportedTypeError(name, mime string) error {
	return Newf(KindUnsupportedType, "Unsupported file type: %s (%s)", displayName(name), displayMIME(mime))
}

// UpstreamError carries a non-success backend status and its detail message.
func UpstreamError(status int, detail string) error {
	return &Error{kind: KindUpstream, message: detail, status: status}
}

// ProxyTransportError reports that the relay could not reach the backend.
func ProxyTransportError(cause error) error {
	msg := "Proxy failed"
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return &Error{kind: KindProxyTransport, message: msg, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil && e.cause.Error() != e.message {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Detail is the human-readable message shown to the user.
func (e *Error) Detail() string {
	return e.message
}

// Kind returns the error classification
func (e *Error) Kind() Kind {
	return e.kind
}

// Status returns the HTTP status attached to upstream errors, or 0.
func (e *Error) Status() int {
	return e.status
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind && e.message == t.message
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// DetailOf extracts the user-facing message from err, falling back to fallback.
func DetailOf(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var d interface{ Detail() string }
	if stderrors.As(err, &d) && d.Detail() != "" {
		return d.Detail()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

func displayName(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}

func displayMIME(mime string) string {
	if mime == "" {
		return "no type"
	}
	return mime
}
