package errors

import (
	"net/http"

	apperrors "transcripto/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindBadRequest      ErrorKind = "bad_request"
	KindPayloadTooLarge ErrorKind = "payload_too_large"
	KindUpstream        ErrorKind = "upstream"
	KindProxyTransport  ErrorKind = "proxy_transport"
	KindInternal        ErrorKind = "internal"
)

// APIError is rendered to clients as {"detail": "..."}.
type APIError struct {
	Kind   ErrorKind `json:"-"`
	Detail string    `json:"detail"`
	Status int       `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Detail
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindProxyTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewMissingFileError is the contract violation for an absent or non-binary file field.
func NewMissingFileError() *APIError {
	return &APIError{
		Kind:   KindBadRequest,
		Detail: apperrors.ErrMissingFile.Detail(),
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(detail string) *APIError {
	return &APIError{
		Kind:   KindBadRequest,
		Detail: detail,
	}
}

// NewPayloadTooLargeError rejects an upload over the configured limit.
func NewPayloadTooLargeError(detail string) *APIError {
	return &APIError{
		Kind:   KindPayloadTooLarge,
		Detail: detail,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(detail string) *APIError {
	return &APIError{
		Kind:   KindInternal,
		Detail: detail,
	}
}

// FromAppError maps a domain error onto its API representation.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}

	kind, _ := apperrors.KindOf(err)
	switch kind {
	case apperrors.KindProxyTransport:
		return &APIError{Kind: KindProxyTransport, Detail: apperrors.DetailOf(err, "Proxy failed")}
	case apperrors.KindUpstream:
		apiErr := &APIError{Kind: KindUpstream, Detail: apperrors.DetailOf(err, "Upstream error")}
		if e, ok := err.(interface{ Status() int }); ok {
			apiErr.Status = e.Status()
		}
		return apiErr
	case apperrors.KindUnsupportedType:
		return &APIError{Kind: KindBadRequest, Detail: apperrors.DetailOf(err, "Unsupported file")}
	default:
		return &APIError{Kind: KindInternal, Detail: "Internal server error"}
	}
}
