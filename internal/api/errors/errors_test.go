package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "transcripto/internal/app/errors"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewMissingFileError().HTTPStatus())
	assert.Equal(t, http.StatusRequestEntityTooLarge, NewPayloadTooLargeError("too big").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("x").HTTPStatus())
	assert.Equal(t, http.StatusTeapot, (&APIError{Kind: KindUpstream, Status: http.StatusTeapot}).HTTPStatus())
}

func TestNewMissingFileError(t *testing.T) {
	assert.Equal(t, "Missing file", NewMissingFileError().Detail)
}

func TestFromAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"transport", apperrors.ProxyTransportError(stderrors.New("dial failed")), http.StatusBadGateway, "dial failed"},
		{"upstream", apperrors.UpstreamError(http.StatusServiceUnavailable, "Backend returned status 503"), http.StatusServiceUnavailable, "Backend returned status 503"},
		{"unsupported", apperrors.UnsupportedTypeError("a.txt", "text/plain"), http.StatusBadRequest, "Unsupported file type: a.txt (text/plain)"},
		{"unknown", stderrors.New("secret internals"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromAppError(tt.err)
			assert.Equal(t, tt.status, apiErr.HTTPStatus())
			assert.Equal(t, tt.detail, apiErr.Detail)
		})
	}

	assert.Nil(t, FromAppError(nil))
}
