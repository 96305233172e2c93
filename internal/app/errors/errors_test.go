package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionError(t *testing.T) {
	err := PermissionError(stderrors.New("NotAllowedError: permission denied"))
	assert.True(t, IsKind(err, KindPermission))
	assert.Equal(t, "NotAllowedError: permission denied", DetailOf(err, ""))

	fallback := PermissionError(nil)
	assert.Equal(t, "Microphone access denied", DetailOf(fallback, ""))
}

func TestUpstreamError(t *testing.T) {
	err := UpstreamError(http.StatusInternalServerError, "boom")
	var e *Error
	assert.True(t, stderrors.As(err, &e))
	assert.Equal(t, http.StatusInternalServerError, e.Status())
	assert.Equal(t, "boom", e.Detail())
	assert.Equal(t, KindUpstream, e.Kind())
}

func TestProxyTransportError(t *testing.T) {
	assert.Equal(t, "Proxy failed", DetailOf(ProxyTransportError(nil), ""))
	assert.Equal(t, "dial tcp: refused", DetailOf(ProxyTransportError(stderrors.New("dial tcp: refused")), ""))
}

func TestWrapPreservesKind(t *testing.T) {
	base := UnsupportedTypeError("notes.txt", "text/plain")
	wrapped := fmt.Errorf("file intake: %w", base)

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindUnsupportedType, kind)
	assert.Contains(t, DetailOf(wrapped, ""), "notes.txt")
	assert.Nil(t, Wrap(nil, KindConfig, "ignored"))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("stop: %w", ErrNotRecording)
	assert.True(t, stderrors.Is(err, ErrNotRecording))
	assert.False(t, stderrors.Is(err, ErrAlreadyRecording))
}

func TestDetailOfFallback(t *testing.T) {
	assert.Equal(t, "Upload failed", DetailOf(nil, "Upload failed"))
	assert.Equal(t, "plain", DetailOf(stderrors.New("plain"), "Upload failed"))
}
