package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcripto/internal/app/media"
)

func TestRelayClient_Upload(t *testing.T) {
	var gotName, gotType, gotPath string
	var gotData []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotName = header.Filename
		gotType = header.Header.Get("Content-Type")
		gotData, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transcript":"mock transcript","summary":"mock summary"}`))
	}))
	defer server.Close()

	c := NewRelayClient(server.URL+"/", 5*time.Second)
	result, err := c.Upload(context.Background(), media.FromChunks([][]byte{[]byte("ab"), []byte("cd")}))

	require.NoError(t, err)
	assert.Equal(t, "/api/upload", gotPath)
	assert.Equal(t, media.DefaultFilename, gotName)
	assert.Equal(t, media.RecordingContentType, gotType)
	assert.Equal(t, "abcd", string(gotData))
	assert.Equal(t, "mock transcript", result.Transcript)
	assert.Equal(t, "mock summary", result.Summary)
}

func TestRelayClient_ErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail":"connection refused"}`))
	}))
	defer server.Close()

	_, err := NewRelayClient(server.URL, time.Second).Upload(context.Background(), media.NewBlob("a.wav", "audio/wav", []byte("x")))

	var uploadErr *UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, http.StatusBadGateway, uploadErr.Status)
	assert.Equal(t, "connection refused", err.Error())
}

func TestRelayClient_ErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewRelayClient(server.URL, time.Second).Upload(context.Background(), media.NewBlob("a.wav", "audio/wav", []byte("x")))

	require.Error(t, err)
	assert.Equal(t, "Request failed with status code 500", err.Error())
}

func TestRelayClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewRelayClient(url, time.Second).Upload(context.Background(), media.NewBlob("a.wav", "audio/wav", []byte("x")))

	require.Error(t, err)
	var uploadErr *UploadError
	assert.False(t, errors.As(err, &uploadErr))
}
