package backend

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcripto/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func mockConfig() *config.BackendConfig {
	return &config.BackendConfig{
		UseMock:       true,
		WhisperModel:  config.DefaultWhisperModel,
		SummaryModel:  config.DefaultSummaryModel,
		SummaryTokens: config.DefaultSummaryTokens,
		Host:          "127.0.0.1",
		Port:          config.DefaultBackendPort,
	}
}

func multipartFile(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doUpload(t *testing.T, s *Server, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartFile(t, filename, data)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestUpload_MockMode(t *testing.T) {
	s := NewServer(mockConfig(), MockEngine{}, nil)

	w := doUpload(t, s, "clip.webm", []byte("12345"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Process-Time-Ms"))

	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "[mock] Received 5 bytes from clip.webm.", result.Transcript)
	require.NotNil(t, result.Summary)
	assert.Equal(t, mockSummary, *result.Summary)
	assert.Nil(t, result.SummaryError)
}

func TestUpload_UnsupportedFormat(t *testing.T) {
	s := NewServer(mockConfig(), MockEngine{}, nil)

	for _, name := range []string{"notes.txt", "image.png", "noext"} {
		w := doUpload(t, s, name, []byte("x"))
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.JSONEq(t, `{"detail":"Unsupported file format"}`, w.Body.String(), name)
	}

	w := doUpload(t, s, "LOUD.MP3", []byte("x"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpload_MissingFile(t *testing.T) {
	s := NewServer(mockConfig(), MockEngine{}, nil)

	// A text value named "file" is not a file part.
	for _, field := range []string{"other", "file"} {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField(field, "value"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		s.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, field)
		assert.JSONEq(t, `{"detail":"Missing file"}`, w.Body.String(), field)
	}
}

func TestHealth(t *testing.T) {
	cfg := mockConfig()
	cfg.AllowAllCORS = true
	s := NewServer(cfg, MockEngine{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","mock":true,"allow_all_cors":true}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DefaultOrigins(t *testing.T) {
	s := NewServer(mockConfig(), MockEngine{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewEngine(t *testing.T) {
	cfg := mockConfig()
	assert.Equal(t, "mock", NewEngine(cfg, nil).Mode())

	cfg.UseMock = false
	cfg.OpenAIAPIKey = "sk-test"
	assert.Equal(t, "openai", NewEngine(cfg, nil).Mode())
}
