package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcripto/internal/api/errors"
)

func bindRequest(t *testing.T, build func(w *multipart.Writer)) error {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	build(w)
	require.NoError(t, w.Close())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	c.Request.Header.Set("Content-Type", w.FormDataContentType())

	var form UploadForm
	return BindUploadForm(c, &form)
}

func TestBindUploadForm(t *testing.T) {
	t.Run("file part", func(t *testing.T) {
		err := bindRequest(t, func(w *multipart.Writer) {
			part, err := w.CreateFormFile("file", "audio.webm")
			require.NoError(t, err)
			_, err = part.Write([]byte("webm"))
			require.NoError(t, err)
		})
		assert.NoError(t, err)
	})

	t.Run("text value named file", func(t *testing.T) {
		err := bindRequest(t, func(w *multipart.Writer) {
			require.NoError(t, w.WriteField("file", "just text"))
		})
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, errors.KindBadRequest, apiErr.Kind)
		assert.Equal(t, "Missing file", apiErr.Detail)
	})

	t.Run("no file field", func(t *testing.T) {
		err := bindRequest(t, func(w *multipart.Writer) {
			require.NoError(t, w.WriteField("other", "x"))
		})
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Missing file", apiErr.Detail)
	})
}
