package middleware

import (
	stderrors "errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"transcripto/internal/api/errors"
)

// UploadForm is the multipart contract of POST /api/upload.
type UploadForm struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

// BindUploadForm binds the multipart body. A missing file part, a text value
// in place of the file, or an unparsable body all violate the contract and
// yield "Missing file"; a body over the size limit yields 413.
func BindUploadForm(c *gin.Context, form *UploadForm) error {
	err := c.ShouldBind(form)
	if err == nil {
		if !hasFilePart(c, "file") {
			return errors.NewMissingFileError()
		}
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if stderrors.As(err, &maxBytesErr) {
		return errors.NewPayloadTooLargeError("File too large")
	}

	return errors.NewMissingFileError()
}

// hasFilePart reports whether field arrived as a file part. gin maps a plain
// text value onto an empty FileHeader, which passes the required tag.
func hasFilePart(c *gin.Context, field string) bool {
	mf := c.Request.MultipartForm
	return mf != nil && len(mf.File[field]) > 0
}
