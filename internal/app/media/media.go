package media

import (
	"bytes"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	apperrors "transcripto/internal/app/errors"
)

const (
	// DefaultFilename is used whenever a payload arrives without a name.
	DefaultFilename = "audio.webm"
	// RecordingContentType is the container produced by microphone capture.
	RecordingContentType = "audio/webm"
)

// SupportedMIMETypes lists the declared content types accepted for upload
var SupportedMIMETypes = []string{
	"audio/webm",
	"audio/wav",
	"audio/x-wav",
	"audio/wave",
	"audio/mpeg",
	"audio/mp3",
	"audio/ogg",
	"audio/mp4",
	"audio/m4a",
	"audio/x-m4a",
	"video/mp4",
	"video/mpeg",
	"video/quicktime",
	"video/webm",
}

// SupportedExtensions lists the filename extensions accepted when the MIME type is unreliable
var SupportedExtensions = []string{"webm", "wav", "mp3", "m4a", "ogg", "mp4", "mpeg", "mov"}

var extensionTypes = map[string]string{
	"webm": "audio/webm",
	"wav":  "audio/wav",
	"mp3":  "audio/mpeg",
	"m4a":  "audio/mp4",
	"ogg":  "audio/ogg",
	"mp4":  "video/mp4",
	"mpeg": "video/mpeg",
	"mov":  "video/quicktime",
}

// Blob is an immutable binary payload destined for upload.
type Blob struct {
	name        string
	contentType string
	data        []byte
}

// NewBlob copies data into a new Blob.
func NewBlob(name, contentType string, data []byte) Blob {
	return Blob{
		name:        name,
		contentType: contentType,
		data:        bytes.Clone(data),
	}
}

// FromChunks concatenates recorded chunks, in insertion order, into one webm Blob.
func FromChunks(chunks [][]byte) Blob {
	return Blob{
		name:        DefaultFilename,
		contentType: RecordingContentType,
		data:        bytes.Join(chunks, nil),
	}
}

func (b Blob) Name() string        { return b.name }
func (b Blob) ContentType() string { return b.contentType }
func (b Blob) Size() int           { return len(b.data) }

// Filename returns the blob name, or DefaultFilename when unnamed.
func (b Blob) Filename() string {
	if b.name == "" {
		return DefaultFilename
	}
	return b.name
}

// Reader returns a fresh reader over the payload.
func (b Blob) Reader() *bytes.Reader {
	return bytes.NewReader(b.data)
}

// Bytes returns a copy of the payload.
func (b Blob) Bytes() []byte {
	return bytes.Clone(b.data)
}

// IsSupportedMIME reports whether the declared type is on the allow-list.
// Parameters such as codecs are ignored.
func IsSupportedMIME(contentType string) bool {
	base := normalizeMIME(contentType)
	if base == "" {
		return false
	}
	return lo.Contains(SupportedMIMETypes, base)
}

// IsSupportedExtension reports whether name ends in an accepted extension, case-insensitively.
func IsSupportedExtension(name string) bool {
	return lo.Contains(SupportedExtensions, extension(name))
}

// Validate accepts a file by declared MIME type or, failing that, by extension.
func Validate(name, contentType string) error {
	if IsSupportedMIME(contentType) || IsSupportedExtension(name) {
		return nil
	}
	return apperrors.UnsupportedTypeError(name, contentType)
}

// DetectContentType guesses a MIME type from the file extension, then by sniffing head.
func DetectContentType(name string, head []byte) string {
	if t, ok := extensionTypes[extension(name)]; ok {
		return t
	}
	if len(head) == 0 {
		return ""
	}
	return http.DetectContentType(head)
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func normalizeMIME(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	base, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		base, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(base))
}
