package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "transcripto/internal/app/errors"
)

func TestValidate_AcceptsEveryAllowedMIME(t *testing.T) {
	for _, mt := range SupportedMIMETypes {
		t.Run(mt, func(t *testing.T) {
			assert.NoError(t, Validate("blob", mt))
			assert.NoError(t, Validate("blob", strings.ToUpper(mt)+"; codecs=opus"))
		})
	}
}

func TestValidate_AcceptsEveryExtensionCaseInsensitive(t *testing.T) {
	for _, ext := range SupportedExtensions {
		t.Run(ext, func(t *testing.T) {
			assert.NoError(t, Validate("clip."+ext, ""))
			assert.NoError(t, Validate("CLIP."+strings.ToUpper(ext), "application/octet-stream"))
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
	}{
		{"text file", "notes.txt", "text/plain"},
		{"image", "photo.png", "image/png"},
		{"no extension no type", "recording", ""},
		{"extension only as substring", "webm.txt", ""},
		{"flac not allowed", "song.flac", "audio/flac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.filename, tt.contentType)
			assert.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindUnsupportedType))
		})
	}
}

func TestFromChunks(t *testing.T) {
	blob := FromChunks([][]byte{[]byte("ab"), []byte("cd"), []byte("e")})
	assert.Equal(t, "abcde", string(blob.Bytes()))
	assert.Equal(t, RecordingContentType, blob.ContentType())
	assert.Equal(t, DefaultFilename, blob.Filename())

	empty := FromChunks(nil)
	assert.Equal(t, 0, empty.Size())
	assert.Equal(t, RecordingContentType, empty.ContentType())
}

func TestNewBlob_IsImmutable(t *testing.T) {
	src := []byte("audio")
	blob := NewBlob("", "audio/wav", src)
	src[0] = 'X'

	assert.Equal(t, "audio", string(blob.Bytes()))
	assert.Equal(t, DefaultFilename, blob.Filename())

	out := blob.Bytes()
	out[0] = 'Y'
	assert.Equal(t, "audio", string(blob.Bytes()))
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "audio/mpeg", DetectContentType("a.MP3", nil))
	assert.Equal(t, "video/quicktime", DetectContentType("clip.mov", nil))
	assert.Equal(t, "", DetectContentType("unknown", nil))
	assert.Equal(t, "text/plain; charset=utf-8", DetectContentType("unknown", []byte("hello")))
}
