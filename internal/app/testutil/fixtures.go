package testutil

import (
	"transcripto/internal/app/capture"
	"transcripto/internal/app/media"
)

// MockTranscriptJSON is the reply of a backend running in demo mode.
const MockTranscriptJSON = `{"transcript":"mock transcript","summary":"mock summary"}`

// MockResult is MockTranscriptJSON decoded.
func MockResult() *capture.UploadResult {
	return &capture.UploadResult{Transcript: "mock transcript", Summary: "mock summary"}
}

// SampleBlobs are accepted inputs covering each intake path: a declared
// audio type, a declared video type and an extension-only match.
func SampleBlobs() []media.Blob {
	return []media.Blob{
		media.NewBlob("memo.wav", "audio/wav", []byte("RIFF....WAVE")),
		media.NewBlob("clip.mov", "video/quicktime", []byte("....ftypqt  ")),
		media.NewBlob("VOICE.M4A", "", []byte("....ftypM4A ")),
	}
}
