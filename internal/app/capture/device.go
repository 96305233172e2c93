package capture

import (
	"context"

	"transcripto/internal/app/media"
)

// Device acquires microphone input. Open corresponds to the browser
// permission prompt and fails when access is denied or unavailable.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream is an acquired input with one or more device tracks.
type Stream interface {
	// Tracks returns the device tracks that must be released when capture ends.
	Tracks() []Track
	// Start begins encoding; onData receives chunks in production order.
	Start(onData func([]byte)) error
	// Stop ends encoding and delivers any pending data to onData before returning.
	Stop() error
}

// Track is a single device track.
type Track interface {
	Stop()
}

// UploadResult is the rendered success payload.
type UploadResult struct {
	Transcript   string `json:"transcript"`
	Summary      string `json:"summary"`
	SummaryError string `json:"summary_error,omitempty"`
}

// Uploader submits a finished blob to the relay.
type Uploader interface {
	Upload(ctx context.Context, blob media.Blob) (*UploadResult, error)
}
