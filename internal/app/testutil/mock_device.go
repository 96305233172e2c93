package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"transcripto/internal/app/capture"
)

// MockTrack counts how many times it was released.
type MockTrack struct {
	stops atomic.Int32
}

// Stop implements capture.Track
func (t *MockTrack) Stop() {
	t.stops.Add(1)
}

// Stops returns the number of Stop calls.
func (t *MockTrack) Stops() int {
	return int(t.stops.Load())
}

// MockStream is a capture.Stream driven by the test. Chunks queued with
// FlushOnStop are delivered during Stop, like a recorder's final dataavailable.
type MockStream struct {
	mu          sync.Mutex
	tracks      []*MockTrack
	onData      func([]byte)
	flushOnStop [][]byte

	StartErr error
	StopErr  error
	Started  bool
	Stopped  bool
}

// NewMockStream creates a stream with n tracks.
func NewMockStream(n int) *MockStream {
	s := &MockStream{}
	for i := 0; i < n; i++ {
		s.tracks = append(s.tracks, &MockTrack{})
	}
	return s
}

// MockTracks returns the concrete tracks for assertions.
func (s *MockStream) MockTracks() []*MockTrack {
	return s.tracks
}

// Tracks implements capture.Stream
func (s *MockStream) Tracks() []capture.Track {
	out := make([]capture.Track, len(s.tracks))
	for i, t := range s.tracks {
		out[i] = t
	}
	return out
}

// Start implements capture.Stream
func (s *MockStream) Start(onData func([]byte)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StartErr != nil {
		return s.StartErr
	}
	s.onData = onData
	s.Started = true
	return nil
}

// Emit delivers a chunk as the encoder would.
func (s *MockStream) Emit(data []byte) {
	s.mu.Lock()
	onData := s.onData
	s.mu.Unlock()
	if onData != nil {
		onData(data)
	}
}

// FlushOnStop queues chunks to deliver during Stop.
func (s *MockStream) FlushOnStop(chunks ...[]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushOnStop = append(s.flushOnStop, chunks...)
}

// Stop implements capture.Stream
func (s *MockStream) Stop() error {
	s.mu.Lock()
	onData := s.onData
	pending := s.flushOnStop
	s.flushOnStop = nil
	s.Stopped = true
	s.mu.Unlock()

	for _, c := range pending {
		if onData != nil {
			onData(c)
		}
	}
	return s.StopErr
}

// MockDevice hands out Stream or fails with Err.
type MockDevice struct {
	Stream *MockStream
	Err    error
	Opens  atomic.Int32
}

// Open implements capture.Device
func (d *MockDevice) Open(ctx context.Context) (capture.Stream, error) {
	d.Opens.Add(1)
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Stream, nil
}
