package capture

import (
	"context"
	"sync"

	"go.uber.org/zap"

	apperrors "transcripto/internal/app/errors"
	"transcripto/internal/app/media"
)

// State is the upload state machine position.
type State int

const (
	Idle State = iota
	Recording
	Loading
)

func (s State) String() string {
	switch s {
	case Recording:
		return "recording"
	case Loading:
		return "loading"
	default:
		return "idle"
	}
}

// ErrSuperseded is returned to the caller of an upload whose response
// arrived after a newer upload was issued. Its result was discarded.
var ErrSuperseded = apperrors.New(apperrors.KindInvalidState, "upload superseded by a newer one")

// View is a snapshot of everything a renderer needs.
type View struct {
	State      State
	Recording  bool
	Loading    bool
	Result     *UploadResult
	Err        string
	DragActive bool
}

// session is one microphone capture. Its chunks are append-only.
type session struct {
	stream      Stream
	tracks      []Track
	chunks      [][]byte
	closed      bool
	releaseOnce sync.Once
}

// release stops every track exactly once.
func (s *session) release() {
	s.releaseOnce.Do(func() {
		for _, t := range s.tracks {
			t.Stop()
		}
	})
}

// Controller owns the recording and file-intake state machine.
type Controller struct {
	device   Device
	uploader Uploader
	logger   *zap.Logger

	mu         sync.Mutex
	session    *session
	seq        uint64
	loading    bool
	result     *UploadResult
	errMsg     string
	dragActive bool
	listeners  []func(View)
}

// NewController creates a controller. A nil logger discards logs.
func NewController(device Device, uploader Uploader, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		device:   device,
		uploader: uploader,
		logger:   logger,
	}
}

// Subscribe registers a render callback invoked after every state change.
func (c *Controller) Subscribe(fn func(View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// View returns the current snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	v := View{
		Recording:  c.session != nil,
		Loading:    c.loading,
		Err:        c.errMsg,
		DragActive: c.dragActive,
	}
	if c.result != nil {
		r := *c.result
		v.Result = &r
	}
	switch {
	case v.Recording:
		v.State = Recording
	case v.Loading:
		v.State = Loading
	default:
		v.State = Idle
	}
	return v
}

func (c *Controller) notify() {
	c.mu.Lock()
	v := c.viewLocked()
	listeners := append([]func(View){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(v)
	}
}

// StartRecording requests the microphone and begins accumulating chunks.
// On failure the controller stays idle and the error is surfaced as a
// PermissionError.
func (c *Controller) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		return apperrors.ErrAlreadyRecording
	}
	c.errMsg = ""
	c.result = nil
	c.mu.Unlock()
	c.notify()

	stream, err := c.device.Open(ctx)
	if err != nil {
		return c.failStart(apperrors.PermissionError(err))
	}

	sess := &session{stream: stream, tracks: stream.Tracks()}

	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		sess.release()
		return apperrors.ErrAlreadyRecording
	}
	c.session = sess
	c.mu.Unlock()

	if err := stream.Start(func(data []byte) { c.appendChunk(sess, data) }); err != nil {
		c.mu.Lock()
		if c.session == sess {
			c.session = nil
		}
		sess.closed = true
		c.mu.Unlock()
		sess.release()
		return c.failStart(apperrors.PermissionError(err))
	}

	c.logger.Debug("Recording started", zap.Int("tracks", len(sess.tracks)))
	c.notify()
	return nil
}

func (c *Controller) failStart(err error) error {
	c.mu.Lock()
	c.errMsg = apperrors.DetailOf(err, "Microphone access denied")
	c.mu.Unlock()
	c.logger.Warn("Microphone unavailable", zap.Error(err))
	c.notify()
	return err
}

// ChunkAvailable appends a chunk to the active recording. Empty chunks and
// chunks arriving outside a recording are ignored.
func (c *Controller) ChunkAvailable(data []byte) {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()
	if sess != nil {
		c.appendChunk(sess, data)
	}
}

func (c *Controller) appendChunk(sess *session, data []byte) {
	if len(data) == 0 {
		return
	}
	chunk := append([]byte(nil), data...)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !sess.closed {
		sess.chunks = append(sess.chunks, chunk)
	}
}

// StopRecording finalizes the recording into one webm blob, releases every
// device track and submits the blob. Stopping always proceeds to upload,
// even when nothing was captured.
func (c *Controller) StopRecording(ctx context.Context) error {
	c.mu.Lock()
	sess := c.session
	if sess == nil {
		c.mu.Unlock()
		return apperrors.ErrNotRecording
	}
	c.session = nil
	c.mu.Unlock()

	stopErr := sess.stream.Stop()

	c.mu.Lock()
	sess.closed = true
	chunks := sess.chunks
	sess.chunks = nil
	c.mu.Unlock()

	sess.release()

	if stopErr != nil {
		c.logger.Warn("Recorder did not stop cleanly", zap.Error(stopErr))
	}

	blob := media.FromChunks(chunks)
	c.logger.Debug("Recording finalized", zap.Int("chunks", len(chunks)), zap.Int("bytes", blob.Size()))
	return c.submit(ctx, blob)
}

// FilePicked validates a selected or dropped file and submits it.
// Rejected files never reach the network.
func (c *Controller) FilePicked(ctx context.Context, file media.Blob) error {
	if err := media.Validate(file.Name(), file.ContentType()); err != nil {
		c.mu.Lock()
		c.errMsg = apperrors.DetailOf(err, "Unsupported file type")
		c.result = nil
		c.mu.Unlock()
		c.logger.Info("File rejected", zap.String("name", file.Name()), zap.String("type", file.ContentType()))
		c.notify()
		return err
	}
	return c.submit(ctx, file)
}

// DragEnter marks the drop target active.
func (c *Controller) DragEnter() {
	c.setDrag(true)
}

// DragLeave clears the drop target.
func (c *Controller) DragLeave() {
	c.setDrag(false)
}

// Drop clears the drop target and picks the first dropped file only.
func (c *Controller) Drop(ctx context.Context, files []media.Blob) error {
	c.setDrag(false)
	if len(files) == 0 {
		return nil
	}
	return c.FilePicked(ctx, files[0])
}

func (c *Controller) setDrag(active bool) {
	c.mu.Lock()
	changed := c.dragActive != active
	c.dragActive = active
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

// submit uploads blob and applies the response only if no newer upload was
// issued in the meantime.
func (c *Controller) submit(ctx context.Context, blob media.Blob) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	c.errMsg = ""
	c.result = nil
	c.mu.Unlock()
	c.notify()

	result, err := c.uploader.Upload(ctx, blob)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("Discarding stale upload response", zap.Uint64("seq", seq))
		return ErrSuperseded
	}
	c.loading = false
	switch {
	case err != nil:
		c.errMsg = apperrors.DetailOf(err, "Upload failed")
	case result == nil:
		c.result = &UploadResult{}
	default:
		r := *result
		c.result = &r
	}
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("Upload failed", zap.Error(err))
	}
	c.notify()
	return err
}

// Close releases the microphone if a recording is still active. The
// captured audio is discarded.
func (c *Controller) Close() error {
	c.mu.Lock()
	sess := c.session
	c.session = nil
	c.mu.Unlock()

	if sess == nil {
		return nil
	}

	err := sess.stream.Stop()
	c.mu.Lock()
	sess.closed = true
	sess.chunks = nil
	c.mu.Unlock()
	sess.release()
	c.notify()
	return err
}
