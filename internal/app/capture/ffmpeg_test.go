package capture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "transcripto/internal/app/errors"
)

func TestDefaultFFmpegConfig(t *testing.T) {
	cfg := DefaultFFmpegConfig()
	assert.Equal(t, "ffmpeg", cfg.Binary)
	assert.NotEmpty(t, cfg.InputFormat)
	assert.NotEmpty(t, cfg.Input)
}

func TestFFmpegDevice_MissingBinary(t *testing.T) {
	device := NewFFmpegDevice(FFmpegConfig{Binary: "definitely-not-ffmpeg-xyz", InputFormat: "lavfi", Input: "anullsrc"}, nil)

	_, err := device.Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio capture unavailable")
}

func TestFFmpegDevice_MissingBinarySurfacesAsPermissionError(t *testing.T) {
	device := NewFFmpegDevice(FFmpegConfig{Binary: "definitely-not-ffmpeg-xyz"}, nil)
	ctrl := NewController(device, nil, nil)

	err := ctrl.StartRecording(context.Background())

	assert.True(t, apperrors.IsKind(err, apperrors.KindPermission))
	assert.Contains(t, ctrl.View().Err, "audio capture unavailable")
	assert.Equal(t, Idle, ctrl.View().State)
}

func TestFFmpegDevice_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFFmpegDevice(DefaultFFmpegConfig(), nil).Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFFmpegStream_Args(t *testing.T) {
	s := &ffmpegStream{config: FFmpegConfig{InputFormat: "pulse", Input: "default"}}
	args := s.args()

	assert.Contains(t, args, "pulse")
	assert.Contains(t, args, "libopus")
	assert.Equal(t, "pipe:1", args[len(args)-1])
}

func TestFFmpegStream_StopBeforeStart(t *testing.T) {
	s := &ffmpegStream{done: make(chan struct{})}
	s.track = &processTrack{stream: s}

	assert.NoError(t, s.Stop())
	assert.NotPanics(t, func() { s.track.Stop() })
}
