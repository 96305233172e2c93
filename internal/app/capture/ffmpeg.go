package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	ffmpegReadSize    = 32 * 1024
	ffmpegStopTimeout = 5 * time.Second
)

// FFmpegConfig selects the capture backend passed to ffmpeg's -f and -i.
type FFmpegConfig struct {
	Binary      string
	InputFormat string
	Input       string
}

// DefaultFFmpegConfig returns the platform's default microphone input.
func DefaultFFmpegConfig() FFmpegConfig {
	cfg := FFmpegConfig{Binary: "ffmpeg"}
	switch runtime.GOOS {
	case "darwin":
		cfg.InputFormat, cfg.Input = "avfoundation", ":default"
	case "windows":
		cfg.InputFormat, cfg.Input = "dshow", "audio=default"
	default:
		cfg.InputFormat, cfg.Input = "pulse", "default"
	}
	return cfg
}

// FFmpegDevice captures microphone audio by running ffmpeg and encoding it
// to webm/opus on stdout.
type FFmpegDevice struct {
	config FFmpegConfig
	logger *zap.Logger
}

// NewFFmpegDevice creates a device. A nil logger discards logs.
func NewFFmpegDevice(config FFmpegConfig, logger *zap.Logger) *FFmpegDevice {
	if config.Binary == "" {
		config.Binary = "ffmpeg"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpegDevice{config: config, logger: logger}
}

// Open resolves the ffmpeg binary. The process itself starts in Stream.Start.
func (d *FFmpegDevice) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := exec.LookPath(d.config.Binary)
	if err != nil {
		return nil, fmt.Errorf("audio capture unavailable: %w", err)
	}
	s := &ffmpegStream{
		path:   path,
		config: d.config,
		logger: d.logger,
		done:   make(chan struct{}),
	}
	s.track = &processTrack{stream: s}
	return s, nil
}

type ffmpegStream struct {
	path   string
	config FFmpegConfig
	logger *zap.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	track  *processTrack
	done   chan struct{}
}

func (s *ffmpegStream) Tracks() []Track {
	return []Track{s.track}
}

func (s *ffmpegStream) args() []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-nostats",
		"-f", s.config.InputFormat,
		"-i", s.config.Input,
		"-vn",
		"-c:a", "libopus",
		"-f", "webm",
		"pipe:1",
	}
}

func (s *ffmpegStream) Start(onData func([]byte)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := exec.Command(s.path, s.args()...)
	cmd.Stderr = &s.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open ffmpeg stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	s.cmd = cmd
	s.stdin = stdin

	go func() {
		defer close(s.done)
		buf := make([]byte, ffmpegReadSize)
		for {
			n, err := stdout.Read(buf)
			if n > 0 {
				onData(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	s.logger.Debug("ffmpeg capture started", zap.Strings("args", s.args()))
	return nil
}

// Stop asks ffmpeg to finish by sending "q", waits for the encoder to flush
// and kills the process if it does not exit in time.
func (s *ffmpegStream) Stop() error {
	s.mu.Lock()
	cmd, stdin := s.cmd, s.stdin
	s.mu.Unlock()
	if cmd == nil {
		return nil
	}

	_, _ = io.WriteString(stdin, "q")
	_ = stdin.Close()

	select {
	case <-s.done:
	case <-time.After(ffmpegStopTimeout):
		s.logger.Warn("ffmpeg did not exit after quit request, killing")
		_ = cmd.Process.Kill()
		<-s.done
	}

	err := cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return err
	}
	if exitErr != nil && s.stderr.Len() > 0 {
		return fmt.Errorf("ffmpeg exited with %d: %s", exitErr.ExitCode(), bytes.TrimSpace(s.stderr.Bytes()))
	}
	return nil
}

// processTrack releases the ffmpeg process.
type processTrack struct {
	stream *ffmpegStream
	once   sync.Once
}

func (t *processTrack) Stop() {
	t.once.Do(func() {
		t.stream.mu.Lock()
		cmd := t.stream.cmd
		t.stream.mu.Unlock()
		if cmd != nil && cmd.Process != nil && cmd.ProcessState == nil {
			_ = cmd.Process.Kill()
		}
	})
}
