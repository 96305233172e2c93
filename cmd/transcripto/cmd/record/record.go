package record

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transcripto/cmd/transcripto/cmd/common"
	"transcripto/internal/app/capture"
)

var (
	flags       common.ClientFlags
	duration    time.Duration
	ffmpegPath  string
	inputFormat string
	input       string
)

func init() {
	defaults := capture.DefaultFFmpegConfig()

	common.AddClientFlags(Cmd, &flags)
	Cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "stop automatically after this long (default: wait for Enter)")
	Cmd.Flags().StringVar(&ffmpegPath, "ffmpeg", defaults.Binary, "ffmpeg binary used for capture")
	Cmd.Flags().StringVar(&inputFormat, "input-format", defaults.InputFormat, "ffmpeg input format (-f) of the microphone")
	Cmd.Flags().StringVar(&input, "input", defaults.Input, "ffmpeg input device (-i) of the microphone")
}

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone and transcribe the recording",
	Long: `Record from the microphone and transcribe the recording

- Audio is captured with ffmpeg and encoded as webm/opus
- Press Enter (or wait for --duration) to stop and upload
- Ctrl-C discards the recording`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := common.NewSession(cmd, &flags, func(logger *zap.Logger) capture.Device {
			return capture.NewFFmpegDevice(capture.FFmpegConfig{
				Binary:      ffmpegPath,
				InputFormat: inputFormat,
				Input:       input,
			}, logger)
		})
		ctrl := session.Controller

		if err := ctrl.StartRecording(ctx); err != nil {
			return session.Finish(cmd)
		}
		defer func() { _ = ctrl.Close() }()

		if duration > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Recording for %s…\n", duration)
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "Recording… press Enter to stop.")
		}

		if err := waitForStop(ctx, cmd); err != nil {
			session.Logger.Info("Recording discarded", zap.Error(err))
			return err
		}

		// the upload must not be cut short by a late Ctrl-C on the stop path
		_ = ctrl.StopRecording(context.WithoutCancel(ctx))
		return session.Finish(cmd)
	},
}

func waitForStop(ctx context.Context, cmd *cobra.Command) error {
	enter := make(chan struct{}, 1)
	if duration <= 0 {
		go func() {
			_, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			enter <- struct{}{}
		}()
	}

	var timeout <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-enter:
	case <-timeout:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
