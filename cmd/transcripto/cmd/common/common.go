package common

import (
	"errors"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transcripto/internal/app/capture"
	"transcripto/internal/app/client"
	"transcripto/internal/app/logging"
	"transcripto/internal/app/progress"
	"transcripto/internal/config"
)

// Verbose is bound to the root --verbose flag.
var Verbose bool

// ErrRendered signals that the failure was already printed for the user.
var ErrRendered = errors.New("upload failed")

// ClientFlags are shared by the commands that talk to the relay.
type ClientFlags struct {
	RelayURL     string
	Timeout      time.Duration
	ForceSpinner bool
}

// AddClientFlags registers the relay client flags on cmd.
func AddClientFlags(cmd *cobra.Command, flags *ClientFlags) {
	cmd.Flags().StringVarP(&flags.RelayURL, "relay", "r", "",
		"relay base URL (default $"+config.EnvRelayURL+" or "+config.DefaultRelayURL+")")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", config.DefaultUpstreamTimeout, "upload timeout")
	cmd.Flags().BoolVar(&flags.ForceSpinner, "progress", false, "show the processing spinner even when stderr is not a terminal")
}

// Session is one client run: a controller wired to the relay with a spinner
// following the loading state.
type Session struct {
	Controller *capture.Controller
	Logger     *zap.Logger
}

// DeviceFunc builds the capture device with the session logger.
type DeviceFunc func(logger *zap.Logger) capture.Device

// NewSession builds the controller for cmd. newDevice may be nil for file uploads.
func NewSession(cmd *cobra.Command, flags *ClientFlags, newDevice DeviceFunc) *Session {
	logger := logging.NewQuiet(Verbose)
	var device capture.Device
	if newDevice != nil {
		device = newDevice(logger)
	}
	relayURL := lo.CoalesceOrEmpty(flags.RelayURL, os.Getenv(config.EnvRelayURL), config.DefaultRelayURL)

	uploader := client.NewRelayClient(relayURL, flags.Timeout, client.WithLogger(logger))
	ctrl := capture.NewController(device, uploader, logger)

	indicator := progress.NewIndicator(progress.Config{
		Enabled: progress.ShouldShowProgress(flags.ForceSpinner),
		Writer:  cmd.ErrOrStderr(),
	}, progress.ProcessingMessage)
	ctrl.Subscribe(func(v capture.View) {
		indicator.SetActive(v.Loading)
	})

	logger.Debug("Client session ready", zap.String("relay", relayURL))
	return &Session{Controller: ctrl, Logger: logger}
}

// Finish prints the final view. A displayed error is returned as ErrRendered
// so the process exits non-zero without printing it twice.
func (s *Session) Finish(cmd *cobra.Command) error {
	defer func() { _ = s.Logger.Sync() }()

	view := s.Controller.View()
	if view.Err != "" {
		_ = capture.Render(cmd.ErrOrStderr(), view)
		return ErrRendered
	}
	return capture.Render(cmd.OutOrStdout(), view)
}
