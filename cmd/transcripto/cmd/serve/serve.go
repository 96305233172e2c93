package serve

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"transcripto/internal/api/server"
	"transcripto/internal/app/logging"
	"transcripto/internal/app/metrics"
	"transcripto/internal/app/relay"
	"transcripto/internal/config"
)

var configPath string

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "", "optional YAML relay config file")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload relay",
	Long: `Run the upload relay

- POST /api/upload forwards the file field to {backend}/upload
- The backend is BACKEND_BASE_URL, else NEXT_PUBLIC_API_BASE, else the config
  file, else http://127.0.0.1:8000
- GET /metrics exposes Prometheus metrics, /swagger/ the API docs`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadRelayConfig(configPath)
		if err != nil {
			return err
		}

		logger, err := logging.NewLogger(cfg.Environment != config.EnvironmentProduction)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		forwarder := relay.NewHTTPForwarder(cfg.BackendBaseURL, cfg.UpstreamTimeout)
		srv := server.NewServer(cfg, forwarder, metrics.NewMetrics(), logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := srv.Start()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Received shutdown signal", zap.Duration("grace", server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
