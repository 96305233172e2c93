package backend

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	appbackend "transcripto/internal/app/backend"
	"transcripto/internal/app/logging"
	"transcripto/internal/config"
)

var development bool

func init() {
	Cmd.Flags().BoolVar(&development, "dev", true, "human-readable development logs")
}

// Cmd represents the backend command
var Cmd = &cobra.Command{
	Use:   "backend",
	Short: "Run the reference transcription backend",
	Long: `Run the reference transcription backend

- USE_MOCK=true (default) answers without external calls
- USE_MOCK=false transcribes with OpenAI Whisper and summarizes with a chat model;
  OPENAI_API_KEY is required, OPENAI_WHISPER_MODEL and OPENAI_SUMMARY_MODEL are optional
- DEV_ALLOW_ALL_CORS=true admits any origin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadBackendConfig()
		if err != nil {
			return err
		}

		logger, err := logging.NewLogger(development)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		srv := appbackend.NewServer(cfg, appbackend.NewEngine(cfg, logger), logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-srv.Start():
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
