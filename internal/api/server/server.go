package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "transcripto/docs" // Generated swagger docs
	"transcripto/internal/api/handlers"
	"transcripto/internal/api/middleware"
	"transcripto/internal/app/metrics"
	"transcripto/internal/app/relay"
	"transcripto/internal/config"
)

// ShutdownTimeout bounds graceful shutdown for in-flight uploads.
const ShutdownTimeout = 30 * time.Second

// Server represents the relay API server
type Server struct {
	config     *config.RelayConfig
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new relay server
func NewServer(
	cfg *config.RelayConfig,
	forwarder relay.Forwarder,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Server {
	// Set Gin mode based on environment
	switch cfg.Environment {
	case config.EnvironmentProduction:
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	router.Use(middleware.Metrics(m))

	healthHandler := handlers.NewHealthHandler(forwarder)
	uploadHandler := handlers.NewUploadHandler(forwarder, m, logger, cfg.MaxUploadBytes)

	router.GET("/health", healthHandler.Relay)

	api := router.Group("/api")
	{
		api.POST("/upload", uploadHandler.Upload)
		api.GET("/health/backend", healthHandler.Backend)
	}

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Swagger documentation routes
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		config:     cfg,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start starts the relay server. Listen failures are sent on the returned channel.
func (s *Server) Start() <-chan error {
	s.logger.Info("Starting relay server",
		zap.String("address", s.httpServer.Addr),
		zap.String("environment", s.config.Environment),
		zap.String("backend", s.config.BackendBaseURL),
		zap.String("backend_source", s.config.BackendSource),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Failed to start server", zap.Error(err))
			errCh <- err
		}
		close(errCh)
	}()

	return errCh
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down relay server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("Relay server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
