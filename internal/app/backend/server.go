package backend

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"

	apierrors "transcripto/internal/api/errors"
	"transcripto/internal/api/middleware"
	"transcripto/internal/app/relay"
	"transcripto/internal/config"
)

// acceptedExtensions are the containers the transcription model reads.
var acceptedExtensions = []string{".webm", ".wav", ".mp3", ".m4a", ".ogg", ".mp4", ".mov"}

// Server is the reference transcription backend.
type Server struct {
	config     *config.BackendConfig
	engine     Engine
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer wires the backend routes around engine.
func NewServer(cfg *config.BackendConfig, engine Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(corsConfig(cfg)))

	s := &Server{
		config: cfg,
		engine: engine,
		router: router,
		logger: logger,
	}

	router.GET("/health", s.health)
	router.POST("/upload", s.upload)

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func corsConfig(cfg *config.BackendConfig) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig(cfg.CORSOrigins())
	c.AllowMethods = append(c.AllowMethods, "PUT", "PATCH", "DELETE")
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.AllowCredentials = !cfg.AllowAllCORS
	return c
}

// Router returns the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves until Shutdown. Listen failures are sent on the returned channel.
func (s *Server) Start() <-chan error {
	s.logger.Info("Starting reference backend",
		zap.String("address", s.httpServer.Addr),
		zap.String("mode", s.engine.Mode()),
		zap.Bool("allow_all_cors", s.config.AllowAllCORS),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"mock":           s.config.UseMock,
		"allow_all_cors": s.config.AllowAllCORS,
	})
}

func hasAcceptedExtension(filename string) bool {
	return lo.Contains(acceptedExtensions, strings.ToLower(filepath.Ext(filename)))
}

func (s *Server) upload(c *gin.Context) {
	start := time.Now()

	var form middleware.UploadForm
	if err := middleware.BindUploadForm(c, &form); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if !hasAcceptedExtension(form.File.Filename) {
		middleware.HandleError(c, apierrors.NewBadRequestError("Unsupported file format"))
		return
	}

	file, err := form.File.Open()
	if err != nil {
		middleware.HandleError(c, apierrors.NewInternalError(err.Error()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(c, apierrors.NewInternalError(err.Error()))
		return
	}

	result, err := s.engine.Process(c.Request.Context(), form.File.Filename, data)
	elapsed := time.Since(start)
	c.Header(relay.ProcessTimeHeader, strconv.FormatInt(elapsed.Milliseconds(), 10))
	if err != nil {
		s.logger.Warn("Upload processing failed",
			zap.String("filename", form.File.Filename),
			zap.Error(err),
		)
		middleware.HandleError(c, err)
		return
	}

	s.logger.Info("Upload processed",
		zap.String("filename", form.File.Filename),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", elapsed),
		zap.Bool("summary_failed", result.SummaryError != nil),
	)
	c.JSON(http.StatusOK, result)
}
