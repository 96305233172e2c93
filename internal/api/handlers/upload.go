package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"transcripto/internal/api/errors"
	"transcripto/internal/api/middleware"
	"transcripto/internal/app/metrics"
	"transcripto/internal/app/relay"
)

// UploadHandler relays uploads to the transcription backend
type UploadHandler struct {
	forwarder      relay.Forwarder
	metrics        *metrics.Metrics
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(forwarder relay.Forwarder, m *metrics.Metrics, logger *zap.Logger, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		forwarder:      forwarder,
		metrics:        m,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /api/upload
// Forwards one media file to the backend and normalizes its reply
//
// @Summary Relay an audio file for transcription
// @Description Forwards the file field to the backend /upload endpoint and returns {transcript, summary} or {detail}
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio or video file"
// @Success 200 {object} relay.UploadResult "Transcript and summary"
// @Failure 400 {object} relay.ErrorBody "Missing file"
// @Failure 413 {object} relay.ErrorBody "File too large"
// @Failure 502 {object} relay.ErrorBody "Backend unreachable"
// @Header 200 {string} X-Process-Time-Ms "Backend processing time, when reported"
// @Router /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var form middleware.UploadForm
	if err := middleware.BindUploadForm(c, &form); err != nil {
		if apiErr, ok := err.(*errors.APIError); ok && apiErr.Kind == errors.KindBadRequest {
			h.metrics.RecordMissingFile()
		}
		middleware.HandleError(c, err)
		return
	}

	file, err := form.File.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("Failed to read uploaded file"))
		return
	}
	defer file.Close()

	start := time.Now()
	outcome := h.forwarder.Forward(c.Request.Context(), relay.Upload{
		Filename:    form.File.Filename,
		ContentType: form.File.Header.Get("Content-Type"),
		Body:        file,
	})
	elapsed := time.Since(start)
	h.metrics.RecordUpload(outcome.Label(), form.File.Size, elapsed.Seconds())

	resp := relay.Normalize(outcome)
	h.logOutcome(c, outcome, resp, form.File.Size, elapsed)

	if resp.ProcessTime != "" {
		c.Header(relay.ProcessTimeHeader, resp.ProcessTime)
	}
	c.Data(resp.Status, "application/json; charset=utf-8", resp.Body)
}

func (h *UploadHandler) logOutcome(c *gin.Context, outcome relay.Outcome, resp relay.Response, size int64, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.String("outcome", outcome.Label()),
		zap.Int("status", resp.Status),
		zap.Int64("size_bytes", size),
		zap.Duration("upstream", elapsed),
		zap.String("backend", h.forwarder.BaseURL()),
	}

	switch v := outcome.(type) {
	case relay.TransportFailure:
		h.logger.Error("Backend unreachable", append(fields, zap.Error(v.Err))...)
	case relay.UpstreamJSONError, relay.UpstreamTextError:
		h.logger.Warn("Backend returned error", fields...)
	default:
		h.logger.Debug("Upload relayed", fields...)
	}
}
