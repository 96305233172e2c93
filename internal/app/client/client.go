package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"transcripto/internal/app/capture"
	"transcripto/internal/app/media"
)

const uploadPath = "/api/upload"

// UploadError is a non-success reply from the relay.
type UploadError struct {
	Status int
	Detail string
}

func (e *UploadError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Request failed with status code %d", e.Status)
}

// RelayClient submits blobs to the relay's upload endpoint.
type RelayClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a RelayClient.
type Option func(*RelayClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(rc *RelayClient) { rc.httpClient = c }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(rc *RelayClient) { rc.logger = l }
}

// NewRelayClient creates a client for the relay at baseURL.
func NewRelayClient(baseURL string, timeout time.Duration, opts ...Option) *RelayClient {
	rc := &RelayClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Upload implements capture.Uploader.
func (c *RelayClient) Upload(ctx context.Context, blob media.Blob) (*capture.UploadResult, error) {
	body, contentType, err := encodeBlob(blob)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Relay responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("process_time_ms", resp.Header.Get("X-Process-Time-Ms")),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		uploadErr := &UploadError{Status: resp.StatusCode}
		var errBody struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &errBody) == nil {
			uploadErr.Detail = errBody.Detail
		}
		return nil, uploadErr
	}

	var result capture.UploadResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func encodeBlob(blob media.Blob) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	partType := blob.ContentType()
	if partType == "" {
		partType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(blob.Filename())))
	header.Set("Content-Type", partType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, blob.Reader()); err != nil {
		return nil, "", fmt.Errorf("failed to copy blob: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
