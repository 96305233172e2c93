package relay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	apperrors "transcripto/internal/app/errors"
	"transcripto/internal/app/media"
)

// Upload is the relay's view of one inbound file.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Forwarder sends uploads to the transcription backend.
type Forwarder interface {
	Forward(ctx context.Context, upload Upload) Outcome
	HealthCheck(ctx context.Context) error
	BaseURL() string
}

// HTTPForwarder forwards uploads over HTTP as multipart/form-data.
type HTTPForwarder struct {
	baseURL    string
	fieldName  string
	httpClient *http.Client
}

// NewHTTPForwarder creates a forwarder for the backend at baseURL.
func NewHTTPForwarder(baseURL string, timeout time.Duration) *HTTPForwarder {
	return &HTTPForwarder{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		fieldName: "file",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithHTTPClient replaces the underlying client, mainly for tests.
func (f *HTTPForwarder) WithHTTPClient(client *http.Client) *HTTPForwarder {
	f.httpClient = client
	return f
}

// BaseURL returns the backend address uploads go to.
func (f *HTTPForwarder) BaseURL() string {
	return f.baseURL
}

// Forward rebuilds the multipart body with a single file part and posts it
// to {base}/upload. Transport problems are reported as TransportFailure.
func (f *HTTPForwarder) Forward(ctx context.Context, upload Upload) Outcome {
	body, contentType, err := f.buildBody(upload)
	if err != nil {
		return TransportFailure{Err: apperrors.ProxyTransportError(err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/upload", body)
	if err != nil {
		return TransportFailure{Err: apperrors.ProxyTransportError(err)}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return TransportFailure{Err: apperrors.ProxyTransportError(err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportFailure{Err: apperrors.ProxyTransportError(fmt.Errorf("failed to read backend response: %w", err))}
	}

	return Classify(resp.StatusCode, resp.Header.Get("Content-Type"), respBody, resp.Header.Get(ProcessTimeHeader))
}

func (f *HTTPForwarder) buildBody(upload Upload) (*bytes.Buffer, string, error) {
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	filename := upload.Filename
	if filename == "" {
		filename = media.DefaultFilename
	}

	partType := upload.ContentType
	if partType == "" {
		partType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(f.fieldName), escapeQuotes(filename)))
	header.Set("Content-Type", partType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if upload.Body != nil {
		if _, err := io.Copy(part, upload.Body); err != nil {
			return nil, "", fmt.Errorf("failed to copy file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close writer: %w", err)
	}

	return &requestBody, writer.FormDataContentType(), nil
}

// HealthCheck checks if the backend is available
func (f *HTTPForwarder) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/health", nil)
	if err != nil {
		return apperrors.ProxyTransportError(err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return apperrors.ProxyTransportError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return apperrors.UpstreamError(resp.StatusCode, fmt.Sprintf("Backend returned status %d", resp.StatusCode))
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
