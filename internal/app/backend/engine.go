package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	apperrors "transcripto/internal/app/errors"
	"transcripto/internal/config"
)

const (
	mockSummary   = "[mock] Summary: Demo mode is enabled (no external API calls)."
	summaryPrompt = "You are an assistant that summarizes spoken content. Provide: 1) A concise summary (<=60 words). 2) 3 key bullet insights.\n\nTranscript:\n"
	summarySystem = "Summarize user audio."
	summaryTemp   = 0.4
)

// Result is the backend's /upload payload. Summary is null when
// summarization failed and SummaryError says why.
type Result struct {
	Transcript   string  `json:"transcript"`
	Summary      *string `json:"summary"`
	SummaryError *string `json:"summary_error"`
}

// Engine turns an uploaded recording into a transcript and summary.
type Engine interface {
	Process(ctx context.Context, filename string, data []byte) (*Result, error)
	Mode() string
}

// MockEngine answers without any external calls.
type MockEngine struct{}

// Process implements Engine
func (MockEngine) Process(_ context.Context, filename string, data []byte) (*Result, error) {
	summary := mockSummary
	return &Result{
		Transcript: fmt.Sprintf("[mock] Received %d bytes from %s.", len(data), filename),
		Summary:    &summary,
	}, nil
}

// Mode implements Engine
func (MockEngine) Mode() string { return "mock" }

// OpenAIEngine transcribes with Whisper and summarizes with a chat model.
type OpenAIEngine struct {
	client        *openai.Client
	whisperModel  string
	summaryModel  string
	summaryTokens int
	logger        *zap.Logger
}

// NewOpenAIEngine creates an engine from backend settings.
func NewOpenAIEngine(cfg *config.BackendConfig, logger *zap.Logger) *OpenAIEngine {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIEngine{
		client:        openai.NewClientWithConfig(clientConfig),
		whisperModel:  cfg.WhisperModel,
		summaryModel:  cfg.SummaryModel,
		summaryTokens: cfg.SummaryTokens,
		logger:        logger,
	}
}

// Mode implements Engine
func (e *OpenAIEngine) Mode() string { return "openai" }

// Process implements Engine. A failed summary still returns the transcript.
func (e *OpenAIEngine) Process(ctx context.Context, filename string, data []byte) (*Result, error) {
	resp, err := e.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    e.whisperModel,
		FilePath: filename,
		Reader:   bytes.NewReader(data),
	})
	if err != nil {
		return nil, apperrors.UpstreamError(http.StatusInternalServerError, fmt.Sprintf("transcription_failed: %v", err))
	}

	transcript := resp.Text
	if strings.TrimSpace(transcript) == "" {
		return nil, apperrors.UpstreamError(http.StatusInternalServerError, "Empty transcript")
	}

	result := &Result{Transcript: transcript}
	summary, err := e.summarize(ctx, transcript)
	if err != nil {
		e.logger.Warn("Summary failed", zap.Error(err))
		msg := fmt.Sprintf("summary_failed: %v", err)
		result.SummaryError = &msg
		return result, nil
	}
	result.Summary = &summary
	return result, nil
}

func (e *OpenAIEngine) summarize(ctx context.Context, transcript string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.summaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystem},
			{Role: openai.ChatMessageRoleUser, Content: summaryPrompt + transcript},
		},
		Temperature: summaryTemp,
		MaxTokens:   e.summaryTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// NewEngine picks the engine for cfg.
func NewEngine(cfg *config.BackendConfig, logger *zap.Logger) Engine {
	if cfg.UseMock {
		return MockEngine{}
	}
	return NewOpenAIEngine(cfg, logger)
}
