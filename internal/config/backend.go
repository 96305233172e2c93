package config

import (
	"os"
	"strings"
)

// BackendConfig configures the reference transcription backend.
type BackendConfig struct {
	UseMock       bool
	OpenAIAPIKey  string `validate:"required_if=UseMock false"`
	OpenAIBaseURL string `validate:"omitempty,url"`
	WhisperModel  string `validate:"required"`
	SummaryModel  string `validate:"required"`
	SummaryTokens int    `validate:"gt=0"`
	AllowAllCORS  bool
	Host          string
	Port          string `validate:"required,numeric"`
}

// LoadBackendConfig reads the reference backend settings from the environment.
// OPENAI_API_KEY is required unless USE_MOCK is true (the default).
func LoadBackendConfig() (*BackendConfig, error) {
	cfg := &BackendConfig{
		UseMock:       getEnvBool("USE_MOCK", true),
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		WhisperModel:  getEnvOrDefault("OPENAI_WHISPER_MODEL", DefaultWhisperModel),
		SummaryModel:  getEnvOrDefault("OPENAI_SUMMARY_MODEL", DefaultSummaryModel),
		SummaryTokens: DefaultSummaryTokens,
		AllowAllCORS:  getEnvBool("DEV_ALLOW_ALL_CORS", false),
		Host:          getEnvOrDefault("BACKEND_HOST", "127.0.0.1"),
		Port:          getEnvOrDefault("BACKEND_PORT", DefaultBackendPort),
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CORSOrigins returns the origins the reference backend admits.
func (c *BackendConfig) CORSOrigins() []string {
	if c.AllowAllCORS {
		return []string{"*"}
	}
	return []string{"http://localhost:3000", "http://127.0.0.1:3000"}
}
