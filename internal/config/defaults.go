package config

import "time"

// Relay default configuration constants
const (
	DefaultBackendBaseURL = "http://127.0.0.1:8000"

	DefaultRelayHost = "0.0.0.0"
	DefaultRelayPort = "3000"

	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 10 * time.Minute
	DefaultIdleTimeout     = 120 * time.Second
	DefaultUpstreamTimeout = 5 * time.Minute

	DefaultMaxUploadMB = 100

	DefaultRelayURL = "http://127.0.0.1:3000"

	DefaultBackendPort    = "8000"
	DefaultWhisperModel   = "whisper-1"
	DefaultSummaryModel   = "gpt-4o-mini"
	DefaultSummaryTokens  = 300
	DefaultEnvironment    = "development"
	EnvironmentProduction = "production"
)

// Environment variable names
const (
	EnvBackendBaseURL  = "BACKEND_BASE_URL"
	EnvPublicAPIBase   = "NEXT_PUBLIC_API_BASE"
	EnvRelayHost       = "RELAY_HOST"
	EnvRelayPort       = "RELAY_PORT"
	EnvRelayEnv        = "RELAY_ENV"
	EnvUpstreamTimeout = "RELAY_UPSTREAM_TIMEOUT"
	EnvMaxUploadMB     = "RELAY_MAX_UPLOAD_MB"
	EnvRelayURL        = "RELAY_URL"
)
