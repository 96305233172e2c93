package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Source is one candidate value for a setting, named for logging.
type Source struct {
	Name  string
	Value string
}

// RelayFile is the optional YAML configuration for the relay.
type RelayFile struct {
	BackendBaseURL     string   `yaml:"backend_base_url,omitempty"`
	Host               string   `yaml:"host,omitempty"`
	Port               string   `yaml:"port,omitempty"`
	Environment        string   `yaml:"environment,omitempty"`
	ReadTimeoutSec     int      `yaml:"read_timeout_sec,omitempty"`
	WriteTimeoutSec    int      `yaml:"write_timeout_sec,omitempty"`
	IdleTimeoutSec     int      `yaml:"idle_timeout_sec,omitempty"`
	UpstreamTimeoutSec int      `yaml:"upstream_timeout_sec,omitempty"`
	MaxUploadMB        int      `yaml:"max_upload_mb,omitempty"`
	CORSOrigins        []string `yaml:"cors_origins,omitempty"`
}

// RelayConfig is the relay configuration, resolved once at startup.
type RelayConfig struct {
	// BackendBaseURL is the transcription backend, without trailing slash.
	BackendBaseURL string `validate:"required,url"`
	// BackendSource names the source BackendBaseURL was taken from.
	BackendSource string

	Host            string
	Port            string        `validate:"required,numeric"`
	Environment     string        `validate:"oneof=development production test"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	IdleTimeout     time.Duration `validate:"gt=0"`
	UpstreamTimeout time.Duration `validate:"gt=0"`
	MaxUploadBytes  int64         `validate:"gt=0"`
	CORSOrigins     []string
}

// Addr returns the listen address.
func (c *RelayConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// ResolveFirst returns the first source with a non-empty value.
func ResolveFirst(sources ...Source) (Source, bool) {
	return lo.Find(sources, func(s Source) bool {
		return strings.TrimSpace(s.Value) != ""
	})
}

// BackendSources lists the backend address sources in precedence order:
// explicit override, public base URL, config file, loopback default.
func BackendSources(file *RelayFile) []Source {
	fileValue := ""
	if file != nil {
		fileValue = file.BackendBaseURL
	}
	return []Source{
		{Name: EnvBackendBaseURL, Value: os.Getenv(EnvBackendBaseURL)},
		{Name: EnvPublicAPIBase, Value: os.Getenv(EnvPublicAPIBase)},
		{Name: "config file", Value: fileValue},
		{Name: "default", Value: DefaultBackendBaseURL},
	}
}

// LoadRelayFile reads a YAML relay config. An empty path yields an empty file.
func LoadRelayFile(path string) (*RelayFile, error) {
	file := &RelayFile{}
	if path == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return file, nil
}

// LoadRelayConfig resolves the relay configuration from the environment, then
// the optional YAML file at path, then defaults, and validates the result.
func LoadRelayConfig(path string) (*RelayConfig, error) {
	file, err := LoadRelayFile(path)
	if err != nil {
		return nil, err
	}

	backend, _ := ResolveFirst(BackendSources(file)...)

	cfg := &RelayConfig{
		BackendBaseURL:  strings.TrimRight(strings.TrimSpace(backend.Value), "/"),
		BackendSource:   backend.Name,
		Host:            getEnvOrDefault(EnvRelayHost, lo.CoalesceOrEmpty(file.Host, DefaultRelayHost)),
		Port:            getEnvOrDefault(EnvRelayPort, lo.CoalesceOrEmpty(file.Port, DefaultRelayPort)),
		Environment:     getEnvOrDefault(EnvRelayEnv, lo.CoalesceOrEmpty(file.Environment, DefaultEnvironment)),
		ReadTimeout:     secondsOr(file.ReadTimeoutSec, DefaultReadTimeout),
		WriteTimeout:    secondsOr(file.WriteTimeoutSec, DefaultWriteTimeout),
		IdleTimeout:     secondsOr(file.IdleTimeoutSec, DefaultIdleTimeout),
		CORSOrigins:     file.CORSOrigins,
		UpstreamTimeout: secondsOr(file.UpstreamTimeoutSec, DefaultUpstreamTimeout),
	}

	cfg.UpstreamTimeout, err = getEnvDuration(EnvUpstreamTimeout, cfg.UpstreamTimeout)
	if err != nil {
		return nil, err
	}

	maxMB := lo.CoalesceOrEmpty(file.MaxUploadMB, DefaultMaxUploadMB)
	if v := os.Getenv(EnvMaxUploadMB); v != "" {
		maxMB, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %q", EnvMaxUploadMB, v)
		}
	}
	cfg.MaxUploadBytes = int64(maxMB) << 20

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func secondsOr(sec int, def time.Duration) time.Duration {
	if sec > 0 {
		return time.Duration(sec) * time.Second
	}
	return def
}
