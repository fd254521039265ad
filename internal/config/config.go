package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Prefix is the environment variable prefix, e.g. CASEFILES_HTTP_PORT.
const Prefix = "CASEFILES"

// Storage drivers.
const (
	DriverBadger   = "badger"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Summary providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the configuration for the case files service.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	HTTPPort    int         `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel    string      `envconfig:"LOG_LEVEL" default:"info"`

	// Storage
	StoreDriver       string `envconfig:"STORE_DRIVER" default:"badger"`
	DataDir           string `envconfig:"DATA_DIR" default:""`
	SQLitePath        string `envconfig:"SQLITE_PATH" default:""`
	BadgerDir         string `envconfig:"BADGER_DIR" default:""`
	PostgresDSN       string `envconfig:"POSTGRES_DSN" default:""`
	StorageKey        string `envconfig:"STORAGE_KEY" default:"crime_records"`
	StoreOpenAttempts int    `envconfig:"STORE_OPEN_ATTEMPTS" default:"5"`

	// Summaries. API keys have no defaults and come from the environment only.
	SummaryProvider       string  `envconfig:"SUMMARY_PROVIDER" default:"gemini"`
	GeminiAPIKey          string  `envconfig:"GEMINI_API_KEY"`
	GeminiModel           string  `envconfig:"GEMINI_MODEL" default:"gemini-3-flash-preview"`
	OpenAIAPIKey          string  `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL         string  `envconfig:"OPENAI_BASE_URL" default:""`
	OpenAIModel           string  `envconfig:"OPENAI_MODEL" default:""`
	SummaryTemperature    float32 `envconfig:"SUMMARY_TEMPERATURE" default:"0.7"`
	SummaryTimeoutSeconds int     `envconfig:"SUMMARY_TIMEOUT_SECONDS" default:"60"`

	// Health
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates the driver and provider names and derives the
// on-disk paths from DataDir when they are not set explicitly.
func (c *Config) ResolveDefaults() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	c.SummaryProvider = strings.ToLower(strings.TrimSpace(c.SummaryProvider))

	switch c.StoreDriver {
	case DriverBadger, DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.StoreDriver)
	}

	switch c.SummaryProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported SUMMARY_PROVIDER: %s", c.SummaryProvider)
	}

	if c.StorageKey == "" {
		return fmt.Errorf("STORAGE_KEY must not be empty")
	}
	if c.StoreOpenAttempts < 1 {
		c.StoreOpenAttempts = 1
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".casefiles")
	}
	if c.SQLitePath == "" {
		c.SQLitePath = filepath.Join(c.DataDir, "casefiles.db")
	}
	if c.BadgerDir == "" {
		c.BadgerDir = filepath.Join(c.DataDir, "badger")
	}
	return nil
}

// New creates a new Config by parsing CASEFILES_* environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("store_driver", cfg.StoreDriver).
		Str("data_dir", cfg.DataDir).
		Str("storage_key", cfg.StorageKey).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Str("summary_provider", cfg.SummaryProvider).
		Bool("gemini_key_present", cfg.GeminiAPIKey != "").
		Bool("openai_key_present", cfg.OpenAIAPIKey != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting returns a resolved config backed by the in-memory store.
func NewForTesting() *Config {
	return &Config{
		Environment:               EnvTesting,
		HTTPPort:                  8080,
		LogLevel:                  "debug",
		StoreDriver:               DriverMemory,
		DataDir:                   os.TempDir(),
		SQLitePath:                filepath.Join(os.TempDir(), "casefiles-test.db"),
		BadgerDir:                 filepath.Join(os.TempDir(), "casefiles-test-badger"),
		StorageKey:                "crime_records",
		StoreOpenAttempts:         1,
		SummaryProvider:           ProviderGemini,
		GeminiModel:               "gemini-3-flash-preview",
		SummaryTemperature:        0.7,
		SummaryTimeoutSeconds:     5,
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func (c *Config) SummaryTimeout() time.Duration {
	return time.Duration(c.SummaryTimeoutSeconds) * time.Second
}

func (c *Config) HealthInterval() time.Duration {
	return time.Duration(c.HealthIntervalSeconds) * time.Second
}

func (c *Config) HealthProbeTimeout() time.Duration {
	return time.Duration(c.HealthProbeTimeoutSeconds) * time.Second
}
