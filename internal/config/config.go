// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (observability, query
//     paging, rate limiting, caching).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

/*
	Env vars are read with the QUIZBANK_ prefix. The prefix is removed, the
	rest is lowercased, and a double underscore marks nesting:

	  QUIZBANK_SERVER__PORT               -> server.port
	  QUIZBANK_DATABASE__MAX_OPEN_CONNS   -> database.max_open_conns
	  QUIZBANK_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	Keys listed in listKeys are split on commas into []string.
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "QUIZBANK_"

var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf should map values from.
// The `validate:"required"` tags are enforced by go-playground/validator.
//
// Pointer blocks are optional; defaults are injected when they are nil.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration" validate:"required"`
	Query         *QueryConfig         `koanf:"query"`
	RateLimit     *RateLimitConfig     `koanf:"rate_limit"`
	Cache         *CacheConfig         `koanf:"cache"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Used to tag logs/traces and to switch behavior (e.g. SQL logging in "local").
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the Clerk secret key used to verify session tokens.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

// IntegrationConfig holds credentials for third-party services.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
	EmailFrom    string `koanf:"email_from"`
}

// QueryConfig tunes the listing endpoints.
type QueryConfig struct {
	DefaultPageSize int `koanf:"default_page_size" validate:"min=1,max=100"`
}

// RateLimitConfig configures the per-client token bucket.
// RequestsPerSecond <= 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst" validate:"min=0"`
}

// CacheConfig configures the Redis-backed caches.
type CacheConfig struct {
	CategoryTTL time.Duration `koanf:"category_ttl" validate:"min=0"`
}

// DefaultQueryConfig mirrors the page size of the original trivia API.
func DefaultQueryConfig() *QueryConfig {
	return &QueryConfig{DefaultPageSize: 10}
}

// DefaultRateLimitConfig allows 20 rps with bursts of 40 per client.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{RequestsPerSecond: 20, Burst: 40}
}

// DefaultCacheConfig caches the category list for five minutes.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{CategoryTTL: 5 * time.Minute}
}

// LoadConfig loads configuration from the environment, validates it and
// applies defaults.
//
// NOTE: like the rest of startup, this logs fatally (exits) on any error.
func LoadConfig() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := loadFromEnv(EnvPrefix)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load configuration.")
	}

	return cfg, nil
}

// loadFromEnv is the error-returning core of LoadConfig.
func loadFromEnv(prefix string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(prefix, ".", func(key, value string) (string, interface{}) {
		mapped := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, prefix)), "__", ".")
		if listKeys[mapped] {
			return mapped, splitList(value)
		}
		return mapped, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	applyDefaults(mainConfig)

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment are forced so telemetry stays consistent
	// regardless of what was configured.
	mainConfig.Observability.ServiceName = "quizbank"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}
	if cfg.Query == nil {
		cfg.Query = DefaultQueryConfig()
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = DefaultRateLimitConfig()
	}
	if cfg.Cache == nil {
		cfg.Cache = DefaultCacheConfig()
	}
	if cfg.Integration.EmailFrom == "" {
		cfg.Integration.EmailFrom = "Quizbank <onboarding@resend.dev>"
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
