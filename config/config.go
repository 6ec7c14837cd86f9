package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Catalog source kinds.
const (
	SourcePostgres = "postgres"
	SourceFixture  = "fixture"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Facets    FacetsConfig    `mapstructure:"facets"`
	API       APIConfig       `mapstructure:"api"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConnections  int           `mapstructure:"max_connections"`
	MinConnections  int           `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// CatalogConfig controls how the in-memory catalog is loaded and refreshed
type CatalogConfig struct {
	Source          string        `mapstructure:"source"`
	FixturePath     string        `mapstructure:"fixture_path"`
	LoadTimeout     time.Duration `mapstructure:"load_timeout"`
	LoadConcurrency int           `mapstructure:"load_concurrency"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	StaleAfter      time.Duration `mapstructure:"stale_after"`
	PageSize        int           `mapstructure:"page_size"`
}

// FacetsConfig holds facet presentation settings
type FacetsConfig struct {
	// NumericSlugs lists characteristic slugs whose options sort by number.
	NumericSlugs []string `mapstructure:"numeric_slugs"`
}

// APIConfig holds storefront API behaviour
type APIConfig struct {
	// RequireSubcategory rejects filter requests without a subcategory.
	RequireSubcategory bool     `mapstructure:"require_subcategory"`
	CORSOrigins        []string `mapstructure:"cors_origins"`
	InternalAPIKey     string   `mapstructure:"internal_api_key"`
}

// RedisConfig holds the filter-meta cache and refresh broadcast settings
type RedisConfig struct {
	URL            string        `mapstructure:"url"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	RefreshChannel string        `mapstructure:"refresh_channel"`
	DialTimeout    time.Duration `mapstructure:"dial_timeout"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type     string `mapstructure:"type"`
	BasePath string `mapstructure:"base_path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// TelemetryConfig holds OpenTelemetry exporter configuration
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	Insecure    bool   `mapstructure:"insecure"`
	ServiceName string `mapstructure:"service_name"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

var globalConfig *Config

// Load loads the configuration from file, .env, and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := loadEnvFile(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	v.SetEnvPrefix("CATALOG_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Validate checks values that have no safe fallback.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourcePostgres:
		if c.Database.URL == "" {
			return errors.New("config: database.url is required for the postgres catalog source")
		}
	case SourceFixture:
		if c.Catalog.FixturePath == "" {
			return errors.New("config: catalog.fixture_path is required for the fixture catalog source")
		}
	default:
		return fmt.Errorf("config: unknown catalog.source %q", c.Catalog.Source)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("config: catalog.page_size must be positive, got %d", c.Catalog.PageSize)
	}
	return nil
}

// loadEnvFile loads the first .env file found in the usual locations.
// Variables already set in the environment win.
func loadEnvFile() error {
	for _, dir := range []string{".", "./config"} {
		envFile := filepath.Join(dir, ".env")
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		return godotenv.Load(envFile)
	}
	return errors.New("no .env file found")
}

// bindEnvVars binds unprefixed environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Database
	_ = v.BindEnv("database.url", "CATALOG_SERVICE_DATABASE_URL", "DATABASE_URL")

	// Server
	_ = v.BindEnv("server.port", "CATALOG_SERVICE_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.host", "CATALOG_SERVICE_SERVER_HOST", "HOST")

	// Logging
	_ = v.BindEnv("logging.level", "CATALOG_SERVICE_LOGGING_LEVEL", "LOG_LEVEL")

	// Catalog
	_ = v.BindEnv("catalog.source", "CATALOG_SERVICE_CATALOG_SOURCE", "CATALOG_SOURCE")
	_ = v.BindEnv("catalog.fixture_path", "CATALOG_SERVICE_CATALOG_FIXTURE_PATH", "FIXTURE_PATH")

	// Redis
	_ = v.BindEnv("redis.url", "CATALOG_SERVICE_REDIS_URL", "REDIS_URL")

	// Internal API
	_ = v.BindEnv("api.internal_api_key", "CATALOG_SERVICE_API_INTERNAL_API_KEY", "INTERNAL_API_KEY")

	// Telemetry
	_ = v.BindEnv("telemetry.endpoint", "CATALOG_SERVICE_TELEMETRY_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	// Database defaults
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.max_conn_lifetime", 1*time.Hour)
	v.SetDefault("database.max_conn_idle_time", 30*time.Minute)

	// Catalog defaults
	v.SetDefault("catalog.source", SourcePostgres)
	v.SetDefault("catalog.fixture_path", "catalog.yaml")
	v.SetDefault("catalog.load_timeout", 30*time.Second)
	v.SetDefault("catalog.load_concurrency", 7)
	v.SetDefault("catalog.refresh_interval", 10*time.Minute)
	v.SetDefault("catalog.stale_after", 1*time.Hour)
	v.SetDefault("catalog.page_size", 24)

	// Facet defaults
	v.SetDefault("facets.numeric_slugs", []string{"power"})

	// API defaults
	v.SetDefault("api.require_subcategory", false)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Redis defaults; an empty URL disables caching and broadcasts
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("redis.refresh_channel", "catalog:refresh")
	v.SetDefault("redis.dial_timeout", 5*time.Second)

	// Rate limit defaults
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	// Storage defaults
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.base_path", "./data")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.insecure", true)
	v.SetDefault("telemetry.service_name", "catalog-service")
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}
