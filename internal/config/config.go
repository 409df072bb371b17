// Package config provides configuration management for the service.
// Configuration comes from the environment first, then an optional config
// file, then in-code defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Spanner SpannerConfig `mapstructure:"spanner"`
	Log     LogConfig     `mapstructure:"log"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// ReadTimeout bounds reading the entire request, including the body.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout bounds writes of the response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// IdleTimeout bounds keep-alive waits for the next request.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// RequestTimeout bounds a single request end to end. Requests that
	// exceed it surface as 504, distinct from not-found or forbidden.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// ShutdownTimeout bounds graceful server shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// CORSAllowedOrigins is a list of allowed origins for CORS.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// RateLimit is the per-client sustained requests-per-second rate;
	// RateBurst the burst allowance.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// SpannerConfig contains Cloud Spanner connection configuration.
type SpannerConfig struct {
	// Database is the full resource name:
	// projects/<p>/instances/<i>/databases/<d>
	Database string `mapstructure:"database"`
}

// LogConfig contains logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads the configuration. Precedence, highest first: environment
// variables (SELLERHUB_ prefix), config.yaml, defaults.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/sellerhub")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults cover it.
	}

	v.SetEnvPrefix("SELLERHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("server.port", "PORT")
	v.BindEnv("spanner.database", "SPANNER_DATABASE")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads the configuration and panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sellerhub-service")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 50.0)
	v.SetDefault("server.rate_burst", 100)

	v.SetDefault("spanner.database", "projects/local/instances/local/databases/sellerhub")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Addr returns the host:port bind address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
