// Package config loads the service configuration from the environment and an
// optional YAML file.
package config

import (
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/ilyakaznacheev/cleanenv"
)

// ProductionEnvironment is the Environment value that hides error details from clients.
const ProductionEnvironment = "production"

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"NODE_ENV,ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Port is the TCP port the HTTP server listens on when Addr is empty
		Port int `env:"PORT" env-default:"3000" yaml:"port"`
		// Addr overrides Port with a full listen address such as "127.0.0.1:8080"
		Addr string `env:"HTTP_ADDR" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout bounds the processing of a single request; zero disables it
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"0s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes is the largest request body accepted
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"102400" yaml:"maxBodyBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// PprofEnabled exposes net/http/pprof handlers under /debug/pprof/
		PprofEnabled bool `env:"PPROF_ENABLED" env-default:"false" yaml:"pprofEnabled"`
		// DocsEnabled exposes the OpenAPI document and Swagger UI
		DocsEnabled bool `env:"DOCS_ENABLED" env-default:"true" yaml:"docsEnabled"`
	} `yaml:"http"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Addr returns the address the HTTP server listens on.
func (c *Config) Addr() string {
	if c.HTTP.Addr != "" {
		return c.HTTP.Addr
	}

	return ":" + strconv.Itoa(c.HTTP.Port)
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == ProductionEnvironment
}

// Load returns a filled Config. With an empty configPath only the environment
// is read; otherwise the yaml file is read and the environment overrides it.
func Load(configPath string) (*Config, error) {
	var (
		cfg Config
		err error
	)
	if configPath == "" {
		err = cleanenv.ReadEnv(&cfg)
	} else {
		err = cleanenv.ReadConfig(configPath, &cfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not read config")
	}
	if cfg.HTTP.Addr == "" && (cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535) {
		return nil, errors.Errorf("invalid port %d", cfg.HTTP.Port)
	}

	return &cfg, nil
}
