// Package config loads and validates application configuration from environment
// variables. A .env file in the working directory, if present, is loaded first.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload" // loads .env into the process environment
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables; the env tag names
// the variable each field comes from.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string `env:"PORT" validate:"required,numeric"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL" validate:"required"`

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override the default.
	CORSOrigins []string `env:"CORS_ORIGINS"`

	// RequestTimeout bounds each request, database calls included. Defaults to 5s.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0"`

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" validate:"gt=0"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that fail validation.
func Load() (Config, error) {
	k := koanf.New(".")

	// DATABASE_URL -> database_url. The "." delimiter never appears in our
	// variable names, so every key stays flat.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := Config{
		Port:           stringOr(k, "port", "8080"),
		DatabaseURL:    k.String("database_url"),
		LogLevel:       strings.ToLower(stringOr(k, "log_level", "info")),
		CORSOrigins:    splitCSV(stringOr(k, "cors_origins", "http://localhost:5173")),
		RequestTimeout: 5 * time.Second,
		MaxBodyBytes:   1 << 20,
	}

	if raw := k.String("request_timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if k.String("max_body_bytes") != "" {
		cfg.MaxBodyBytes = k.Int64("max_body_bytes")
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate checks cfg against its validate tags and reports failures by
// environment variable name.
func validate(cfg Config) error {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("env")
	})

	err := v.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s=%v (%s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
	}
	if len(missing) > 0 {
		return fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
}

// stringOr returns the value at key, or fallback if it is unset or empty.
func stringOr(k *koanf.Koanf, key, fallback string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
