package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration for values that cannot work. All
// problems are reported together.
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}
	if cfg.RedisDB < 0 {
		errs = append(errs, ValidationError{Field: "REDIS_DB", Message: "must not be negative"})
	}
	if cfg.ModelTemperature < 0 || cfg.ModelTemperature > 2 {
		errs = append(errs, ValidationError{Field: "MODEL_TEMPERATURE", Message: "must be between 0 and 2"})
	}
	if cfg.ModelTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "MODEL_TIMEOUT", Message: "must be positive"})
	}
	if cfg.ModelAPIURL == "" {
		errs = append(errs, ValidationError{Field: "MODEL_API_URL", Message: "is required"})
	}
	if cfg.RateLimit <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "must be positive"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
	}
	if err := validateOrigins(cfg.CORSOrigins); err != nil {
		errs = append(errs, err)
	}
	if cfg.Environment.IsProduction() && cfg.RedisEnabled() && cfg.RedisPassword == "" && cfg.RedisURL == "" {
		errs = append(errs, ValidationError{Field: "REDIS_PASSWORD", Message: "redis_password secret is required in production"})
	}

	return errors.Join(errs...)
}

// validateOrigins accepts "*" or absolute http(s) origins
func validateOrigins(origins []string) error {
	if len(origins) == 0 {
		return ValidationError{Field: "CORS_ORIGINS", Message: "at least one origin is required"}
	}
	for _, origin := range origins {
		if origin == "*" || strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://") {
			continue
		}
		return ValidationError{Field: "CORS_ORIGINS", Message: fmt.Sprintf("origin %q must be '*' or start with http:// or https://", origin)}
	}
	return nil
}
