package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment
	LogLevel    string

	// Server configuration
	ServerHost  string
	ServerPort  string
	CORSOrigins []string

	// Redis configuration, optional. Enables the completion cache and rate limiting.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Model configuration, optional. Enables the model command.
	ModelAPIKey      string
	ModelAPIURL      string
	ModelName        string
	ModelTemperature float64
	ModelTimeout     time.Duration
	ModelMaxRetries  int

	CompletionCacheTTL time.Duration
	RateLimit          int
	RateLimitWindow    time.Duration
}

// RedisEnabled reports whether a Redis connection is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// ModelEnabled reports whether an API key for the model endpoint is available
func (c *Config) ModelEnabled() bool {
	return c.ModelAPIKey != ""
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("cors_origins", []string{"http://localhost:5173", "http://frontend:5173"})
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("model_api_url", "https://api.deepseek.com/v1/chat/completions")
	v.SetDefault("model_name", "deepseek-chat")
	v.SetDefault("model_temperature", 0.6)
	v.SetDefault("model_timeout", 30*time.Second)
	v.SetDefault("model_max_retries", 3)
	v.SetDefault("completion_cache_ttl", 24*time.Hour)
	v.SetDefault("rate_limit", 60)
	v.SetDefault("rate_limit_window", time.Minute)
}

// LoadConfig builds a Config from v, which is expected to have a config file
// and/or environment variables bound. Keys map to upper-case environment
// variables, e.g. model_api_key -> MODEL_API_KEY.
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	env := GetEnvironment()
	if e := v.GetString("env"); e != "" && env != CI {
		env = ParseEnvironment(e)
	}

	cfg := &Config{
		Environment:        env,
		LogLevel:           v.GetString("log_level"),
		ServerHost:         v.GetString("server_host"),
		ServerPort:         v.GetString("server_port"),
		CORSOrigins:        splitList(v.GetStringSlice("cors_origins")),
		RedisHost:          v.GetString("redis_host"),
		RedisPort:          v.GetString("redis_port"),
		RedisPassword:      v.GetString("redis_password"),
		RedisDB:            v.GetInt("redis_db"),
		RedisURL:           v.GetString("redis_url"),
		ModelAPIKey:        strings.TrimSpace(v.GetString("model_api_key")),
		ModelAPIURL:        v.GetString("model_api_url"),
		ModelName:          v.GetString("model_name"),
		ModelTemperature:   v.GetFloat64("model_temperature"),
		ModelTimeout:       v.GetDuration("model_timeout"),
		ModelMaxRetries:    v.GetInt("model_max_retries"),
		CompletionCacheTTL: v.GetDuration("completion_cache_ttl"),
		RateLimit:          v.GetInt("rate_limit"),
		RateLimitWindow:    v.GetDuration("rate_limit_window"),
	}

	if err := loadSecrets(v, cfg); err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadSecrets fills credentials that are not set directly. MODEL_API_KEY_FILE
// wins over Docker secrets, which are only consulted in production.
func loadSecrets(v *viper.Viper, cfg *Config) error {
	if cfg.ModelAPIKey == "" {
		if path := v.GetString("model_api_key_file"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read API key file: %w", err)
			}
			cfg.ModelAPIKey = strings.TrimSpace(string(data))
			if cfg.ModelAPIKey == "" {
				return fmt.Errorf("API key file %s is empty", path)
			}
		}
	}

	if cfg.Environment.IsProduction() {
		if cfg.ModelAPIKey == "" {
			cfg.ModelAPIKey = readSecret(v, "model_api_key")
		}
		if cfg.RedisPassword == "" {
			cfg.RedisPassword = readSecret(v, "redis_password")
		}
	}
	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(v *viper.Viper, name string) string {
	secretsDir := v.GetString("secrets_dir")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// splitList accepts both YAML lists and comma separated environment values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
