package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	History HistoryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr         string
	MaxZipSizeMB int64
}

// LLMConfig holds model-extractor configuration. An empty APIKey disables
// the model path entirely; the heuristic extractor then handles every
// document.
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Enabled reports whether the model-based extractor may be called.
func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// HistoryConfig holds batch-history persistence configuration. An empty DSN
// disables recording.
type HistoryConfig struct {
	DSN       string
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         getEnv("HTTP_ADDR", ":8000"),
			MaxZipSizeMB: getEnvAsInt64("MAX_ZIP_SIZE_MB", 50),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 500),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
		},
		History: HistoryConfig{
			DSN:       getEnv("HISTORY_DSN", ""),
			Workers:   getEnvAsInt("HISTORY_WORKERS", 2),
			QueueSize: getEnvAsInt("HISTORY_QUEUE_SIZE", 64),
			Timeout:   getEnvAsDuration("HISTORY_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration for unusable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInternal)
	}
	if c.Server.MaxZipSizeMB <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_ZIP_SIZE_MB must be positive", ErrInternal)
	}
	if c.History.DSN != "" {
		if c.History.Workers <= 0 {
			return NewAppError("CONFIG_ERROR", "HISTORY_WORKERS must be positive", ErrInternal)
		}
		if c.History.QueueSize <= 0 {
			return NewAppError("CONFIG_ERROR", "HISTORY_QUEUE_SIZE must be positive", ErrInternal)
		}
	}
	return nil
}
