package config

import (
	"os"
	"strconv"

	"github.com/EducAI25/intellidash-insights-ai/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	AI        AIConfig
	Server    ServerConfig
	Upload    UploadConfig
	Profiling ProfilingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// AIConfig holds Gemini chat settings. An empty key disables the remote
// assistant and the service falls back to local answers.
type AIConfig struct {
	GeminiKey   string
	GeminiModel string
	Temperature float64
	MaxTokens   int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// UploadConfig holds spreadsheet ingestion limits
type UploadConfig struct {
	MaxBytes int64
	MaxRows  int
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database:  loadDatabaseConfig(),
		AI:        loadAIConfig(),
		Server:    loadServerConfig(),
		Upload:    loadUploadConfig(),
		Profiling: loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:          os.Getenv("DATABASE_URL"),
		MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
	}
}

func loadAIConfig() AIConfig {
	return AIConfig{
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		Temperature: getEnvFloatOrDefault("GEMINI_TEMPERATURE", 0.7),
		MaxTokens:   getEnvIntOrDefault("GEMINI_MAX_TOKENS", 1024),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnvOrDefault("PORT", "8080"),
	}
}

func loadUploadConfig() UploadConfig {
	return UploadConfig{
		MaxBytes: int64(getEnvIntOrDefault("UPLOAD_MAX_BYTES", 10<<20)),
		MaxRows:  getEnvIntOrDefault("UPLOAD_MAX_ROWS", 100000),
	}
}

func loadProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
