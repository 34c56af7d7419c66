package config

import (
	"os"
	"strconv"

	"inspection-export/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort        string
	LogLevel          string
	SupabaseURL       string
	SupabaseKey       string
	ExportBucket      string
	PageFormat        string
	FinalizeTimeoutMS int64
	MaxEntrySize      int64
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:        getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		SupabaseURL:       getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:       getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		ExportBucket:      getEnvOrDefault("EXPORT_BUCKET", ""),
		PageFormat:        getEnvOrDefault("PAGE_FORMAT", "A4"),
		FinalizeTimeoutMS: getEnvInt64OrDefault("FINALIZE_TIMEOUT_MS", 30000),
		MaxEntrySize:      getEnvInt64OrDefault("MAX_ENTRY_SIZE", 25*1024*1024), // 25MB default
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetExportBucket returns the storage bucket for remote artifact copies
func (c *AppConfig) GetExportBucket() string {
	return c.ExportBucket
}

// GetPageFormat returns the page format used for new documents
func (c *AppConfig) GetPageFormat() string {
	return c.PageFormat
}

// GetFinalizeTimeoutMS returns the finalize wait bound in milliseconds
func (c *AppConfig) GetFinalizeTimeoutMS() int64 {
	return c.FinalizeTimeoutMS
}

// GetMaxEntrySize returns the maximum allowed archive entry size
func (c *AppConfig) GetMaxEntrySize() int64 {
	return c.MaxEntrySize
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
