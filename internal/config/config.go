package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pdf-resaver/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort        string
	LogLevel          string
	WorkDir           string
	MaxFileSize       int64
	ResaveBeforeMerge bool
	VerifyOutput      bool
	AuthRequired      bool
	SupabaseURL       string
	SupabaseKey       string
	StorageBucket     string
	AllowedOrigins    []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return LoadConfig()
}

// LoadConfig reads the environment into a concrete AppConfig so callers can
// override individual fields, e.g. from command-line flags.
func LoadConfig() *AppConfig {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:        getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		WorkDir:           getEnvOrDefault("WORK_DIR", filepath.Join(os.TempDir(), "pdf-resaver")),
		MaxFileSize:       getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		ResaveBeforeMerge: getEnvBoolOrDefault("RESAVE_PDFS_BEFORE_MERGE", true),
		VerifyOutput:      getEnvBoolOrDefault("VERIFY_OUTPUT", false),
		AuthRequired:      getEnvBoolOrDefault("AUTH_REQUIRED", false),
		SupabaseURL:       getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:       getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		StorageBucket:     getEnvOrDefault("STORAGE_BUCKET", "resaved-pdfs"),
		AllowedOrigins:    getEnvListOrDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
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

// GetWorkDir returns the directory for uploads and temporary copies
func (c *AppConfig) GetWorkDir() string {
	return c.WorkDir
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

func (c *AppConfig) GetResaveBeforeMerge() bool {
	return c.ResaveBeforeMerge
}

func (c *AppConfig) GetVerifyOutput() bool {
	return c.VerifyOutput
}

func (c *AppConfig) GetAuthRequired() bool {
	return c.AuthRequired
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetStorageBucket returns the bucket resaved files are published to
func (c *AppConfig) GetStorageBucket() string {
	return c.StorageBucket
}

func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
