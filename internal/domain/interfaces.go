package domain

import (
	"context"
	"io"
)

// Resaver loads a PDF through the decryption fallback and writes an unencrypted copy
type ResaveService interface {
	ResaveFile(source, target string) (*ResaveResult, error)
}

// MergeService concatenates PDFs, optionally re-saving each input first
type MergeService interface {
	Merge(ctx context.Context, inputs []string, output string) error
}

// StorageService publishes finished files. token is the caller's access
// token; an empty token uploads with the service key.
type StorageService interface {
	Upload(ctx context.Context, path, token string, file io.Reader) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetWorkDir() string
	GetMaxFileSize() int64
	GetResaveBeforeMerge() bool
	GetVerifyOutput() bool
	GetAuthRequired() bool
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetStorageBucket() string
	GetAllowedOrigins() []string
}
