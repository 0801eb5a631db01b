package service

import "pdf-resaver/internal/domain"

// SanitizeMetadata keeps the entries whose value is a Go string. Empty keys
// are dropped as well since they cannot be written back as PDF names.
// A nil or empty input yields an empty, non-nil map.
func SanitizeMetadata(meta domain.Metadata) map[string]string {
	sanitized := make(map[string]string, len(meta))
	for key, value := range meta {
		if key == "" {
			continue
		}
		if s, ok := value.(string); ok {
			sanitized[key] = s
		}
	}
	return sanitized
}
