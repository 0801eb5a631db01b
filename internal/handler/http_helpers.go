package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pdf-resaver/internal/domain"
	apperrors "pdf-resaver/pkg/errors"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetTokenFromContext extracts the authentication token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps err to its HTTP status. AppErrors also expose their type.
// replace holds old/new pairs rewritten in the message, so server paths
// can be swapped for the names the client uploaded.
func writeAppError(w http.ResponseWriter, err error, replace ...string) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	message := appErr.Message
	if len(replace) > 1 {
		message = strings.NewReplacer(replace[:len(replace)&^1]...).Replace(message)
	}
	writeJSON(w, appErr.StatusCode, map[string]string{
		"error": message,
		"type":  string(appErr.Type),
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
