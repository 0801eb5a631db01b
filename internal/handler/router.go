package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured.
// authMiddleware may be nil, in which case /api/v1 is public.
func NewRouter(
	pdfHandler *PDFHandler,
	authHandler *AuthHandler,
	authMiddleware func(http.Handler) http.Handler,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-resaver"}`))
	}).Methods(http.MethodGet)

	// Routes live on the root router: a subrouter with several routes
	// reports 404 instead of 405 on a method mismatch.
	protect := func(h http.HandlerFunc) http.Handler {
		if authMiddleware == nil {
			return h
		}
		return authMiddleware(h)
	}

	if authMiddleware != nil {
		router.Handle("/api/v1/auth/validate", protect(authHandler.ValidateToken)).Methods(http.MethodGet)
	}
	router.Handle("/api/v1/pdf/resave", protect(pdfHandler.Resave)).Methods(http.MethodPost)
	router.Handle("/api/v1/pdf/merge", protect(pdfHandler.Merge)).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
