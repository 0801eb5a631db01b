package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-resaver/internal/config"
	"pdf-resaver/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container := config.NewContainer()
	cfg := container.Config

	var authMiddleware func(http.Handler) http.Handler
	if cfg.GetAuthRequired() {
		if container.AuthService == nil {
			container.Logger.Error("AUTH_REQUIRED is set but Supabase is not configured", nil)
			os.Exit(1)
		}
		authMiddleware = handler.NewAuthMiddleware(container.AuthService, container.Logger).Middleware
	}

	// Handlers
	pdfHandler := handler.NewPDFHandler(
		container.ResaveService,
		container.MergeService,
		container.StorageService,
		cfg.GetWorkDir(),
		cfg.GetMaxFileSize(),
		container.Logger,
	)

	// Router
	router := handler.NewRouter(pdfHandler, handler.NewAuthHandler(), authMiddleware, cfg.GetAllowedOrigins())

	// start server
	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr, "work_dir", cfg.GetWorkDir())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
