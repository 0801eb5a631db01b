package config

import (
	"pdf-resaver/internal/domain"
	"pdf-resaver/internal/infra/mupdf"
	"pdf-resaver/internal/infra/pdflib"
	"pdf-resaver/internal/infra/supabase"
	"pdf-resaver/internal/service"
	"pdf-resaver/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	Library        *pdflib.Library
	ResaveService  domain.ResaveService
	MergeService   domain.MergeService
	StorageService domain.StorageService // nil when Supabase is not configured
	SupabaseClient domain.SupabaseClient // nil when Supabase is not configured
	AuthService    domain.AuthService    // nil when Supabase is not configured
}

// NewContainer creates a new dependency injection container logging to stdout
func NewContainer() *Container {
	config := NewConfig()
	return NewContainerWith(config, logger.NewLogger(config.GetLogLevel()))
}

// NewContainerWith wires the container around an existing config and logger
func NewContainerWith(config domain.Config, appLogger domain.Logger) *Container {
	library := pdflib.NewLibrary(appLogger)

	var verifier domain.PageCounter
	if config.GetVerifyOutput() {
		verifier = mupdf.NewPageCounter(appLogger)
	}

	loader := service.NewDecryptingLoader(library, appLogger)
	resaver := service.NewResaver(library, verifier, appLogger)
	resaveService := service.NewResaveService(loader, resaver, appLogger)
	mergeService := service.NewMergeService(
		resaveService,
		library,
		config.GetWorkDir(),
		config.GetResaveBeforeMerge(),
		appLogger,
	)

	c := &Container{
		Config:        config,
		Logger:        appLogger,
		Library:       library,
		ResaveService: resaveService,
		MergeService:  mergeService,
	}

	if config.GetSupabaseURL() == "" || config.GetSupabaseKey() == "" {
		appLogger.Debug("Supabase not configured, auth and storage disabled")
		return c
	}

	supabaseClient := supabase.NewSupabaseClient(config, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Warn("Supabase client unavailable, auth and storage disabled", "error", err)
		return c
	}
	c.SupabaseClient = supabaseClient
	c.AuthService = service.NewAuthService(supabaseClient, appLogger)
	c.StorageService = service.NewStorageService(
		config.GetSupabaseURL(),
		config.GetSupabaseKey(),
		config.GetStorageBucket(),
	)
	return c
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
