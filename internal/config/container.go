package config

import (
	"inspection-export/internal/domain"
	"inspection-export/internal/infra/fpdf"
	"inspection-export/internal/infra/supabase"
	"inspection-export/internal/service"
	"inspection-export/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	StorageService domain.StorageService
	ExportService  domain.ExportService
	ArchiveService domain.ArchiveService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Remote artifact copies are optional; without a bucket the download
	// to the caller is the only delivery path.
	var storage domain.StorageService
	if config.GetExportBucket() != "" {
		client, err := supabase.NewStorageClient(
			config.GetSupabaseURL(),
			config.GetSupabaseKey(),
			config.GetExportBucket(),
			appLogger,
		)
		if err != nil {
			appLogger.Warn("storage client unavailable, artifact copies disabled", "error", err)
		} else {
			storage = client
		}
	}

	engineFactory := func() domain.PDFEngine {
		return fpdf.New(config.GetPageFormat())
	}

	exportService := service.NewExportManager(engineFactory, storage, appLogger)
	archiveService := service.NewArchiveManager(config.GetMaxEntrySize(), storage, appLogger)

	return &Container{
		Config:         config,
		Logger:         appLogger,
		StorageService: storage,
		ExportService:  exportService,
		ArchiveService: archiveService,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
