package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"inspection-export/internal/config"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"inspection-export"}`))
	}).Methods("GET")

	// Initialize handlers
	timeoutMS := container.Config.GetFinalizeTimeoutMS()
	exportHandler := NewExportHandler(container.ExportService, timeoutMS, container.Logger)
	archiveHandler := NewArchiveHandler(container.ArchiveService, timeoutMS, container.Logger)

	// Document export routes
	api.HandleFunc("/exports", exportHandler.CreateExport).Methods("POST")
	api.HandleFunc("/exports/{id}", exportHandler.GetState).Methods("GET")
	api.HandleFunc("/exports/{id}", exportHandler.DiscardExport).Methods("DELETE")
	api.HandleFunc("/exports/{id}/operations", exportHandler.ApplyOperation).Methods("POST")
	api.HandleFunc("/exports/{id}/line-height", exportHandler.GetLineHeight).Methods("GET")
	api.HandleFunc("/exports/{id}/header", exportHandler.AddHeader).Methods("POST")
	api.HandleFunc("/exports/{id}/footer", exportHandler.AddFooter).Methods("POST")
	api.HandleFunc("/exports/{id}/finalize", exportHandler.FinalizeExport).Methods("POST")

	// Archive session routes
	api.HandleFunc("/archives", archiveHandler.CreateArchive).Methods("POST")
	api.HandleFunc("/archives/{id}/entries", archiveHandler.AddEntry).Methods("POST")
	api.HandleFunc("/archives/{id}/finalize", archiveHandler.FinalizeArchive).Methods("POST")
	api.HandleFunc("/archives/{id}", archiveHandler.DiscardArchive).Methods("DELETE")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
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
