// Package api wires the HTTP surface for the read-later service. The
// popup, options page, and in-page save dialog are external callers;
// they drive everything through these routes.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/readlater/internal/api/handlers"
	"github.com/hoanghai1803/readlater/internal/config"
	"github.com/hoanghai1803/readlater/internal/dispatch"
	"github.com/hoanghai1803/readlater/internal/storage"
)

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(store *storage.Store, d *dispatch.Dispatcher, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	fetchTimeout := time.Duration(cfg.Pages.FetchTimeoutSeconds) * time.Second

	r.Route("/api", func(api chi.Router) {
		// Single-entry action protocol used by the extension surfaces.
		api.Post("/message", handlers.Message(d))

		api.Get("/settings", handlers.GetSettings(store))
		api.Put("/settings", handlers.UpdateSettings(store))

		api.Get("/export", handlers.ExportData(store))
		api.Post("/import", handlers.ImportData(store))

		api.Delete("/links", handlers.ClearLinks(store))

		api.Post("/page-info", handlers.PageInfo(fetchTimeout))
	})

	return r
}
