package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/cropguard/console/internal/handler"
)

func (app *App) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	// Health check
	r.Get("/api/health", handler.Health(app.db))

	sessionHandler := handler.NewSessionHandler(
		app.logger,
		app.controller,
		app.prefStore,
		app.limiter,
		app.config.MaxUploadSizeMB,
		app.config.DefaultLanguage,
	)
	r.Route("/api/session", func(r chi.Router) {
		r.Get("/", sessionHandler.Snapshot)
		r.Post("/image", sessionHandler.Stage)
		r.Post("/submit", sessionHandler.Submit)
		r.Post("/retry", sessionHandler.Retry)
		r.Post("/reset", sessionHandler.Reset)
		r.Get("/gradcam", sessionHandler.Gradcam)
		r.Get("/report", sessionHandler.Report)
	})

	return r
}
