package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/helgdagar/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/days/today
//	GET    /api/v1/days/{date}
//	GET    /api/v1/holidays/range?start=YYYY-MM-DD&end=YYYY-MM-DD
//	GET    /api/v1/holidays/{year}
//	GET    /api/v1/easter/{year}       (exact for 1900-2099 only)
//	GET    /api/v1/workdays?start=YYYY-MM-DD&end=YYYY-MM-DD
//	GET    /api/v1/workdays/add?date=YYYY-MM-DD&n=N
//	GET    /api/v1/admin/years          (X-API-Key)
//	POST   /api/v1/admin/years/{year}   (X-API-Key)
//	DELETE /api/v1/admin/years/{year}   (X-API-Key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/days/today", handlers.GetToday)
		r.Get("/days/{date}", handlers.GetDay)

		r.Get("/holidays/range", handlers.GetRangeHolidays)
		r.Get("/holidays/{year}", handlers.GetYearHolidays)

		r.Get("/easter/{year}", handlers.GetEaster)

		r.Get("/workdays", handlers.CountWorkdays)
		r.Get("/workdays/add", handlers.AddWorkdays)

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminMiddleware(cfg, logger))
			r.Get("/years", handlers.ListPublishedYears)
			r.Post("/years/{year}", handlers.PublishYear)
			r.Delete("/years/{year}", handlers.DeleteYear)
		})
	})

	return r
}
