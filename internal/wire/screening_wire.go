package wire

import (
	"cineacme/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireScreening(
	r chi.Router,
	screeningHandler *adaptor.ScreeningHandler,
	reportHandler *adaptor.ReportHandler,
	d deps,
) {
	// ==================== AUTHENTICATED ROUTES ====================
	r.Route("/api/screenings", func(r chi.Router) {
		r.Use(d.authenticated()...)

		r.Get("/", screeningHandler.ListScreenings)
		r.Get("/{id}", screeningHandler.GetScreening)

		r.Route("/report", func(r chi.Router) {
			r.Get("/movie-cinema", reportHandler.ByMovieAndCinema)
			r.Get("/date-cinema", reportHandler.ByCinemaAndDate)
			r.Get("/date-range", reportHandler.ByDateRange)
			r.Get("/date-range/export", reportHandler.ExportDateRange)
		})
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/screenings", func(r chi.Router) {
		r.Use(d.adminOnly()...)

		r.Post("/", screeningHandler.CreateScreening)
		r.Put("/{id}", screeningHandler.UpdateScreening)
		r.Delete("/{id}", screeningHandler.DeleteScreening)
	})
}
