package wire

import (
	"cineacme/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCinema(r chi.Router, cinemaHandler *adaptor.CinemaHandler, d deps) {
	// ==================== AUTHENTICATED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(d.authenticated()...)

		r.Get("/api/cinemas", cinemaHandler.GetCinemas)        // ?city=&page=&per_page=
		r.Get("/api/cinemas/{id}", cinemaHandler.GetCinemaByID) // includes rooms
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/cinemas", func(r chi.Router) {
		r.Use(d.adminOnly()...)

		r.Post("/", cinemaHandler.CreateCinema)
		r.Put("/{id}", cinemaHandler.UpdateCinema)
		r.Delete("/{id}", cinemaHandler.DeleteCinema) // refused while rooms remain
	})
}
