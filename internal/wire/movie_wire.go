package wire

import (
	"cineacme/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, d deps) {
	// ==================== AUTHENTICATED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(d.authenticated()...)

		r.Get("/api/movies", movieHandler.GetMovies) // ?search= matches title, genre, director
		r.Get("/api/movies/{id}", movieHandler.GetMovieByID)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(d.adminOnly()...)

		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})
}
