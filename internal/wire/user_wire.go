package wire

import (
	"cineacme/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures profile and user management routes
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, d deps) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(d.authenticated()...).Get("/api/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(d.adminOnly()...)

		r.Get("/", userHandler.GetAllUsers) // GET /api/admin/users?page=1&per_page=10
		r.Post("/", userHandler.CreateUser)
		r.Get("/{id}", userHandler.GetUserByID)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
