package wire

import (
	"cineacme/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler, d deps) {
	r.Group(func(r chi.Router) {
		r.Use(d.authenticated()...)

		r.Get("/api/rooms", roomHandler.GetRooms) // ?cinema_id=
		r.Get("/api/rooms/{id}", roomHandler.GetRoomByID)
	})

	r.Route("/api/admin/rooms", func(r chi.Router) {
		r.Use(d.adminOnly()...)

		r.Post("/", roomHandler.CreateRoom)
		r.Put("/{id}", roomHandler.UpdateRoom)
		r.Delete("/{id}", roomHandler.DeleteRoom)
	})
}
