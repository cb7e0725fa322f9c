package response

import (
	"cineacme/internal/data/entity"
	"time"
)

type RoomResponse struct {
	ID        string    `json:"id"`
	CinemaID  string    `json:"cinema_id"`
	Code      string    `json:"code"`
	NumSeats  int       `json:"num_seats"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID.String(),
		CinemaID:  room.CinemaID.String(),
		Code:      room.Code,
		NumSeats:  room.NumSeats,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}
