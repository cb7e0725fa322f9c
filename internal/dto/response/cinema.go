package response

import (
	"cineacme/internal/data/entity"
	"time"
)

type CinemaResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CinemaDetailResponse struct {
	CinemaResponse
	Rooms []RoomResponse `json:"rooms"`
}

func CinemaToResponse(cinema *entity.Cinema) CinemaResponse {
	return CinemaResponse{
		ID:        cinema.ID.String(),
		Code:      cinema.Code,
		Name:      cinema.Name,
		Address:   cinema.Address,
		City:      cinema.City,
		CreatedAt: cinema.CreatedAt,
		UpdatedAt: cinema.UpdatedAt,
	}
}
