package request

type RoomRequest struct {
	CinemaID string `json:"cinema_id" validate:"required,uuid"`
	Code     string `json:"code" validate:"required,min=1,max=20"`
	NumSeats int    `json:"num_seats" validate:"required,min=1,max=500"`
}

type RoomUpdateRequest struct {
	CinemaID *string `json:"cinema_id,omitempty" validate:"omitempty,uuid"`
	Code     *string `json:"code,omitempty" validate:"omitempty,min=1,max=20"`
	NumSeats *int    `json:"num_seats,omitempty" validate:"omitempty,min=1,max=500"`
}
