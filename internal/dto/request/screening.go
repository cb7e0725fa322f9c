package request

// ScreeningRequest carries no validate tags: the scheduling service checks
// every field itself and reports all violations at once.
type ScreeningRequest struct {
	CinemaID  string `json:"cinema_id"`
	RoomID    string `json:"room_id"`
	MovieID   string `json:"movie_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
}

type ScreeningUpdateRequest struct {
	CinemaID  *string `json:"cinema_id,omitempty"`
	RoomID    *string `json:"room_id,omitempty"`
	MovieID   *string `json:"movie_id,omitempty"`
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
}
