package response

// DateRangeGroup lists what one movie shows at one cinema on one day.
type DateRangeGroup struct {
	Date       string                    `json:"date"`
	MovieID    string                    `json:"movie_id"`
	CinemaID   string                    `json:"cinema_id"`
	Movie      ScreeningMovie            `json:"movie"`
	Cinema     ScreeningCinema           `json:"cinema"`
	RoomCount  int                       `json:"room_count"`
	Screenings []ScreeningDetailResponse `json:"screenings"`
}
