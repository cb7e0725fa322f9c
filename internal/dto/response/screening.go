package response

import (
	"cineacme/internal/data/entity"
	"time"
)

type ScreeningResponse struct {
	ID              string    `json:"id"`
	CinemaID        string    `json:"cinema_id"`
	RoomID          string    `json:"room_id"`
	MovieID         string    `json:"movie_id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ScreeningDetailResponse adds the display fields of the joined records.
type ScreeningDetailResponse struct {
	ScreeningResponse
	Cinema ScreeningCinema `json:"cinema"`
	Room   ScreeningRoom   `json:"room"`
	Movie  ScreeningMovie  `json:"movie"`
}

type ScreeningCinema struct {
	Name string `json:"name"`
}

type ScreeningRoom struct {
	Code string `json:"code"`
}

type ScreeningMovie struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

func ScreeningToResponse(s *entity.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID:              s.ID.String(),
		CinemaID:        s.CinemaID.String(),
		RoomID:          s.RoomID.String(),
		MovieID:         s.MovieID.String(),
		Date:            s.ShowDate,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationMinutes: s.DurationMinutes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ScreeningDetailToResponse(d *entity.ScreeningDetail) ScreeningDetailResponse {
	return ScreeningDetailResponse{
		ScreeningResponse: ScreeningToResponse(&d.Screening),
		Cinema:            ScreeningCinema{Name: d.CinemaName},
		Room:              ScreeningRoom{Code: d.RoomCode},
		Movie:             ScreeningMovie{Title: d.MovieTitle, Duration: d.MovieDuration},
	}
}

func ScreeningDetailsToResponse(details []*entity.ScreeningDetail) []ScreeningDetailResponse {
	out := make([]ScreeningDetailResponse, len(details))
	for i, d := range details {
		out[i] = ScreeningDetailToResponse(d)
	}
	return out
}
