package response

import (
	"cineacme/internal/data/entity"
	"time"
)

type MovieResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Title           string    `json:"title"`
	Synopsis        string    `json:"synopsis"`
	Cast            []string  `json:"cast"`
	Classification  string    `json:"classification"`
	Language        string    `json:"language"`
	Director        string    `json:"director"`
	DurationMinutes int       `json:"duration"`
	Genre           string    `json:"genre"`
	ReleaseDate     string    `json:"release_date"`
	TrailerURL      *string   `json:"trailer_url,omitempty"`
	PosterURL       *string   `json:"poster_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	cast := movie.Cast
	if cast == nil {
		cast = []string{}
	}
	return MovieResponse{
		ID:              movie.ID.String(),
		Code:            movie.Code,
		Title:           movie.Title,
		Synopsis:        movie.Synopsis,
		Cast:            cast,
		Classification:  movie.Classification,
		Language:        movie.Language,
		Director:        movie.Director,
		DurationMinutes: movie.DurationMinutes,
		Genre:           movie.Genre,
		ReleaseDate:     movie.ReleaseDate.Format("2006-01-02"),
		TrailerURL:      movie.TrailerURL,
		PosterURL:       movie.PosterURL,
		CreatedAt:       movie.CreatedAt,
		UpdatedAt:       movie.UpdatedAt,
	}
}
