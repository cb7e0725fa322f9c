package request

type MovieRequest struct {
	Code            string   `json:"code" validate:"required,min=1,max=20"`
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Synopsis        string   `json:"synopsis" validate:"required,min=10"`
	Cast            []string `json:"cast" validate:"omitempty,dive,required"`
	Classification  string   `json:"classification" validate:"required,max=20"`
	Language        string   `json:"language" validate:"required,max=50"`
	Director        string   `json:"director" validate:"required,max=100"`
	DurationMinutes int      `json:"duration" validate:"required,gt=0"`
	Genre           string   `json:"genre" validate:"required,max=50"`
	ReleaseDate     string   `json:"release_date" validate:"required,datetime=2006-01-02"`
	TrailerURL      *string  `json:"trailer_url,omitempty" validate:"omitempty,url"`
	PosterURL       *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
}

type MovieUpdateRequest struct {
	Code            *string  `json:"code,omitempty" validate:"omitempty,min=1,max=20"`
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Synopsis        *string  `json:"synopsis,omitempty" validate:"omitempty,min=10"`
	Cast            []string `json:"cast,omitempty" validate:"omitempty,dive,required"`
	Classification  *string  `json:"classification,omitempty" validate:"omitempty,max=20"`
	Language        *string  `json:"language,omitempty" validate:"omitempty,max=50"`
	Director        *string  `json:"director,omitempty" validate:"omitempty,max=100"`
	DurationMinutes *int     `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Genre           *string  `json:"genre,omitempty" validate:"omitempty,max=50"`
	ReleaseDate     *string  `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TrailerURL      *string  `json:"trailer_url,omitempty" validate:"omitempty,url"`
	PosterURL       *string  `json:"poster_url,omitempty" validate:"omitempty,url"`
}
