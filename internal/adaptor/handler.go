package adaptor

import (
	"cineacme/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Cinema    *CinemaHandler
	Room      *RoomHandler
	Movie     *MovieHandler
	Screening *ScreeningHandler
	Report    *ReportHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, log),
		Cinema:    NewCinemaHandler(service.Cinema, log),
		Room:      NewRoomHandler(service.Room, log),
		Movie:     NewMovieHandler(service.Movie, log),
		Screening: NewScreeningHandler(service.Screening, log),
		Report:    NewReportHandler(service.Report, log),
	}
}
