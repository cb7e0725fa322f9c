package repository

import (
	"cineacme/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Cinema    CinemaRepository
	Room      RoomRepository
	Movie     MovieRepository
	Screening ScreeningRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Cinema:    NewCinemaRepository(db, log),
		Room:      NewRoomRepository(db, log),
		Movie:     NewMovieRepository(db, log),
		Screening: NewScreeningRepository(db, log),
	}
}
