package usecase

import (
	"time"

	"cineacme/internal/data/repository"
	"cineacme/pkg/metrics"
	"cineacme/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Cinema    CinemaService
	Room      RoomService
	Movie     MovieService
	Screening ScreeningService
	Report    ReportService
}

// NewService builds every service over one repository set. m may be nil.
func NewService(repo *repository.Repository, config *utils.Config, m *metrics.Metrics, log *zap.Logger) *Service {
	clock := NewClock(time.Now, config.App.Location())

	return &Service{
		Auth:      NewAuthService(repo, config, clock, log),
		User:      NewUserService(repo.User, clock, log),
		Cinema:    NewCinemaService(repo, clock, log),
		Room:      NewRoomService(repo, clock, log),
		Movie:     NewMovieService(repo, clock, log),
		Screening: NewScreeningService(repo, clock, m, log),
		Report:    NewReportService(repo, clock, log),
	}
}
