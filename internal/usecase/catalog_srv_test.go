package usecase

import (
	"context"
	"testing"

	"cineacme/internal/data/memstore"
	"cineacme/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func TestCinemaService(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewRepository(zap.NewNop())
	cinemas := NewCinemaService(repo, fixedClock(), zap.NewNop())
	rooms := NewRoomService(repo, fixedClock(), zap.NewNop())

	created, err := cinemas.CreateCinema(ctx, &request.CinemaRequest{
		Code: "C1", Name: "Centro", Address: "Jr. Union 100", City: "Lima",
	})
	require.NoError(t, err)

	t.Run("duplicate code", func(t *testing.T) {
		_, err := cinemas.CreateCinema(ctx, &request.CinemaRequest{
			Code: "C1", Name: "Other", Address: "Somewhere", City: "Lima",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Messages[0], `"C1"`)
	})

	t.Run("tag validation", func(t *testing.T) {
		_, err := cinemas.CreateCinema(ctx, &request.CinemaRequest{Code: "C2"})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Messages, "name: This field is required")
	})

	t.Run("partial update", func(t *testing.T) {
		res, err := cinemas.UpdateCinema(ctx, created.ID, &request.CinemaUpdateRequest{City: strPtr("Cusco")})
		require.NoError(t, err)
		assert.Equal(t, "Cusco", res.City)
		assert.Equal(t, "Centro", res.Name)
	})

	t.Run("delete refused while rooms exist", func(t *testing.T) {
		room, err := rooms.CreateRoom(ctx, &request.RoomRequest{CinemaID: created.ID, Code: "R1", NumSeats: 80})
		require.NoError(t, err)

		detail, err := cinemas.GetCinemaByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, detail.Rooms, 1)

		err = cinemas.DeleteCinema(ctx, created.ID)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)

		require.NoError(t, rooms.DeleteRoom(ctx, room.ID))
		require.NoError(t, cinemas.DeleteCinema(ctx, created.ID))

		_, err = cinemas.GetCinemaByID(ctx, created.ID)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("code is reusable after soft delete", func(t *testing.T) {
		_, err := cinemas.CreateCinema(ctx, &request.CinemaRequest{
			Code: "C1", Name: "Reopened", Address: "Jr. Union 100", City: "Lima",
		})
		assert.NoError(t, err)
	})
}

func TestRoomService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rooms := NewRoomService(f.repo, fixedClock(), zap.NewNop())

	t.Run("unknown cinema", func(t *testing.T) {
		_, err := rooms.CreateRoom(ctx, &request.RoomRequest{CinemaID: uuid.NewString(), Code: "RX", NumSeats: 10})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "cinema", nf.Entity)
	})

	t.Run("seat bounds", func(t *testing.T) {
		_, err := rooms.CreateRoom(ctx, &request.RoomRequest{CinemaID: f.cinema.ID.String(), Code: "RX", NumSeats: 501})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"num_seats: Maximum is 500"}, verr.Messages)
	})

	t.Run("filter by cinema", func(t *testing.T) {
		page := &request.PaginatedRequest{Page: 1, PerPage: 10}
		cinemaID := f.cinema.ID.String()

		res, err := rooms.GetRooms(ctx, page, &cinemaID)
		require.NoError(t, err)
		assert.Len(t, res.Data, 1)

		res, err = rooms.GetRooms(ctx, page, strPtr("garbage"))
		require.NoError(t, err)
		assert.Empty(t, res.Data)
	})

	t.Run("delete refused while screenings exist", func(t *testing.T) {
		_, err := f.svc.CreateScreening(ctx, f.request("10:00"))
		require.NoError(t, err)

		err = rooms.DeleteRoom(ctx, f.room.ID.String())
		var conflict *ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}

func TestMovieService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	movies := NewMovieService(f.repo, fixedClock(), zap.NewNop())

	req := &request.MovieRequest{
		Code:            "M7",
		Title:           "Arrival",
		Synopsis:        "Linguist meets visitors.",
		Classification:  "PG-13",
		Language:        "en",
		Director:        "Denis Villeneuve",
		DurationMinutes: 116,
		Genre:           "Sci-Fi",
		ReleaseDate:     "2016-11-11",
	}

	created, err := movies.CreateMovie(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{}, created.Cast)
	assert.Equal(t, "2016-11-11", created.ReleaseDate)

	t.Run("search", func(t *testing.T) {
		page := &request.PaginatedRequest{Page: 1, PerPage: 10}

		res, err := movies.GetMovies(ctx, page, strPtr("villeneuve"))
		require.NoError(t, err)
		require.Len(t, res.Data, 1)
		assert.Equal(t, "Arrival", res.Data[0].Title)

		res, err = movies.GetMovies(ctx, page, strPtr("sci"))
		require.NoError(t, err)
		assert.Len(t, res.Data, 1)
	})

	t.Run("invalid duration and synopsis", func(t *testing.T) {
		bad := *req
		bad.Code = "M8"
		bad.DurationMinutes = -5
		bad.Synopsis = "short"

		_, err := movies.CreateMovie(ctx, &bad)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"duration: Must be greater than 0", "synopsis: Minimum is 10"}, verr.Messages)
	})

	t.Run("duration edit leaves screenings alone", func(t *testing.T) {
		sc, err := f.svc.CreateScreening(ctx, f.request("10:00"))
		require.NoError(t, err)

		d := 60
		_, err = movies.UpdateMovie(ctx, f.movie.ID.String(), &request.MovieUpdateRequest{DurationMinutes: &d})
		require.NoError(t, err)

		got, err := f.svc.GetScreening(ctx, sc.ID)
		require.NoError(t, err)
		assert.Equal(t, "12:00", got.EndTime)
		assert.Equal(t, 60, got.Movie.Duration)
	})

	t.Run("delete refused while screenings exist", func(t *testing.T) {
		err := movies.DeleteMovie(ctx, f.movie.ID.String())
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)

		require.NoError(t, movies.DeleteMovie(ctx, created.ID))
	})
}

func TestRoomService_MoveToAnotherCinema(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	rooms := NewRoomService(f.repo, fixedClock(), zap.NewNop())
	other := seedCinema(t, f.repo, "C2")
	otherID := other.ID.String()

	_, err := f.svc.CreateScreening(ctx, f.request("10:00"))
	require.NoError(t, err)

	_, err = rooms.UpdateRoom(ctx, f.room.ID.String(), &request.RoomUpdateRequest{CinemaID: &otherID})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "room still has 1 screening(s)", conflict.Message)

	stored, err := f.repo.Room.FindByID(ctx, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, f.cinema.ID, stored.CinemaID)

	// other fields stay editable
	res, err := rooms.UpdateRoom(ctx, f.room.ID.String(), &request.RoomUpdateRequest{NumSeats: intPtr(90)})
	require.NoError(t, err)
	assert.Equal(t, f.cinema.ID.String(), res.CinemaID)

	// an empty room may move
	empty, err := rooms.CreateRoom(ctx, &request.RoomRequest{CinemaID: f.cinema.ID.String(), Code: "R2", NumSeats: 40})
	require.NoError(t, err)
	moved, err := rooms.UpdateRoom(ctx, empty.ID, &request.RoomUpdateRequest{CinemaID: &otherID})
	require.NoError(t, err)
	assert.Equal(t, otherID, moved.CinemaID)
}

func TestCatalogTimestampsUseClock(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewRepository(zap.NewNop())
	clock := fixedClock()
	cinemas := NewCinemaService(repo, clock, zap.NewNop())
	rooms := NewRoomService(repo, clock, zap.NewNop())

	cinema, err := cinemas.CreateCinema(ctx, &request.CinemaRequest{
		Code: "C9", Name: "Norte", Address: "Av. Peru 10", City: "Lima",
	})
	require.NoError(t, err)
	assert.True(t, cinema.CreatedAt.Equal(clock.Now()))
	assert.True(t, cinema.UpdatedAt.Equal(clock.Now()))

	room, err := rooms.CreateRoom(ctx, &request.RoomRequest{CinemaID: cinema.ID, Code: "R9", NumSeats: 30})
	require.NoError(t, err)
	assert.True(t, room.CreatedAt.Equal(clock.Now()))
}
