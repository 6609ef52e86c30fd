package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type showtimeEnv struct {
	repo    *repository.Repository
	service ShowtimeService
	movie   *entity.Movie
	hall    *entity.Hall
}

// newShowtimeEnv seeds one 120 minute movie and one 2x2 hall
func newShowtimeEnv(t *testing.T) *showtimeEnv {
	t.Helper()

	repo := &repository.Repository{
		Movie:    newFakeMovieRepo(),
		Hall:     newFakeHallRepo(),
		Showtime: newFakeShowtimeRepo(),
		Purchase: newFakePurchaseRepo(),
		Setting:  newFakeSettingRepo(),
	}

	movie := &entity.Movie{
		Base:              entity.Base{ID: uuid.New()},
		Title:             "Interstellar",
		DurationInMinutes: 120,
		TicketPrice:       50000,
		ReleaseStatus:     entity.ReleaseStatusNowPlaying,
	}
	require.NoError(t, repo.Movie.Create(context.Background(), movie))

	hall := &entity.Hall{
		Base:        entity.Base{ID: uuid.New()},
		CinemaID:    uuid.New(),
		HallNumber:  1,
		SeatRows:    []string{"A", "B"},
		SeatColumns: []string{"1", "2"},
	}
	require.NoError(t, repo.Hall.Create(context.Background(), hall))

	log := zap.NewNop()
	return &showtimeEnv{
		repo:    repo,
		service: NewShowtimeService(repo, newRuleLoader(repo.Setting, log), log),
		movie:   movie,
		hall:    hall,
	}
}

func (e *showtimeEnv) createShowtime(t *testing.T, start time.Time) string {
	t.Helper()
	resp, err := e.service.CreateShowtime(context.Background(), showtimeRequest(e, start))
	require.NoError(t, err)
	return resp.ID
}

func showtimeRequest(e *showtimeEnv, start time.Time) *request.ShowtimeRequest {
	return &request.ShowtimeRequest{
		MovieID:         e.movie.ID.String(),
		HallID:          e.hall.ID.String(),
		StartedDateTime: start.Format(time.RFC3339),
	}
}

func TestCreateShowtimeDerivesEnd(t *testing.T) {
	env := newShowtimeEnv(t)
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	resp, err := env.service.CreateShowtime(context.Background(), showtimeRequest(env, start))
	require.NoError(t, err)
	require.Equal(t, start.Add(120*time.Minute).Unix(), resp.EndedDateTime.Unix())
	require.Equal(t, env.movie.Title, resp.MovieTitle)
}

func TestCreateShowtimeBufferConflicts(t *testing.T) {
	// Existing showtime runs 120 minutes from the base instant; with the
	// default 30 minute buffer the hall frees up 150 minutes after base.
	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	tests := []struct {
		name     string
		start    time.Duration
		conflict bool
	}{
		{"one minute inside buffer", 149 * time.Minute, true},
		{"exactly at buffer edge", 150 * time.Minute, false},
		{"well clear of buffer", 240 * time.Minute, false},
		{"same start", 0, true},
		{"candidate ends inside leading buffer", -149 * time.Minute, true},
		{"candidate before leading buffer", -270 * time.Minute, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newShowtimeEnv(t)
			env.createShowtime(t, base)

			_, err := env.service.CreateShowtime(context.Background(), showtimeRequest(env, base.Add(tc.start)))
			if tc.conflict {
				require.ErrorIs(t, err, ErrSchedulingConflict)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCreateShowtimeOtherHallNeverConflicts(t *testing.T) {
	env := newShowtimeEnv(t)
	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	env.createShowtime(t, base)

	other := &entity.Hall{
		Base:        entity.Base{ID: uuid.New()},
		CinemaID:    env.hall.CinemaID,
		HallNumber:  2,
		SeatRows:    []string{"A"},
		SeatColumns: []string{"1"},
	}
	require.NoError(t, env.repo.Hall.Create(context.Background(), other))

	_, err := env.service.CreateShowtime(context.Background(), &request.ShowtimeRequest{
		MovieID:         env.movie.ID.String(),
		HallID:          other.ID.String(),
		StartedDateTime: base.Format(time.RFC3339),
	})
	require.NoError(t, err)
}

func TestCreateShowtimeRejectsPastStart(t *testing.T) {
	env := newShowtimeEnv(t)

	_, err := env.service.CreateShowtime(context.Background(), showtimeRequest(env, time.Now().Add(-time.Hour)))
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateShowtimeUnknownReferences(t *testing.T) {
	env := newShowtimeEnv(t)
	start := time.Now().Add(48 * time.Hour)

	_, err := env.service.CreateShowtime(context.Background(), &request.ShowtimeRequest{
		MovieID:         uuid.NewString(),
		HallID:          env.hall.ID.String(),
		StartedDateTime: start.Format(time.RFC3339),
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.service.CreateShowtime(context.Background(), &request.ShowtimeRequest{
		MovieID:         env.movie.ID.String(),
		HallID:          uuid.NewString(),
		StartedDateTime: start.Format(time.RFC3339),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateShowtimeExcludesItself(t *testing.T) {
	env := newShowtimeEnv(t)
	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	id := env.createShowtime(t, base)

	// Shifting a showtime by ten minutes overlaps its own previous window;
	// it must not conflict with itself.
	newStart := base.Add(10 * time.Minute).Format(time.RFC3339)
	resp, err := env.service.UpdateShowtime(context.Background(), id, &request.ShowtimeUpdateRequest{
		StartedDateTime: &newStart,
	})
	require.NoError(t, err)
	require.Equal(t, base.Add(130*time.Minute).Unix(), resp.EndedDateTime.Unix())
}

func TestUpdateShowtimeStillConflictsWithOthers(t *testing.T) {
	env := newShowtimeEnv(t)
	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	env.createShowtime(t, base)
	id := env.createShowtime(t, base.Add(300*time.Minute))

	newStart := base.Add(60 * time.Minute).Format(time.RFC3339)
	_, err := env.service.UpdateShowtime(context.Background(), id, &request.ShowtimeUpdateRequest{
		StartedDateTime: &newStart,
	})
	require.ErrorIs(t, err, ErrSchedulingConflict)
}

func TestGetSeatAvailability(t *testing.T) {
	env := newShowtimeEnv(t)
	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	id := env.createShowtime(t, base)

	showtimeID, err := uuid.Parse(id)
	require.NoError(t, err)

	hold := &entity.Purchase{
		Base:                   entity.Base{ID: uuid.New()},
		UserID:                 uuid.New(),
		ShowtimeID:             showtimeID,
		NumberTickets:          2,
		ChosenSeats:            []string{"A1", "A2"},
		Status:                 entity.PurchaseStatusCreated,
		ExpiredSeatSelectionAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, env.repo.Purchase.Create(context.Background(), hold))

	avail, err := env.service.GetSeatAvailability(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 4, avail.TotalSeats)
	require.ElementsMatch(t, []string{"B1", "B2"}, avail.AvailableSeats)
	require.ElementsMatch(t, []string{"A1", "A2"}, avail.TakenSeats)
}

func TestDeleteShowtime(t *testing.T) {
	env := newShowtimeEnv(t)
	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	id := env.createShowtime(t, base)

	require.NoError(t, env.service.DeleteShowtime(context.Background(), id))

	_, err := env.service.GetShowtimeByID(context.Background(), id)
	require.True(t, errors.Is(err, ErrNotFound))
}
