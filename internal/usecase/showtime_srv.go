package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/internal/scheduling"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	GetShowtimes(ctx context.Context, req *request.PaginatedRequest, filter *request.ShowtimeFilterRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error)
	GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)
	GetSeatAvailability(ctx context.Context, showtimeID string) (*response.SeatAvailabilityResponse, error)
	CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, showtimeID string, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID string) error
}

type showtimeService struct {
	repo  *repository.Repository // showtime, movie, hall & purchase repos
	rules *ruleLoader
	log   *zap.Logger
}

func NewShowtimeService(
	repo *repository.Repository,
	rules *ruleLoader,
	log *zap.Logger,
) ShowtimeService {
	return &showtimeService{
		repo:  repo,
		rules: rules,
		log:   log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) GetShowtimes(ctx context.Context, req *request.PaginatedRequest, filter *request.ShowtimeFilterRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	repoFilter, err := parseShowtimeFilter(filter)
	if err != nil {
		return nil, err
	}

	showtimes, err := s.repo.Showtime.FindAll(ctx, offset, limit, repoFilter)
	if err != nil {
		s.log.Error("Failed to get showtimes", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	total, err := s.repo.Showtime.CountAll(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to count showtimes", zap.Error(err))
		return nil, fmt.Errorf("count showtimes: %w", err)
	}

	showtimeResponses := make([]response.ShowtimeResponse, 0, len(showtimes))
	for _, showtime := range showtimes {
		movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
		if err != nil {
			s.log.Warn("Failed to get movie for showtime",
				zap.Error(err),
				zap.String("showtime_id", showtime.ID.String()),
			)
		}
		showtimeResponses = append(showtimeResponses, response.ShowtimeToResponse(showtime, movie))
	}

	return response.NewPaginatedResponse(showtimeResponses, req.Page, limit, total), nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid showtime id", ErrValidation)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %w", ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
	if err != nil {
		s.log.Warn("Failed to get movie for showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
	}

	resp := response.ShowtimeToResponse(showtime, movie)
	return &resp, nil
}

// GetSeatAvailability derives the seat map from the hall geometry and the
// committed purchases; expired initiated holds fall out of the taken set.
func (s *showtimeService) GetSeatAvailability(ctx context.Context, showtimeID string) (*response.SeatAvailabilityResponse, error) {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid showtime id", ErrValidation)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %w", ErrNotFound)
	}

	hall, err := s.repo.Hall.FindByID(ctx, showtime.HallID)
	if err != nil {
		s.log.Error("Failed to find hall", zap.Error(err), zap.String("hall_id", showtime.HallID.String()))
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %w", ErrNotFound)
	}

	takenSeats, err := s.repo.Purchase.FindTakenSeats(ctx, id, time.Now())
	if err != nil {
		s.log.Error("Failed to get taken seats", zap.Error(err), zap.String("showtime_id", showtimeID))
		return nil, fmt.Errorf("get taken seats: %w", err)
	}

	grid := scheduling.NewSeatGrid(hall.SeatRows, hall.SeatColumns)
	taken := scheduling.TakenSet(takenSeats)

	available := make([]string, 0, grid.Capacity()-len(takenSeats))
	for _, label := range grid.Labels() {
		if _, ok := taken[label]; !ok {
			available = append(available, label)
		}
	}

	return &response.SeatAvailabilityResponse{
		ShowtimeID:     showtimeID,
		TotalSeats:     grid.Capacity(),
		AvailableSeats: available,
		TakenSeats:     takenSeats,
	}, nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	movieID, _ := uuid.Parse(req.MovieID)
	hallID, _ := uuid.Parse(req.HallID)

	start, err := time.Parse(time.RFC3339, req.StartedDateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: started_datetime must be RFC 3339", ErrValidation)
	}
	if start.Before(time.Now()) {
		return nil, fmt.Errorf("%w: started_datetime is in the past", ErrValidation)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %w", ErrNotFound)
	}

	hall, err := s.repo.Hall.FindByID(ctx, hallID)
	if err != nil {
		s.log.Error("Failed to find hall", zap.Error(err), zap.String("hall_id", req.HallID))
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %w", ErrNotFound)
	}

	// End is always start + movie duration
	end := start.Add(time.Duration(movie.DurationInMinutes) * time.Minute)

	if err := s.checkConflicts(ctx, hallID, nil, start, end); err != nil {
		return nil, err
	}

	now := time.Now()
	showtime := &entity.Showtime{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:         movieID,
		HallID:          hallID,
		StartedDateTime: start,
		EndedDateTime:   end,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		s.log.Error("Failed to create showtime", zap.Error(err), zap.String("hall_id", req.HallID))
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("hall_id", req.HallID),
		zap.Time("start", start),
		zap.Time("end", end))

	resp := response.ShowtimeToResponse(showtime, movie)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, showtimeID string, req *request.ShowtimeUpdateRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid showtime id", ErrValidation)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %w", ErrNotFound)
	}

	if req.MovieID != nil {
		movieID, err := uuid.Parse(*req.MovieID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid movie id", ErrValidation)
		}
		showtime.MovieID = movieID
	}
	if req.HallID != nil {
		hallID, err := uuid.Parse(*req.HallID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hall id", ErrValidation)
		}
		hall, err := s.repo.Hall.FindByID(ctx, hallID)
		if err != nil {
			return nil, fmt.Errorf("find hall: %w", err)
		}
		if hall == nil {
			return nil, fmt.Errorf("hall %w", ErrNotFound)
		}
		showtime.HallID = hallID
	}
	if req.StartedDateTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartedDateTime)
		if err != nil {
			return nil, fmt.Errorf("%w: started_datetime must be RFC 3339", ErrValidation)
		}
		if start.Before(time.Now()) {
			return nil, fmt.Errorf("%w: started_datetime is in the past", ErrValidation)
		}
		showtime.StartedDateTime = start
	}

	movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", showtime.MovieID.String()))
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %w", ErrNotFound)
	}

	// Re-derive the end; movie or start may have changed
	showtime.EndedDateTime = showtime.StartedDateTime.Add(time.Duration(movie.DurationInMinutes) * time.Minute)

	// The showtime being updated never conflicts with itself
	if err := s.checkConflicts(ctx, showtime.HallID, &id, showtime.StartedDateTime, showtime.EndedDateTime); err != nil {
		return nil, err
	}

	showtime.UpdatedAt = time.Now()
	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		s.log.Error("Failed to update showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
		return nil, fmt.Errorf("update showtime: %w", err)
	}

	s.log.Info("Showtime updated", zap.String("showtime_id", showtimeID))

	resp := response.ShowtimeToResponse(showtime, movie)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, showtimeID string) error {
	id, err := uuid.Parse(showtimeID)
	if err != nil {
		return fmt.Errorf("%w: invalid showtime id", ErrValidation)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
		return fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return fmt.Errorf("showtime %w", ErrNotFound)
	}

	if err := s.repo.Showtime.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete showtime", zap.Error(err), zap.String("showtime_id", showtimeID))
		return fmt.Errorf("delete showtime: %w", err)
	}

	s.log.Info("Showtime deleted", zap.String("showtime_id", showtimeID))
	return nil
}

// checkConflicts validates the candidate window against every other
// showtime in the hall, padded by the configured turnover buffer
func (s *showtimeService) checkConflicts(ctx context.Context, hallID uuid.UUID, excludeID *uuid.UUID, start, end time.Time) error {
	existing, err := s.repo.Showtime.FindByHallID(ctx, hallID, excludeID)
	if err != nil {
		s.log.Error("Failed to load hall showtimes", zap.Error(err), zap.String("hall_id", hallID.String()))
		return fmt.Errorf("load hall showtimes: %w", err)
	}

	intervals := make([]scheduling.Interval, 0, len(existing))
	for _, st := range existing {
		intervals = append(intervals, scheduling.Interval{
			Start: st.StartedDateTime,
			End:   st.EndedDateTime,
		})
	}

	buffer := s.rules.Rules(ctx).Buffer()
	if scheduling.Overlaps(start, end, buffer, intervals) {
		s.log.Warn("Showtime conflict",
			zap.String("hall_id", hallID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
			zap.Duration("buffer", buffer))
		return ErrSchedulingConflict
	}
	return nil
}

func parseShowtimeFilter(filter *request.ShowtimeFilterRequest) (repository.ShowtimeFilter, error) {
	var repoFilter repository.ShowtimeFilter
	if filter == nil {
		return repoFilter, nil
	}

	if filter.MovieID != nil {
		id, err := uuid.Parse(*filter.MovieID)
		if err != nil {
			return repoFilter, fmt.Errorf("%w: invalid movie id", ErrValidation)
		}
		repoFilter.MovieID = &id
	}
	if filter.HallID != nil {
		id, err := uuid.Parse(*filter.HallID)
		if err != nil {
			return repoFilter, fmt.Errorf("%w: invalid hall id", ErrValidation)
		}
		repoFilter.HallID = &id
	}
	if filter.Date != nil {
		date, err := time.Parse(releaseDateLayout, *filter.Date)
		if err != nil {
			return repoFilter, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
		repoFilter.Date = &date
	}
	return repoFilter, nil
}
