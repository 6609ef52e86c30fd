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

type CinemaService interface {
	GetCinemas(ctx context.Context, req *request.PaginatedRequest, city *string) (*response.PaginatedResponse[response.CinemaResponse], error)
	GetCinemaByID(ctx context.Context, cinemaID string) (*response.CinemaResponse, error)
	CreateCinema(ctx context.Context, req *request.CinemaRequest) (*response.CinemaResponse, error)
	UpdateCinema(ctx context.Context, cinemaID string, req *request.CinemaUpdateRequest) (*response.CinemaResponse, error)
	DeleteCinema(ctx context.Context, cinemaID string) error

	GetHalls(ctx context.Context, cinemaID string) ([]response.HallResponse, error)
	CreateHall(ctx context.Context, cinemaID string, req *request.HallRequest) (*response.HallResponse, error)
	UpdateHall(ctx context.Context, hallID string, req *request.HallUpdateRequest) (*response.HallResponse, error)
	DeleteHall(ctx context.Context, hallID string) error
}

type cinemaService struct {
	repo *repository.Repository // cinema, hall & showtime repos
	log  *zap.Logger
}

func NewCinemaService(
	repo *repository.Repository,
	log *zap.Logger,
) CinemaService {
	return &cinemaService{
		repo: repo,
		log:  log.With(zap.String("service", "cinema")),
	}
}

func (s *cinemaService) GetCinemas(ctx context.Context, req *request.PaginatedRequest, city *string) (*response.PaginatedResponse[response.CinemaResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	cinemas, err := s.repo.Cinema.FindAll(ctx, limit, offset, city)
	if err != nil {
		s.log.Error("Failed to get cinemas", zap.Error(err), zap.Stringp("city", city))
		return nil, fmt.Errorf("get cinemas: %w", err)
	}

	total, err := s.repo.Cinema.CountAll(ctx, city)
	if err != nil {
		s.log.Error("Failed to count cinemas", zap.Error(err))
		return nil, fmt.Errorf("count cinemas: %w", err)
	}

	cinemaResponses := make([]response.CinemaResponse, 0, len(cinemas))
	for _, cinema := range cinemas {
		cinemaResponses = append(cinemaResponses, response.CinemaToResponse(cinema))
	}

	return response.NewPaginatedResponse(cinemaResponses, req.Page, limit, total), nil
}

func (s *cinemaService) GetCinemaByID(ctx context.Context, cinemaID string) (*response.CinemaResponse, error) {
	id, err := uuid.Parse(cinemaID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cinema id", ErrValidation)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find cinema", zap.Error(err), zap.String("cinema_id", cinemaID))
		return nil, fmt.Errorf("find cinema: %w", err)
	}
	if cinema == nil {
		return nil, fmt.Errorf("cinema %w", ErrNotFound)
	}

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}

func (s *cinemaService) CreateCinema(ctx context.Context, req *request.CinemaRequest) (*response.CinemaResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create cinema validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	cinema := &entity.Cinema{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Location: req.Location,
		City:     req.City,
	}

	if err := s.repo.Cinema.Create(ctx, cinema); err != nil {
		s.log.Error("Failed to create cinema", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create cinema: %w", err)
	}

	s.log.Info("Cinema created",
		zap.String("cinema_id", cinema.ID.String()),
		zap.String("name", cinema.Name))

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}

func (s *cinemaService) UpdateCinema(ctx context.Context, cinemaID string, req *request.CinemaUpdateRequest) (*response.CinemaResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update cinema validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(cinemaID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cinema id", ErrValidation)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find cinema", zap.Error(err), zap.String("cinema_id", cinemaID))
		return nil, fmt.Errorf("find cinema: %w", err)
	}
	if cinema == nil {
		return nil, fmt.Errorf("cinema %w", ErrNotFound)
	}

	if req.Name != nil {
		cinema.Name = *req.Name
	}
	if req.Location != nil {
		cinema.Location = *req.Location
	}
	if req.City != nil {
		cinema.City = *req.City
	}
	cinema.UpdatedAt = time.Now()

	if err := s.repo.Cinema.Update(ctx, cinema); err != nil {
		s.log.Error("Failed to update cinema", zap.Error(err), zap.String("cinema_id", cinemaID))
		return nil, fmt.Errorf("update cinema: %w", err)
	}

	s.log.Info("Cinema updated", zap.String("cinema_id", cinemaID))

	resp := response.CinemaToResponse(cinema)
	return &resp, nil
}

func (s *cinemaService) DeleteCinema(ctx context.Context, cinemaID string) error {
	id, err := uuid.Parse(cinemaID)
	if err != nil {
		return fmt.Errorf("%w: invalid cinema id", ErrValidation)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find cinema", zap.Error(err), zap.String("cinema_id", cinemaID))
		return fmt.Errorf("find cinema: %w", err)
	}
	if cinema == nil {
		return fmt.Errorf("cinema %w", ErrNotFound)
	}

	if err := s.repo.Cinema.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete cinema", zap.Error(err), zap.String("cinema_id", cinemaID))
		return fmt.Errorf("delete cinema: %w", err)
	}

	s.log.Info("Cinema deleted", zap.String("cinema_id", cinemaID))
	return nil
}

// ==================== HALLS ====================

func (s *cinemaService) GetHalls(ctx context.Context, cinemaID string) ([]response.HallResponse, error) {
	id, err := uuid.Parse(cinemaID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cinema id", ErrValidation)
	}

	halls, err := s.repo.Hall.FindByCinemaID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get halls", zap.Error(err), zap.String("cinema_id", cinemaID))
		return nil, fmt.Errorf("get halls: %w", err)
	}

	hallResponses := make([]response.HallResponse, 0, len(halls))
	for _, hall := range halls {
		hallResponses = append(hallResponses, response.HallToResponse(hall))
	}
	return hallResponses, nil
}

func (s *cinemaService) CreateHall(ctx context.Context, cinemaID string, req *request.HallRequest) (*response.HallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hall validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(cinemaID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cinema id", ErrValidation)
	}

	cinema, err := s.repo.Cinema.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find cinema", zap.Error(err), zap.String("cinema_id", cinemaID))
		return nil, fmt.Errorf("find cinema: %w", err)
	}
	if cinema == nil {
		return nil, fmt.Errorf("cinema %w", ErrNotFound)
	}

	if err := validateSeatGeometry(req.SeatRows, req.SeatColumns); err != nil {
		return nil, err
	}

	now := time.Now()
	hall := &entity.Hall{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CinemaID:    id,
		HallNumber:  req.HallNumber,
		SeatRows:    req.SeatRows,
		SeatColumns: req.SeatColumns,
	}

	if err := s.repo.Hall.Create(ctx, hall); err != nil {
		s.log.Error("Failed to create hall", zap.Error(err), zap.String("cinema_id", cinemaID))
		return nil, fmt.Errorf("create hall: %w", err)
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.String("cinema_id", cinemaID),
		zap.Int("total_seats", hall.TotalSeats()))

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *cinemaService) UpdateHall(ctx context.Context, hallID string, req *request.HallUpdateRequest) (*response.HallResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update hall validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hall id", ErrValidation)
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find hall", zap.Error(err), zap.String("hall_id", hallID))
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %w", ErrNotFound)
	}

	if req.HallNumber != nil {
		hall.HallNumber = *req.HallNumber
	}
	if req.SeatRows != nil {
		hall.SeatRows = req.SeatRows
	}
	if req.SeatColumns != nil {
		hall.SeatColumns = req.SeatColumns
	}
	if err := validateSeatGeometry(hall.SeatRows, hall.SeatColumns); err != nil {
		return nil, err
	}
	hall.UpdatedAt = time.Now()

	if err := s.repo.Hall.Update(ctx, hall); err != nil {
		s.log.Error("Failed to update hall", zap.Error(err), zap.String("hall_id", hallID))
		return nil, fmt.Errorf("update hall: %w", err)
	}

	s.log.Info("Hall updated", zap.String("hall_id", hallID))

	resp := response.HallToResponse(hall)
	return &resp, nil
}

func (s *cinemaService) DeleteHall(ctx context.Context, hallID string) error {
	id, err := uuid.Parse(hallID)
	if err != nil {
		return fmt.Errorf("%w: invalid hall id", ErrValidation)
	}

	hall, err := s.repo.Hall.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find hall", zap.Error(err), zap.String("hall_id", hallID))
		return fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return fmt.Errorf("hall %w", ErrNotFound)
	}

	showtimes, err := s.repo.Showtime.FindByHallID(ctx, id, nil)
	if err != nil {
		s.log.Error("Failed to check hall showtimes", zap.Error(err), zap.String("hall_id", hallID))
		return fmt.Errorf("check showtimes: %w", err)
	}
	if len(showtimes) > 0 {
		return fmt.Errorf("%w: hall still has showtimes", ErrValidation)
	}

	if err := s.repo.Hall.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete hall", zap.Error(err), zap.String("hall_id", hallID))
		return fmt.Errorf("delete hall: %w", err)
	}

	s.log.Info("Hall deleted", zap.String("hall_id", hallID))
	return nil
}

// validateSeatGeometry rejects duplicate row or column labels; duplicates
// would collapse distinct seats into one label
func validateSeatGeometry(rows, columns []string) error {
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, dup := seen[row]; dup {
			return fmt.Errorf("%w: duplicate seat row %q", ErrValidation, row)
		}
		seen[row] = struct{}{}
	}

	seen = make(map[string]struct{}, len(columns))
	for _, column := range columns {
		if _, dup := seen[column]; dup {
			return fmt.Errorf("%w: duplicate seat column %q", ErrValidation, column)
		}
		seen[column] = struct{}{}
	}

	grid := scheduling.NewSeatGrid(rows, columns)
	if grid.Capacity() == 0 {
		return fmt.Errorf("%w: hall must have at least one seat", ErrValidation)
	}
	return nil
}
