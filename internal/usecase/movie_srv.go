package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const releaseDateLayout = "2006-01-02"

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest, releaseStatus *string) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error

	GetGenres(ctx context.Context) ([]response.GenreResponse, error)
	CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	UpdateGenre(ctx context.Context, genreID string, req *request.GenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, genreID string) error
}

type movieService struct {
	repo *repository.Repository // movie, genre & movie_genre repos
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest, releaseStatus *string) (*response.PaginatedResponse[response.MovieResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	movies, err := s.repo.Movie.FindAll(ctx, offset, limit, releaseStatus)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Stringp("release_status", releaseStatus),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, releaseStatus)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, 0, len(movies))
	for _, movie := range movies {
		genres, err := s.repo.Genre.FindByMovieID(ctx, movie.ID)
		if err != nil {
			s.log.Warn("Failed to get genres for movie",
				zap.Error(err),
				zap.String("movie_id", movie.ID.String()),
			)
		}
		movieResponses = append(movieResponses, response.MovieToResponse(movie, genres))
	}

	return response.NewPaginatedResponse(movieResponses, req.Page, limit, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie id", ErrValidation)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %w", ErrNotFound)
	}

	genres, err := s.repo.Genre.FindByMovieID(ctx, movie.ID)
	if err != nil {
		s.log.Warn("Failed to get genres for movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
	}

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	releaseDate, err := time.Parse(releaseDateLayout, req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: release_date must be YYYY-MM-DD", ErrValidation)
	}

	genreIDs, err := s.parseGenreIDs(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:             req.Title,
		Description:       req.Description,
		PosterURL:         req.PosterURL,
		ReleaseDate:       releaseDate,
		DurationInMinutes: req.DurationInMinutes,
		TicketPrice:       req.TicketPrice,
		ReleaseStatus:     entity.ReleaseStatus(req.ReleaseStatus),
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	if err := s.linkGenres(ctx, movie.ID, genreIDs); err != nil {
		s.log.Error("Failed to link genres", zap.Error(err), zap.String("movie_id", movie.ID.String()))
		return nil, fmt.Errorf("link genres: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title))

	genres, _ := s.repo.Genre.FindByMovieID(ctx, movie.ID)
	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie id", ErrValidation)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %w", ErrNotFound)
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse(releaseDateLayout, *req.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: release_date must be YYYY-MM-DD", ErrValidation)
		}
		movie.ReleaseDate = releaseDate
	}
	if req.DurationInMinutes != nil {
		movie.DurationInMinutes = *req.DurationInMinutes
	}
	if req.TicketPrice != nil {
		movie.TicketPrice = *req.TicketPrice
	}
	if req.ReleaseStatus != nil {
		movie.ReleaseStatus = entity.ReleaseStatus(*req.ReleaseStatus)
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("update movie: %w", err)
	}

	// A genre_ids field replaces the whole genre set
	if req.GenreIDs != nil {
		genreIDs, err := s.parseGenreIDs(ctx, req.GenreIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.MovieGenre.DeleteByMovieID(ctx, movie.ID); err != nil {
			s.log.Error("Failed to clear movie genres", zap.Error(err), zap.String("movie_id", movieID))
			return nil, fmt.Errorf("clear genres: %w", err)
		}
		if err := s.linkGenres(ctx, movie.ID, genreIDs); err != nil {
			s.log.Error("Failed to link genres", zap.Error(err), zap.String("movie_id", movieID))
			return nil, fmt.Errorf("link genres: %w", err)
		}
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	genres, _ := s.repo.Genre.FindByMovieID(ctx, movie.ID)
	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return fmt.Errorf("%w: invalid movie id", ErrValidation)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("movie %w", ErrNotFound)
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))
	return nil
}

// ==================== GENRES ====================

func (s *movieService) GetGenres(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.Genre.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get genres", zap.Error(err))
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *movieService) CreateGenre(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Genre.FindByName(ctx, req.Name)
	if err != nil {
		s.log.Error("Failed to check genre name", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("check genre: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("genre %w", ErrAlreadyExists)
	}

	now := time.Now()
	genre := &entity.Genre{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
	}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		s.log.Error("Failed to create genre", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create genre: %w", err)
	}

	s.log.Info("Genre created", zap.String("genre_id", genre.ID.String()), zap.String("name", genre.Name))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *movieService) UpdateGenre(ctx context.Context, genreID string, req *request.GenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(genreID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid genre id", ErrValidation)
	}

	genre, err := s.repo.Genre.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find genre", zap.Error(err), zap.String("genre_id", genreID))
		return nil, fmt.Errorf("find genre: %w", err)
	}
	if genre == nil {
		return nil, fmt.Errorf("genre %w", ErrNotFound)
	}

	genre.Name = req.Name
	genre.UpdatedAt = time.Now()

	if err := s.repo.Genre.Update(ctx, genre); err != nil {
		s.log.Error("Failed to update genre", zap.Error(err), zap.String("genre_id", genreID))
		return nil, fmt.Errorf("update genre: %w", err)
	}

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *movieService) DeleteGenre(ctx context.Context, genreID string) error {
	id, err := uuid.Parse(genreID)
	if err != nil {
		return fmt.Errorf("%w: invalid genre id", ErrValidation)
	}

	genre, err := s.repo.Genre.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find genre", zap.Error(err), zap.String("genre_id", genreID))
		return fmt.Errorf("find genre: %w", err)
	}
	if genre == nil {
		return fmt.Errorf("genre %w", ErrNotFound)
	}

	if err := s.repo.MovieGenre.DeleteByGenreID(ctx, id); err != nil {
		s.log.Error("Failed to unlink genre", zap.Error(err), zap.String("genre_id", genreID))
		return fmt.Errorf("unlink genre: %w", err)
	}
	if err := s.repo.Genre.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete genre", zap.Error(err), zap.String("genre_id", genreID))
		return fmt.Errorf("delete genre: %w", err)
	}

	s.log.Info("Genre deleted", zap.String("genre_id", genreID))
	return nil
}

// ==================== HELPER METHODS ====================

// parseGenreIDs verifies every referenced genre exists before any link is
// written
func (s *movieService) parseGenreIDs(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid genre id %q", ErrValidation, value)
		}

		genre, err := s.repo.Genre.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find genre: %w", err)
		}
		if genre == nil {
			return nil, fmt.Errorf("genre %s %w", value, ErrNotFound)
		}

		ids = append(ids, id)
	}
	return ids, nil
}

func (s *movieService) linkGenres(ctx context.Context, movieID uuid.UUID, genreIDs []uuid.UUID) error {
	if len(genreIDs) == 0 {
		return nil
	}

	movieGenres := make([]*entity.MovieGenre, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		movieGenres = append(movieGenres, &entity.MovieGenre{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			MovieID: movieID,
			GenreID: genreID,
		})
	}

	return s.repo.MovieGenre.CreateBatch(ctx, movieGenres)
}
