package repository

import (
	"context"
	"fmt"
	"strings"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, offset, limit int, releaseStatus *string) ([]*entity.Movie, error)
	CountAll(ctx context.Context, releaseStatus *string) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, poster_url, rating,
		                   release_date, duration_in_minutes, ticket_price,
		                   release_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.PosterURL,
		movie.Rating,
		movie.ReleaseDate,
		movie.DurationInMinutes,
		movie.TicketPrice,
		movie.ReleaseStatus,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, description, poster_url, rating, release_date,
		       duration_in_minutes, ticket_price, release_status,
		       created_at, updated_at, deleted_at
		FROM movies
		WHERE id = $1 AND deleted_at IS NULL
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterURL,
		&movie.Rating,
		&movie.ReleaseDate,
		&movie.DurationInMinutes,
		&movie.TicketPrice,
		&movie.ReleaseStatus,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, offset, limit int, releaseStatus *string) ([]*entity.Movie, error) {
	// Build query with optional release status filter
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, title, description, poster_url, rating, release_date,
		       duration_in_minutes, ticket_price, release_status,
		       created_at, updated_at
		FROM movies
		WHERE deleted_at IS NULL
	`)

	args := []interface{}{}
	argCount := 1

	if releaseStatus != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND release_status = $%d", argCount))
		args = append(args, *releaseStatus)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY release_date DESC")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Stringp("release_status", releaseStatus),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterURL,
			&movie.Rating,
			&movie.ReleaseDate,
			&movie.DurationInMinutes,
			&movie.TicketPrice,
			&movie.ReleaseStatus,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, releaseStatus *string) (int64, error) {
	query := `SELECT COUNT(*) FROM movies WHERE deleted_at IS NULL`
	args := []interface{}{}

	if releaseStatus != nil {
		query += " AND release_status = $1"
		args = append(args, *releaseStatus)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, poster_url = $4, rating = $5,
		    release_date = $6, duration_in_minutes = $7, ticket_price = $8,
		    release_status = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.PosterURL,
		movie.Rating,
		movie.ReleaseDate,
		movie.DurationInMinutes,
		movie.TicketPrice,
		movie.ReleaseStatus,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s not found", movie.ID.String())
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE movies SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("delete movie %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s not found", id.String())
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}
