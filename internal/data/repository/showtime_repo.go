package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	// FindByHallID returns every showtime scheduled in a hall, optionally
	// excluding one id (the showtime being updated)
	FindByHallID(ctx context.Context, hallID uuid.UUID, excludeID *uuid.UUID) ([]*entity.Showtime, error)
	FindAll(ctx context.Context, offset, limit int, filter ShowtimeFilter) ([]*entity.Showtime, error)
	CountAll(ctx context.Context, filter ShowtimeFilter) (int64, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShowtimeFilter narrows listing queries; nil fields are ignored
type ShowtimeFilter struct {
	MovieID *uuid.UUID
	HallID  *uuid.UUID
	Date    *time.Time
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, hall_id, started_datetime, ended_datetime, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.HallID,
		showtime.StartedDateTime,
		showtime.EndedDateTime,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("hall_id", showtime.HallID.String()),
			zap.Time("started_datetime", showtime.StartedDateTime),
		)
		return fmt.Errorf("create showtime for movie %s hall %s: %w",
			showtime.MovieID.String(), showtime.HallID.String(), err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, hall_id, started_datetime, ended_datetime, created_at, updated_at, deleted_at
		FROM showtimes
		WHERE id = $1 AND deleted_at IS NULL
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.HallID,
		&showtime.StartedDateTime,
		&showtime.EndedDateTime,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
		&showtime.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindByHallID(ctx context.Context, hallID uuid.UUID, excludeID *uuid.UUID) ([]*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, hall_id, started_datetime, ended_datetime, created_at, updated_at, deleted_at
		FROM showtimes
		WHERE hall_id = $1 AND deleted_at IS NULL
	`

	args := []interface{}{hallID}
	if excludeID != nil {
		query += " AND id <> $2"
		args = append(args, *excludeID)
	}
	query += " ORDER BY started_datetime"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find showtimes by hall ID",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("find showtimes by hall ID %s: %w", hallID.String(), err)
	}
	defer rows.Close()

	return scanShowtimeRows(rows, r.log)
}

func (r *showtimeRepository) FindAll(ctx context.Context, offset, limit int, filter ShowtimeFilter) ([]*entity.Showtime, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, movie_id, hall_id, started_datetime, ended_datetime, created_at, updated_at, deleted_at
		FROM showtimes
		WHERE deleted_at IS NULL
	`)

	args := []interface{}{}
	argCount := 1

	if filter.MovieID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND movie_id = $%d", argCount))
		args = append(args, *filter.MovieID)
		argCount++
	}
	if filter.HallID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND hall_id = $%d", argCount))
		args = append(args, *filter.HallID)
		argCount++
	}
	if filter.Date != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND started_datetime::date = $%d::date", argCount))
		args = append(args, *filter.Date)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY started_datetime")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find showtimes", zap.Error(err))
		return nil, fmt.Errorf("find showtimes: %w", err)
	}
	defer rows.Close()

	return scanShowtimeRows(rows, r.log)
}

func (r *showtimeRepository) CountAll(ctx context.Context, filter ShowtimeFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM showtimes WHERE deleted_at IS NULL`
	args := []interface{}{}
	argCount := 1

	if filter.MovieID != nil {
		query += fmt.Sprintf(" AND movie_id = $%d", argCount)
		args = append(args, *filter.MovieID)
		argCount++
	}
	if filter.HallID != nil {
		query += fmt.Sprintf(" AND hall_id = $%d", argCount)
		args = append(args, *filter.HallID)
		argCount++
	}
	if filter.Date != nil {
		query += fmt.Sprintf(" AND started_datetime::date = $%d::date", argCount)
		args = append(args, *filter.Date)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count showtimes", zap.Error(err))
		return 0, fmt.Errorf("count showtimes: %w", err)
	}

	return total, nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, hall_id = $3, started_datetime = $4, ended_datetime = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.HallID,
		showtime.StartedDateTime,
		showtime.EndedDateTime,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return fmt.Errorf("update showtime %s: %w", showtime.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %s not found", showtime.ID.String())
	}

	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE showtimes SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return fmt.Errorf("delete showtime %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %s not found", id.String())
	}

	r.log.Info("Showtime deleted", zap.String("showtime_id", id.String()))
	return nil
}

func scanShowtimeRows(rows pgx.Rows, log *zap.Logger) ([]*entity.Showtime, error) {
	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.HallID,
			&showtime.StartedDateTime,
			&showtime.EndedDateTime,
			&showtime.CreatedAt,
			&showtime.UpdatedAt,
			&showtime.DeletedAt,
		)
		if err != nil {
			log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	return showtimes, nil
}
