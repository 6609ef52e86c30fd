package repository

import (
	"context"
	"fmt"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SettingRepository interface {
	Create(ctx context.Context, setting *entity.Setting) error
	FindByKey(ctx context.Context, key string) (*entity.Setting, error)
	FindAll(ctx context.Context) ([]*entity.Setting, error)
	Update(ctx context.Context, setting *entity.Setting) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type settingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSettingRepository(db database.PgxIface, log *zap.Logger) SettingRepository {
	return &settingRepository{
		db:  db,
		log: log.With(zap.String("repository", "setting")),
	}
}

func (r *settingRepository) Create(ctx context.Context, setting *entity.Setting) error {
	query := `
		INSERT INTO settings (id, key, type, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		setting.ID,
		setting.Key,
		setting.Type,
		setting.Value,
		setting.CreatedAt,
		setting.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create setting",
			zap.Error(err),
			zap.String("key", setting.Key),
		)
		return fmt.Errorf("create setting %s: %w", setting.Key, err)
	}

	return nil
}

func (r *settingRepository) FindByKey(ctx context.Context, key string) (*entity.Setting, error) {
	query := `
		SELECT id, key, type, value, created_at, updated_at
		FROM settings
		WHERE key = $1
	`

	var setting entity.Setting
	err := r.db.QueryRow(ctx, query, key).Scan(
		&setting.ID,
		&setting.Key,
		&setting.Type,
		&setting.Value,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find setting by key",
			zap.Error(err),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("find setting by key %s: %w", key, err)
	}

	return &setting, nil
}

func (r *settingRepository) FindAll(ctx context.Context) ([]*entity.Setting, error) {
	query := `
		SELECT id, key, type, value, created_at, updated_at
		FROM settings
		ORDER BY key
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find settings", zap.Error(err))
		return nil, fmt.Errorf("find settings: %w", err)
	}
	defer rows.Close()

	var settings []*entity.Setting
	for rows.Next() {
		var setting entity.Setting
		err := rows.Scan(
			&setting.ID,
			&setting.Key,
			&setting.Type,
			&setting.Value,
			&setting.CreatedAt,
			&setting.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan setting row", zap.Error(err))
			return nil, fmt.Errorf("scan setting row: %w", err)
		}
		settings = append(settings, &setting)
	}

	return settings, nil
}

func (r *settingRepository) Update(ctx context.Context, setting *entity.Setting) error {
	query := `
		UPDATE settings
		SET type = $2, value = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		setting.ID,
		setting.Type,
		setting.Value,
		setting.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update setting",
			zap.Error(err),
			zap.String("key", setting.Key),
		)
		return fmt.Errorf("update setting %s: %w", setting.Key, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("setting %s not found", setting.Key)
	}

	return nil
}

func (r *settingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM settings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete setting",
			zap.Error(err),
			zap.String("setting_id", id.String()),
		)
		return fmt.Errorf("delete setting %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("setting %s not found", id.String())
	}

	r.log.Info("Setting deleted", zap.String("setting_id", id.String()))
	return nil
}
