package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SettingService interface {
	GetSettings(ctx context.Context) ([]response.SettingResponse, error)
	GetSettingByKey(ctx context.Context, key string) (*response.SettingResponse, error)
	CreateSetting(ctx context.Context, req *request.SettingRequest) (*response.SettingResponse, error)
	UpdateSetting(ctx context.Context, key string, req *request.SettingUpdateRequest) (*response.SettingResponse, error)
	DeleteSetting(ctx context.Context, key string) error
}

type settingService struct {
	settingRepo repository.SettingRepository
	rules       *ruleLoader
	log         *zap.Logger
}

func NewSettingService(
	settingRepo repository.SettingRepository,
	rules *ruleLoader,
	log *zap.Logger,
) SettingService {
	return &settingService{
		settingRepo: settingRepo,
		rules:       rules,
		log:         log.With(zap.String("service", "setting")),
	}
}

func (s *settingService) GetSettings(ctx context.Context) ([]response.SettingResponse, error) {
	settings, err := s.settingRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get settings", zap.Error(err))
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return response.SettingsToResponse(settings), nil
}

func (s *settingService) GetSettingByKey(ctx context.Context, key string) (*response.SettingResponse, error) {
	setting, err := s.settingRepo.FindByKey(ctx, key)
	if err != nil {
		s.log.Error("Failed to find setting", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("find setting: %w", err)
	}
	if setting == nil {
		return nil, fmt.Errorf("setting %w", ErrNotFound)
	}

	resp := response.SettingToResponse(setting)
	return &resp, nil
}

func (s *settingService) CreateSetting(ctx context.Context, req *request.SettingRequest) (*response.SettingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create setting validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	settingType := entity.SettingType(req.Type)
	if err := validateSettingValue(settingType, req.Value); err != nil {
		return nil, err
	}

	existing, err := s.settingRepo.FindByKey(ctx, req.Key)
	if err != nil {
		s.log.Error("Failed to check setting key", zap.Error(err), zap.String("key", req.Key))
		return nil, fmt.Errorf("check setting: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("setting key %w", ErrAlreadyExists)
	}

	now := time.Now()
	setting := &entity.Setting{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Key:   req.Key,
		Type:  settingType,
		Value: req.Value,
	}

	if err := s.settingRepo.Create(ctx, setting); err != nil {
		s.log.Error("Failed to create setting", zap.Error(err), zap.String("key", req.Key))
		return nil, fmt.Errorf("create setting: %w", err)
	}

	s.rules.Invalidate()
	s.log.Info("Setting created", zap.String("key", setting.Key), zap.String("value", setting.Value))

	resp := response.SettingToResponse(setting)
	return &resp, nil
}

func (s *settingService) UpdateSetting(ctx context.Context, key string, req *request.SettingUpdateRequest) (*response.SettingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update setting validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	setting, err := s.settingRepo.FindByKey(ctx, key)
	if err != nil {
		s.log.Error("Failed to find setting", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("find setting: %w", err)
	}
	if setting == nil {
		return nil, fmt.Errorf("setting %w", ErrNotFound)
	}

	if req.Type != nil {
		setting.Type = entity.SettingType(*req.Type)
	}
	if req.Value != nil {
		setting.Value = *req.Value
	}
	if err := validateSettingValue(setting.Type, setting.Value); err != nil {
		return nil, err
	}
	setting.UpdatedAt = time.Now()

	if err := s.settingRepo.Update(ctx, setting); err != nil {
		s.log.Error("Failed to update setting", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("update setting: %w", err)
	}

	// Scheduling rules may have changed; drop the cache
	s.rules.Invalidate()
	s.log.Info("Setting updated", zap.String("key", key), zap.String("value", setting.Value))

	resp := response.SettingToResponse(setting)
	return &resp, nil
}

func (s *settingService) DeleteSetting(ctx context.Context, key string) error {
	setting, err := s.settingRepo.FindByKey(ctx, key)
	if err != nil {
		s.log.Error("Failed to find setting", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("find setting: %w", err)
	}
	if setting == nil {
		return fmt.Errorf("setting %w", ErrNotFound)
	}

	if err := s.settingRepo.Delete(ctx, setting.ID); err != nil {
		s.log.Error("Failed to delete setting", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("delete setting: %w", err)
	}

	// Deleted rules fall back to their defaults
	s.rules.Invalidate()
	s.log.Info("Setting deleted", zap.String("key", key))
	return nil
}

func validateSettingValue(settingType entity.SettingType, value string) error {
	switch settingType {
	case entity.SettingTypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: value is not a number", ErrValidation)
		}
	case entity.SettingTypeJSON:
		if !json.Valid([]byte(value)) {
			return fmt.Errorf("%w: value is not valid JSON", ErrValidation)
		}
	}
	return nil
}
