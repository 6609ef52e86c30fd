package usecase

import (
	"context"
	"strconv"
	"sync"

	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/scheduling"

	"go.uber.org/zap"
)

// ruleLoader turns the settings table into the typed scheduling.Rules the
// showtime and purchase services consume, so rule reads are not scattered
// stringly-typed lookups. Values are cached until a setting write calls
// Invalidate.
type ruleLoader struct {
	settingRepo repository.SettingRepository
	log         *zap.Logger

	mu     sync.RWMutex
	cached *scheduling.Rules
}

func newRuleLoader(settingRepo repository.SettingRepository, log *zap.Logger) *ruleLoader {
	return &ruleLoader{
		settingRepo: settingRepo,
		log:         log.With(zap.String("component", "rule_loader")),
	}
}

// Rules returns the scheduling configuration, falling back to defaults for
// any missing or malformed setting row.
func (l *ruleLoader) Rules(ctx context.Context) scheduling.Rules {
	l.mu.RLock()
	if l.cached != nil {
		rules := *l.cached
		l.mu.RUnlock()
		return rules
	}
	l.mu.RUnlock()

	rules := scheduling.Rules{
		MinIntervalMinutes:         l.intSetting(ctx, scheduling.SettingMinIntervalMinutes, scheduling.DefaultMinIntervalMinutes),
		SeatSelectionWindowMinutes: l.intSetting(ctx, scheduling.SettingSeatSelectionMinutes, scheduling.DefaultSeatSelectionMinutes),
		MaxTicketsPerPurchase:      l.intSetting(ctx, scheduling.SettingMaxTicketsPerPurchase, scheduling.DefaultMaxTicketsPerPurchase),
	}

	l.mu.Lock()
	l.cached = &rules
	l.mu.Unlock()

	return rules
}

// Invalidate drops the cached rules; the next read reloads from storage
func (l *ruleLoader) Invalidate() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

func (l *ruleLoader) intSetting(ctx context.Context, key string, defaultValue int) int {
	setting, err := l.settingRepo.FindByKey(ctx, key)
	if err != nil {
		l.log.Warn("Failed to read setting, using default",
			zap.Error(err),
			zap.String("key", key),
			zap.Int("default", defaultValue),
		)
		return defaultValue
	}
	if setting == nil {
		return defaultValue
	}

	value, err := strconv.Atoi(setting.Value)
	if err != nil || value <= 0 {
		l.log.Warn("Setting is not a positive integer, using default",
			zap.String("key", key),
			zap.String("value", setting.Value),
			zap.Int("default", defaultValue),
		)
		return defaultValue
	}

	return value
}
