package usecase

import (
	"context"
	"testing"

	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/scheduling"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSettingEnv() (SettingService, *ruleLoader, *fakeSettingRepo) {
	settingRepo := newFakeSettingRepo()
	log := zap.NewNop()
	rules := newRuleLoader(settingRepo, log)
	return NewSettingService(settingRepo, rules, log), rules, settingRepo
}

func TestSettingCRUD(t *testing.T) {
	service, _, _ := newSettingEnv()
	ctx := context.Background()

	created, err := service.CreateSetting(ctx, &request.SettingRequest{
		Key:   scheduling.SettingMinIntervalMinutes,
		Type:  "number",
		Value: "45",
	})
	require.NoError(t, err)
	require.Equal(t, "45", created.Value)

	got, err := service.GetSettingByKey(ctx, scheduling.SettingMinIntervalMinutes)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	newValue := "60"
	updated, err := service.UpdateSetting(ctx, scheduling.SettingMinIntervalMinutes, &request.SettingUpdateRequest{
		Value: &newValue,
	})
	require.NoError(t, err)
	require.Equal(t, "60", updated.Value)

	require.NoError(t, service.DeleteSetting(ctx, scheduling.SettingMinIntervalMinutes))

	_, err = service.GetSettingByKey(ctx, scheduling.SettingMinIntervalMinutes)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSettingDuplicateKey(t *testing.T) {
	service, _, _ := newSettingEnv()
	ctx := context.Background()

	req := &request.SettingRequest{Key: "support_email_visible", Type: "string", Value: "yes"}
	_, err := service.CreateSetting(ctx, req)
	require.NoError(t, err)

	_, err = service.CreateSetting(ctx, req)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSettingValueTypeValidation(t *testing.T) {
	service, _, _ := newSettingEnv()
	ctx := context.Background()

	_, err := service.CreateSetting(ctx, &request.SettingRequest{
		Key:   "some_number",
		Type:  "number",
		Value: "not-a-number",
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = service.CreateSetting(ctx, &request.SettingRequest{
		Key:   "some_json",
		Type:  "json",
		Value: "{broken",
	})
	require.ErrorIs(t, err, ErrValidation)
}

// A setting write must drop the cached rules so the next scheduling
// operation sees the new value.
func TestSettingWriteInvalidatesRules(t *testing.T) {
	service, rules, _ := newSettingEnv()
	ctx := context.Background()

	require.Equal(t, scheduling.DefaultMinIntervalMinutes, rules.Rules(ctx).MinIntervalMinutes)

	_, err := service.CreateSetting(ctx, &request.SettingRequest{
		Key:   scheduling.SettingMinIntervalMinutes,
		Type:  "number",
		Value: "45",
	})
	require.NoError(t, err)
	require.Equal(t, 45, rules.Rules(ctx).MinIntervalMinutes)

	newValue := "15"
	_, err = service.UpdateSetting(ctx, scheduling.SettingMinIntervalMinutes, &request.SettingUpdateRequest{
		Value: &newValue,
	})
	require.NoError(t, err)
	require.Equal(t, 15, rules.Rules(ctx).MinIntervalMinutes)

	require.NoError(t, service.DeleteSetting(ctx, scheduling.SettingMinIntervalMinutes))
	require.Equal(t, scheduling.DefaultMinIntervalMinutes, rules.Rules(ctx).MinIntervalMinutes)
}

// Rules are cached between reads; repeated lookups must not hit storage
func TestRulesAreCached(t *testing.T) {
	_, rules, settingRepo := newSettingEnv()
	ctx := context.Background()

	rules.Rules(ctx)
	reads := settingRepo.reads
	rules.Rules(ctx)
	rules.Rules(ctx)
	require.Equal(t, reads, settingRepo.reads)
}

func TestMalformedSettingFallsBackToDefault(t *testing.T) {
	service, rules, _ := newSettingEnv()
	ctx := context.Background()

	// A string-typed row under a rule key passes setting validation but
	// cannot parse as a positive integer
	_, err := service.CreateSetting(ctx, &request.SettingRequest{
		Key:   scheduling.SettingMaxTicketsPerPurchase,
		Type:  "string",
		Value: "plenty",
	})
	require.NoError(t, err)

	require.Equal(t, scheduling.DefaultMaxTicketsPerPurchase, rules.Rules(ctx).MaxTicketsPerPurchase)
}
