package service

import (
	"context"
	"testing"
	"time"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySettings struct {
	byUser map[uuid.UUID]*models.UserSettings
}

func newMemorySettings() *memorySettings {
	return &memorySettings{byUser: make(map[uuid.UUID]*models.UserSettings)}
}

func (m *memorySettings) GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	s, ok := m.byUser[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memorySettings) Insert(ctx context.Context, settings *models.UserSettings) error {
	cp := *settings
	m.byUser[settings.UserID] = &cp
	return nil
}

func (m *memorySettings) Update(ctx context.Context, settings *models.UserSettings) error {
	cp := *settings
	m.byUser[settings.UserID] = &cp
	return nil
}

func newSettingsFixture() (*SettingsService, *memoryUsers, *recordingUnlocker) {
	users := newMemoryUsers()
	unlocker := &recordingUnlocker{}
	svc := NewSettingsService(newMemorySettings(), users, unlocker, zap.NewNop())
	return svc, users, unlocker
}

func seedUser(t *testing.T, users *memoryUsers) uuid.UUID {
	t.Helper()
	user := &models.User{ID: uuid.New(), FullName: "Ana Torres", Email: "ana@example.com"}
	require.NoError(t, users.Create(context.Background(), user))
	return user.ID
}

func TestGetSettings_CreatesDefaultsOnFirstAccess(t *testing.T) {
	svc, users, _ := newSettingsFixture()
	userID := seedUser(t, users)

	settings, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "COP", settings.Currency)
	assert.Equal(t, "light", settings.Theme)
	assert.Equal(t, "es", settings.Language)

	again, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID, "second access created a new row")
}

func TestUpdateSettings_PartialUpdateSignalsAchievement(t *testing.T) {
	svc, users, unlocker := newSettingsFixture()
	userID := seedUser(t, users)

	theme := "dark"
	settings, err := svc.Update(context.Background(), userID, &dto.UpdateSettingsRequest{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Theme)
	assert.Equal(t, "COP", settings.Currency, "untouched field changed")
	assert.Equal(t, 1, unlocker.count(models.AchievementFirstSettingsChange))
}

func TestUpdateSettings_RejectsUnknownTheme(t *testing.T) {
	svc, users, _ := newSettingsFixture()
	userID := seedUser(t, users)

	theme := "neón"
	_, err := svc.Update(context.Background(), userID, &dto.UpdateSettingsRequest{Theme: &theme})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "theme")
}

func TestSelectSavingsMethod_SetsMethodAndSignals(t *testing.T) {
	svc, users, unlocker := newSettingsFixture()
	userID := seedUser(t, users)

	user, err := svc.SelectSavingsMethod(context.Background(), userID, &dto.SelectSavingsMethodRequest{
		Method: "50-30-20",
	})
	require.NoError(t, err)
	require.NotNil(t, user.SelectedSavingsMethod)
	assert.Equal(t, models.SavingsMethod503020, *user.SelectedSavingsMethod)
	assert.NotNil(t, user.SavingsMethodSelectedAt)
	assert.Equal(t, 1, unlocker.count(models.AchievementSavingMethodChosen))
}

func TestSelectSavingsMethod_LockedWithinCooldown(t *testing.T) {
	svc, users, _ := newSettingsFixture()
	userID := seedUser(t, users)

	_, err := svc.SelectSavingsMethod(context.Background(), userID, &dto.SelectSavingsMethodRequest{Method: "sobres"})
	require.NoError(t, err)

	_, err = svc.SelectSavingsMethod(context.Background(), userID, &dto.SelectSavingsMethodRequest{Method: "redondeo"})
	assert.ErrorIs(t, err, ErrMethodChangeLocked)
}

func TestSelectSavingsMethod_UnlockedAfterCooldown(t *testing.T) {
	svc, users, _ := newSettingsFixture()
	userID := seedUser(t, users)

	selectedAt := time.Now().Add(-16 * 24 * time.Hour)
	method := models.SavingsMethodEnvelopes
	users.users[userID].SelectedSavingsMethod = &method
	users.users[userID].SavingsMethodSelectedAt = &selectedAt

	user, err := svc.SelectSavingsMethod(context.Background(), userID, &dto.SelectSavingsMethodRequest{Method: "redondeo"})
	require.NoError(t, err)
	assert.Equal(t, models.SavingsMethodRounding, *user.SelectedSavingsMethod)
}

func TestSelectSavingsMethod_RejectsUnknownMethod(t *testing.T) {
	svc, users, _ := newSettingsFixture()
	userID := seedUser(t, users)

	_, err := svc.SelectSavingsMethod(context.Background(), userID, &dto.SelectSavingsMethodRequest{Method: "magia"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "method")
}
