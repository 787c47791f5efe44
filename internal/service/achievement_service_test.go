package service

import (
	"context"
	"testing"
	"time"

	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryAchievements struct {
	catalog  map[uuid.UUID]*models.Achievement
	unlocked map[uuid.UUID]map[uuid.UUID]*models.UserAchievement
}

func newMemoryAchievements() *memoryAchievements {
	return &memoryAchievements{
		catalog:  make(map[uuid.UUID]*models.Achievement),
		unlocked: make(map[uuid.UUID]map[uuid.UUID]*models.UserAchievement),
	}
}

func (m *memoryAchievements) add(conditionType string, active bool) *models.Achievement {
	a := &models.Achievement{
		ID:            uuid.New(),
		Name:          conditionType,
		ConditionType: conditionType,
		IsActive:      active,
	}
	m.catalog[a.ID] = a
	return a
}

func (m *memoryAchievements) GetByCondition(ctx context.Context, conditionType string) (*models.Achievement, error) {
	for _, a := range m.catalog {
		if a.ConditionType == conditionType && a.IsActive {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memoryAchievements) InsertUnlock(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	if m.unlocked[userID] == nil {
		m.unlocked[userID] = make(map[uuid.UUID]*models.UserAchievement)
	}
	if _, ok := m.unlocked[userID][achievementID]; ok {
		return false, nil
	}
	m.unlocked[userID][achievementID] = &models.UserAchievement{
		ID:            uuid.New(),
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now(),
	}
	return true, nil
}

func (m *memoryAchievements) ListCatalog(ctx context.Context) ([]*models.Achievement, error) {
	var out []*models.Achievement
	for _, a := range m.catalog {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryAchievements) ListUnlocked(ctx context.Context, userID uuid.UUID) ([]*models.UserAchievement, error) {
	var out []*models.UserAchievement
	for _, ua := range m.unlocked[userID] {
		out = append(out, ua)
	}
	return out, nil
}

func (m *memoryAchievements) GetByID(ctx context.Context, id uuid.UUID) (*models.Achievement, error) {
	return m.catalog[id], nil
}

func (m *memoryAchievements) CountUnlocked(ctx context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(m.unlocked[userID])), nil
}

func TestUnlock_FirstSignalCreatesRepeatDoesNot(t *testing.T) {
	store := newMemoryAchievements()
	store.add(models.AchievementFirstIncome, true)
	svc := NewAchievementService(store, zap.NewNop())
	userID := uuid.New()

	created, err := svc.Unlock(context.Background(), userID, models.AchievementFirstIncome)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Unlock(context.Background(), userID, models.AchievementFirstIncome)
	require.NoError(t, err)
	assert.False(t, created, "repeated signal granted the achievement again")

	count, err := svc.CountUnlocked(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnlock_UnknownConditionIsNoOp(t *testing.T) {
	svc := NewAchievementService(newMemoryAchievements(), zap.NewNop())

	created, err := svc.Unlock(context.Background(), uuid.New(), "first_moon_landing")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestUnlock_InactiveAchievementIsSkipped(t *testing.T) {
	store := newMemoryAchievements()
	store.add(models.AchievementLogin, false)
	svc := NewAchievementService(store, zap.NewNop())

	created, err := svc.Unlock(context.Background(), uuid.New(), models.AchievementLogin)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestCatalog_MarksUnlockedEntries(t *testing.T) {
	store := newMemoryAchievements()
	income := store.add(models.AchievementFirstIncome, true)
	store.add(models.AchievementFirstExpense, true)
	svc := NewAchievementService(store, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Unlock(context.Background(), userID, models.AchievementFirstIncome)
	require.NoError(t, err)

	achievements, unlockedByID, err := svc.Catalog(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, achievements, 2)
	assert.Len(t, unlockedByID, 1)
	assert.Contains(t, unlockedByID, income.ID)
}

func TestUnlocked_ReturnsCatalogEntries(t *testing.T) {
	store := newMemoryAchievements()
	login := store.add(models.AchievementLogin, true)
	svc := NewAchievementService(store, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Unlock(context.Background(), userID, models.AchievementLogin)
	require.NoError(t, err)

	unlocked, byID, err := svc.Unlocked(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, login.ID, unlocked[0].AchievementID)
	assert.Equal(t, login, byID[login.ID])
}
