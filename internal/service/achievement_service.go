package service

import (
	"context"

	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AchievementStore persists the achievement catalog and per-user unlocks.
// InsertUnlock reports false when the user already holds the achievement.
type AchievementStore interface {
	GetByCondition(ctx context.Context, conditionType string) (*models.Achievement, error)
	InsertUnlock(ctx context.Context, userID, achievementID uuid.UUID) (bool, error)
	ListCatalog(ctx context.Context) ([]*models.Achievement, error)
	ListUnlocked(ctx context.Context, userID uuid.UUID) ([]*models.UserAchievement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Achievement, error)
	CountUnlocked(ctx context.Context, userID uuid.UUID) (int64, error)
}

type AchievementService struct {
	store  AchievementStore
	logger *zap.Logger
}

func NewAchievementService(store AchievementStore, logger *zap.Logger) *AchievementService {
	return &AchievementService{store: store, logger: logger}
}

// Unlock grants the achievement matching conditionType to the user. It
// returns true only when the unlock is new; false when there is no matching
// active achievement or the user already holds it.
func (s *AchievementService) Unlock(ctx context.Context, userID uuid.UUID, conditionType string) (bool, error) {
	achievement, err := s.store.GetByCondition(ctx, conditionType)
	if err != nil {
		return false, err
	}
	if achievement == nil || !achievement.IsActive {
		return false, nil
	}

	created, err := s.store.InsertUnlock(ctx, userID, achievement.ID)
	if err != nil {
		return false, err
	}
	if created {
		s.logger.Info("Achievement unlocked",
			zap.String("user_id", userID.String()),
			zap.String("achievement", achievement.Name),
		)
	}
	return created, nil
}

// Catalog returns every active achievement with the user's unlock status.
func (s *AchievementService) Catalog(ctx context.Context, userID uuid.UUID) ([]*models.Achievement, map[uuid.UUID]*models.UserAchievement, error) {
	achievements, err := s.store.ListCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	unlocked, err := s.store.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	unlockedByID := make(map[uuid.UUID]*models.UserAchievement, len(unlocked))
	for _, ua := range unlocked {
		unlockedByID[ua.AchievementID] = ua
	}
	return achievements, unlockedByID, nil
}

// Unlocked returns the user's unlocked achievements, newest first, together
// with their catalog entries.
func (s *AchievementService) Unlocked(ctx context.Context, userID uuid.UUID) ([]*models.UserAchievement, map[uuid.UUID]*models.Achievement, error) {
	unlocked, err := s.store.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[uuid.UUID]*models.Achievement, len(unlocked))
	for _, ua := range unlocked {
		if _, ok := byID[ua.AchievementID]; ok {
			continue
		}
		achievement, err := s.store.GetByID(ctx, ua.AchievementID)
		if err != nil {
			return nil, nil, err
		}
		byID[ua.AchievementID] = achievement
	}
	return unlocked, byID, nil
}

// CountUnlocked returns how many achievements the user holds.
func (s *AchievementService) CountUnlocked(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.store.CountUnlocked(ctx, userID)
}
