package repository

import (
	"context"
	"errors"
	"time"

	"ahorra-oink/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var achievementColumns = []string{
	"id", "name", "description", "icon", "points", "condition_type",
	"condition_value", "is_active", "created_at",
}

type AchievementRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAchievementRepository(db *pgxpool.Pool, logger *zap.Logger) *AchievementRepository {
	return &AchievementRepository{
		db:     db,
		logger: logger,
	}
}

// GetByCondition returns nil without error when no active achievement
// matches the condition code.
func (r *AchievementRepository) GetByCondition(ctx context.Context, conditionType string) (*models.Achievement, error) {
	return r.getOne(ctx, squirrel.Eq{"condition_type": conditionType, "is_active": true})
}

// GetByID returns nil without error when no achievement matches.
func (r *AchievementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Achievement, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *AchievementRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Achievement, error) {
	query := squirrel.Select(achievementColumns...).
		From("achievements").
		Where(pred).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var achievement models.Achievement
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&achievement.ID, &achievement.Name, &achievement.Description, &achievement.Icon,
		&achievement.Points, &achievement.ConditionType, &achievement.ConditionValue,
		&achievement.IsActive, &achievement.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

// InsertUnlock grants an achievement once per user. It reports false when
// the user already holds it.
func (r *AchievementRepository) InsertUnlock(ctx context.Context, userID, achievementID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO user_achievements (id, user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		uuid.New(), userID, achievementID, time.Now(),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AchievementRepository) ListCatalog(ctx context.Context) ([]*models.Achievement, error) {
	query := squirrel.Select(achievementColumns...).
		From("achievements").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("points ASC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []*models.Achievement
	for rows.Next() {
		var achievement models.Achievement
		if err := rows.Scan(
			&achievement.ID, &achievement.Name, &achievement.Description, &achievement.Icon,
			&achievement.Points, &achievement.ConditionType, &achievement.ConditionValue,
			&achievement.IsActive, &achievement.CreatedAt,
		); err != nil {
			return nil, err
		}
		achievements = append(achievements, &achievement)
	}
	return achievements, rows.Err()
}

func (r *AchievementRepository) ListUnlocked(ctx context.Context, userID uuid.UUID) ([]*models.UserAchievement, error) {
	query := squirrel.Select("id", "user_id", "achievement_id", "unlocked_at").
		From("user_achievements").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("unlocked_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocked []*models.UserAchievement
	for rows.Next() {
		var ua models.UserAchievement
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.AchievementID, &ua.UnlockedAt); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, &ua)
	}
	return unlocked, rows.Err()
}

func (r *AchievementRepository) CountUnlocked(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_achievements WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}
