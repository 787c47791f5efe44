package repository

import (
	"context"
	"errors"

	"ahorra-oink/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var goalColumns = []string{
	"id", "user_id", "name", "description", "target_amount", "current_amount",
	"target_date", "is_completed", "created_at", "updated_at",
}

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *GoalRepository) Insert(ctx context.Context, goal *models.SavingsGoal) error {
	query := squirrel.Insert("savings_goals").
		Columns(goalColumns...).
		Values(goal.ID, goal.UserID, goal.Name, goal.Description, goal.TargetAmount,
			goal.CurrentAmount, goal.TargetDate, goal.IsCompleted,
			goal.CreatedAt, goal.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) GetForUser(ctx context.Context, userID, goalID uuid.UUID) (*models.SavingsGoal, error) {
	query := squirrel.Select(goalColumns...).
		From("savings_goals").
		Where(squirrel.Eq{"id": goalID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var goal models.SavingsGoal
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&goal.ID, &goal.UserID, &goal.Name, &goal.Description, &goal.TargetAmount,
		&goal.CurrentAmount, &goal.TargetDate, &goal.IsCompleted,
		&goal.CreatedAt, &goal.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrSavingsGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error) {
	query := squirrel.Select(goalColumns...).
		From("savings_goals").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
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

	var goals []*models.SavingsGoal
	for rows.Next() {
		var goal models.SavingsGoal
		if err := rows.Scan(
			&goal.ID, &goal.UserID, &goal.Name, &goal.Description, &goal.TargetAmount,
			&goal.CurrentAmount, &goal.TargetDate, &goal.IsCompleted,
			&goal.CreatedAt, &goal.UpdatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, &goal)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, goal *models.SavingsGoal) error {
	query := squirrel.Update("savings_goals").
		Set("name", goal.Name).
		Set("description", goal.Description).
		Set("target_amount", goal.TargetAmount).
		Set("current_amount", goal.CurrentAmount).
		Set("target_date", goal.TargetDate).
		Set("is_completed", goal.IsCompleted).
		Set("updated_at", goal.UpdatedAt).
		Where(squirrel.Eq{"id": goal.ID, "user_id": goal.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrSavingsGoalNotFound
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	query := squirrel.Delete("savings_goals").
		Where(squirrel.Eq{"id": goalID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrSavingsGoalNotFound
	}
	return nil
}

func (r *GoalRepository) CountByCompletion(ctx context.Context, userID uuid.UUID) (active, completed int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE NOT is_completed),
		       COUNT(*) FILTER (WHERE is_completed)
		FROM savings_goals
		WHERE user_id = $1`, userID,
	).Scan(&active, &completed)
	return active, completed, err
}
