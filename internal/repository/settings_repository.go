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

var settingsColumns = []string{
	"id", "user_id", "currency", "theme", "notifications_enabled",
	"email_notifications", "monthly_budget_limit", "savings_goal_reminder",
	"transaction_reminder", "language", "created_at", "updated_at",
}

type SettingsRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSettingsRepository(db *pgxpool.Pool, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUser returns nil without error when the user has no settings row yet.
func (r *SettingsRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	query := squirrel.Select(settingsColumns...).
		From("user_settings").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var settings models.UserSettings
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&settings.ID, &settings.UserID, &settings.Currency, &settings.Theme,
		&settings.NotificationsEnabled, &settings.EmailNotifications,
		&settings.MonthlyBudgetLimit, &settings.SavingsGoalReminder,
		&settings.TransactionReminder, &settings.Language,
		&settings.CreatedAt, &settings.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) Insert(ctx context.Context, settings *models.UserSettings) error {
	query := squirrel.Insert("user_settings").
		Columns(settingsColumns...).
		Values(settings.ID, settings.UserID, settings.Currency, settings.Theme,
			settings.NotificationsEnabled, settings.EmailNotifications,
			settings.MonthlyBudgetLimit, settings.SavingsGoalReminder,
			settings.TransactionReminder, settings.Language,
			settings.CreatedAt, settings.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *SettingsRepository) Update(ctx context.Context, settings *models.UserSettings) error {
	query := squirrel.Update("user_settings").
		Set("currency", settings.Currency).
		Set("theme", settings.Theme).
		Set("notifications_enabled", settings.NotificationsEnabled).
		Set("email_notifications", settings.EmailNotifications).
		Set("monthly_budget_limit", settings.MonthlyBudgetLimit).
		Set("savings_goal_reminder", settings.SavingsGoalReminder).
		Set("transaction_reminder", settings.TransactionReminder).
		Set("language", settings.Language).
		Set("updated_at", settings.UpdatedAt).
		Where(squirrel.Eq{"user_id": settings.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
