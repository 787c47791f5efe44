package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Condition codes for the seeded achievement catalog.
const (
	AchievementLogin               = "login"
	AchievementFirstIncome         = "first_income"
	AchievementFirstExpense        = "first_expense"
	AchievementFirstSettingsChange = "first_settings_change"
	AchievementSavingMethodChosen  = "saving_method_selected"
)

type Achievement struct {
	ID             uuid.UUID        `db:"id"`
	Name           string           `db:"name"`
	Description    string           `db:"description"`
	Icon           string           `db:"icon"`
	Points         int              `db:"points"`
	ConditionType  string           `db:"condition_type"`
	ConditionValue *decimal.Decimal `db:"condition_value"`
	IsActive       bool             `db:"is_active"`
	CreatedAt      time.Time        `db:"created_at"`
}

type UserAchievement struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	AchievementID uuid.UUID `db:"achievement_id"`
	UnlockedAt    time.Time `db:"unlocked_at"`
}
