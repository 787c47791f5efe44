package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserSettings struct {
	ID                   uuid.UUID        `db:"id"`
	UserID               uuid.UUID        `db:"user_id"`
	Currency             string           `db:"currency"`
	Theme                string           `db:"theme"`
	NotificationsEnabled bool             `db:"notifications_enabled"`
	EmailNotifications   bool             `db:"email_notifications"`
	MonthlyBudgetLimit   *decimal.Decimal `db:"monthly_budget_limit"`
	SavingsGoalReminder  bool             `db:"savings_goal_reminder"`
	TransactionReminder  bool             `db:"transaction_reminder"`
	Language             string           `db:"language"`
	CreatedAt            time.Time        `db:"created_at"`
	UpdatedAt            time.Time        `db:"updated_at"`
}

// DefaultUserSettings returns the settings a user starts with.
func DefaultUserSettings(userID uuid.UUID) *UserSettings {
	now := time.Now()
	return &UserSettings{
		ID:                   uuid.New(),
		UserID:               userID,
		Currency:             "COP",
		Theme:                "light",
		NotificationsEnabled: true,
		EmailNotifications:   true,
		SavingsGoalReminder:  true,
		TransactionReminder:  false,
		Language:             "es",
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// ValidCurrency reports whether c is a supported currency code.
func ValidCurrency(c string) bool {
	switch c {
	case "COP", "USD", "EUR":
		return true
	}
	return false
}

// ValidTheme reports whether t is a supported UI theme.
func ValidTheme(t string) bool {
	switch t {
	case "light", "dark", "auto":
		return true
	}
	return false
}
