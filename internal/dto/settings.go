package dto

import "github.com/shopspring/decimal"

// UpdateSettingsRequest carries a partial update; nil fields are untouched.
type UpdateSettingsRequest struct {
	Currency             *string          `json:"currency,omitempty"`
	Theme                *string          `json:"theme,omitempty"`
	NotificationsEnabled *bool            `json:"notifications_enabled,omitempty"`
	EmailNotifications   *bool            `json:"email_notifications,omitempty"`
	MonthlyBudgetLimit   *decimal.Decimal `json:"monthly_budget_limit,omitempty"`
	SavingsGoalReminder  *bool            `json:"savings_goal_reminder,omitempty"`
	TransactionReminder  *bool            `json:"transaction_reminder,omitempty"`
	Language             *string          `json:"language,omitempty"`
}

type SettingsResponse struct {
	ID                   string           `json:"id"`
	Currency             string           `json:"currency"`
	Theme                string           `json:"theme"`
	NotificationsEnabled bool             `json:"notifications_enabled"`
	EmailNotifications   bool             `json:"email_notifications"`
	MonthlyBudgetLimit   *decimal.Decimal `json:"monthly_budget_limit"`
	SavingsGoalReminder  bool             `json:"savings_goal_reminder"`
	TransactionReminder  bool             `json:"transaction_reminder"`
	Language             string           `json:"language"`
	CreatedAt            string           `json:"created_at"`
	UpdatedAt            string           `json:"updated_at"`
}

type SelectSavingsMethodRequest struct {
	Method        string           `json:"method" validate:"required"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income,omitempty"`
}
