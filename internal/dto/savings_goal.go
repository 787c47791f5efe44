package dto

import "github.com/shopspring/decimal"

type CreateSavingsGoalRequest struct {
	Name          string           `json:"name" validate:"required,min=3"`
	Description   string           `json:"description,omitempty"`
	TargetAmount  *decimal.Decimal `json:"target_amount" validate:"required"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty"`
	TargetDate    string           `json:"target_date" validate:"required"`
}

// UpdateSavingsGoalRequest carries a partial update; nil fields are untouched.
type UpdateSavingsGoalRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	TargetAmount  *decimal.Decimal `json:"target_amount,omitempty"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty"`
	TargetDate    *string          `json:"target_date,omitempty"`
	IsCompleted   *bool            `json:"is_completed,omitempty"`
}

type SavingsGoalResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	CurrentAmount      decimal.Decimal `json:"current_amount"`
	TargetDate         string          `json:"target_date"`
	IsCompleted        bool            `json:"is_completed"`
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	CreatedAt          string          `json:"created_at"`
	UpdatedAt          string          `json:"updated_at"`
}
