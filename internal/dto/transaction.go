package dto

import "github.com/shopspring/decimal"

type CreateTransactionRequest struct {
	Type        string           `json:"type" validate:"required,oneof=income expense savings"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Category    string           `json:"category,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Description string           `json:"description" validate:"required,min=3"`
	Date        string           `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

// UpdateTransactionRequest carries a partial update; nil fields are untouched.
type UpdateTransactionRequest struct {
	Type        *string          `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *string          `json:"date,omitempty"`
}

type TransactionResponse struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryID   *string         `json:"category_id"`
	CategoryName *string         `json:"category_name"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type StatisticsResponse struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpense      decimal.Decimal `json:"total_expense"`
	TotalSavings      decimal.Decimal `json:"total_savings"`
	ActiveGoals       int64           `json:"active_goals"`
	CompletedGoals    int64           `json:"completed_goals"`
	Achievements      int64           `json:"achievements"`
	Balance           decimal.Decimal `json:"balance"`
}
