package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SavingsGoal struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	TargetDate    time.Time       `db:"target_date"`
	IsCompleted   bool            `db:"is_completed"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// ProgressPercentage returns how far the goal has advanced, as a percentage.
func (g *SavingsGoal) ProgressPercentage() decimal.Decimal {
	if g.TargetAmount.IsPositive() {
		return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	}
	return decimal.Zero
}
