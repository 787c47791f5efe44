package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the three-way classification of a ledger entry.
// Savings entries are tracked in the ledger but never move the user's
// available balance.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
	TransactionSavings TransactionType = "savings"
)

// ValidTransactionType reports whether t is one of the three known types.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionSavings:
		return true
	}
	return false
}

type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	CategoryID  *uuid.UUID      `db:"category_id"`
	Type        TransactionType `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// BalanceEffect returns the signed delta this transaction applies to the
// owner's cached balance: +amount for income, -amount for expense, zero
// for savings.
func (t *Transaction) BalanceEffect() decimal.Decimal {
	switch t.Type {
	case TransactionIncome:
		return t.Amount
	case TransactionExpense:
		return t.Amount.Neg()
	default:
		return decimal.Zero
	}
}
