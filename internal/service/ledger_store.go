package service

import (
	"context"

	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerStore is the persistence boundary of the balance engine. The
// transaction set is the source of truth; the per-user cached balance is a
// maintained aggregate that must be written in the same unit of work as the
// row it reflects.
type LedgerStore interface {
	// InTx runs fn inside one atomic unit of work. Everything fn does
	// through the LedgerTx commits or rolls back together.
	InTx(ctx context.Context, fn func(tx LedgerTx) error) error

	GetTransaction(ctx context.Context, userID, txID uuid.UUID) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error)
	Statistics(ctx context.Context, userID uuid.UUID) (*LedgerStats, error)
}

// LedgerTx is the set of writes available inside a unit of work.
// BalanceForUpdate must serialize concurrent operations on the same user's
// balance (row lock or equivalent) so read-modify-write never loses updates.
type LedgerTx interface {
	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, userID, txID uuid.UUID) error
	GetTransactionForUpdate(ctx context.Context, userID, txID uuid.UUID) (*models.Transaction, error)

	BalanceForUpdate(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	SetBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) error
}

// LedgerStats are the per-user ledger aggregates, computed from the
// transaction rows rather than the cached balance.
type LedgerStats struct {
	TotalTransactions int64
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	TotalSavings      decimal.Decimal
	Balance           decimal.Decimal
}

// CategoryResolver resolves a category label to a concrete category before
// the ledger write begins, creating a user-owned category when needed.
type CategoryResolver interface {
	ResolveOrCreate(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error)
}

// AchievementUnlocker delivers gamification signals. Callers treat delivery
// as best-effort.
type AchievementUnlocker interface {
	Unlock(ctx context.Context, userID uuid.UUID, conditionType string) (bool, error)
}
