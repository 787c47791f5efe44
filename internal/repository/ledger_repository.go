package repository

import (
	"context"
	"errors"

	"ahorra-oink/internal/models"
	"ahorra-oink/internal/service"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "user_id", "category_id", "type", "amount", "description", "date",
	"created_at", "updated_at",
}

// LedgerRepository is the PostgreSQL implementation of the balance engine's
// storage boundary. The transaction row and the cached balance are written
// inside one database transaction; the balance read takes a row lock so
// concurrent operations on the same user serialize instead of losing updates.
type LedgerRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewLedgerRepository(db *pgxpool.Pool, logger *zap.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LedgerRepository) InTx(ctx context.Context, fn func(tx service.LedgerTx) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&ledgerTx{q: tx})
	})
}

func (r *LedgerRepository) GetTransaction(ctx context.Context, userID, txID uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": txID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	return scanTransactionRow(r.db.QueryRow(ctx, sql, args...))
}

func (r *LedgerRepository) ListTransactions(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC").
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

	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Type, &tx.Amount,
			&tx.Description, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}
	return transactions, rows.Err()
}

// Statistics recomputes the ledger aggregates from the transaction rows; the
// cached balance is read alongside but never substitutes for the sums.
func (r *LedgerRepository) Statistics(ctx context.Context, userID uuid.UUID) (*service.LedgerStats, error) {
	stats := &service.LedgerStats{}
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE type = 'savings'), 0)
		FROM transactions
		WHERE user_id = $1`, userID,
	).Scan(&stats.TotalTransactions, &stats.TotalIncome, &stats.TotalExpense, &stats.TotalSavings)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT current_balance FROM users WHERE id = $1`, userID,
	).Scan(&stats.Balance)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ledgerTx wraps one pgx transaction as a unit of work.
type ledgerTx struct {
	q pgx.Tx
}

func (t *ledgerTx) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(tx.ID, tx.UserID, tx.CategoryID, tx.Type, tx.Amount, tx.Description,
			tx.Date, tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = t.q.Exec(ctx, sql, args...)
	return err
}

func (t *ledgerTx) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Update("transactions").
		Set("category_id", tx.CategoryID).
		Set("type", tx.Type).
		Set("amount", tx.Amount).
		Set("description", tx.Description).
		Set("date", tx.Date).
		Set("updated_at", tx.UpdatedAt).
		Where(squirrel.Eq{"id": tx.ID, "user_id": tx.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := t.q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrTransactionNotFound
	}
	return nil
}

func (t *ledgerTx) DeleteTransaction(ctx context.Context, userID, txID uuid.UUID) error {
	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": txID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := t.q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrTransactionNotFound
	}
	return nil
}

func (t *ledgerTx) GetTransactionForUpdate(ctx context.Context, userID, txID uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": txID, "user_id": userID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	return scanTransactionRow(t.q.QueryRow(ctx, sql, args...))
}

// BalanceForUpdate locks the user row until the surrounding transaction
// commits, serializing concurrent read-modify-write cycles per user.
func (t *ledgerTx) BalanceForUpdate(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := t.q.QueryRow(ctx,
		`SELECT current_balance FROM users WHERE id = $1 FOR UPDATE`, userID,
	).Scan(&balance)
	return balance, err
}

func (t *ledgerTx) SetBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) error {
	_, err := t.q.Exec(ctx,
		`UPDATE users SET current_balance = $1, updated_at = now() WHERE id = $2`,
		balance, userID,
	)
	return err
}

func scanTransactionRow(row pgx.Row) (*models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(
		&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Type, &tx.Amount,
		&tx.Description, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
