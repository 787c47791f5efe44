package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// maxAmount is the upper bound for any single transaction amount.
var maxAmount = decimal.RequireFromString("1000000000.00")

// LedgerService keeps each user's cached balance consistent with their
// transaction ledger. Every mutation adjusts the balance incrementally and
// commits both writes in one unit of work:
//
//	balance == sum(income amounts) - sum(expense amounts)
//
// Savings transactions are recorded in the ledger but never move the balance.
type LedgerService struct {
	store        LedgerStore
	categories   CategoryResolver
	achievements AchievementUnlocker
	logger       *zap.Logger
}

func NewLedgerService(store LedgerStore, categories CategoryResolver, achievements AchievementUnlocker, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		store:        store,
		categories:   categories,
		achievements: achievements,
		logger:       logger,
	}
}

// Create validates and persists a new transaction and applies its effect to
// the owner's balance atomically. A first income/expense fires a best-effort
// achievement signal after commit.
func (s *LedgerService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	vErr := newValidationError()

	txType := models.TransactionType(req.Type)
	if !models.ValidTransactionType(txType) {
		vErr.add("type", "Tipo de transacción inválido")
	}

	var amount decimal.Decimal
	if req.Amount == nil {
		vErr.add("amount", "El monto es requerido")
	} else {
		amount = *req.Amount
		validateAmount(vErr, "amount", amount)
	}

	description := strings.TrimSpace(req.Description)
	validateDescription(vErr, description)

	date := time.Now().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			vErr.add("date", "Fecha inválida (formato YYYY-MM-DD)")
		} else {
			date = parsed
		}
	}

	categoryID, err := s.resolveCategory(ctx, userID, req.CategoryID, req.Category, vErr)
	if err != nil {
		return nil, err
	}
	if !vErr.empty() {
		return nil, vErr
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.store.InTx(ctx, func(ltx LedgerTx) error {
		if err := ltx.InsertTransaction(ctx, tx); err != nil {
			return err
		}
		return applyBalanceDelta(ctx, ltx, userID, tx.BalanceEffect())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction created",
		zap.String("user_id", userID.String()),
		zap.String("transaction_id", tx.ID.String()),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.String()),
	)

	switch tx.Type {
	case models.TransactionIncome:
		s.signalUnlock(ctx, userID, models.AchievementFirstIncome)
	case models.TransactionExpense:
		s.signalUnlock(ctx, userID, models.AchievementFirstExpense)
	}

	return tx, nil
}

// Update applies a partial update to a transaction the user owns. The
// balance is reconciled from the before/after snapshot and only touched when
// the type or the amount actually changed.
func (s *LedgerService) Update(ctx context.Context, userID, txID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	vErr := newValidationError()

	if req.Type != nil && !models.ValidTransactionType(models.TransactionType(*req.Type)) {
		vErr.add("type", "Tipo de transacción inválido")
	}
	if req.Amount != nil {
		validateAmount(vErr, "amount", *req.Amount)
	}
	var description string
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
		validateDescription(vErr, description)
	}
	var date time.Time
	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			vErr.add("date", "Fecha inválida (formato YYYY-MM-DD)")
		} else {
			date = parsed
		}
	}

	var categoryName string
	if req.Category != nil {
		categoryName = *req.Category
	}
	categoryID, err := s.resolveCategory(ctx, userID, req.CategoryID, categoryName, vErr)
	if err != nil {
		return nil, err
	}
	if !vErr.empty() {
		return nil, vErr
	}

	var updated *models.Transaction
	err = s.store.InTx(ctx, func(ltx LedgerTx) error {
		tx, err := ltx.GetTransactionForUpdate(ctx, userID, txID)
		if err != nil {
			return err
		}

		oldEffect := tx.BalanceEffect()

		if req.Type != nil {
			tx.Type = models.TransactionType(*req.Type)
		}
		if req.Amount != nil {
			tx.Amount = *req.Amount
		}
		if req.Description != nil {
			tx.Description = description
		}
		if req.Date != nil {
			tx.Date = date
		}
		if categoryID != nil {
			tx.CategoryID = categoryID
		}
		tx.UpdatedAt = time.Now()

		if err := ltx.UpdateTransaction(ctx, tx); err != nil {
			return err
		}

		// Reverse the old effect and apply the new one in a single
		// balance write. No-op when neither type nor amount changed.
		newEffect := tx.BalanceEffect()
		if !oldEffect.Equal(newEffect) {
			if err := applyBalanceDelta(ctx, ltx, userID, newEffect.Sub(oldEffect)); err != nil {
				return err
			}
		}

		updated = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction updated",
		zap.String("user_id", userID.String()),
		zap.String("transaction_id", txID.String()),
	)

	return updated, nil
}

// Delete removes a transaction the user owns, reversing its effect on the
// balance in the same unit of work.
func (s *LedgerService) Delete(ctx context.Context, userID, txID uuid.UUID) error {
	err := s.store.InTx(ctx, func(ltx LedgerTx) error {
		tx, err := ltx.GetTransactionForUpdate(ctx, userID, txID)
		if err != nil {
			return err
		}

		if err := applyBalanceDelta(ctx, ltx, userID, tx.BalanceEffect().Neg()); err != nil {
			return err
		}
		return ltx.DeleteTransaction(ctx, userID, txID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Transaction deleted",
		zap.String("user_id", userID.String()),
		zap.String("transaction_id", txID.String()),
	)
	return nil
}

// Get returns one transaction the user owns.
func (s *LedgerService) Get(ctx context.Context, userID, txID uuid.UUID) (*models.Transaction, error) {
	return s.store.GetTransaction(ctx, userID, txID)
}

// List returns the user's transactions, newest first.
func (s *LedgerService) List(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

// Statistics returns the user's ledger aggregates, recomputed from the
// transaction rows rather than trusted from the cached balance.
func (s *LedgerService) Statistics(ctx context.Context, userID uuid.UUID) (*LedgerStats, error) {
	return s.store.Statistics(ctx, userID)
}

// resolveCategory turns a category id or label into a concrete category id.
// Label resolution runs before the ledger unit of work so the transaction row
// never holds a dangling reference.
func (s *LedgerService) resolveCategory(ctx context.Context, userID uuid.UUID, rawID *string, name string, vErr *ValidationError) (*uuid.UUID, error) {
	if rawID != nil && *rawID != "" {
		id, err := uuid.Parse(*rawID)
		if err != nil {
			vErr.add("category_id", "Categoría inválida")
			return nil, nil
		}
		return &id, nil
	}

	name = strings.TrimSpace(name)
	if name == "" || !vErr.empty() {
		return nil, nil
	}

	category, err := s.categories.ResolveOrCreate(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	return &category.ID, nil
}

// signalUnlock delivers an achievement signal. Delivery is best-effort: a
// failing notifier never fails or rolls back the ledger operation.
func (s *LedgerService) signalUnlock(ctx context.Context, userID uuid.UUID, conditionType string) {
	if s.achievements == nil {
		return
	}
	if _, err := s.achievements.Unlock(ctx, userID, conditionType); err != nil {
		s.logger.Debug("Achievement signal failed",
			zap.String("user_id", userID.String()),
			zap.String("condition", conditionType),
			zap.Error(err),
		)
	}
}

// applyBalanceDelta adds delta to the user's cached balance under the row
// lock taken by BalanceForUpdate. Zero deltas skip the read entirely.
func applyBalanceDelta(ctx context.Context, ltx LedgerTx, userID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	balance, err := ltx.BalanceForUpdate(ctx, userID)
	if err != nil {
		return err
	}
	return ltx.SetBalance(ctx, userID, balance.Add(delta))
}

func validateAmount(vErr *ValidationError, field string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		vErr.add(field, "El monto debe ser mayor a 0")
	} else if amount.GreaterThan(maxAmount) {
		vErr.add(field, "El monto no puede exceder 1 billón")
	}
}

func validateDescription(vErr *ValidationError, trimmed string) {
	if trimmed == "" {
		vErr.add("description", "La descripción no puede estar vacía")
	} else if utf8.RuneCountInString(trimmed) < 3 {
		vErr.add("description", "La descripción debe tener al menos 3 caracteres")
	}
}
