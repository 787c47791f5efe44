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

// GoalStore persists savings goals, always scoped to an owner.
type GoalStore interface {
	Insert(ctx context.Context, goal *models.SavingsGoal) error
	GetForUser(ctx context.Context, userID, goalID uuid.UUID) (*models.SavingsGoal, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error)
	Update(ctx context.Context, goal *models.SavingsGoal) error
	Delete(ctx context.Context, userID, goalID uuid.UUID) error
	CountByCompletion(ctx context.Context, userID uuid.UUID) (active, completed int64, err error)
}

type GoalService struct {
	store  GoalStore
	logger *zap.Logger
}

func NewGoalService(store GoalStore, logger *zap.Logger) *GoalService {
	return &GoalService{store: store, logger: logger}
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateSavingsGoalRequest) (*models.SavingsGoal, error) {
	vErr := newValidationError()

	name := strings.TrimSpace(req.Name)
	validateGoalName(vErr, name)

	var targetAmount decimal.Decimal
	if req.TargetAmount == nil {
		vErr.add("target_amount", "El monto objetivo es requerido")
	} else {
		targetAmount = *req.TargetAmount
		validateTargetAmount(vErr, targetAmount)
	}

	currentAmount := decimal.Zero
	if req.CurrentAmount != nil {
		currentAmount = *req.CurrentAmount
		validateCurrentAmount(vErr, currentAmount)
	}

	var targetDate time.Time
	if req.TargetDate == "" {
		vErr.add("target_date", "La fecha objetivo es requerida")
	} else {
		parsed, err := time.Parse(dateLayout, req.TargetDate)
		if err != nil {
			vErr.add("target_date", "Fecha inválida (formato YYYY-MM-DD)")
		} else {
			targetDate = parsed
		}
	}

	if !vErr.empty() {
		return nil, vErr
	}

	now := time.Now()
	goal := &models.SavingsGoal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Description:   req.Description,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    targetDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Insert(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("Savings goal created",
		zap.String("user_id", userID.String()),
		zap.String("name", goal.Name),
	)
	return goal, nil
}

func (s *GoalService) Get(ctx context.Context, userID, goalID uuid.UUID) (*models.SavingsGoal, error) {
	return s.store.GetForUser(ctx, userID, goalID)
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error) {
	return s.store.ListForUser(ctx, userID)
}

func (s *GoalService) Update(ctx context.Context, userID, goalID uuid.UUID, req *dto.UpdateSavingsGoalRequest) (*models.SavingsGoal, error) {
	vErr := newValidationError()

	var name string
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		validateGoalName(vErr, name)
	}
	if req.TargetAmount != nil {
		validateTargetAmount(vErr, *req.TargetAmount)
	}
	if req.CurrentAmount != nil {
		validateCurrentAmount(vErr, *req.CurrentAmount)
	}
	var targetDate time.Time
	if req.TargetDate != nil {
		parsed, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			vErr.add("target_date", "Fecha inválida (formato YYYY-MM-DD)")
		} else {
			targetDate = parsed
		}
	}
	if !vErr.empty() {
		return nil, vErr
	}

	goal, err := s.store.GetForUser(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		goal.Name = name
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.TargetDate != nil {
		goal.TargetDate = targetDate
	}
	if req.IsCompleted != nil {
		goal.IsCompleted = *req.IsCompleted
	}
	goal.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	if _, err := s.store.GetForUser(ctx, userID, goalID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, userID, goalID); err != nil {
		return err
	}
	s.logger.Info("Savings goal deleted",
		zap.String("user_id", userID.String()),
		zap.String("goal_id", goalID.String()),
	)
	return nil
}

// Counts returns the user's active and completed goal counts.
func (s *GoalService) Counts(ctx context.Context, userID uuid.UUID) (active, completed int64, err error) {
	return s.store.CountByCompletion(ctx, userID)
}

func validateGoalName(vErr *ValidationError, trimmed string) {
	if trimmed == "" {
		vErr.add("name", "El nombre no puede estar vacío")
	} else if utf8.RuneCountInString(trimmed) < 3 {
		vErr.add("name", "El nombre debe tener al menos 3 caracteres")
	}
}

func validateTargetAmount(vErr *ValidationError, amount decimal.Decimal) {
	if !amount.IsPositive() {
		vErr.add("target_amount", "El monto objetivo debe ser mayor a 0")
	} else if amount.GreaterThan(maxAmount) {
		vErr.add("target_amount", "El monto objetivo no puede exceder 1 billón")
	}
}

func validateCurrentAmount(vErr *ValidationError, amount decimal.Decimal) {
	if amount.IsNegative() {
		vErr.add("current_amount", "El monto actual no puede ser negativo")
	} else if amount.GreaterThan(maxAmount) {
		vErr.add("current_amount", "El monto actual no puede exceder 1 billón")
	}
}
