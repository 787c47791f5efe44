package service

import (
	"context"
	"time"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingsStore persists per-user settings. GetByUser returns nil without
// error when the user has none yet.
type SettingsStore interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error)
	Insert(ctx context.Context, settings *models.UserSettings) error
	Update(ctx context.Context, settings *models.UserSettings) error
}

type SettingsService struct {
	settingsRepo SettingsStore
	userRepo     UserStore
	achievements AchievementUnlocker
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo SettingsStore, userRepo UserStore, achievements AchievementUnlocker, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		achievements: achievements,
		logger:       logger,
	}
}

// Get returns the user's settings, creating the defaults on first access.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*models.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = models.DefaultUserSettings(userID)
	if err := s.settingsRepo.Insert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Update applies a partial settings update. The first saved change fires a
// best-effort achievement signal.
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateSettingsRequest) (*models.UserSettings, error) {
	vErr := newValidationError()
	if req.Currency != nil && !models.ValidCurrency(*req.Currency) {
		vErr.add("currency", "Moneda no soportada")
	}
	if req.Theme != nil && !models.ValidTheme(*req.Theme) {
		vErr.add("theme", "Tema no soportado")
	}
	if req.MonthlyBudgetLimit != nil && req.MonthlyBudgetLimit.IsNegative() {
		vErr.add("monthly_budget_limit", "El límite mensual no puede ser negativo")
	}
	if !vErr.empty() {
		return nil, vErr
	}

	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Currency != nil {
		settings.Currency = *req.Currency
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.EmailNotifications != nil {
		settings.EmailNotifications = *req.EmailNotifications
	}
	if req.MonthlyBudgetLimit != nil {
		settings.MonthlyBudgetLimit = req.MonthlyBudgetLimit
	}
	if req.SavingsGoalReminder != nil {
		settings.SavingsGoalReminder = *req.SavingsGoalReminder
	}
	if req.TransactionReminder != nil {
		settings.TransactionReminder = *req.TransactionReminder
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
	settings.UpdatedAt = time.Now()

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	if s.achievements != nil {
		if _, err := s.achievements.Unlock(ctx, userID, models.AchievementFirstSettingsChange); err != nil {
			s.logger.Debug("Settings achievement signal failed", zap.Error(err))
		}
	}

	return settings, nil
}

// SelectSavingsMethod sets the user's savings method. Once chosen, the
// method is locked for 15 days before it can be changed again.
func (s *SettingsService) SelectSavingsMethod(ctx context.Context, userID uuid.UUID, req *dto.SelectSavingsMethodRequest) (*models.User, error) {
	vErr := newValidationError()
	method := models.SavingsMethod(req.Method)
	if !models.ValidSavingsMethod(method) {
		vErr.add("method", "Método de ahorro inválido")
	}
	if req.MonthlyIncome != nil && !req.MonthlyIncome.IsPositive() {
		vErr.add("monthly_income", "El ingreso mensual debe ser mayor a 0")
	}
	if !vErr.empty() {
		return nil, vErr
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	if !user.CanChangeSavingsMethod(now) {
		return nil, ErrMethodChangeLocked
	}

	user.SelectedSavingsMethod = &method
	user.SavingsMethodSelectedAt = &now
	if req.MonthlyIncome != nil {
		user.MonthlyIncome = req.MonthlyIncome
	}

	if err := s.userRepo.UpdateSavingsMethod(ctx, user); err != nil {
		return nil, err
	}

	if s.achievements != nil {
		if _, err := s.achievements.Unlock(ctx, userID, models.AchievementSavingMethodChosen); err != nil {
			s.logger.Debug("Savings-method achievement signal failed", zap.Error(err))
		}
	}

	s.logger.Info("Savings method selected",
		zap.String("user_id", userID.String()),
		zap.String("method", string(method)),
	)
	return user, nil
}
