package handlers

import (
	"time"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"
	"ahorra-oink/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settings *service.SettingsService
	logger   *zap.Logger
}

func NewSettingsHandler(settings *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger,
	}
}

// Get godoc
// @Summary Get user settings
// @Description Returns the user's settings, creating the defaults on first access
// @Tags settings
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SettingsResponse
// @Router /api/v1/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	settings, err := h.settings.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load settings")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"settings": toSettingsResponse(settings),
	})
}

// Update godoc
// @Summary Update user settings
// @Tags settings
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	settings, err := h.settings.Update(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update settings")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"settings": toSettingsResponse(settings),
	})
}

// SelectSavingsMethod godoc
// @Summary Select a savings method
// @Description Sets the savings method; changes are locked for 15 days after selection
// @Tags settings
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.SelectSavingsMethodRequest true "Savings method"
// @Success 200 {object} dto.SavingsMethodInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/savings-method [post]
func (h *SettingsHandler) SelectSavingsMethod(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.SelectSavingsMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.settings.SelectSavingsMethod(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to select savings method")
	}

	now := time.Now()
	info := dto.SavingsMethodInfo{
		CanChange:     user.CanChangeSavingsMethod(now),
		DaysRemaining: user.DaysUntilCanChangeMethod(now),
	}
	if user.SelectedSavingsMethod != nil {
		method := string(*user.SelectedSavingsMethod)
		info.Method = &method
	}
	if user.MonthlyIncome != nil {
		income := user.MonthlyIncome.String()
		info.MonthlyIncome = &income
	}
	if user.SavingsMethodSelectedAt != nil {
		selectedAt := user.SavingsMethodSelectedAt.Format(time.RFC3339)
		info.SelectedAt = &selectedAt
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"savings_method": info,
	})
}

func toSettingsResponse(settings *models.UserSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		ID:                   settings.ID.String(),
		Currency:             settings.Currency,
		Theme:                settings.Theme,
		NotificationsEnabled: settings.NotificationsEnabled,
		EmailNotifications:   settings.EmailNotifications,
		MonthlyBudgetLimit:   settings.MonthlyBudgetLimit,
		SavingsGoalReminder:  settings.SavingsGoalReminder,
		TransactionReminder:  settings.TransactionReminder,
		Language:             settings.Language,
		CreatedAt:            settings.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            settings.UpdatedAt.Format(time.RFC3339),
	}
}
