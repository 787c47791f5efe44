package handlers

import (
	"time"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Register a new user with full name, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /user/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"auth":    resp,
	})
}

// Login godoc
// @Summary Login user
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]interface{}
// @Router /user/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "Login failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"auth":    resp,
	})
}

// RefreshToken godoc
// @Summary Refresh access token
// @Description Refresh access token using refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]interface{}
// @Router /user/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, h.logger, err, "Token refresh failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"auth":    resp,
	})
}

// Profile godoc
// @Summary Current user profile
// @Description Returns the authenticated user's profile, balance and savings method
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ProfileResponse
// @Router /api/v1/profile [get]
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	user, err := h.authService.Profile(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load profile")
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
		"success": true,
		"profile": dto.ProfileResponse{
			ID:             user.ID.String(),
			FullName:       user.FullName,
			Email:          user.Email,
			CurrentBalance: user.CurrentBalance.String(),
			SavingsMethod:  info,
			CreatedAt:      user.CreatedAt.Format(time.RFC3339),
		},
	})
}
