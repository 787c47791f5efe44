package handlers

import (
	"errors"

	"ahorra-oink/internal/models"
	"ahorra-oink/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userIDFromCtx reads the authenticated user's id stored by the auth
// middleware.
func userIDFromCtx(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("userID").(string)
	return uuid.Parse(raw)
}

// respondError maps service errors onto the response envelope. Validation
// failures carry per-field messages; storage errors surface as a generic
// failure without internal detail.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, fallback string) error {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"errors":  vErr.Fields,
		})
	case errors.Is(err, models.ErrTransactionNotFound),
		errors.Is(err, models.ErrSavingsGoalNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, models.ErrCategoryExists), errors.Is(err, service.ErrUserExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid credentials",
		})
	case errors.Is(err, service.ErrMethodChangeLocked):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	default:
		logger.Error(fallback, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   fallback,
		})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
