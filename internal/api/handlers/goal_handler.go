package handlers

import (
	"time"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"
	"ahorra-oink/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GoalHandler struct {
	goals  *service.GoalService
	logger *zap.Logger
}

func NewGoalHandler(goals *service.GoalService, logger *zap.Logger) *GoalHandler {
	return &GoalHandler{
		goals:  goals,
		logger: logger,
	}
}

// List godoc
// @Summary List savings goals
// @Tags goals
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.SavingsGoalResponse
// @Router /api/v1/savings-goals [get]
func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	goals, err := h.goals.List(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list savings goals")
	}

	responses := make([]dto.SavingsGoalResponse, 0, len(goals))
	for _, goal := range goals {
		responses = append(responses, toGoalResponse(goal))
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"savings_goals": responses,
	})
}

// Create godoc
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateSavingsGoalRequest true "Savings goal"
// @Success 201 {object} dto.SavingsGoalResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/savings-goals [post]
func (h *GoalHandler) Create(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.CreateSavingsGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	goal, err := h.goals.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create savings goal")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"savings_goal": toGoalResponse(goal),
	})
}

// Get godoc
// @Summary Get one savings goal
// @Tags goals
// @Produce json
// @Security Bearer
// @Param id path string true "Goal ID"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/savings-goals/{id} [get]
func (h *GoalHandler) Get(c *fiber.Ctx) error {
	userID, goalID, err := h.ids(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	goal, err := h.goals.Get(c.Context(), userID, goalID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load savings goal")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"savings_goal": toGoalResponse(goal),
	})
}

// Update godoc
// @Summary Update a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Goal ID"
// @Param request body dto.UpdateSavingsGoalRequest true "Fields to update"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/savings-goals/{id} [put]
func (h *GoalHandler) Update(c *fiber.Ctx) error {
	userID, goalID, err := h.ids(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	var req dto.UpdateSavingsGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	goal, err := h.goals.Update(c.Context(), userID, goalID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update savings goal")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"savings_goal": toGoalResponse(goal),
	})
}

// Delete godoc
// @Summary Delete a savings goal
// @Tags goals
// @Produce json
// @Security Bearer
// @Param id path string true "Goal ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/savings-goals/{id} [delete]
func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID, goalID, err := h.ids(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.goals.Delete(c.Context(), userID, goalID); err != nil {
		return respondError(c, h.logger, err, "Failed to delete savings goal")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Meta de ahorro eliminada correctamente",
	})
}

func (h *GoalHandler) ids(c *fiber.Ctx) (userID, goalID uuid.UUID, err error) {
	userID, err = userIDFromCtx(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	goalID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid goal id")
	}
	return userID, goalID, nil
}

func toGoalResponse(goal *models.SavingsGoal) dto.SavingsGoalResponse {
	return dto.SavingsGoalResponse{
		ID:                 goal.ID.String(),
		Name:               goal.Name,
		Description:        goal.Description,
		TargetAmount:       goal.TargetAmount,
		CurrentAmount:      goal.CurrentAmount,
		TargetDate:         goal.TargetDate.Format("2006-01-02"),
		IsCompleted:        goal.IsCompleted,
		ProgressPercentage: goal.ProgressPercentage().Round(2),
		CreatedAt:          goal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          goal.UpdatedAt.Format(time.RFC3339),
	}
}
