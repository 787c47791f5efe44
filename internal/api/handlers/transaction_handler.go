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

type TransactionHandler struct {
	ledger     *service.LedgerService
	categories *service.CategoryService
	goals      *service.GoalService
	unlocks    *service.AchievementService
	logger     *zap.Logger
}

func NewTransactionHandler(ledger *service.LedgerService, categories *service.CategoryService, goals *service.GoalService, unlocks *service.AchievementService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledger:     ledger,
		categories: categories,
		goals:      goals,
		unlocks:    unlocks,
		logger:     logger,
	}
}

// Create godoc
// @Summary Record a transaction
// @Description Creates an income, expense or savings entry and updates the user's balance
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, err := h.ledger.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create transaction")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"transaction": h.toResponse(c, tx, nil),
	})
}

// List godoc
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.TransactionResponse
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	transactions, err := h.ledger.List(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list transactions")
	}

	nameCache := make(map[uuid.UUID]*string)
	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, h.toResponse(c, tx, nameCache))
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"transactions": responses,
	})
}

// Get godoc
// @Summary Get one transaction
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	tx, err := h.ledger.Get(c.Context(), userID, txID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load transaction")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"transaction": h.toResponse(c, tx, nil),
	})
}

// Update godoc
// @Summary Update a transaction
// @Description Applies a partial update and reconciles the user's balance
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Transaction ID"
// @Param request body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	var req dto.UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tx, err := h.ledger.Update(c.Context(), userID, txID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update transaction")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"transaction": h.toResponse(c, tx, nil),
	})
}

// Delete godoc
// @Summary Delete a transaction
// @Description Removes the entry and reverses its effect on the balance
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}
	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid transaction id")
	}

	if err := h.ledger.Delete(c.Context(), userID, txID); err != nil {
		return respondError(c, h.logger, err, "Failed to delete transaction")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Transacción eliminada correctamente",
	})
}

// Statistics godoc
// @Summary Ledger statistics
// @Description Aggregates recomputed from the transaction rows plus goal and achievement counts
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.StatisticsResponse
// @Router /api/v1/statistics [get]
func (h *TransactionHandler) Statistics(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	stats, err := h.ledger.Statistics(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load statistics")
	}

	active, completed, err := h.goals.Counts(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load statistics")
	}

	achievements, err := h.unlocks.CountUnlocked(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load statistics")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"statistics": dto.StatisticsResponse{
			TotalTransactions: stats.TotalTransactions,
			TotalIncome:       stats.TotalIncome,
			TotalExpense:      stats.TotalExpense,
			TotalSavings:      stats.TotalSavings,
			ActiveGoals:       active,
			CompletedGoals:    completed,
			Achievements:      achievements,
			Balance:           stats.Balance,
		},
	})
}

// toResponse maps a transaction, resolving its category name. nameCache
// avoids repeated lookups when mapping a list.
func (h *TransactionHandler) toResponse(c *fiber.Ctx, tx *models.Transaction, nameCache map[uuid.UUID]*string) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Description: tx.Description,
		Date:        tx.Date.Format("2006-01-02"),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339),
	}
	if tx.CategoryID == nil {
		return resp
	}

	id := tx.CategoryID.String()
	resp.CategoryID = &id

	if nameCache != nil {
		if name, ok := nameCache[*tx.CategoryID]; ok {
			resp.CategoryName = name
			return resp
		}
	}
	if category, err := h.categories.Get(c.Context(), *tx.CategoryID); err == nil && category != nil {
		resp.CategoryName = &category.Name
	}
	if nameCache != nil {
		nameCache[*tx.CategoryID] = resp.CategoryName
	}
	return resp
}
