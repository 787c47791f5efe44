package handlers

import (
	"time"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"
	"ahorra-oink/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categories *service.CategoryService
	logger     *zap.Logger
}

func NewCategoryHandler(categories *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger,
	}
}

// List godoc
// @Summary List categories
// @Description Returns the user's categories together with the global defaults
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CategoryResponse
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	categories, err := h.categories.List(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list categories")
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toCategoryResponse(category))
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"categories": responses,
	})
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	category, err := h.categories.Create(c.Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create category")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"category": toCategoryResponse(category),
	})
}

func toCategoryResponse(category *models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		Color:       category.Color,
		Icon:        category.Icon,
		IsDefault:   category.IsDefault,
		CreatedAt:   category.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   category.UpdatedAt.Format(time.RFC3339),
	}
}
