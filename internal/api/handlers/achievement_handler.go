package handlers

import (
	"time"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"
	"ahorra-oink/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AchievementHandler struct {
	achievements *service.AchievementService
	logger       *zap.Logger
}

func NewAchievementHandler(achievements *service.AchievementService, logger *zap.Logger) *AchievementHandler {
	return &AchievementHandler{
		achievements: achievements,
		logger:       logger,
	}
}

// Catalog godoc
// @Summary Achievement catalog
// @Description Every active achievement with the user's unlock status
// @Tags achievements
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.AchievementResponse
// @Router /api/v1/achievements [get]
func (h *AchievementHandler) Catalog(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	achievements, unlockedByID, err := h.achievements.Catalog(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list achievements")
	}

	responses := make([]dto.AchievementResponse, 0, len(achievements))
	for _, achievement := range achievements {
		resp := toAchievementResponse(achievement)
		if ua, ok := unlockedByID[achievement.ID]; ok {
			resp.Unlocked = true
			unlockedAt := ua.UnlockedAt.Format(time.RFC3339)
			resp.UnlockedAt = &unlockedAt
		}
		responses = append(responses, resp)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": responses,
	})
}

// Unlocked godoc
// @Summary User's unlocked achievements
// @Tags achievements
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.UserAchievementResponse
// @Router /api/v1/achievements/unlocked [get]
func (h *AchievementHandler) Unlocked(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	unlocked, catalogByID, err := h.achievements.Unlocked(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list unlocked achievements")
	}

	responses := make([]dto.UserAchievementResponse, 0, len(unlocked))
	for _, ua := range unlocked {
		achievement, ok := catalogByID[ua.AchievementID]
		if !ok || achievement == nil {
			continue
		}
		unlockedAt := ua.UnlockedAt.Format(time.RFC3339)
		resp := toAchievementResponse(achievement)
		resp.Unlocked = true
		resp.UnlockedAt = &unlockedAt
		responses = append(responses, dto.UserAchievementResponse{
			ID:          ua.ID.String(),
			Achievement: resp,
			UnlockedAt:  unlockedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"user_achievements": responses,
	})
}

func toAchievementResponse(achievement *models.Achievement) dto.AchievementResponse {
	return dto.AchievementResponse{
		ID:            achievement.ID.String(),
		Name:          achievement.Name,
		Description:   achievement.Description,
		Icon:          achievement.Icon,
		Points:        achievement.Points,
		ConditionType: achievement.ConditionType,
		IsActive:      achievement.IsActive,
	}
}
