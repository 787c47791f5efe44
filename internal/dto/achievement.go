package dto

type AchievementResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon,omitempty"`
	Points        int     `json:"points"`
	ConditionType string  `json:"condition_type"`
	IsActive      bool    `json:"is_active"`
	Unlocked      bool    `json:"unlocked"`
	UnlockedAt    *string `json:"unlocked_at"`
}

type UserAchievementResponse struct {
	ID          string              `json:"id"`
	Achievement AchievementResponse `json:"achievement"`
	UnlockedAt  string              `json:"unlocked_at"`
}
