package dto

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type SavingsMethodInfo struct {
	Method        *string `json:"method"`
	MonthlyIncome *string `json:"monthly_income"`
	SelectedAt    *string `json:"selected_at"`
	CanChange     bool    `json:"can_change"`
	DaysRemaining int     `json:"days_remaining"`
}

type ProfileResponse struct {
	ID             string            `json:"id"`
	FullName       string            `json:"full_name"`
	Email          string            `json:"email"`
	CurrentBalance string            `json:"current_balance"`
	SavingsMethod  SavingsMethodInfo `json:"savings_method"`
	CreatedAt      string            `json:"created_at"`
}
