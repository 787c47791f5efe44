package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"
	"ahorra-oink/pkg/auth"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// UserStore persists user accounts. Lookups return nil without error when no
// user matches.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateSavingsMethod(ctx context.Context, user *models.User) error
}

type AuthService struct {
	userRepo     UserStore
	jwtManager   *auth.JWTManager
	achievements AchievementUnlocker
	logger       *zap.Logger
}

func NewAuthService(userRepo UserStore, jwtManager *auth.JWTManager, achievements AchievementUnlocker, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtManager:   jwtManager,
		achievements: achievements,
		logger:       logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	vErr := newValidationError()
	fullName := strings.TrimSpace(req.FullName)
	if utf8.RuneCountInString(fullName) < 2 {
		vErr.add("full_name", "El nombre completo debe tener al menos 2 caracteres")
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !strings.Contains(email, "@") || len(email) < 5 {
		vErr.add("email", "Correo electrónico inválido")
	}
	if len(req.Password) < 8 {
		vErr.add("password", "La contraseña debe tener al menos 8 caracteres")
	}
	if !vErr.empty() {
		return nil, vErr
	}

	// Check if user exists
	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrUserExists
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:             uuid.New(),
		FullName:       fullName,
		Email:          email,
		Password:       hashedPassword,
		CurrentBalance: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.buildAuthResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// Best-effort: a failing signal never fails the login
	if s.achievements != nil {
		if _, err := s.achievements.Unlock(ctx, user.ID, models.AchievementLogin); err != nil {
			s.logger.Debug("Login achievement signal failed", zap.Error(err))
		}
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.buildAuthResponse(user)
}

// Profile returns the authenticated user's account, including the cached
// balance and the savings-method block.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), user.FullName, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User: dto.UserResponse{
			ID:       user.ID.String(),
			FullName: user.FullName,
			Email:    user.Email,
		},
	}, nil
}
