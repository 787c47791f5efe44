package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryStore persists transaction categories. A category either belongs
// to one user or is a global default (no owner).
type CategoryStore interface {
	FindByNameForUser(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error)
	FindDefaultByName(ctx context.Context, name string) (*models.Category, error)
	Insert(ctx context.Context, category *models.Category) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type CategoryService struct {
	store  CategoryStore
	logger *zap.Logger
}

func NewCategoryService(store CategoryStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

// Get returns a category by id, nil when it does not exist.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.store.GetByID(ctx, id)
}

// List returns the user's categories together with the global defaults.
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	return s.store.ListForUser(ctx, userID)
}

// Create adds a user-owned category.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
	vErr := newValidationError()
	name := strings.TrimSpace(req.Name)
	if name == "" {
		vErr.add("name", "El nombre no puede estar vacío")
	} else if utf8.RuneCountInString(name) < 2 {
		vErr.add("name", "El nombre debe tener al menos 2 caracteres")
	}
	if !vErr.empty() {
		return nil, vErr
	}

	color := req.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}

	now := time.Now()
	category := &models.Category{
		ID:          uuid.New(),
		UserID:      &userID,
		Name:        name,
		Description: req.Description,
		Color:       color,
		Icon:        req.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Insert(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ResolveOrCreate maps a category label to a concrete category: the user's
// own category wins, then a global default with that name, otherwise a new
// user-owned category is created with the default color.
func (s *CategoryService) ResolveOrCreate(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)

	if category, err := s.store.FindByNameForUser(ctx, userID, name); err != nil {
		return nil, err
	} else if category != nil {
		return category, nil
	}

	if category, err := s.store.FindDefaultByName(ctx, name); err != nil {
		return nil, err
	} else if category != nil {
		return category, nil
	}

	now := time.Now()
	category := &models.Category{
		ID:          uuid.New(),
		UserID:      &userID,
		Name:        name,
		Description: fmt.Sprintf("Categoría: %s", name),
		Color:       models.DefaultCategoryColor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created on the fly",
		zap.String("user_id", userID.String()),
		zap.String("name", name),
	)
	return category, nil
}
