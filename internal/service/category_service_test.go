package service

import (
	"context"
	"testing"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryCategories struct {
	categories map[uuid.UUID]*models.Category
}

func newMemoryCategories() *memoryCategories {
	return &memoryCategories{categories: make(map[uuid.UUID]*models.Category)}
}

func (m *memoryCategories) FindByNameForUser(ctx context.Context, userID uuid.UUID, name string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.UserID != nil && *c.UserID == userID && c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memoryCategories) FindDefaultByName(ctx context.Context, name string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.UserID == nil && c.IsDefault && c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memoryCategories) Insert(ctx context.Context, category *models.Category) error {
	for _, c := range m.categories {
		sameOwner := (c.UserID == nil && category.UserID == nil) ||
			(c.UserID != nil && category.UserID != nil && *c.UserID == *category.UserID)
		if sameOwner && c.Name == category.Name {
			return models.ErrCategoryExists
		}
	}
	m.categories[category.ID] = category
	return nil
}

func (m *memoryCategories) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range m.categories {
		if (c.UserID != nil && *c.UserID == userID) || (c.UserID == nil && c.IsDefault) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryCategories) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return m.categories[id], nil
}

func (m *memoryCategories) addDefault(name string) *models.Category {
	c := &models.Category{ID: uuid.New(), Name: name, IsDefault: true}
	m.categories[c.ID] = c
	return c
}

func (m *memoryCategories) addOwned(userID uuid.UUID, name string) *models.Category {
	c := &models.Category{ID: uuid.New(), UserID: &userID, Name: name}
	m.categories[c.ID] = c
	return c
}

func TestResolveOrCreate_UserCategoryWinsOverDefault(t *testing.T) {
	store := newMemoryCategories()
	svc := NewCategoryService(store, zap.NewNop())
	userID := uuid.New()

	store.addDefault("Transporte")
	owned := store.addOwned(userID, "Transporte")

	category, err := svc.ResolveOrCreate(context.Background(), userID, "Transporte")
	require.NoError(t, err)
	assert.Equal(t, owned.ID, category.ID)
}

func TestResolveOrCreate_FallsBackToGlobalDefault(t *testing.T) {
	store := newMemoryCategories()
	svc := NewCategoryService(store, zap.NewNop())

	def := store.addDefault("Salud")

	category, err := svc.ResolveOrCreate(context.Background(), uuid.New(), "Salud")
	require.NoError(t, err)
	assert.Equal(t, def.ID, category.ID)
}

func TestResolveOrCreate_CreatesOwnedCategoryWhenUnknown(t *testing.T) {
	store := newMemoryCategories()
	svc := NewCategoryService(store, zap.NewNop())
	userID := uuid.New()

	category, err := svc.ResolveOrCreate(context.Background(), userID, "  Mascotas  ")
	require.NoError(t, err)

	require.NotNil(t, category.UserID)
	assert.Equal(t, userID, *category.UserID)
	assert.Equal(t, "Mascotas", category.Name)
	assert.Equal(t, models.DefaultCategoryColor, category.Color)
	assert.False(t, category.IsDefault)
}

func TestCreateCategory_RejectsShortName(t *testing.T) {
	svc := NewCategoryService(newMemoryCategories(), zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateCategoryRequest{Name: "x"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")
}

func TestCreateCategory_DuplicateNameForSameUser(t *testing.T) {
	store := newMemoryCategories()
	svc := NewCategoryService(store, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, &dto.CreateCategoryRequest{Name: "Viajes"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), userID, &dto.CreateCategoryRequest{Name: "Viajes"})
	assert.ErrorIs(t, err, models.ErrCategoryExists)
}

func TestListCategories_IncludesDefaultsAndOwned(t *testing.T) {
	store := newMemoryCategories()
	svc := NewCategoryService(store, zap.NewNop())
	userID := uuid.New()

	store.addDefault("Alimentación")
	store.addOwned(userID, "Mascotas")
	store.addOwned(uuid.New(), "Ajena")

	categories, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
