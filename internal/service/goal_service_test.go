package service

import (
	"context"
	"testing"

	"ahorra-oink/internal/dto"
	"ahorra-oink/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryGoals struct {
	goals map[uuid.UUID]*models.SavingsGoal
}

func newMemoryGoals() *memoryGoals {
	return &memoryGoals{goals: make(map[uuid.UUID]*models.SavingsGoal)}
}

func (m *memoryGoals) Insert(ctx context.Context, goal *models.SavingsGoal) error {
	cp := *goal
	m.goals[goal.ID] = &cp
	return nil
}

func (m *memoryGoals) GetForUser(ctx context.Context, userID, goalID uuid.UUID) (*models.SavingsGoal, error) {
	g, ok := m.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, models.ErrSavingsGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memoryGoals) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.SavingsGoal, error) {
	var out []*models.SavingsGoal
	for _, g := range m.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryGoals) Update(ctx context.Context, goal *models.SavingsGoal) error {
	existing, ok := m.goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return models.ErrSavingsGoalNotFound
	}
	cp := *goal
	m.goals[goal.ID] = &cp
	return nil
}

func (m *memoryGoals) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	existing, ok := m.goals[goalID]
	if !ok || existing.UserID != userID {
		return models.ErrSavingsGoalNotFound
	}
	delete(m.goals, goalID)
	return nil
}

func (m *memoryGoals) CountByCompletion(ctx context.Context, userID uuid.UUID) (active, completed int64, err error) {
	for _, g := range m.goals {
		if g.UserID != userID {
			continue
		}
		if g.IsCompleted {
			completed++
		} else {
			active++
		}
	}
	return active, completed, nil
}

func newGoalFixture() (*GoalService, *memoryGoals) {
	store := newMemoryGoals()
	return NewGoalService(store, zap.NewNop()), store
}

func goalReq(name, target string) *dto.CreateSavingsGoalRequest {
	amount := decimal.RequireFromString(target)
	return &dto.CreateSavingsGoalRequest{
		Name:         name,
		TargetAmount: &amount,
		TargetDate:   "2027-12-31",
	}
}

func TestCreateGoal_StartsActiveWithZeroProgress(t *testing.T) {
	svc, _ := newGoalFixture()

	goal, err := svc.Create(context.Background(), uuid.New(), goalReq("Vacaciones", "2000.00"))
	require.NoError(t, err)

	assert.False(t, goal.IsCompleted)
	assert.True(t, goal.CurrentAmount.IsZero())
	assert.True(t, goal.ProgressPercentage().IsZero())
}

func TestCreateGoal_RejectsInvalidInput(t *testing.T) {
	svc, store := newGoalFixture()

	amount := decimal.RequireFromString("-10.00")
	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateSavingsGoalRequest{
		Name:         "ab",
		TargetAmount: &amount,
		TargetDate:   "mañana",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")
	assert.Contains(t, vErr.Fields, "target_amount")
	assert.Contains(t, vErr.Fields, "target_date")
	assert.Empty(t, store.goals)
}

func TestUpdateGoal_MarksCompleted(t *testing.T) {
	svc, _ := newGoalFixture()
	userID := uuid.New()

	goal, err := svc.Create(context.Background(), userID, goalReq("Casa", "50000.00"))
	require.NoError(t, err)

	completed := true
	current := decimal.RequireFromString("50000.00")
	updated, err := svc.Update(context.Background(), userID, goal.ID, &dto.UpdateSavingsGoalRequest{
		CurrentAmount: &current,
		IsCompleted:   &completed,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.True(t, updated.ProgressPercentage().Equal(decimal.RequireFromString("100")))

	active, done, err := svc.Counts(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), active)
	assert.Equal(t, int64(1), done)
}

func TestGetGoal_OtherUsersGoalNotFound(t *testing.T) {
	svc, _ := newGoalFixture()

	goal, err := svc.Create(context.Background(), uuid.New(), goalReq("Retiro", "100000.00"))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), goal.ID)
	assert.ErrorIs(t, err, models.ErrSavingsGoalNotFound)
}

func TestDeleteGoal_RemovesOnlyOnce(t *testing.T) {
	svc, _ := newGoalFixture()
	userID := uuid.New()

	goal, err := svc.Create(context.Background(), userID, goalReq("Coche", "15000.00"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID, goal.ID))
	err = svc.Delete(context.Background(), userID, goal.ID)
	assert.ErrorIs(t, err, models.ErrSavingsGoalNotFound)
}
