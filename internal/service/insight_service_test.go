package service

import (
	"context"
	"testing"
	"time"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/dto"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func currentMonth() string {
	return time.Now().UTC().Format("2006-01")
}

func seedGoal(store *fakeGoalStore, userID, description string) {
	store.goals[goalKey(userID, currentMonth())] = &models.Goal{
		ID:              uuid.New(),
		UserID:          userID,
		GoalDescription: description,
		Month:           currentMonth(),
		CreatedAt:       time.Now().UTC(),
	}
}

func seedExpense(store *fakeBillItemStore, userID, name string, qty, price float64, category models.ItemCategory) {
	store.items = append(store.items, &models.BillItem{
		ID:        uuid.New(),
		UserID:    userID,
		BillDate:  "2025-06-10",
		ItemName:  name,
		Quantity:  qty,
		UnitPrice: price,
		Category:  category,
		InputType: models.InputTypeText,
		CreatedAt: time.Now().UTC(),
	})
}

func TestInsightService_SetGoal_ReplacesSameMonth(t *testing.T) {
	goals := newFakeGoalStore()
	svc := NewInsightService(goals, &fakeBillItemStore{}, &fakeGenerator{}, zap.NewNop())

	first, err := svc.SetGoal(context.Background(), "alice@example.com", &dto.GoalRequest{
		GoalDescription: "Save $200",
		Month:           "2025-06",
	})
	require.NoError(t, err)
	assert.Equal(t, "Save $200", first.GoalDescription)

	second, err := svc.SetGoal(context.Background(), "alice@example.com", &dto.GoalRequest{
		GoalDescription: "Save $500",
		Month:           "2025-06",
	})
	require.NoError(t, err)
	assert.Equal(t, "Save $500", second.GoalDescription)

	stored, err := goals.GetByUserMonth(context.Background(), "alice@example.com", "2025-06")
	require.NoError(t, err)
	assert.Equal(t, "Save $500", stored.GoalDescription)
}

func TestInsightService_ListExpenses_Empty(t *testing.T) {
	svc := NewInsightService(newFakeGoalStore(), &fakeBillItemStore{}, &fakeGenerator{}, zap.NewNop())

	_, err := svc.ListExpenses(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrNoExpenses)
}

func TestInsightService_ListExpenses_OwnItemsOnly(t *testing.T) {
	items := &fakeBillItemStore{}
	seedExpense(items, "alice@example.com", "Milk", 2, 1.25, models.CategoryFood)
	seedExpense(items, "bob@example.com", "Socks", 1, 9.99, models.CategoryClothing)
	svc := NewInsightService(newFakeGoalStore(), items, &fakeGenerator{}, zap.NewNop())

	listed, err := svc.ListExpenses(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Milk", listed[0].ItemName)
}

func TestInsightService_GenerateInsights_NoGoal(t *testing.T) {
	items := &fakeBillItemStore{}
	seedExpense(items, "alice@example.com", "Milk", 2, 1.25, models.CategoryFood)
	svc := NewInsightService(newFakeGoalStore(), items, &fakeGenerator{}, zap.NewNop())

	_, err := svc.GenerateInsights(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestInsightService_GenerateInsights_NoExpenses(t *testing.T) {
	goals := newFakeGoalStore()
	seedGoal(goals, "alice@example.com", "Save $200")
	svc := NewInsightService(goals, &fakeBillItemStore{}, &fakeGenerator{}, zap.NewNop())

	_, err := svc.GenerateInsights(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrNoExpenses)
}

func TestInsightService_GenerateInsights_Success(t *testing.T) {
	goals := newFakeGoalStore()
	seedGoal(goals, "alice@example.com", "Save $200 this month")
	items := &fakeBillItemStore{}
	seedExpense(items, "alice@example.com", "Milk", 2, 1.25, models.CategoryFood)
	gen := &fakeGenerator{response: "1. Cut dairy spending.\n2. Cook at home."}
	svc := NewInsightService(goals, items, gen, zap.NewNop())

	resp, err := svc.GenerateInsights(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.UserID)
	assert.Equal(t, "Save $200 this month", resp.GoalDescription)
	assert.Equal(t, "1. Cut dairy spending.\n2. Cook at home.", resp.Insights)

	// prompt carries the goal and the quantity x price cost
	assert.Contains(t, gen.lastPrompt, "Save $200 this month")
	assert.Contains(t, gen.lastPrompt, `"cost": 2.5`)
	assert.Nil(t, gen.lastAtt, "insight generation is text only")
}

func TestInsightService_GenerateInsights_GeneratorFailure(t *testing.T) {
	goals := newFakeGoalStore()
	seedGoal(goals, "alice@example.com", "Save $200")
	items := &fakeBillItemStore{}
	seedExpense(items, "alice@example.com", "Milk", 2, 1.25, models.CategoryFood)
	svc := NewInsightService(goals, items, &fakeGenerator{err: ErrNotConfigured}, zap.NewNop())

	_, err := svc.GenerateInsights(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
