package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/dto"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const expenseListLimit = 1000

var (
	// ErrGoalNotFound: no goal exists for the current month; the caller is
	// told to set one first, it is not silently defaulted.
	ErrGoalNotFound = errors.New("no financial goal found for the current month")
	// ErrNoExpenses: the user has no spending data to analyze.
	ErrNoExpenses = errors.New("no expenses found for this user")
)

// InsightService stores monthly goals and generates AI spending insights from
// the goal plus the user's expense history.
type InsightService struct {
	goalStore GoalStore
	itemStore BillItemStore
	generator Generator
	logger    *zap.Logger
}

func NewInsightService(goalStore GoalStore, itemStore BillItemStore, generator Generator, logger *zap.Logger) *InsightService {
	return &InsightService{
		goalStore: goalStore,
		itemStore: itemStore,
		generator: generator,
		logger:    logger,
	}
}

// SetGoal upserts the goal for (user, month). Resubmitting the same pair
// replaces the previous description.
func (s *InsightService) SetGoal(ctx context.Context, userID string, req *dto.GoalRequest) (*models.Goal, error) {
	goal := &models.Goal{
		ID:              uuid.New(),
		UserID:          userID,
		GoalDescription: req.GoalDescription,
		Month:           req.Month,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.goalStore.Upsert(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to store goal: %w", err)
	}

	stored, err := s.goalStore.GetByUserMonth(ctx, userID, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to read back goal: %w", err)
	}

	return stored, nil
}

// ListExpenses returns the user's stored bill items; an empty history is a
// reported failure, not an empty list.
func (s *InsightService) ListExpenses(ctx context.Context, userID string) ([]*models.BillItem, error) {
	items, err := s.itemStore.ListByUserID(ctx, userID, expenseListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoExpenses
	}
	return items, nil
}

type expenseSummary struct {
	Item     string  `json:"item"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
}

// GenerateInsights fetches the current month's goal and the user's expense
// history, builds a cost summary and asks the model for advice. The model's
// text is returned verbatim alongside the goal description.
func (s *InsightService) GenerateInsights(ctx context.Context, userID string) (*dto.InsightResponse, error) {
	month := time.Now().UTC().Format("2006-01")

	goal, err := s.goalStore.GetByUserMonth(ctx, userID, month)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to look up goal: %w", err)
	}

	items, err := s.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := make([]expenseSummary, 0, len(items))
	for _, item := range items {
		summary = append(summary, expenseSummary{
			Item:     item.ItemName,
			Category: string(item.Category),
			Cost:     item.Quantity * item.UnitPrice,
		})
	}

	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to build expense summary: %w", err)
	}

	prompt := BuildInsightPrompt(goal.GoalDescription, string(summaryJSON))

	insights, err := s.generator.Generate(ctx, prompt, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Insights generated",
		zap.String("user_id", userID),
		zap.String("month", month),
		zap.Int("expenses", len(items)),
	)

	return &dto.InsightResponse{
		UserID:          userID,
		GoalDescription: goal.GoalDescription,
		Insights:        sanitizeUTF8(insights),
	}, nil
}
