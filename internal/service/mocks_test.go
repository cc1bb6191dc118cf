package service

import (
	"context"
	"fmt"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"

	"github.com/jackc/pgx/v5"
)

// fakeGenerator returns a canned response and records the last call.
type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
	lastAtt    *Attachment
	calls      int
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, att *Attachment) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	g.lastAtt = att
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type fakeBillItemStore struct {
	items     []*models.BillItem
	createErr error
	listErr   error
}

func (s *fakeBillItemStore) CreateBatch(_ context.Context, items []*models.BillItem) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.items = append(s.items, items...)
	return nil
}

func (s *fakeBillItemStore) ListByUserID(_ context.Context, userID string, limit int) ([]*models.BillItem, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*models.BillItem
	for _, item := range s.items {
		if item.UserID == userID && len(out) < limit {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeGoalStore struct {
	goals map[string]*models.Goal // keyed by user_id + "|" + month
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: make(map[string]*models.Goal)}
}

func goalKey(userID, month string) string {
	return fmt.Sprintf("%s|%s", userID, month)
}

func (s *fakeGoalStore) Upsert(_ context.Context, goal *models.Goal) error {
	s.goals[goalKey(goal.UserID, goal.Month)] = goal
	return nil
}

func (s *fakeGoalStore) GetByUserMonth(_ context.Context, userID, month string) (*models.Goal, error) {
	goal, ok := s.goals[goalKey(userID, month)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return goal, nil
}

type fakeUserStore struct {
	users     map[string]*models.User // keyed by email
	createErr error
	getErr    error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.users[user.Email] = user
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	user, ok := s.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *fakeUserStore) UpdateByEmail(_ context.Context, email string, patch map[string]any) error {
	user, ok := s.users[email]
	if !ok {
		return pgx.ErrNoRows
	}
	for column, value := range patch {
		switch column {
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "address":
			user.Address = value.(string)
		case "phone":
			user.Phone = value.(string)
		case "additional_details":
			user.Financial.AdditionalDetails = value.(string)
		case "income":
			user.Financial.Income = value.(float64)
		case "gets_pension":
			user.Financial.GetsPension = value.(bool)
		case "pension_amount":
			user.Financial.PensionAmount = value.(float64)
		case "invests_in_stocks":
			user.Financial.InvestsInStocks = value.(bool)
		case "yearly_stock_investment":
			user.Financial.YearlyStockInvestment = value.(float64)
		}
	}
	return nil
}
