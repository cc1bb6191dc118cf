package service

import (
	"context"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"
)

// Store interfaces consumed by the services. The repository package provides
// the Postgres-backed implementations; tests substitute in-memory ones.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateByEmail(ctx context.Context, email string, patch map[string]any) error
}

type BillItemStore interface {
	CreateBatch(ctx context.Context, items []*models.BillItem) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]*models.BillItem, error)
}

type GoalStore interface {
	Upsert(ctx context.Context, goal *models.Goal) error
	GetByUserMonth(ctx context.Context, userID, month string) (*models.Goal, error)
}
