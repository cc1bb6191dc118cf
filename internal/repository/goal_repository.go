package repository

import (
	"context"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type GoalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGoalRepository(db *pgxpool.Pool, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes the goal for (user, month), replacing any existing one. The
// ON CONFLICT clause makes the replace-or-insert atomic at the store level,
// so concurrent submissions for the same pair cannot produce two rows.
func (r *GoalRepository) Upsert(ctx context.Context, goal *models.Goal) error {
	query := squirrel.Insert("goals").
		Columns("id", "user_id", "goal_description", "month", "created_at").
		Values(goal.ID, goal.UserID, goal.GoalDescription, goal.Month, goal.CreatedAt).
		Suffix("ON CONFLICT (user_id, month) DO UPDATE SET goal_description = EXCLUDED.goal_description, created_at = EXCLUDED.created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *GoalRepository) GetByUserMonth(ctx context.Context, userID, month string) (*models.Goal, error) {
	query := squirrel.Select("id", "user_id", "goal_description", "month", "created_at").
		From("goals").
		Where(squirrel.Eq{"user_id": userID, "month": month}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var goal models.Goal
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&goal.ID, &goal.UserID, &goal.GoalDescription, &goal.Month, &goal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &goal, nil
}
