package repository

import (
	"context"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "address", "phone",
	"additional_details", "income", "gets_pension", "pension_amount",
	"invests_in_stocks", "yearly_stock_investment", "created_at", "updated_at",
}

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := squirrel.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Email, user.Password, user.FirstName, user.LastName,
			user.Address, user.Phone, user.Financial.AdditionalDetails,
			user.Financial.Income, user.Financial.GetsPension,
			user.Financial.PensionAmount, user.Financial.InvestsInStocks,
			user.Financial.YearlyStockInvestment, user.CreatedAt, user.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Address, &user.Phone, &user.Financial.AdditionalDetails,
		&user.Financial.Income, &user.Financial.GetsPension,
		&user.Financial.PensionAmount, &user.Financial.InvestsInStocks,
		&user.Financial.YearlyStockInvestment, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateByEmail applies a partial column patch to the user row. The patch
// keys are column names; callers only put changed fields in it.
func (r *UserRepository) UpdateByEmail(ctx context.Context, email string, patch map[string]any) error {
	query := squirrel.Update("users").
		SetMap(patch).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
