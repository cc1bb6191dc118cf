package repository

import (
	"context"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var billItemColumns = []string{
	"id", "user_id", "store_name", "bill_date", "total_amount", "item_name",
	"quantity", "unit_price", "category", "input_type", "created_at",
}

type BillItemRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBillItemRepository(db *pgxpool.Pool, logger *zap.Logger) *BillItemRepository {
	return &BillItemRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch inserts all items in one statement. There is no transaction
// spanning other collections; callers tolerate partial completion.
func (r *BillItemRepository) CreateBatch(ctx context.Context, items []*models.BillItem) error {
	if len(items) == 0 {
		return nil
	}

	builder := squirrel.Insert("bill_items").
		Columns(billItemColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, item := range items {
		builder = builder.Values(item.ID, item.UserID, item.StoreName, item.BillDate,
			item.TotalAmount, item.ItemName, item.Quantity, item.UnitPrice,
			item.Category, item.InputType, item.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *BillItemRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*models.BillItem, error) {
	query := squirrel.Select(billItemColumns...).
		From("bill_items").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.BillItem
	for rows.Next() {
		var item models.BillItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.StoreName, &item.BillDate,
			&item.TotalAmount, &item.ItemName, &item.Quantity, &item.UnitPrice,
			&item.Category, &item.InputType, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, nil
}
