package models

import (
	"time"

	"github.com/google/uuid"
)

// FinancialDetails is the nested financial profile captured at signup.
type FinancialDetails struct {
	AdditionalDetails     string  `db:"additional_details"`
	Income                float64 `db:"income"`
	GetsPension           bool    `db:"gets_pension"`
	PensionAmount         float64 `db:"pension_amount"`
	InvestsInStocks       bool    `db:"invests_in_stocks"`
	YearlyStockInvestment float64 `db:"yearly_stock_investment"`
}

type User struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	Address   string    `db:"address"`
	Phone     string    `db:"phone"`
	Financial FinancialDetails
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
