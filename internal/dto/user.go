package dto

type UserResponse struct {
	Email            string                  `json:"email"`
	FirstName        string                  `json:"firstName"`
	LastName         string                  `json:"lastName"`
	Address          string                  `json:"address"`
	Phone            string                  `json:"phone"`
	FinancialDetails FinancialDetailsPayload `json:"financialDetails"`
}

// UpdateUserRequest is a partial profile patch. Nil fields are left
// untouched; nested financial-details fields are updated individually.
type UpdateUserRequest struct {
	FirstName             *string  `json:"firstName"`
	LastName              *string  `json:"lastName"`
	Address               *string  `json:"address"`
	Phone                 *string  `json:"phone"`
	AdditionalDetails     *string  `json:"additionalDetails"`
	Income                *float64 `json:"income"`
	GetsPension           *bool    `json:"getsPension"`
	PensionAmount         *float64 `json:"pensionAmount"`
	InvestsInStocks       *bool    `json:"investsInStocks"`
	YearlyStockInvestment *float64 `json:"yearlyStockInvestment"`
}

// IsEmpty reports whether the patch carries no changes at all.
func (r *UpdateUserRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Address == nil &&
		r.Phone == nil && r.AdditionalDetails == nil && r.Income == nil &&
		r.GetsPension == nil && r.PensionAmount == nil &&
		r.InvestsInStocks == nil && r.YearlyStockInvestment == nil
}
