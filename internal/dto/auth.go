package dto

// FinancialDetailsPayload mirrors the nested financial-details object the
// signup form submits.
type FinancialDetailsPayload struct {
	AdditionalDetails     string  `json:"additionalDetails"`
	Income                float64 `json:"income"`
	GetsPension           bool    `json:"getsPension"`
	PensionAmount         float64 `json:"pensionAmount"`
	InvestsInStocks       bool    `json:"investsInStocks"`
	YearlyStockInvestment float64 `json:"yearlyStockInvestment"`
}

type SignUpRequest struct {
	FirstName        string                  `json:"firstName"`
	LastName         string                  `json:"lastName"`
	Address          string                  `json:"address"`
	Email            string                  `json:"email"`
	Phone            string                  `json:"phone"`
	Password         string                  `json:"password"`
	FinancialDetails FinancialDetailsPayload `json:"financialDetails"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
