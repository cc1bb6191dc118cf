package dto

type GoalRequest struct {
	GoalDescription string `json:"goal_description"`
	Month           string `json:"month"` // "YYYY-MM"
}

type GoalResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	GoalDescription string `json:"goal_description"`
	Month           string `json:"month"`
	CreatedAt       string `json:"created_at"`
}

// ExpenseItem is the trimmed bill-item view returned by the expenses listing.
type ExpenseItem struct {
	StoreName *string `json:"store_name"`
	BillDate  string  `json:"bill_date"`
	ItemName  string  `json:"item_name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Category  string  `json:"category"`
}

type InsightResponse struct {
	UserID          string `json:"user_id"`
	GoalDescription string `json:"goal_description"`
	Insights        string `json:"insights"`
}
