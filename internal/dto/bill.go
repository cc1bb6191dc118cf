package dto

type BillItemResponse struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	StoreName   *string  `json:"store_name"`
	BillDate    string   `json:"bill_date"`
	TotalAmount *float64 `json:"total_amount"`
	ItemName    string   `json:"item_name"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	Category    string   `json:"category"`
	InputType   string   `json:"input_type"`
	CreatedAt   string   `json:"created_at"`
}

// ConversationalResponse is returned when the model answered in prose instead
// of producing storable bill data.
type ConversationalResponse struct {
	Message string `json:"message"`
}

type TranscriptionResponse struct {
	Text string `json:"text"`
}
