package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemCategory is the closed category set the extraction prompt offers the
// model. Stored items always carry one of these values.
type ItemCategory string

const (
	CategoryRetail        ItemCategory = "Retail"
	CategoryFood          ItemCategory = "Food"
	CategoryClothing      ItemCategory = "Clothing"
	CategoryTravel        ItemCategory = "Travel"
	CategoryEntertainment ItemCategory = "Entertainment"
	CategoryUtilities     ItemCategory = "Utilities"
	CategoryOther         ItemCategory = "Other"
)

// InputType tags which modality a bill item was extracted from.
type InputType string

const (
	InputTypeText            InputType = "text"
	InputTypeImage           InputType = "image"
	InputTypeImageOnly       InputType = "image_only"
	InputTypeImageBase64     InputType = "image_base64"
	InputTypeImageOnlyBase64 InputType = "image_only_base64"
)

// BillItem is one line item parsed from a bill. Items from a single
// ingestion share the bill-level fields (store, date, total, input type) but
// are stored as independent rows. Quantity, UnitPrice and Category are never
// null for a stored item; candidates missing any of them are dropped before
// storage.
type BillItem struct {
	ID          uuid.UUID    `db:"id"`
	UserID      string       `db:"user_id"` // owning user's email
	StoreName   *string      `db:"store_name"`
	BillDate    string       `db:"bill_date"` // ISO date, defaults to ingestion day
	TotalAmount *float64     `db:"total_amount"`
	ItemName    string       `db:"item_name"`
	Quantity    float64      `db:"quantity"`
	UnitPrice   float64      `db:"unit_price"`
	Category    ItemCategory `db:"category"`
	InputType   InputType    `db:"input_type"`
	CreatedAt   time.Time    `db:"created_at"`
}
