package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"

	"github.com/google/uuid"
)

// OutcomeKind tags what the model's raw text turned out to be.
type OutcomeKind int

const (
	// OutcomeItems: structured bill data survived validation.
	OutcomeItems OutcomeKind = iota
	// OutcomeConversational: the text was not parseable bill data; it is
	// surfaced to the caller as a chat reply, not an error.
	OutcomeConversational
	// OutcomeNoValidItems: the model produced an items list but every
	// candidate was missing a required field.
	OutcomeNoValidItems
)

// ExtractionOutcome is the validated result of one model response.
type ExtractionOutcome struct {
	Kind    OutcomeKind
	Message string             // cleaned raw text, set for the non-item kinds
	Items   []*models.BillItem // storable records, set for OutcomeItems
}

// stripCodeFences removes markdown code-block markers the model sometimes
// wraps its JSON in.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseExtraction validates the model's raw text against the extraction
// contract. Parse failures and missing item lists degrade to a conversational
// outcome rather than an error. Candidate items missing unit_price, quantity
// or category are dropped silently; survivors are merged with the shared
// bill-level fields into storable records with fresh identifiers.
func ParseExtraction(raw, userID string, inputType models.InputType, now time.Time) ExtractionOutcome {
	cleaned := stripCodeFences(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return ExtractionOutcome{Kind: OutcomeConversational, Message: sanitizeUTF8(cleaned)}
	}

	rawItems, ok := parsed["items"].([]any)
	if !ok || len(rawItems) == 0 {
		return ExtractionOutcome{Kind: OutcomeConversational, Message: sanitizeUTF8(cleaned)}
	}

	storeName := optionalString(parsed, "store_name")
	totalAmount := optionalFloat(parsed, "total_amount")
	billDate, _ := parsed["bill_date"].(string)
	if billDate == "" {
		billDate = now.Format("2006-01-02")
	}

	var items []*models.BillItem
	for _, candidate := range rawItems {
		entry, ok := candidate.(map[string]any)
		if !ok {
			continue
		}

		quantity, okQty := entry["quantity"].(float64)
		unitPrice, okPrice := entry["unit_price"].(float64)
		category, okCat := entry["category"].(string)
		if !okQty || !okPrice || !okCat || category == "" {
			continue
		}

		itemName, _ := entry["item_name"].(string)

		items = append(items, &models.BillItem{
			ID:          uuid.New(),
			UserID:      userID,
			StoreName:   storeName,
			BillDate:    billDate,
			TotalAmount: totalAmount,
			ItemName:    sanitizeUTF8(itemName),
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Category:    models.ItemCategory(category),
			InputType:   inputType,
			CreatedAt:   now,
		})
	}

	if len(items) == 0 {
		return ExtractionOutcome{Kind: OutcomeNoValidItems, Message: sanitizeUTF8(cleaned)}
	}

	return ExtractionOutcome{Kind: OutcomeItems, Items: items}
}

func optionalString(m map[string]any, key string) *string {
	if v, ok := m[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

func optionalFloat(m map[string]any, key string) *float64 {
	if v, ok := m[key].(float64); ok {
		return &v
	}
	return nil
}
