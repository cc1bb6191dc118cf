package service

import "fmt"

// extractionBasePrompt fixes the JSON shape the model must return for bill
// extraction. Items missing unit_price, quantity or category must be omitted
// by the model rather than returned with nulls; when no bill data is present
// the model is told to answer conversationally instead.
const extractionBasePrompt = `Analyze the provided information (text and/or image). Your primary task is to extract bill information and present it as a valid JSON object.

The JSON object must follow this structure:
- ` + "`store_name`" + `: The name of the store.
- ` + "`bill_date`" + `: The date of the bill (format YYYY-MM-DD if possible).
- ` + "`total_amount`" + `: The total amount paid for the bill as a number.
- ` + "`items`" + `: A list of dictionaries, where each dictionary represents an item and has:
    - ` + "`item_name`" + `: Name of the product.
    - ` + "`quantity`" + `: Quantity of the item as a number.
    - ` + "`unit_price`" + `: Price per unit of the item as a number.
    - ` + "`category`" + `: The category of the item. Choose from one of the following options: ['Retail', 'Food', 'Clothing', 'Travel', 'Entertainment', 'Utilities', 'Other'].

IMPORTANT: For every item in the 'items' array, the 'unit_price', 'quantity', and 'category' fields MUST NOT be null. If you cannot determine these values for an item, do not include that item in the list. If no items have all the required fields, return an empty 'items' list.

If no bill information is present or cannot be extracted, behave like a regular chatbot and respond conversationally.`

// transcriptionPrompt is sent alongside an audio attachment.
const transcriptionPrompt = "Please transcribe this audio file. If not clear return null"

// BuildExtractionPrompt returns the instruction text for bill extraction,
// appending the user's free-text explanation as supplementary context when
// present. Deterministic given its input.
func BuildExtractionPrompt(userExplanation string) string {
	if userExplanation == "" {
		return extractionBasePrompt
	}
	return fmt.Sprintf("%s\n\nHere is some additional context from the user: '%s'", extractionBasePrompt, userExplanation)
}

// BuildInsightPrompt embeds the user's goal and spending summary into the
// insight-generation instruction.
func BuildInsightPrompt(goalDescription, expensesSummary string) string {
	return fmt.Sprintf(`Analyze the following financial data for a user.

User's Goal: "%s"

User's Spending History for this month:
%s

Based on their spending, provide actionable, personalized insights and tips on how they can achieve their goal. Structure your response with clear headings. Focus on identifying spending patterns, suggesting specific areas for savings, and offering encouragement. Maximum 5 insights. 10 words max each.`, goalDescription, expensesSummary)
}
